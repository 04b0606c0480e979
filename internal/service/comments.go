package service

import (
	"context"

	"go.uber.org/zap"

	"adsboard/internal/domain"
	"adsboard/pkg/utils"
)

type CommentIn struct {
	Text string `json:"text" binding:"required,min=1,max=1024"`
}

type CommentService struct {
	repos domain.Repos
	uow   domain.UnitOfWork
	log   *zap.Logger
}

func NewCommentService(repos domain.Repos, uow domain.UnitOfWork, log *zap.Logger) *CommentService {
	return &CommentService{repos: repos, uow: uow, log: log}
}

func (s *CommentService) ListByAd(ctx context.Context, adID string) ([]domain.Comment, error) {
	if _, err := s.repos.Ads.OwnerID(ctx, adID); err != nil {
		return nil, err
	}
	return s.repos.Comments.ListByAd(ctx, adID)
}

func (s *CommentService) Add(ctx context.Context, p domain.Principal, adID string, in CommentIn) (*domain.Comment, error) {
	if p.ID == "" {
		return nil, domain.ErrUnauthenticated
	}
	cm := &domain.Comment{
		ID:       utils.NewID(),
		AdID:     adID,
		AuthorID: p.ID,
		Text:     in.Text,
	}
	err := s.uow.Do(ctx, func(r domain.Repos) error {
		// 父广告必须存在
		if _, err := r.Ads.OwnerID(ctx, adID); err != nil {
			return err
		}
		return r.Comments.Create(ctx, cm)
	})
	if err != nil {
		return nil, err
	}
	return cm, nil
}

// Update 先查父广告，再查评论；归属是评论作者，admin 照常放行
func (s *CommentService) Update(ctx context.Context, p domain.Principal, adID, commentID string, in CommentIn) (*domain.Comment, error) {
	if p.ID == "" {
		return nil, domain.ErrUnauthenticated
	}
	var out *domain.Comment
	err := s.uow.Do(ctx, func(r domain.Repos) error {
		cm, err := s.lookup(ctx, r, adID, commentID)
		if err != nil {
			return err
		}
		if !p.CanMutate(cm.AuthorID) {
			return domain.ErrForbidden
		}
		cm.Text = in.Text
		if err := r.Comments.Update(ctx, cm); err != nil {
			return err
		}
		out = cm
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CommentService) Delete(ctx context.Context, p domain.Principal, adID, commentID string) error {
	if p.ID == "" {
		return domain.ErrUnauthenticated
	}
	err := s.uow.Do(ctx, func(r domain.Repos) error {
		cm, err := s.lookup(ctx, r, adID, commentID)
		if err != nil {
			return err
		}
		if !p.CanMutate(cm.AuthorID) {
			return domain.ErrForbidden
		}
		return r.Comments.Delete(ctx, commentID)
	})
	if err != nil {
		return err
	}
	s.log.Info("comment deleted", zap.String("comment_id", commentID), zap.String("by", p.ID))
	return nil
}

// lookup 父广告存在性在前；挂错广告的评论一样按 404 处理
func (s *CommentService) lookup(ctx context.Context, r domain.Repos, adID, commentID string) (*domain.Comment, error) {
	if _, err := r.Ads.OwnerID(ctx, adID); err != nil {
		return nil, err
	}
	cm, err := r.Comments.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if cm.AdID != adID {
		return nil, domain.ErrNotFound
	}
	return cm, nil
}
