package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"adsboard/internal/domain"
	"adsboard/pkg/utils"
)

type UpdateUser struct {
	FirstName string `json:"firstName" binding:"required,max=64"`
	LastName  string `json:"lastName" binding:"required,max=64"`
	Phone     string `json:"phone" binding:"omitempty,max=32"`
}

type NewPassword struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

type UserService struct {
	repos domain.Repos
	uow   domain.UnitOfWork
	log   *zap.Logger
}

func NewUserService(repos domain.Repos, uow domain.UnitOfWork, log *zap.Logger) *UserService {
	return &UserService{repos: repos, uow: uow, log: log}
}

func (s *UserService) Me(ctx context.Context, p domain.Principal) (*domain.User, error) {
	if p.ID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.repos.Users.FindByID(ctx, p.ID)
}

func (s *UserService) Update(ctx context.Context, p domain.Principal, in UpdateUser) (*domain.User, error) {
	if p.ID == "" {
		return nil, domain.ErrUnauthenticated
	}
	var out *domain.User
	err := s.uow.Do(ctx, func(r domain.Repos) error {
		u, err := r.Users.FindByID(ctx, p.ID)
		if err != nil {
			return err
		}
		u.FirstName = in.FirstName
		u.LastName = in.LastName
		u.Phone = in.Phone
		if err := r.Users.Update(ctx, u); err != nil {
			return err
		}
		out = u
		return nil
	})
	return out, err
}

func (s *UserService) SetPassword(ctx context.Context, p domain.Principal, in NewPassword) error {
	if p.ID == "" {
		return domain.ErrUnauthenticated
	}
	return s.uow.Do(ctx, func(r domain.Repos) error {
		u, err := r.Users.FindByID(ctx, p.ID)
		if err != nil {
			return err
		}
		if !utils.CheckPassword(in.CurrentPassword, u.PasswordHash) {
			return fmt.Errorf("current password mismatch: %w", domain.ErrValidation)
		}
		u.PasswordHash = utils.HashPassword(in.NewPassword)
		return r.Users.Update(ctx, u)
	})
}

// ReplaceAvatar 只能换自己的头像，没有 admin 代改路径；
// 槽位已有 blob 时原地覆盖，id 不变。
func (s *UserService) ReplaceAvatar(ctx context.Context, p domain.Principal, bytes []byte) (string, error) {
	if p.ID == "" {
		return "", domain.ErrUnauthenticated
	}
	var imgID string
	err := s.uow.Do(ctx, func(r domain.Repos) error {
		u, err := r.Users.FindByID(ctx, p.ID)
		if err != nil {
			return err
		}
		imgID, err = r.Images.Put(ctx, u.ImageID, bytes)
		if err != nil {
			return err
		}
		if u.ImageID != imgID {
			u.ImageID = imgID
			return r.Users.Update(ctx, u)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	s.log.Info("avatar replaced", zap.String("user_id", p.ID), zap.String("image_id", imgID))
	return imgID, nil
}

// GetImage blob 内容读取，/image/:id 用
func (s *UserService) GetImage(ctx context.Context, id string) ([]byte, error) {
	return s.repos.Images.Get(ctx, id)
}
