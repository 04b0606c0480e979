package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"adsboard/internal/domain"
)

type CommentRepo struct{ db *gorm.DB }

func NewCommentRepo(db *gorm.DB) *CommentRepo { return &CommentRepo{db: db} }

func (r *CommentRepo) Create(ctx context.Context, cm *domain.Comment) error {
	return r.db.WithContext(ctx).Create(cm).Error
}

func (r *CommentRepo) FindByID(ctx context.Context, id string) (*domain.Comment, error) {
	var cm domain.Comment
	err := r.db.WithContext(ctx).First(&cm, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	return &cm, err
}

func (r *CommentRepo) AuthorID(ctx context.Context, id string) (string, error) {
	var cm domain.Comment
	err := r.db.WithContext(ctx).Select("author_id").First(&cm, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", domain.ErrNotFound
	}
	return cm.AuthorID, err
}

func (r *CommentRepo) ListByAd(ctx context.Context, adID string) ([]domain.Comment, error) {
	var cms []domain.Comment
	err := r.db.WithContext(ctx).Where("ad_id = ?", adID).Order("created_at ASC").Find(&cms).Error
	return cms, err
}

func (r *CommentRepo) Update(ctx context.Context, cm *domain.Comment) error {
	// CreatedAt 创建后不再回写
	return r.db.WithContext(ctx).Model(cm).Update("text", cm.Text).Error
}

func (r *CommentRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Comment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CommentRepo) DeleteByAd(ctx context.Context, adID string) error {
	return r.db.WithContext(ctx).Where("ad_id = ?", adID).Delete(&domain.Comment{}).Error
}
