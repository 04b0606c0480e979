package domain

import (
	"context"
	"time"
)

type Comment struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	AdID     string `gorm:"size:36;index;not null" json:"adId"`
	AuthorID string `gorm:"size:36;index;not null" json:"author"`
	Text     string `gorm:"size:1024;not null" json:"text"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"` // 只在创建时写入
}

func (Comment) TableName() string { return "comments" }

type CommentRepository interface {
	Create(ctx context.Context, cm *Comment) error
	FindByID(ctx context.Context, id string) (*Comment, error)
	// AuthorID 评论的归属是作者，不是广告主；行不存在返回 ErrNotFound
	AuthorID(ctx context.Context, id string) (string, error)
	ListByAd(ctx context.Context, adID string) ([]Comment, error)
	Update(ctx context.Context, cm *Comment) error
	Delete(ctx context.Context, id string) error
	DeleteByAd(ctx context.Context, adID string) error
}
