package domain

import (
	"context"
	"time"
)

type Ad struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	Title       string `gorm:"size:128;not null" json:"title"`
	Price       int    `gorm:"not null" json:"price"`
	Description string `gorm:"size:2048" json:"description"`
	OwnerID     string `gorm:"size:36;index;not null" json:"author"` // 创建后不可变
	ImageID     string `gorm:"size:36" json:"image,omitempty"`       // 图片槽

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Ad) TableName() string { return "ads" }

type AdRepository interface {
	Create(ctx context.Context, a *Ad) error
	FindByID(ctx context.Context, id string) (*Ad, error)
	// OwnerID 只取归属，行不存在返回 ErrNotFound
	OwnerID(ctx context.Context, id string) (string, error)
	List(ctx context.Context) ([]Ad, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Ad, error)
	Update(ctx context.Context, a *Ad) error
	Delete(ctx context.Context, id string) error
}
