package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	Username     string `gorm:"uniqueIndex;size:64;not null" json:"username"`
	PasswordHash string `gorm:"size:100;not null" json:"-"`
	FirstName    string `gorm:"size:64" json:"firstName"`
	LastName     string `gorm:"size:64" json:"lastName"`
	Phone        string `gorm:"size:32" json:"phone"`
	Role         string `gorm:"size:16;not null;default:user" json:"role"` // "user"/"admin"
	ImageID      string `gorm:"size:36" json:"image,omitempty"`            // 头像槽，空串 = 未设置

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context, q string, offset, limit int, withDeleted bool) ([]User, int64, error)
	Update(ctx context.Context, u *User) error
	SoftDelete(ctx context.Context, id string) error
}
