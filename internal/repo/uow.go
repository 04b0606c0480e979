package repo

import (
	"context"

	"gorm.io/gorm"

	"adsboard/internal/domain"
)

// NewRepos 绑定到同一个 *gorm.DB（可以是事务句柄）
func NewRepos(db *gorm.DB) domain.Repos {
	return domain.Repos{
		Users:    NewUserRepo(db),
		Ads:      NewAdRepo(db),
		Comments: NewCommentRepo(db),
		Images:   NewImageRepo(db),
	}
}

type GormUoW struct{ db *gorm.DB }

func NewUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) Do(ctx context.Context, fn func(r domain.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepos(tx))
	})
}
