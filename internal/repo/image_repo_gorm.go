package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"adsboard/internal/domain"
	"adsboard/pkg/utils"
)

type ImageRepo struct{ db *gorm.DB }

func NewImageRepo(db *gorm.DB) *ImageRepo { return &ImageRepo{db: db} }

// Put existingID 为空则新建一行并返回新 id；
// 非空则原地覆盖该行的 bytes，id 保持不变。并发覆盖同一槽位为 last-write-wins。
func (r *ImageRepo) Put(ctx context.Context, existingID string, bytes []byte) (string, error) {
	if existingID == "" {
		img := domain.Image{ID: utils.NewID(), Bytes: bytes}
		if err := r.db.WithContext(ctx).Create(&img).Error; err != nil {
			return "", err
		}
		return img.ID, nil
	}
	res := r.db.WithContext(ctx).Model(&domain.Image{}).Where("id = ?", existingID).Update("bytes", bytes)
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		// 槽位指向的行丢了，按引用的 id 补回一行，id 仍然稳定
		img := domain.Image{ID: existingID, Bytes: bytes}
		if err := r.db.WithContext(ctx).Create(&img).Error; err != nil {
			return "", err
		}
	}
	return existingID, nil
}

func (r *ImageRepo) Get(ctx context.Context, id string) ([]byte, error) {
	var img domain.Image
	err := r.db.WithContext(ctx).First(&img, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return img.Bytes, nil
}
