package domain

import "context"

// Image 二进制附件。blob 不知道自己的归属，父实体用槽位（User.ImageID / Ad.ImageID）指向它。
type Image struct {
	ID    string `gorm:"primaryKey;size:36" json:"id"`
	Bytes []byte `gorm:"not null" json:"-"`
}

func (Image) TableName() string { return "images" }

// ImageRepository create-or-replace 语义：
// existingID 为空 → 生成新 id 落一行；非空 → 原地覆盖 bytes，id 不变。
type ImageRepository interface {
	Put(ctx context.Context, existingID string, bytes []byte) (string, error)
	Get(ctx context.Context, id string) ([]byte, error)
}
