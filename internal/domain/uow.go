package domain

import "context"

// Repos 一组仓储，同一个 Repos 内的操作共享同一个事务
type Repos struct {
	Users    UserRepository
	Ads      AdRepository
	Comments CommentRepository
	Images   ImageRepository
}

// UnitOfWork 把 存在性检查 → 归属检查 → 写入 包进一个事务，
// 避免检查和写入之间资源被删/改主的窗口。
type UnitOfWork interface {
	Do(ctx context.Context, fn func(r Repos) error) error
}
