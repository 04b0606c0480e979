package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"adsboard/internal/core/cache"
	"adsboard/internal/domain"
	"adsboard/pkg/utils"
)

type CreateOrUpdateAd struct {
	Title       string `json:"title" form:"title" binding:"required,min=4,max=32"`
	Price       int    `json:"price" form:"price" binding:"min=0,max=10000000"`
	Description string `json:"description" form:"description" binding:"required,min=8,max=64"`
}

// ExtendedAd 详情视图：广告 + 作者档案字段
type ExtendedAd struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Price           int    `json:"price"`
	Description     string `json:"description"`
	Image           string `json:"image,omitempty"`
	AuthorID        string `json:"author"`
	AuthorUsername  string `json:"authorUsername"`
	AuthorFirstName string `json:"authorFirstName"`
	AuthorLastName  string `json:"authorLastName"`
	AuthorPhone     string `json:"phone"`
}

type AdService struct {
	repos domain.Repos
	uow   domain.UnitOfWork
	cache *cache.Cache
	adTTL time.Duration
	log   *zap.Logger
}

func NewAdService(repos domain.Repos, uow domain.UnitOfWork, c *cache.Cache, adTTL time.Duration, log *zap.Logger) *AdService {
	return &AdService{repos: repos, uow: uow, cache: c, adTTL: adTTL, log: log}
}

func adCacheKey(id string) string { return "ad:ext:" + id }

func (s *AdService) List(ctx context.Context) ([]domain.Ad, error) {
	return s.repos.Ads.List(ctx)
}

func (s *AdService) ListMine(ctx context.Context, p domain.Principal) ([]domain.Ad, error) {
	if p.ID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.repos.Ads.ListByOwner(ctx, p.ID)
}

func (s *AdService) Get(ctx context.Context, id string) (*ExtendedAd, error) {
	if s.cache != nil && s.adTTL > 0 {
		return cache.GetOrLoadJSON[ExtendedAd](s.cache, ctx, adCacheKey(id), s.adTTL,
			func(ctx context.Context) (*ExtendedAd, error) { return s.loadExtended(ctx, id) })
	}
	return s.loadExtended(ctx, id)
}

func (s *AdService) loadExtended(ctx context.Context, id string) (*ExtendedAd, error) {
	a, err := s.repos.Ads.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u, err := s.repos.Users.FindByID(ctx, a.OwnerID)
	if err != nil {
		return nil, err
	}
	return &ExtendedAd{
		ID:              a.ID,
		Title:           a.Title,
		Price:           a.Price,
		Description:     a.Description,
		Image:           a.ImageID,
		AuthorID:        u.ID,
		AuthorUsername:  u.Username,
		AuthorFirstName: u.FirstName,
		AuthorLastName:  u.LastName,
		AuthorPhone:     u.Phone,
	}, nil
}

// Create 广告和首张图片在同一个事务里落库
func (s *AdService) Create(ctx context.Context, p domain.Principal, in CreateOrUpdateAd, image []byte) (*domain.Ad, error) {
	if p.ID == "" {
		return nil, domain.ErrUnauthenticated
	}
	a := &domain.Ad{
		ID:          utils.NewID(),
		Title:       in.Title,
		Price:       in.Price,
		Description: in.Description,
		OwnerID:     p.ID,
	}
	err := s.uow.Do(ctx, func(r domain.Repos) error {
		if len(image) > 0 {
			imgID, err := r.Images.Put(ctx, "", image)
			if err != nil {
				return err
			}
			a.ImageID = imgID
		}
		return r.Ads.Create(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("ad created", zap.String("ad_id", a.ID), zap.String("owner_id", p.ID))
	return a, nil
}

// Update 鉴权 → 存在性 → 归属 → 写入，整体在一个事务里
func (s *AdService) Update(ctx context.Context, p domain.Principal, adID string, in CreateOrUpdateAd) (*domain.Ad, error) {
	if p.ID == "" {
		return nil, domain.ErrUnauthenticated
	}
	var out *domain.Ad
	err := s.uow.Do(ctx, func(r domain.Repos) error {
		a, err := r.Ads.FindByID(ctx, adID)
		if err != nil {
			return err
		}
		if !p.CanMutate(a.OwnerID) {
			return domain.ErrForbidden
		}
		a.Title = in.Title
		a.Price = in.Price
		a.Description = in.Description
		if err := r.Ads.Update(ctx, a); err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, adID)
	return out, nil
}

// Delete 级联删掉该广告下的全部评论；图片 blob 不回收（见 DESIGN.md）
func (s *AdService) Delete(ctx context.Context, p domain.Principal, adID string) error {
	if p.ID == "" {
		return domain.ErrUnauthenticated
	}
	err := s.uow.Do(ctx, func(r domain.Repos) error {
		ownerID, err := r.Ads.OwnerID(ctx, adID)
		if err != nil {
			return err
		}
		if !p.CanMutate(ownerID) {
			return domain.ErrForbidden
		}
		if err := r.Comments.DeleteByAd(ctx, adID); err != nil {
			return err
		}
		return r.Ads.Delete(ctx, adID)
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx, adID)
	s.log.Info("ad deleted", zap.String("ad_id", adID), zap.String("by", p.ID))
	return nil
}

// ReplaceImage 广告的归属就是图片的归属，没有独立的图片权限;
// 槽位已有 blob 时原地覆盖，id 不变。
func (s *AdService) ReplaceImage(ctx context.Context, p domain.Principal, adID string, bytes []byte) (string, error) {
	if p.ID == "" {
		return "", domain.ErrUnauthenticated
	}
	var imgID string
	err := s.uow.Do(ctx, func(r domain.Repos) error {
		a, err := r.Ads.FindByID(ctx, adID)
		if err != nil {
			return err
		}
		if !p.CanMutate(a.OwnerID) {
			return domain.ErrForbidden
		}
		imgID, err = r.Images.Put(ctx, a.ImageID, bytes)
		if err != nil {
			return err
		}
		if a.ImageID != imgID {
			a.ImageID = imgID
			return r.Ads.Update(ctx, a)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	s.invalidate(ctx, adID)
	return imgID, nil
}

func (s *AdService) invalidate(ctx context.Context, adID string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, adCacheKey(adID))
	}
}
