package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"adsboard/internal/domain"
	"adsboard/pkg/utils"
)

// 内存版仓储，四个实现共享一个 store；uow 直接在同一 store 上执行。

type store struct {
	users    map[string]*domain.User
	ads      map[string]*domain.Ad
	comments map[string]*domain.Comment
	images   map[string][]byte
	issued   []string // Put 发过的全部 blob id
}

func newStore() *store {
	return &store{
		users:    map[string]*domain.User{},
		ads:      map[string]*domain.Ad{},
		comments: map[string]*domain.Comment{},
		images:   map[string][]byte{},
	}
}

type fakeUsers struct{ s *store }

func (f *fakeUsers) Create(_ context.Context, u *domain.User) error {
	cp := *u
	f.s.users[u.ID] = &cp
	return nil
}
func (f *fakeUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := f.s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}
func (f *fakeUsers) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range f.s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}
func (f *fakeUsers) List(_ context.Context, q string, offset, limit int, _ bool) ([]domain.User, int64, error) {
	var out []domain.User
	for _, u := range f.s.users {
		if q == "" || strings.Contains(u.Username, q) {
			out = append(out, *u)
		}
	}
	return out, int64(len(out)), nil
}
func (f *fakeUsers) Update(_ context.Context, u *domain.User) error {
	if _, ok := f.s.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *u
	f.s.users[u.ID] = &cp
	return nil
}
func (f *fakeUsers) SoftDelete(_ context.Context, id string) error {
	if _, ok := f.s.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.s.users, id)
	return nil
}

type fakeAds struct{ s *store }

func (f *fakeAds) Create(_ context.Context, a *domain.Ad) error {
	cp := *a
	f.s.ads[a.ID] = &cp
	return nil
}
func (f *fakeAds) FindByID(_ context.Context, id string) (*domain.Ad, error) {
	a, ok := f.s.ads[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}
func (f *fakeAds) OwnerID(_ context.Context, id string) (string, error) {
	a, ok := f.s.ads[id]
	if !ok {
		return "", domain.ErrNotFound
	}
	return a.OwnerID, nil
}
func (f *fakeAds) List(_ context.Context) ([]domain.Ad, error) {
	var out []domain.Ad
	for _, a := range f.s.ads {
		out = append(out, *a)
	}
	return out, nil
}
func (f *fakeAds) ListByOwner(_ context.Context, ownerID string) ([]domain.Ad, error) {
	var out []domain.Ad
	for _, a := range f.s.ads {
		if a.OwnerID == ownerID {
			out = append(out, *a)
		}
	}
	return out, nil
}
func (f *fakeAds) Update(_ context.Context, a *domain.Ad) error {
	if _, ok := f.s.ads[a.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *a
	f.s.ads[a.ID] = &cp
	return nil
}
func (f *fakeAds) Delete(_ context.Context, id string) error {
	if _, ok := f.s.ads[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.s.ads, id)
	return nil
}

type fakeComments struct{ s *store }

func (f *fakeComments) Create(_ context.Context, cm *domain.Comment) error {
	cp := *cm
	f.s.comments[cm.ID] = &cp
	return nil
}
func (f *fakeComments) FindByID(_ context.Context, id string) (*domain.Comment, error) {
	cm, ok := f.s.comments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *cm
	return &cp, nil
}
func (f *fakeComments) AuthorID(_ context.Context, id string) (string, error) {
	cm, ok := f.s.comments[id]
	if !ok {
		return "", domain.ErrNotFound
	}
	return cm.AuthorID, nil
}
func (f *fakeComments) ListByAd(_ context.Context, adID string) ([]domain.Comment, error) {
	var out []domain.Comment
	for _, cm := range f.s.comments {
		if cm.AdID == adID {
			out = append(out, *cm)
		}
	}
	return out, nil
}
func (f *fakeComments) Update(_ context.Context, cm *domain.Comment) error {
	old, ok := f.s.comments[cm.ID]
	if !ok {
		return domain.ErrNotFound
	}
	old.Text = cm.Text
	return nil
}
func (f *fakeComments) Delete(_ context.Context, id string) error {
	if _, ok := f.s.comments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.s.comments, id)
	return nil
}
func (f *fakeComments) DeleteByAd(_ context.Context, adID string) error {
	for id, cm := range f.s.comments {
		if cm.AdID == adID {
			delete(f.s.comments, id)
		}
	}
	return nil
}

type fakeImages struct{ s *store }

func (f *fakeImages) Put(_ context.Context, existingID string, bytes []byte) (string, error) {
	id := existingID
	if id == "" {
		id = utils.NewID()
		f.s.issued = append(f.s.issued, id)
	}
	cp := append([]byte(nil), bytes...)
	f.s.images[id] = cp
	return id, nil
}
func (f *fakeImages) Get(_ context.Context, id string) ([]byte, error) {
	b, ok := f.s.images[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

type fakeUoW struct{ r domain.Repos }

func (f fakeUoW) Do(_ context.Context, fn func(domain.Repos) error) error { return fn(f.r) }

type env struct {
	s     *store
	repos domain.Repos
	uow   domain.UnitOfWork
}

func newEnv() *env {
	s := newStore()
	r := domain.Repos{
		Users:    &fakeUsers{s},
		Ads:      &fakeAds{s},
		Comments: &fakeComments{s},
		Images:   &fakeImages{s},
	}
	return &env{s: s, repos: r, uow: fakeUoW{r}}
}

func (e *env) seedUser(id, role string) *domain.User {
	u := &domain.User{
		ID: id, Username: id, Role: role,
		PasswordHash: utils.HashPassword("password-" + id),
		FirstName:    "F" + id, LastName: "L" + id,
		CreatedAt: time.Now(),
	}
	e.s.users[id] = u
	return u
}

func (e *env) seedAd(id, ownerID string) *domain.Ad {
	a := &domain.Ad{ID: id, Title: "test ad " + id, Price: 100, Description: "internals", OwnerID: ownerID}
	e.s.ads[id] = a
	return a
}

func (e *env) seedComment(id, adID, authorID string) *domain.Comment {
	cm := &domain.Comment{ID: id, AdID: adID, AuthorID: authorID, Text: "hi", CreatedAt: time.Now()}
	e.s.comments[id] = cm
	return cm
}

func nop() *zap.Logger { return zap.NewNop() }
