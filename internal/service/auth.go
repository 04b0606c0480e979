package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"adsboard/internal/core/auth"
	"adsboard/internal/domain"
	"adsboard/pkg/utils"
)

// AuthService 把登录凭据换成 Principal + 令牌
type AuthService struct {
	users domain.UserRepository
	jwter *auth.JWTer
	log   *zap.Logger
}

func NewAuthService(users domain.UserRepository, jwter *auth.JWTer, log *zap.Logger) *AuthService {
	return &AuthService{users: users, jwter: jwter, log: log}
}

type RegisterIn struct {
	Username  string `json:"username" binding:"required,min=3,max=64"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required,max=64"`
	LastName  string `json:"lastName" binding:"required,max=64"`
	Phone     string `json:"phone" binding:"omitempty,max=32"`
}

func (s *AuthService) Register(ctx context.Context, in RegisterIn) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("username taken: %w", domain.ErrValidation)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	u := &domain.User{
		ID:           utils.NewID(),
		Username:     username,
		PasswordHash: utils.HashPassword(in.Password),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info("user registered", zap.String("user_id", u.ID))
	return u, nil
}

// Login 账号不存在和密码不对都归为 ErrUnauthenticated，不区分
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	u, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil, domain.ErrUnauthenticated
	}
	if err != nil {
		return "", nil, err
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return "", nil, domain.ErrUnauthenticated
	}
	tok, err := s.jwter.Issue(u.ID, u.Role)
	if err != nil || tok == "" {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return tok, u, nil
}
