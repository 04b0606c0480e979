package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreauth "adsboard/internal/core/auth"
	"adsboard/internal/domain"
)

func newAuthService(e *env) *AuthService {
	jwter := &coreauth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: time.Minute}
	return NewAuthService(e.repos.Users, jwter, nop())
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	svc := newAuthService(e)

	u, err := svc.Register(ctx, RegisterIn{
		Username: "ivan", Password: "password123",
		FirstName: "Ivan", LastName: "Petrov",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, u.Role)
	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, "password123", u.PasswordHash)

	_, err = svc.Register(ctx, RegisterIn{
		Username: "ivan", Password: "password456",
		FirstName: "Other", LastName: "Guy",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	e.seedUser("u1", domain.RoleUser)
	svc := newAuthService(e)

	tok, u, err := svc.Login(ctx, "u1", "password-u1")
	require.NoError(t, err)
	assert.NotEmpty(t, tok)
	assert.Equal(t, "u1", u.ID)

	_, _, err = svc.Login(ctx, "u1", "wrong")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	// 账号不存在与密码错误对外不可区分
	_, _, err = svc.Login(ctx, "ghost", "whatever")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
