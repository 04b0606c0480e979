package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adsboard/internal/domain"
	"adsboard/pkg/utils"
)

func newUserService(e *env) *UserService {
	return NewUserService(e.repos, e.uow, nop())
}

func TestReplaceAvatar(t *testing.T) {
	ctx := context.Background()

	t.Run("first upload creates, second overwrites in place", func(t *testing.T) {
		e := newEnv()
		e.seedUser("u1", domain.RoleUser)
		svc := newUserService(e)
		p := domain.Principal{ID: "u1", Role: domain.RoleUser}

		id1, err := svc.ReplaceAvatar(ctx, p, []byte("X"))
		require.NoError(t, err)
		require.NotEmpty(t, id1)
		assert.Equal(t, id1, e.s.users["u1"].ImageID)
		assert.Equal(t, []byte("X"), e.s.images[id1])

		id2, err := svc.ReplaceAvatar(ctx, p, []byte("Y"))
		require.NoError(t, err)
		assert.Equal(t, id1, id2)
		assert.Equal(t, []byte("Y"), e.s.images[id1])
		assert.Len(t, e.s.issued, 1)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		e := newEnv()
		_, err := newUserService(e).ReplaceAvatar(ctx, domain.Principal{}, []byte("X"))
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	e.seedUser("u1", domain.RoleUser)
	svc := newUserService(e)

	u, err := svc.Update(ctx, domain.Principal{ID: "u1", Role: domain.RoleUser},
		UpdateUser{FirstName: "Ivan", LastName: "Petrov", Phone: "+7900"})
	require.NoError(t, err)
	assert.Equal(t, "Ivan", u.FirstName)
	assert.Equal(t, "+7900", e.s.users["u1"].Phone)

	_, err = svc.Update(ctx, domain.Principal{}, UpdateUser{FirstName: "x", LastName: "y"})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestSetPassword(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	e.seedUser("u1", domain.RoleUser) // seeded password is password-u1
	svc := newUserService(e)
	p := domain.Principal{ID: "u1", Role: domain.RoleUser}

	err := svc.SetPassword(ctx, p, NewPassword{CurrentPassword: "wrong", NewPassword: "irrelevant1"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = svc.SetPassword(ctx, p, NewPassword{CurrentPassword: "password-u1", NewPassword: "brand-new-pass"})
	require.NoError(t, err)
	assert.True(t, utils.CheckPassword("brand-new-pass", e.s.users["u1"].PasswordHash))
}

func TestGetImage(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	e.s.images["img1"] = []byte{0x89, 0x50}
	svc := newUserService(e)

	b, err := svc.GetImage(ctx, "img1")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 0x50}, b)

	_, err = svc.GetImage(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
