package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adsboard/internal/domain"
)

func newCommentService(e *env) *CommentService {
	return NewCommentService(e.repos, e.uow, nop())
}

func TestCommentAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("requires authentication before anything else", func(t *testing.T) {
		e := newEnv()
		_, err := newCommentService(e).Add(ctx, domain.Principal{}, "missing-ad", CommentIn{Text: "hi"})
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("missing parent ad", func(t *testing.T) {
		e := newEnv()
		e.seedUser("u1", domain.RoleUser)
		_, err := newCommentService(e).Add(ctx, domain.Principal{ID: "u1", Role: domain.RoleUser}, "ad999", CommentIn{Text: "hi"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("author is the caller", func(t *testing.T) {
		e := newEnv()
		e.seedUser("u1", domain.RoleUser)
		e.seedUser("u2", domain.RoleUser)
		e.seedAd("ad5", "u1")

		cm, err := newCommentService(e).Add(ctx, domain.Principal{ID: "u2", Role: domain.RoleUser}, "ad5", CommentIn{Text: "still available?"})
		require.NoError(t, err)
		assert.Equal(t, "u2", cm.AuthorID)
		assert.Equal(t, "ad5", cm.AdID)
		assert.False(t, cm.CreatedAt.IsZero())
	})
}

func TestCommentMutation_Ownership(t *testing.T) {
	ctx := context.Background()
	p := func(id string) domain.Principal { return domain.Principal{ID: id, Role: domain.RoleUser} }

	setup := func() (*env, *CommentService) {
		e := newEnv()
		e.seedUser("u1", domain.RoleUser) // 广告主
		e.seedUser("u2", domain.RoleUser) // 评论作者
		e.seedUser("a1", domain.RoleAdmin)
		e.seedAd("ad5", "u1")
		e.seedComment("c1", "ad5", "u2")
		return e, newCommentService(e)
	}

	t.Run("author may edit", func(t *testing.T) {
		_, svc := setup()
		cm, err := svc.Update(ctx, p("u2"), "ad5", "c1", CommentIn{Text: "edited"})
		require.NoError(t, err)
		assert.Equal(t, "edited", cm.Text)
	})

	t.Run("ad owner is not the comment owner", func(t *testing.T) {
		_, svc := setup()
		_, err := svc.Update(ctx, p("u1"), "ad5", "c1", CommentIn{Text: "edited"})
		require.ErrorIs(t, err, domain.ErrForbidden)
		assert.Equal(t, domain.MsgNoRights, err.Error())
	})

	t.Run("admin override applies to comments too", func(t *testing.T) {
		e, svc := setup()
		err := svc.Delete(ctx, domain.Principal{ID: "a1", Role: domain.RoleAdmin}, "ad5", "c1")
		require.NoError(t, err)
		assert.NotContains(t, e.s.comments, "c1")
	})

	t.Run("parent ad existence is checked before the comment", func(t *testing.T) {
		_, svc := setup()
		_, err := svc.Update(ctx, p("u2"), "ad999", "c1", CommentIn{Text: "x"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("comment attached to another ad reads as missing", func(t *testing.T) {
		e, svc := setup()
		e.seedAd("ad6", "u1")
		_, err := svc.Update(ctx, p("u2"), "ad6", "c1", CommentIn{Text: "x"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("second delete of the same comment is not-found", func(t *testing.T) {
		_, svc := setup()
		require.NoError(t, svc.Delete(ctx, p("u2"), "ad5", "c1"))
		err := svc.Delete(ctx, p("u2"), "ad5", "c1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
