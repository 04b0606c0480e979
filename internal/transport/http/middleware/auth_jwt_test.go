package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adsboard/internal/core/auth"
	"adsboard/internal/domain"
)

func testEngine(j *auth.JWTer, requireRole string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/p", AuthJWT(j, requireRole), func(c *gin.Context) {
		p := PrincipalFrom(c)
		c.JSON(http.StatusOK, gin.H{"id": p.ID, "role": p.Role})
	})
	return r
}

func TestAuthJWT(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("s3cret"), Issuer: "test", TTL: time.Minute}

	t.Run("missing token is 401", func(t *testing.T) {
		w := httptest.NewRecorder()
		testEngine(j, "").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/p", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token is 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/p", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		w := httptest.NewRecorder()
		testEngine(j, "").ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token resolves the principal", func(t *testing.T) {
		tok, err := j.Issue("u1", domain.RoleUser)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/p", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		testEngine(j, "").ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":"u1","role":"user"}`, w.Body.String())
	})

	t.Run("role gate rejects plain users", func(t *testing.T) {
		tok, err := j.Issue("u1", domain.RoleUser)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/p", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		testEngine(j, domain.RoleAdmin).ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestPrincipalFrom_Absent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, domain.Principal{}, PrincipalFrom(c))
}
