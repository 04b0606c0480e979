package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"adsboard/internal/core/auth"
	"adsboard/internal/domain"
	resp "adsboard/internal/transport/http/response"
)

const keyPrincipal = "principal"

func AuthJWT(j *auth.JWTer, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		if requireRole != "" && claims.Role != requireRole {
			c.AbortWithStatusJSON(http.StatusForbidden, resp.Error(resp.CodeForbidden, domain.MsgNoRights))
			return
		}
		c.Set(keyPrincipal, domain.Principal{ID: claims.UID, Role: claims.Role})
		c.Next()
	}
}

// PrincipalFrom 中间件没挂或没过时拿到零值，service 层按未认证处理
func PrincipalFrom(c *gin.Context) domain.Principal {
	if v, ok := c.Get(keyPrincipal); ok {
		if p, ok := v.(domain.Principal); ok {
			return p
		}
	}
	return domain.Principal{}
}
