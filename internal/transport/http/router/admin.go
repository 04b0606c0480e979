package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"adsboard/internal/core/auth"
	"adsboard/internal/core/server"
	"adsboard/internal/domain"
	httpez "adsboard/internal/transport/http/ez"
	mdw "adsboard/internal/transport/http/middleware"
)

// NewAdminEngine 管理端独立引擎：用户检索 / 封禁 + prometheus
func NewAdminEngine(l *zap.Logger, users domain.UserRepository, jwter *auth.JWTer, allowOrigins []string) *gin.Engine {
	r := server.NewBase(l, allowOrigins)

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(50, 100),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		mdw.Metrics(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(jwter, domain.RoleAdmin))

	ez := httpez.New(admin)

	type listQ struct {
		Offset      int    `form:"offset,default=0"`
		Limit       int    `form:"limit,default=20"`
		Q           string `form:"q"`            // 按 username/姓名模糊搜
		WithDeleted bool   `form:"with_deleted"` // 是否包含已封禁
	}
	type row struct {
		ID        string    `json:"id"`
		Username  string    `json:"username"`
		FirstName string    `json:"firstName"`
		LastName  string    `json:"lastName"`
		Role      string    `json:"role"`
		CreatedAt time.Time `json:"createdAt"`
	}

	admin.GET("/users", func(c *gin.Context) {
		var in listQ
		if err := c.ShouldBindQuery(&in); err != nil {
			httpez.Fail(c, httpez.BadRequest(err.Error()))
			return
		}
		if in.Limit <= 0 || in.Limit > 100 {
			in.Limit = 20
		}
		us, total, err := users.List(c.Request.Context(), in.Q, in.Offset, in.Limit, in.WithDeleted)
		if err != nil {
			httpez.Fail(c, httpez.Internal("list users failed", err))
			return
		}
		items := make([]row, 0, len(us))
		for _, u := range us {
			items = append(items, row{
				ID: u.ID, Username: u.Username,
				FirstName: u.FirstName, LastName: u.LastName,
				Role: u.Role, CreatedAt: u.CreatedAt,
			})
		}
		httpez.OK(c, gin.H{"total": total, "items": items})
	})

	// 封禁（软删）
	ez.DELETE("/users/:id", func(c *gin.Context) (any, error) {
		id := c.Param("id")
		if id == "" {
			return nil, httpez.BadRequest("missing id")
		}
		if err := users.SoftDelete(c.Request.Context(), id); err != nil {
			return nil, err
		}
		return gin.H{"id": id}, nil
	})

	return r
}
