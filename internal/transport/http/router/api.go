package router

import (
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"adsboard/internal/core/auth"
	"adsboard/internal/service"
	httpez "adsboard/internal/transport/http/ez"
	mdw "adsboard/internal/transport/http/middleware"
)

type Services struct {
	Auth     *service.AuthService
	Ads      *service.AdService
	Comments *service.CommentService
	Users    *service.UserService
}

func NewAPIEngine(l *zap.Logger, jwter *auth.JWTer, svc Services, allowOrigins []string) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		mdw.SimpleRecovery(),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	cc := cors.DefaultConfig()
	if len(allowOrigins) > 0 {
		cc.AllowOrigins = allowOrigins
		cc.AllowCredentials = true
		cc.AllowHeaders = append(cc.AllowHeaders, "Authorization")
	} else {
		cc.AllowAllOrigins = true
	}
	r.Use(cors.New(cc))

	// 健康检查
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	api := r.Group("/api/v1")

	mountPublic(api, svc)

	authed := api.Group("")
	authed.Use(mdw.AuthJWT(jwter, ""))
	mountAds(authed, svc)
	mountComments(authed, svc)
	mountUsers(authed, svc)

	return r
}

func mountPublic(api *gin.RouterGroup, svc Services) {
	ezPub := httpez.New(api)

	httpez.POST[service.RegisterIn](ezPub, "/auth/register", func(c *gin.Context, in service.RegisterIn) (any, error) {
		u, err := svc.Auth.Register(c.Request.Context(), in)
		if err != nil {
			return nil, err
		}
		return gin.H{"id": u.ID, "username": u.Username, "role": u.Role}, nil
	})

	type loginIn struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	httpez.POST[loginIn](ezPub, "/auth/login", func(c *gin.Context, in loginIn) (any, error) {
		tok, u, err := svc.Auth.Login(c.Request.Context(), in.Username, in.Password)
		if err != nil {
			return nil, err
		}
		return gin.H{
			"token": tok,
			"user":  gin.H{"id": u.ID, "username": u.Username, "role": u.Role},
		}, nil
	})

	// 公开的广告列表
	ezPub.GET("/ads", func(c *gin.Context) (any, error) {
		ads, err := svc.Ads.List(c.Request.Context())
		if err != nil {
			return nil, err
		}
		return gin.H{"count": len(ads), "results": ads}, nil
	})

	// blob 原始字节，不走 envelope
	api.GET("/image/:id", func(c *gin.Context) {
		b, err := svc.Users.GetImage(c.Request.Context(), c.Param("id"))
		if err != nil {
			httpez.Fail(c, err)
			return
		}
		c.Data(http.StatusOK, http.DetectContentType(b), b)
	})
}

func mountAds(g *gin.RouterGroup, svc Services) {
	ez := httpez.New(g)

	ez.GET("/ads/me", func(c *gin.Context) (any, error) {
		ads, err := svc.Ads.ListMine(c.Request.Context(), mdw.PrincipalFrom(c))
		if err != nil {
			return nil, err
		}
		return gin.H{"count": len(ads), "results": ads}, nil
	})

	ez.GET("/ads/:id", func(c *gin.Context) (any, error) {
		return svc.Ads.Get(c.Request.Context(), c.Param("id"))
	})

	// multipart：广告字段 + 可选 image 文件
	g.POST("/ads", func(c *gin.Context) {
		var in service.CreateOrUpdateAd
		if err := c.ShouldBind(&in); err != nil {
			httpez.Fail(c, httpez.BadRequest(err.Error()))
			return
		}
		var image []byte
		if fh, err := c.FormFile("image"); err == nil {
			b, err := httpez.ReadFile(fh)
			if err != nil {
				httpez.Fail(c, err)
				return
			}
			image = b
		}
		a, err := svc.Ads.Create(c.Request.Context(), mdw.PrincipalFrom(c), in, image)
		if err != nil {
			httpez.Fail(c, err)
			return
		}
		httpez.OK(c, a)
	})

	httpez.PATCH[service.CreateOrUpdateAd](ez, "/ads/:id", func(c *gin.Context, in service.CreateOrUpdateAd) (any, error) {
		return svc.Ads.Update(c.Request.Context(), mdw.PrincipalFrom(c), c.Param("id"), in)
	})

	ez.DELETE("/ads/:id", func(c *gin.Context) (any, error) {
		if err := svc.Ads.Delete(c.Request.Context(), mdw.PrincipalFrom(c), c.Param("id")); err != nil {
			return nil, err
		}
		return gin.H{"id": c.Param("id")}, nil
	})

	httpez.File(ez, http.MethodPatch, "/ads/:id/image", "image", func(c *gin.Context, fh *multipart.FileHeader) (any, error) {
		b, err := httpez.ReadFile(fh)
		if err != nil {
			return nil, err
		}
		imgID, err := svc.Ads.ReplaceImage(c.Request.Context(), mdw.PrincipalFrom(c), c.Param("id"), b)
		if err != nil {
			return nil, err
		}
		return gin.H{"image": imgID}, nil
	})
}

func mountComments(g *gin.RouterGroup, svc Services) {
	ez := httpez.New(g)

	ez.GET("/ads/:id/comments", func(c *gin.Context) (any, error) {
		cms, err := svc.Comments.ListByAd(c.Request.Context(), c.Param("id"))
		if err != nil {
			return nil, err
		}
		return gin.H{"count": len(cms), "results": cms}, nil
	})

	httpez.POST[service.CommentIn](ez, "/ads/:id/comments", func(c *gin.Context, in service.CommentIn) (any, error) {
		return svc.Comments.Add(c.Request.Context(), mdw.PrincipalFrom(c), c.Param("id"), in)
	})

	httpez.PATCH[service.CommentIn](ez, "/ads/:id/comments/:commentId", func(c *gin.Context, in service.CommentIn) (any, error) {
		return svc.Comments.Update(c.Request.Context(), mdw.PrincipalFrom(c), c.Param("id"), c.Param("commentId"), in)
	})

	ez.DELETE("/ads/:id/comments/:commentId", func(c *gin.Context) (any, error) {
		if err := svc.Comments.Delete(c.Request.Context(), mdw.PrincipalFrom(c), c.Param("id"), c.Param("commentId")); err != nil {
			return nil, err
		}
		return gin.H{"id": c.Param("commentId")}, nil
	})
}

func mountUsers(g *gin.RouterGroup, svc Services) {
	ez := httpez.New(g)

	ez.GET("/users/me", func(c *gin.Context) (any, error) {
		return svc.Users.Me(c.Request.Context(), mdw.PrincipalFrom(c))
	})

	httpez.PATCH[service.UpdateUser](ez, "/users/me", func(c *gin.Context, in service.UpdateUser) (any, error) {
		return svc.Users.Update(c.Request.Context(), mdw.PrincipalFrom(c), in)
	})

	httpez.POST[service.NewPassword](ez, "/users/set_password", func(c *gin.Context, in service.NewPassword) (any, error) {
		if err := svc.Users.SetPassword(c.Request.Context(), mdw.PrincipalFrom(c), in); err != nil {
			return nil, err
		}
		return gin.H{"ok": 1}, nil
	})

	httpez.File(ez, http.MethodPatch, "/users/me/image", "image", func(c *gin.Context, fh *multipart.FileHeader) (any, error) {
		b, err := httpez.ReadFile(fh)
		if err != nil {
			return nil, err
		}
		imgID, err := svc.Users.ReplaceAvatar(c.Request.Context(), mdw.PrincipalFrom(c), b)
		if err != nil {
			return nil, err
		}
		return gin.H{"image": imgID}, nil
	})
}
