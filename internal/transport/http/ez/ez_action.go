package ez

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"adsboard/internal/domain"
	resp "adsboard/internal/transport/http/response"
)

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

// AErr 带业务码的错误；没包 AErr 的错误走 sentinel 映射
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}
func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: resp.CodeUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: resp.CodeForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}

// Fail 统一出口：4 类终态 + 兜底 500，整个服务只在这里做一次映射
func Fail(c *gin.Context, err error) {
	var ae *AErr
	if errors.As(err, &ae) {
		c.JSON(resp.HTTPStatus(ae.Code), resp.Error(ae.Code, ae.Error()))
		return
	}
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, ""))
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, resp.Error(resp.CodeNotFound, ""))
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, resp.Error(resp.CodeForbidden, domain.MsgNoRights))
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, err.Error()))
	}
}

func OK(c *gin.Context, data any) { c.JSON(http.StatusOK, resp.OK(data)) }

func (e EZ) GET(path string, h func(c *gin.Context) (any, error)) {
	e.g.GET(path, func(c *gin.Context) {
		data, err := h(c)
		if err != nil {
			Fail(c, err)
			return
		}
		OK(c, data)
	})
}

func (e EZ) DELETE(path string, h func(c *gin.Context) (any, error)) {
	e.g.DELETE(path, func(c *gin.Context) {
		data, err := h(c)
		if err != nil {
			Fail(c, err)
			return
		}
		OK(c, data)
	})
}

func POST[T any](e EZ, path string, h func(c *gin.Context, in T) (any, error)) {
	bindJSON(e.g.POST, path, h)
}

func PATCH[T any](e EZ, path string, h func(c *gin.Context, in T) (any, error)) {
	bindJSON(e.g.PATCH, path, h)
}

func bindJSON[T any](reg func(string, ...gin.HandlerFunc) gin.IRoutes, path string, h func(c *gin.Context, in T) (any, error)) {
	reg(path, func(c *gin.Context) {
		var in T
		if err := c.ShouldBindJSON(&in); err != nil {
			Fail(c, BadRequest(err.Error()))
			return
		}
		data, err := h(c, in)
		if err != nil {
			Fail(c, err)
			return
		}
		OK(c, data)
	})
}

// File 处理 multipart/form-data 单文件（头像/广告图都是单槽位）
func File(e EZ, method, path, fieldName string, h func(c *gin.Context, fh *multipart.FileHeader) (any, error)) {
	handler := func(c *gin.Context) {
		fh, err := c.FormFile(fieldName)
		if err != nil {
			Fail(c, BadRequest("missing file field "+fieldName))
			return
		}
		data, err := h(c, fh)
		if err != nil {
			Fail(c, err)
			return
		}
		OK(c, data)
	}
	switch strings.ToUpper(method) {
	case http.MethodPatch:
		e.g.PATCH(path, handler)
	case http.MethodPut:
		e.g.PUT(path, handler)
	default:
		e.g.POST(path, handler)
	}
}

// ReadFile 把上传文件读进内存（前面有 MaxBodyBytes 拦超大包）
func ReadFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, BadRequest("open upload: " + err.Error())
	}
	defer f.Close()
	buf, err := io.ReadAll(f)
	if err != nil {
		return nil, BadRequest("read upload: " + err.Error())
	}
	return buf, nil
}
