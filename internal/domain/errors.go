package domain

import "errors"

// MsgNoRights 403 统一文案（前端按原文匹配，不要改）
const MsgNoRights = "no rights to modify"

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New(MsgNoRights)
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
)
