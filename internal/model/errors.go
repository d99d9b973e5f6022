package model

import "errors"

// 错误分级：校验 / 不存在 / 冲突 / 无权限 / 认证失败。
// 存储层只返回这些哨兵（或其包装），表示层决定如何回应
var (
	ErrUsernameInvalid  = errors.New("username invalid")
	ErrEmptyContent     = errors.New("empty content")
	ErrInvalidGift      = errors.New("invalid gift")
	ErrInvalidKind      = errors.New("invalid message kind")
	ErrSelfChat         = errors.New("cannot chat with self")
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrPermissionDenied = errors.New("permission denied")
	ErrBadCredentials   = errors.New("bad credentials")
)
