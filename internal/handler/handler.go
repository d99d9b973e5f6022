package handler

import (
	"errors"
	"net/http"

	"whome/internal/middleware"
	"whome/internal/model"

	"github.com/gin-gonic/gin"
)

// fail 哨兵错误 -> HTTP 状态码的统一出口
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, model.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, model.ErrBadCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, model.ErrUsernameInvalid),
		errors.Is(err, model.ErrEmptyContent),
		errors.Is(err, model.ErrInvalidGift),
		errors.Is(err, model.ErrInvalidKind),
		errors.Is(err, model.ErrSelfChat):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"msg": err.Error()})
}

func currentUserID(c *gin.Context) uint64 {
	v, _ := c.Get(middleware.ContextUserIDKey)
	id, _ := v.(uint64)
	return id
}
