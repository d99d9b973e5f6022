package handler

import (
	"net/http"
	"strconv"

	"whome/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	svc *service.UserService
}

func NewAdminHandler(svc *service.UserService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// Users 用户列表，按 id 倒序
func (h *AdminHandler) Users(c *gin.Context) {
	users, err := h.svc.ListUsers(currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}

	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, gin.H{
			"id":          u.ID,
			"username":    u.Username,
			"email":       u.Email,
			"is_admin":    u.IsAdmin,
			"is_verified": u.IsVerified,
			"is_premium":  u.IsPremium,
			"last_visit":  u.LastVisit,
		})
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

// Verify 给用户加 V，幂等
func (h *AdminHandler) Verify(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || userID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid user id"})
		return
	}

	if err := h.svc.SetVerified(c.Request.Context(), currentUserID(c), userID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}
