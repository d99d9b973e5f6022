package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"whome/internal/middleware"
	"whome/internal/model"
	"whome/internal/pkg"
	"whome/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc       *service.UserService
	uploadDir string
}

// RegisterReq 注册请求体
type RegisterReq struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func NewUserHandler(svc *service.UserService, uploadDir string) *UserHandler {
	return &UserHandler{svc: svc, uploadDir: uploadDir}
}

// Register 注册接口
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	user, err := h.svc.Register(req.Username, req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": user.ID, "username": user.Username})
}

// Login 登录接口
func (h *UserHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	token, user, err := h.svc.Login(req.Username, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  token.AccessToken,
		"refresh_token": token.RefreshToken,
		"user_id":       user.ID,
	})
}

func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.svc.Logout(currentUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// TokenRefresh 利用 refresh 来更新 access
func (h *UserHandler) TokenRefresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	token, err := h.svc.Refresh(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token.AccessToken, "refresh_token": token.RefreshToken})
}

// Profile 公开资料页，不暴露邮箱和密码哈希
func (h *UserHandler) Profile(c *gin.Context) {
	user, err := h.svc.GetProfile(c.Param("username"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":            user.ID,
		"username":      user.Username,
		"first_name":    user.FirstName,
		"last_name":     user.LastName,
		"avatar":        user.Avatar,
		"is_verified":   user.IsVerified,
		"is_premium":    user.IsPremium,
		"registered_at": user.RegisteredAt,
	})
}

// UpdateProfile 只能改自己。头像按用户名落盘，同名重传覆盖旧文件
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	me, _ := c.Get(middleware.ContextUserKey)
	user := me.(*model.User)

	firstName := c.PostForm("first_name")
	lastName := c.PostForm("last_name")

	avatarPath := ""
	if fh, err := c.FormFile("avatar"); err == nil && fh != nil {
		name := strings.TrimPrefix(user.Username, "@") + filepath.Ext(fh.Filename)
		path, err := pkg.SaveUpload(fh, filepath.Join(h.uploadDir, "avatars"), name)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "avatar upload failed"})
			return
		}
		avatarPath = path
	}

	if err := h.svc.UpdateProfile(user.ID, firstName, lastName, avatarPath); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}
