package handler

import (
	"net/http"
	"path/filepath"
	"strconv"

	"whome/internal/pkg"
	"whome/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	svc       *service.PostService
	likeSvc   *service.LikeService
	uploadDir string
}

func NewPostHandler(svc *service.PostService, likeSvc *service.LikeService, uploadDir string) *PostHandler {
	return &PostHandler{svc: svc, likeSvc: likeSvc, uploadDir: uploadDir}
}

// Feed 信息流，新帖在前
func (h *PostHandler) Feed(c *gin.Context) {
	feed, err := h.svc.ListFeed(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "feed failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": feed})
}

// CreatePost 发帖接口，multipart：content 文本 + 可选 image 文件
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID := currentUserID(c)
	content := c.PostForm("content")

	imagePath := ""
	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		path, err := pkg.SaveUpload(fh, filepath.Join(h.uploadDir, "posts"), pkg.RandFileName(fh.Filename))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "image upload failed"})
			return
		}
		imagePath = path
	}

	post, err := h.svc.CreatePost(userID, content, imagePath)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": post.ID})
}

// DeletePost 删帖接口，作者或管理员
func (h *PostHandler) DeletePost(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || postID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid post id"})
		return
	}

	if err := h.svc.DeletePost(c.Request.Context(), currentUserID(c), postID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}

// AddComment 评论接口
func (h *PostHandler) AddComment(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || postID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid post id"})
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	comment, err := h.svc.AddComment(currentUserID(c), postID, req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": comment.ID})
}

// ToggleLike 点赞开关，返回翻转后的状态和最新计数
func (h *PostHandler) ToggleLike(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || postID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid post id"})
		return
	}

	liked, count, err := h.likeSvc.Toggle(c.Request.Context(), currentUserID(c), postID)
	if err != nil {
		fail(c, err)
		return
	}

	status := "unliked"
	if liked {
		status = "liked"
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "count": count})
}

// LikeCount 点赞计数，缓存优先
func (h *PostHandler) LikeCount(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || postID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid post id"})
		return
	}

	count, err := h.likeSvc.GetCount(c.Request.Context(), postID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
