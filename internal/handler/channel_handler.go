package handler

import (
	"net/http"
	"path/filepath"
	"strconv"

	"whome/internal/pkg"
	"whome/internal/service"

	"github.com/gin-gonic/gin"
)

type ChannelHandler struct {
	svc       *service.ChannelService
	uploadDir string
}

type ChannelCreateReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func NewChannelHandler(svc *service.ChannelService, uploadDir string) *ChannelHandler {
	return &ChannelHandler{svc: svc, uploadDir: uploadDir}
}

// Create 建频道，仅管理员
func (h *ChannelHandler) Create(c *gin.Context) {
	var req ChannelCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	ch, err := h.svc.CreateChannel(currentUserID(c), req.Name, req.Description)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          ch.ID,
		"name":        ch.Name,
		"description": ch.Description,
	})
}

func (h *ChannelHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("size"))

	list, err := h.svc.ListChannels(page, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

// Messages 频道消息，旧的在前
func (h *ChannelHandler) Messages(c *gin.Context) {
	channelID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || channelID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid channel id"})
		return
	}

	msgs, err := h.svc.ListMessages(c.Request.Context(), channelID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// PostMessage 发频道消息，multipart：content 和 image 至少一个
func (h *ChannelHandler) PostMessage(c *gin.Context) {
	channelID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || channelID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid channel id"})
		return
	}

	content := c.PostForm("content")
	imagePath := ""
	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		path, err := pkg.SaveUpload(fh, filepath.Join(h.uploadDir, "channels"), pkg.RandFileName(fh.Filename))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "image upload failed"})
			return
		}
		imagePath = path
	}

	msg, err := h.svc.PostMessage(channelID, currentUserID(c), content, imagePath)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": msg.ID})
}
