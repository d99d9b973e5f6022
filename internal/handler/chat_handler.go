package handler

import (
	"net/http"

	"whome/internal/model"
	"whome/internal/service"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	svc *service.ChatService
}

func NewChatHandler(svc *service.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// Dialogs 会话列表，每个会话一行，对端取另一侧用户
func (h *ChatHandler) Dialogs(c *gin.Context) {
	dialogs, err := h.svc.ListDialogs(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"dialogs": dialogs})
}

// StartChat 按对端用户名建（或找回）会话
func (h *ChatHandler) StartChat(c *gin.Context) {
	var req struct {
		PeerUsername string `json:"peer_username" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	chatID, peer, err := h.svc.StartChat(c.Request.Context(), currentUserID(c), req.PeerUsername)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chat_id": chatID, "peer_username": peer.Username})
}

// History 与某用户的历史消息，首聊时惰性建会话
func (h *ChatHandler) History(c *gin.Context) {
	chatID, peer, err := h.svc.StartChat(c.Request.Context(), currentUserID(c), c.Param("username"))
	if err != nil {
		fail(c, err)
		return
	}

	msgs, err := h.svc.ListMessages(c.Request.Context(), chatID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"chat_id":       chatID,
		"peer_username": peer.Username,
		"messages":      msgs,
	})
}

// Send 发文本消息
func (h *ChatHandler) Send(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	h.send(c, model.MessageKindText, req.Text)
}

// Gift 送礼物，礼物名必须在目录里
func (h *ChatHandler) Gift(c *gin.Context) {
	var req struct {
		GiftName string `json:"gift_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	h.send(c, model.MessageKindGift, req.GiftName)
}

func (h *ChatHandler) send(c *gin.Context, kind, body string) {
	actorID := currentUserID(c)
	chatID, _, err := h.svc.StartChat(c.Request.Context(), actorID, c.Param("username"))
	if err != nil {
		fail(c, err)
		return
	}

	msg, err := h.svc.SendMessage(c.Request.Context(), chatID, actorID, kind, body)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": msg.ID, "chat_id": msg.ChatID})
}

// Gifts 礼物目录
func (h *ChatHandler) Gifts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"gifts": model.Gifts})
}
