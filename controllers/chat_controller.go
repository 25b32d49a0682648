package controllers

import (
	"errors"
	"net/http"

	"github.com/chatchethu/mental-health-tracker/config"
	"github.com/chatchethu/mental-health-tracker/models"
	"github.com/chatchethu/mental-health-tracker/services"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	chatService *services.ChatService
}

func NewChatController(chatService *services.ChatService) *ChatController {
	return &ChatController{
		chatService: chatService,
	}
}

// SendMessage 陪伴聊天。提供方故障时返回安抚性的回退文案，避免前端拿到5xx
func (cc *ChatController) SendMessage(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	reply, err := cc.chatService.SendMessage(c.Request.Context(), req.Message, req.Mood)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		case errors.Is(err, services.ErrProviderAuth):
			config.Logger.Errorw("聊天服务未配置", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Chat service is not configured"})
		default:
			config.Logger.Errorw("聊天回复生成失败", "error", err)
			c.JSON(http.StatusOK, gin.H{
				"reply": "I'm thinking a bit too hard 🧠💨. Let's try again soon.",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
