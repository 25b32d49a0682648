package controllers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/chatchethu/mental-health-tracker/config"
	"github.com/chatchethu/mental-health-tracker/models"
	"github.com/chatchethu/mental-health-tracker/services"

	"github.com/gin-gonic/gin"
)

// AIController AI分析控制器
type AIController struct {
	voiceService *services.VoiceService
}

func NewAIController(voiceService *services.VoiceService) *AIController {
	return &AIController{
		voiceService: voiceService,
	}
}

// AnalyzeVoice 处理语音情绪分析请求。
// 管线内除参数错误外的任何失败都转成统一的 {success:false, message} 响应，
// 不让内部异常直接抛给调用方
func (ac *AIController) AnalyzeVoice(c *gin.Context) {
	file, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.AnalysisResponse{
			Success: false,
			Message: "No valid audio file uploaded.",
		})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.AnalysisResponse{
			Success: false,
			Message: "No valid audio file uploaded.",
		})
		return
	}
	defer src.Close()

	audio, err := io.ReadAll(src)
	if err != nil || len(audio) == 0 {
		c.JSON(http.StatusBadRequest, models.AnalysisResponse{
			Success: false,
			Message: "No valid audio file uploaded.",
		})
		return
	}

	data, err := ac.voiceService.AnalyzeVoice(c.Request.Context(), audio)
	if err != nil {
		config.Logger.Errorw("语音分析失败", "error", err)
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, models.AnalysisResponse{
				Success: false,
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, models.AnalysisResponse{
			Success: false,
			Message: clientMessage(err),
		})
		return
	}

	c.JSON(http.StatusOK, models.AnalysisResponse{
		Success: true,
		Message: "Voice analyzed successfully",
		Data:    data,
	})
}

// AnalyzeText 处理文本情绪分析请求（未录音时的回退路径）
func (ac *AIController) AnalyzeText(c *gin.Context) {
	var req models.AnalyzeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, models.AnalysisResponse{
			Success: false,
			Message: "Invalid request: missing text",
		})
		return
	}

	analysis := services.AnalyzeText(req.Text)

	c.JSON(http.StatusOK, models.AnalysisResponse{
		Success: true,
		Message: "Text analyzed successfully.",
		Data: models.TextAnalysisData{
			Sentiment:   analysis.Sentiment,
			Emotion:     analysis.Emotion,
			Confidence:  analysis.Confidence,
			Suggestions: analysis.Suggestions,
			RiskLevel:   analysis.RiskLevel,
		},
	})
}

// clientMessage 提供方凭证错误不能把服务端细节暴露给客户端
func clientMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrProviderAuth):
		return "Voice analysis service is not configured."
	case errors.Is(err, services.ErrTranscriptionTimeout):
		return "Transcription timeout."
	default:
		return err.Error()
	}
}
