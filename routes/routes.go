package routes

import (
	"github.com/chatchethu/mental-health-tracker/config"
	"github.com/chatchethu/mental-health-tracker/controllers"
	"github.com/chatchethu/mental-health-tracker/middleware"
	"github.com/chatchethu/mental-health-tracker/services"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, groqClient *services.GroqClient, transcriber *services.AssemblyAIClient) {
	moodRepo := services.NewGormMoodRepository(config.DB)
	moodService := services.NewMoodService(moodRepo, config.RedisClient)

	// groqClient 为 nil 时语气总结与聊天降级，语音管线本身不受影响
	var completions services.CompletionProvider
	if groqClient != nil {
		completions = groqClient
	}
	voiceService := services.NewVoiceService(transcriber, completions, services.DefaultPollPolicy())
	chatService := services.NewChatService(groqClient)

	aiController := controllers.NewAIController(voiceService)
	moodController := controllers.NewMoodController(moodService)
	chatController := controllers.NewChatController(chatService)
	authController := controllers.AuthController{}

	// 公开路由（无需认证）
	public := r.Group("/api/v1")
	{
		public.POST("/auth/test-user", authController.CreateTestUser)
	}

	// 需要认证的路由
	private := r.Group("/api/v1")
	private.Use(middleware.AuthMiddleware()) // 应用认证中间件
	{
		// AI 分析相关接口
		private.POST("/ai/voice/analyze", aiController.AnalyzeVoice)
		private.POST("/ai/text/analyze", aiController.AnalyzeText)
		private.POST("/chat", chatController.SendMessage)

		// 心情记录相关接口（stats/trends 必须注册在 :id 之前）
		private.POST("/moods", moodController.CreateMood)
		private.GET("/moods", moodController.ListMoods)
		private.GET("/moods/stats", moodController.GetMoodStats)
		private.GET("/moods/trends", moodController.GetMoodTrends)
		private.GET("/moods/:id", moodController.GetMood)
		private.PATCH("/moods/:id", moodController.UpdateMood)
		private.DELETE("/moods/:id", moodController.DeleteMood)
	}

	// 测试路由
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
}
