package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chatchethu/mental-health-tracker/config"
	"github.com/chatchethu/mental-health-tracker/middleware"
	"github.com/chatchethu/mental-health-tracker/routes"
	"github.com/chatchethu/mental-health-tracker/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// 初始化日志
	if err := config.InitLogger(); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	defer config.Logger.Sync()

	// 加载配置
	conf, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("无法加载配置: %v", err)
		return
	}

	// 初始化数据库
	if err := config.InitDB(conf); err != nil {
		log.Fatalf("无法初始化数据库: %v", err)
		return
	}

	// 初始化Redis
	if err := config.InitRedis(conf); err != nil {
		log.Fatalf("无法初始化Redis: %v", err)
		return
	}

	// 初始化Groq客户端（未配置密钥时语气总结与聊天功能降级，不影响启动）
	var groqClient *services.GroqClient
	if conf.GroqAPIKey != "" {
		groqClient, err = services.NewGroqClient(conf.GroqAPIKey, conf.GroqAPIEndpoint)
		if err != nil {
			log.Fatalf("无法初始化Groq客户端: %v", err)
		}
	} else {
		log.Println("未配置GROQ_API_KEY，语气总结与陪伴聊天不可用")
	}

	// 初始化AssemblyAI转写客户端
	transcriber := services.NewAssemblyAIClient(conf.AssemblyAIAPIKey, conf.AssemblyAIEndpoint)

	// 设置Gin模式
	if conf.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建Gin引擎
	r := gin.Default()

	// 设置中间件
	middleware.SetupMiddleware(r)

	// 注册路由
	routes.RegisterRoutes(r, groqClient, transcriber)

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:    ":" + conf.ServerPort,
		Handler: r,
	}

	// 在goroutine中启动服务器
	go func() {
		log.Printf("启动服务器，监听端口: %s", conf.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("服务器启动失败: %v", err)
		}
	}()

	// 等待中断信号以实现优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("正在关闭服务器...")

	// 创建超时上下文
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 优雅关闭服务器
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务器关闭失败: %v", err)
	}

	log.Println("服务器已关闭")
}
