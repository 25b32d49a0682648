package controllers

import (
	"net/http"

	"github.com/chatchethu/mental-health-tracker/config"
	"github.com/chatchethu/mental-health-tracker/models"
	"github.com/chatchethu/mental-health-tracker/utils"

	"github.com/gin-gonic/gin"
)

// AuthController 认证控制器。正式的登录由独立的认证服务签发JWT，
// 这里只保留本地联调用的测试用户入口
type AuthController struct{}

// CreateTestUser 创建测试用户
func (ac *AuthController) CreateTestUser(c *gin.Context) {
	testUser := models.User{
		ID:         utils.GenerateID(),
		Username:   "test_user_1",
		Email:      "test_1@example.com",
		IsTestUser: true,
	}

	if err := config.DB.Create(&testUser).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create test user"})
		return
	}

	// 生成 JWT
	token, err := utils.GenerateToken(testUser.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	config.Logger.Infow("创建测试用户",
		"userID", testUser.ID,
		"username", testUser.Username,
	)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       testUser.ID,
			"username": testUser.Username,
			"email":    testUser.Email,
		},
	})
}
