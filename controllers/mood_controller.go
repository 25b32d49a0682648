package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/chatchethu/mental-health-tracker/config"
	"github.com/chatchethu/mental-health-tracker/models"
	"github.com/chatchethu/mental-health-tracker/services"

	"github.com/gin-gonic/gin"
)

// MoodController 心情记录控制器
type MoodController struct {
	moodService *services.MoodService
}

func NewMoodController(moodService *services.MoodService) *MoodController {
	return &MoodController{
		moodService: moodService,
	}
}

// CreateMood 创建心情记录
func (mc *MoodController) CreateMood(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req models.CreateMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	record, err := mc.moodService.CreateMood(c.Request.Context(), uid.(string), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		config.Logger.Errorw("创建心情记录失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create mood record"})
		return
	}

	c.JSON(http.StatusCreated, record)
}

// ListMoods 列出当前用户的心情记录，倒序，limit为0时返回全部
func (mc *MoodController) ListMoods(c *gin.Context) {
	uid := c.GetString("uid")

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}

	records, err := mc.moodService.ListMoods(c.Request.Context(), uid, limit)
	if err != nil {
		config.Logger.Errorw("查询心情记录失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list mood records"})
		return
	}

	c.JSON(http.StatusOK, records)
}

// GetMoodStats 心情统计
func (mc *MoodController) GetMoodStats(c *gin.Context) {
	uid := c.GetString("uid")

	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days"})
		return
	}

	stats, err := mc.moodService.GetMoodStats(c.Request.Context(), uid, days)
	if err != nil {
		config.Logger.Errorw("心情统计计算失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute mood stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetMoodTrends 心情趋势
func (mc *MoodController) GetMoodTrends(c *gin.Context) {
	uid := c.GetString("uid")

	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days"})
		return
	}

	trends, err := mc.moodService.GetMoodTrends(c.Request.Context(), uid, days)
	if err != nil {
		config.Logger.Errorw("心情趋势计算失败", "error", err, "uid", uid)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute mood trends"})
		return
	}

	c.JSON(http.StatusOK, trends)
}

// GetMood 按ID查询单条心情记录
func (mc *MoodController) GetMood(c *gin.Context) {
	id := c.Param("id")

	record, err := mc.moodService.GetMood(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrMoodNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "mood record not found"})
			return
		}
		config.Logger.Errorw("查询心情记录失败", "error", err, "moodID", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get mood record"})
		return
	}

	c.JSON(http.StatusOK, record)
}

// UpdateMood 更新心情记录
func (mc *MoodController) UpdateMood(c *gin.Context) {
	id := c.Param("id")

	var req models.UpdateMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	record, err := mc.moodService.UpdateMood(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMoodNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "mood record not found"})
		case errors.Is(err, services.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			config.Logger.Errorw("更新心情记录失败", "error", err, "moodID", id)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update mood record"})
		}
		return
	}

	c.JSON(http.StatusOK, record)
}

// DeleteMood 删除心情记录
func (mc *MoodController) DeleteMood(c *gin.Context) {
	uid := c.GetString("uid")
	id := c.Param("id")

	if err := mc.moodService.DeleteMood(c.Request.Context(), uid, id); err != nil {
		if errors.Is(err, services.ErrMoodNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "mood record not found"})
			return
		}
		config.Logger.Errorw("删除心情记录失败", "error", err, "moodID", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete mood record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Mood deleted successfully"})
}
