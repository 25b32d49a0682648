package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/chatchethu/mental-health-tracker/config"
	"github.com/chatchethu/mental-health-tracker/models"
	"github.com/chatchethu/mental-health-tracker/utils"

	"github.com/go-redis/redis/v8"
)

const (
	defaultLookbackDays = 30
	statsCacheTTL       = 5 * time.Minute
	// maxMeaningfulStdDev 稳定度归一化的最大有意义强度偏差
	maxMeaningfulStdDev = 3.0
)

// MoodService 心情记录服务：写入校验、CRUD、统计与趋势聚合。
// 存储通过接口注入，没有环境单例；cache 可为 nil（测试或未配置Redis时降级为直查）
type MoodService struct {
	repo  MoodRepository
	cache *redis.Client
}

func NewMoodService(repo MoodRepository, cache *redis.Client) *MoodService {
	return &MoodService{
		repo:  repo,
		cache: cache,
	}
}

// CreateMood 创建心情记录。不合法的 emotion/intensity 在写入前被拒绝
func (s *MoodService) CreateMood(ctx context.Context, userID string, req models.CreateMoodRequest) (*models.MoodRecord, error) {
	if err := validateMood(req.Emotion, req.Intensity); err != nil {
		return nil, err
	}

	timestamp := time.Now()
	if req.Timestamp != nil {
		timestamp = *req.Timestamp
	}

	record := &models.MoodRecord{
		ID:            utils.GenerateID(),
		UserID:        userID,
		Emotion:       req.Emotion,
		Intensity:     req.Intensity,
		Notes:         req.Notes,
		AudioURL:      req.AudioURL,
		Transcription: req.Transcription,
		AIAnalysis:    req.AIAnalysis,
		Metadata:      req.Metadata,
		Timestamp:     timestamp,
	}
	if err := s.repo.Insert(ctx, record); err != nil {
		return nil, err
	}

	s.invalidateStatsCache(ctx, userID)
	config.Logger.Infow("创建心情记录",
		"moodID", record.ID,
		"userID", userID,
		"emotion", record.Emotion,
		"intensity", record.Intensity,
	)
	return record, nil
}

// ListMoods 按记录时间倒序列出用户的心情记录
func (s *MoodService) ListMoods(ctx context.Context, userID string, limit int) ([]models.MoodRecord, error) {
	return s.repo.FindByUser(ctx, userID, limit)
}

func (s *MoodService) GetMood(ctx context.Context, id string) (*models.MoodRecord, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateMood 更新心情记录，指针字段未提供时保持原值；记录不存在返回 ErrMoodNotFound
func (s *MoodService) UpdateMood(ctx context.Context, id string, req models.UpdateMoodRequest) (*models.MoodRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Emotion != nil {
		if !models.IsValidEmotion(*req.Emotion) {
			return nil, fmt.Errorf("%w: emotion must be one of %s", ErrInvalidInput, strings.Join(models.AllowedEmotions, ", "))
		}
		record.Emotion = *req.Emotion
	}
	if req.Intensity != nil {
		if *req.Intensity < 1 || *req.Intensity > 10 {
			return nil, fmt.Errorf("%w: intensity must be between 1 and 10", ErrInvalidInput)
		}
		record.Intensity = *req.Intensity
	}
	if req.Notes != nil {
		record.Notes = *req.Notes
	}
	if req.AIAnalysis != nil {
		record.AIAnalysis = req.AIAnalysis
	}
	if req.Metadata != nil {
		record.Metadata = req.Metadata
	}
	if req.Timestamp != nil {
		record.Timestamp = *req.Timestamp
	}

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}

	s.invalidateStatsCache(ctx, record.UserID)
	return record, nil
}

// DeleteMood 删除心情记录，记录不存在返回 ErrMoodNotFound 而不是静默成功
func (s *MoodService) DeleteMood(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateStatsCache(ctx, userID)
	return nil
}

// GetMoodStats 统计回看窗口内的心情数据。空记录集不报错，优雅退化为零值统计
func (s *MoodService) GetMoodStats(ctx context.Context, userID string, days int) (*models.MoodStats, error) {
	if days <= 0 {
		days = defaultLookbackDays
	}

	cacheKey := fmt.Sprintf("moods:stats:%s:%d", userID, days)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var stats models.MoodStats
			if jsonErr := json.Unmarshal([]byte(cached), &stats); jsonErr == nil {
				return &stats, nil
			}
		}
	}

	since := time.Now().AddDate(0, 0, -days)
	records, err := s.repo.FindByUserSince(ctx, userID, since, false)
	if err != nil {
		return nil, err
	}

	stats := computeStats(records)

	if s.cache != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, statsCacheTTL).Err(); err != nil {
				config.Logger.Warnw("统计缓存写入失败", "error", err, "key", cacheKey)
			}
		}
	}
	return stats, nil
}

// GetMoodTrends 按UTC日历日聚合回看窗口内的心情趋势，没有记录的日期不补零
func (s *MoodService) GetMoodTrends(ctx context.Context, userID string, days int) ([]models.MoodTrend, error) {
	if days <= 0 {
		days = defaultLookbackDays
	}

	since := time.Now().AddDate(0, 0, -days)
	records, err := s.repo.FindByUserSince(ctx, userID, since, true)
	if err != nil {
		return nil, err
	}
	return computeTrends(records), nil
}

func validateMood(emotion string, intensity int) error {
	if !models.IsValidEmotion(emotion) {
		return fmt.Errorf("%w: emotion must be one of %s", ErrInvalidInput, strings.Join(models.AllowedEmotions, ", "))
	}
	if intensity < 1 || intensity > 10 {
		return fmt.Errorf("%w: intensity must be between 1 and 10", ErrInvalidInput)
	}
	return nil
}

func computeStats(records []models.MoodRecord) *models.MoodStats {
	emotionFrequency := make(map[string]int)
	sentimentDistribution := make(map[string]int)
	totalIntensity := 0

	for _, r := range records {
		emotionFrequency[r.Emotion]++
		sentiment := models.SentimentNeutral
		if r.AIAnalysis != nil && r.AIAnalysis.Sentiment != "" {
			sentiment = r.AIAnalysis.Sentiment
		}
		sentimentDistribution[sentiment]++
		totalIntensity += r.Intensity
	}

	averageIntensity := 0.0
	if len(records) > 0 {
		averageIntensity = round2(float64(totalIntensity) / float64(len(records)))
	}

	return &models.MoodStats{
		TotalMoods:            len(records),
		EmotionFrequency:      emotionFrequency,
		AverageIntensity:      averageIntensity,
		SentimentDistribution: sentimentDistribution,
		MostFrequentEmotion:   mostFrequentEmotion(records),
		MoodStability:         calculateMoodStability(records),
	}
}

func computeTrends(records []models.MoodRecord) []models.MoodTrend {
	buckets := make(map[string][]models.MoodRecord)
	dates := make([]string, 0)
	for _, r := range records {
		date := r.Timestamp.UTC().Format("2006-01-02")
		if _, ok := buckets[date]; !ok {
			dates = append(dates, date)
		}
		buckets[date] = append(buckets[date], r)
	}

	trends := make([]models.MoodTrend, 0, len(dates))
	for _, date := range dates {
		day := buckets[date]
		totalIntensity := 0
		for _, r := range day {
			totalIntensity += r.Intensity
		}

		dominant := "neutral"
		if emotion := mostFrequentEmotion(day); emotion != nil {
			dominant = *emotion
		}

		trends = append(trends, models.MoodTrend{
			Date:            date,
			AvgIntensity:    round2(float64(totalIntensity) / float64(len(day))),
			DominantEmotion: dominant,
			MoodCount:       len(day),
		})
	}
	return trends
}

// mostFrequentEmotion 返回出现次数最多的情绪。
// 并列时取在记录序列中先达到该次数的情绪——Go 的 map 遍历顺序是随机的，
// 这里显式钉死裁决规则，不依赖容器顺序
func mostFrequentEmotion(records []models.MoodRecord) *string {
	if len(records) == 0 {
		return nil
	}

	counts := make(map[string]int)
	best := ""
	bestCount := 0
	for _, r := range records {
		counts[r.Emotion]++
		if counts[r.Emotion] > bestCount {
			best = r.Emotion
			bestCount = counts[r.Emotion]
		}
	}
	return &best
}

// calculateMoodStability 稳定度0-100：强度的总体标准差相对最大有意义偏差3归一化。
// 不足2条记录视为数据不足、默认稳定
func calculateMoodStability(records []models.MoodRecord) int {
	if len(records) < 2 {
		return 100
	}

	mean := 0.0
	for _, r := range records {
		mean += float64(r.Intensity)
	}
	mean /= float64(len(records))

	variance := 0.0
	for _, r := range records {
		diff := float64(r.Intensity) - mean
		variance += diff * diff
	}
	variance /= float64(len(records))
	stdDev := math.Sqrt(variance)

	stability := 100 - (stdDev/maxMeaningfulStdDev)*100
	if stability < 0 {
		stability = 0
	}
	return int(math.Round(stability))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// invalidateStatsCache 任何写操作后清掉该用户的统计缓存
func (s *MoodService) invalidateStatsCache(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	iter := s.cache.Scan(ctx, 0, fmt.Sprintf("moods:stats:%s:*", userID), 0).Iterator()
	for iter.Next(ctx) {
		if err := s.cache.Del(ctx, iter.Val()).Err(); err != nil {
			config.Logger.Warnw("统计缓存清理失败", "error", err, "key", iter.Val())
		}
	}
}
