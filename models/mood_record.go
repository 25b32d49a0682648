package models

import "time"

// 情绪/情感/风险等级的固定取值，JSON字段名是前端依赖的接口契约，不可改名
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"

	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// AllowedEmotions 心情记录允许的情绪闭集
var AllowedEmotions = []string{
	"happy", "sad", "angry", "calm", "anxious",
	"excited", "neutral", "frustrated", "confident", "lonely",
}

// IsValidEmotion 判断情绪是否在闭集内
func IsValidEmotion(emotion string) bool {
	for _, e := range AllowedEmotions {
		if e == emotion {
			return true
		}
	}
	return false
}

// AIAnalysisResult AI分析结果，作为心情记录的嵌入值对象持久化
type AIAnalysisResult struct {
	DetectedEmotion string   `json:"detectedEmotion"`
	Confidence      float64  `json:"confidence"`
	Sentiment       string   `json:"sentiment"`
	Keywords        []string `json:"keywords"`
	Suggestions     []string `json:"suggestions"`
	RiskLevel       string   `json:"riskLevel"`
}

// MoodMetadata 心情记录的附加元数据
type MoodMetadata struct {
	Weather    string   `json:"weather,omitempty"`
	Location   string   `json:"location,omitempty"`
	Activities []string `json:"activities,omitempty"`
	Triggers   []string `json:"triggers,omitempty"`
}

// MoodRecord 心情记录模型
type MoodRecord struct {
	ID            string            `gorm:"type:varchar(50);primaryKey" json:"id"`
	UserID        string            `gorm:"type:varchar(50);index:idx_mood_user_time" json:"userId"`
	Emotion       string            `gorm:"type:varchar(50);index" json:"emotion"`
	Intensity     int               `json:"intensity"`
	Notes         string            `gorm:"type:text" json:"notes,omitempty"`
	AudioURL      string            `gorm:"type:varchar(255)" json:"audioUrl,omitempty"`
	Transcription string            `gorm:"type:text" json:"transcription,omitempty"`
	AIAnalysis    *AIAnalysisResult `gorm:"serializer:json" json:"aiAnalysis,omitempty"`
	Metadata      *MoodMetadata     `gorm:"serializer:json" json:"metadata,omitempty"`
	// Timestamp 是业务上的记录时间，区别于入库时间，所有范围查询都按它过滤
	Timestamp time.Time `gorm:"index:idx_mood_user_time" json:"timestamp"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
