package models

import "time"

// CreateMoodRequest 创建心情记录请求结构体
type CreateMoodRequest struct {
	Emotion       string            `json:"emotion" binding:"required"`
	Intensity     int               `json:"intensity" binding:"required"`
	Notes         string            `json:"notes"`
	AudioURL      string            `json:"audioUrl"`
	Transcription string            `json:"transcription"`
	AIAnalysis    *AIAnalysisResult `json:"aiAnalysis"`
	Metadata      *MoodMetadata     `json:"metadata"`
	Timestamp     *time.Time        `json:"timestamp"`
}

// UpdateMoodRequest 更新心情记录请求结构体，指针字段表示未提供时不修改
type UpdateMoodRequest struct {
	Emotion    *string           `json:"emotion"`
	Intensity  *int              `json:"intensity"`
	Notes      *string           `json:"notes"`
	AIAnalysis *AIAnalysisResult `json:"aiAnalysis"`
	Metadata   *MoodMetadata     `json:"metadata"`
	Timestamp  *time.Time        `json:"timestamp"`
}

// AnalyzeTextRequest 文本情绪分析请求结构体
type AnalyzeTextRequest struct {
	Text string `json:"text"`
}

// ChatRequest 陪伴聊天请求结构体
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
	Mood    string `json:"mood"`
}
