package models

// AnalysisResponse AI分析接口统一响应结构体，成功失败都是这个形状
type AnalysisResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// AcousticInfo 声学特征占位信息，当前不做声学计算
type AcousticInfo struct {
	AvgPitch  string `json:"avgPitch"`
	AvgEnergy string `json:"avgEnergy"`
}

// VoiceAnalysisData 语音情绪分析结果结构体
type VoiceAnalysisData struct {
	Transcription string       `json:"transcription"`
	Sentiment     string       `json:"sentiment"`
	Emotion       string       `json:"emotion"`
	Confidence    float64      `json:"confidence"`
	ToneSummary   string       `json:"toneSummary"`
	Acoustic      AcousticInfo `json:"acoustic"`
	Keywords      []string     `json:"keywords"`
	Suggestions   []string     `json:"suggestions"`
	RiskLevel     string       `json:"riskLevel"`
}

// TextAnalysisData 文本情绪分析结果结构体
type TextAnalysisData struct {
	Sentiment   string   `json:"sentiment"`
	Emotion     string   `json:"emotion"`
	Confidence  float64  `json:"confidence"`
	Suggestions []string `json:"suggestions"`
	RiskLevel   string   `json:"riskLevel"`
}

// MoodStats 心情统计结构体
type MoodStats struct {
	TotalMoods            int            `json:"totalMoods"`
	EmotionFrequency      map[string]int `json:"emotionFrequency"`
	AverageIntensity      float64        `json:"averageIntensity"`
	SentimentDistribution map[string]int `json:"sentimentDistribution"`
	MostFrequentEmotion   *string        `json:"mostFrequentEmotion"`
	MoodStability         int            `json:"moodStability"`
}

// MoodTrend 按天聚合的心情趋势结构体
type MoodTrend struct {
	Date            string  `json:"date"`
	AvgIntensity    float64 `json:"avgIntensity"`
	DominantEmotion string  `json:"dominantEmotion"`
	MoodCount       int     `json:"moodCount"`
}
