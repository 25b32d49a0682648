package services

import (
	"strings"

	"github.com/chatchethu/mental-health-tracker/models"
)

// EmotionAnalysis 情绪推断结果，语音转写路径和纯文本路径共用同一输出契约
type EmotionAnalysis struct {
	Sentiment   string
	Emotion     string
	Confidence  float64
	Keywords    []string
	Suggestions []string
	RiskLevel   string
}

// 情感到情绪的固定三元映射，为兼容既有前端展示不可扩展或重推导
var sentimentEmotionMap = map[string]string{
	models.SentimentPositive: "happy",
	models.SentimentNegative: "sad",
	models.SentimentNeutral:  "calm",
}

var emotionSuggestions = map[string][]string{
	"happy": {"Keep spreading positivity!", "Write 3 things you are grateful for."},
	"sad":   {"Talk to someone you trust.", "A short walk or music can help."},
	"calm":  {"Enjoy this peaceful moment.", "A short mindfulness session keeps it going."},
}

var genericSuggestions = []string{"Be kind to yourself today."}

// 风险词表。注意是子串匹配，"harmony" 也会命中 "harm"——
// 沿用线上行为，改成全词匹配会改变可观测的风险输出
var highRiskWords = []string{"suicide", "hurt", "kill", "die", "harm"}
var mediumRiskWords = []string{"depressed", "anxious", "stress", "worried", "alone"}

// 文本回退路径使用的极性词表
var positiveWords = []string{"good", "great", "love", "happy", "wonderful"}
var negativeWords = []string{"sad", "angry", "tired", "bad", "hate"}

// AnalyzeTranscript 从转写结果推断情绪。
// 取提供方返回顺序中的第一条情感片段作代表，没有片段时默认中性；
// 片段未给置信度时取0.7；关键词取前5条高亮短语，保持插入顺序
func AnalyzeTranscript(job *TranscriptionJob) EmotionAnalysis {
	sentiment := models.SentimentNeutral
	confidence := 0.7
	if len(job.Sentiments) > 0 {
		first := job.Sentiments[0]
		if s := strings.ToLower(first.Sentiment); s != "" {
			sentiment = s
		}
		if first.Confidence != nil {
			confidence = *first.Confidence
		}
	}

	emotion := emotionForSentiment(sentiment)

	keywords := make([]string, 0, 5)
	for _, phrase := range job.Highlights {
		if len(keywords) == 5 {
			break
		}
		keywords = append(keywords, phrase)
	}

	return EmotionAnalysis{
		Sentiment:   sentiment,
		Emotion:     emotion,
		Confidence:  confidence,
		Keywords:    keywords,
		Suggestions: suggestionsForEmotion(emotion),
		RiskLevel:   classifyRisk(sentiment, confidence, keywords),
	}
}

// AnalyzeText 纯文本回退路径（未经过语音管线时使用）：
// 极性词出现计数定情感，置信度固定0.8。
// 该路径不做风险词扫描，风险恒为 low——有意保留的不对称设计，不是疏漏
func AnalyzeText(text string) EmotionAnalysis {
	lower := strings.ToLower(text)

	pos, neg := 0, 0
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			pos++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			neg++
		}
	}

	sentiment := models.SentimentNeutral
	if pos > neg {
		sentiment = models.SentimentPositive
	}
	if neg > pos {
		sentiment = models.SentimentNegative
	}

	emotion := emotionForSentiment(sentiment)

	return EmotionAnalysis{
		Sentiment:   sentiment,
		Emotion:     emotion,
		Confidence:  0.8,
		Keywords:    []string{},
		Suggestions: suggestionsForEmotion(emotion),
		RiskLevel:   models.RiskLow,
	}
}

func emotionForSentiment(sentiment string) string {
	if emotion, ok := sentimentEmotionMap[sentiment]; ok {
		return emotion
	}
	return sentimentEmotionMap[models.SentimentNeutral]
}

func suggestionsForEmotion(emotion string) []string {
	if s, ok := emotionSuggestions[emotion]; ok {
		return s
	}
	return genericSuggestions
}

// classifyRisk 风险分级。高风险词命中无条件优先于中风险；
// 中风险还可由（负面情感 且 置信度严格大于0.8）触发
func classifyRisk(sentiment string, confidence float64, keywords []string) string {
	hasHigh, hasMedium := false, false
	for _, keyword := range keywords {
		lower := strings.ToLower(keyword)
		for _, w := range highRiskWords {
			if strings.Contains(lower, w) {
				hasHigh = true
			}
		}
		for _, w := range mediumRiskWords {
			if strings.Contains(lower, w) {
				hasMedium = true
			}
		}
	}

	if hasHigh {
		return models.RiskHigh
	}
	if hasMedium || (sentiment == models.SentimentNegative && confidence > 0.8) {
		return models.RiskMedium
	}
	return models.RiskLow
}
