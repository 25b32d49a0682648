package services

import (
	"testing"

	"github.com/chatchethu/mental-health-tracker/models"
)

func floatPtr(v float64) *float64 {
	return &v
}

func transcriptWith(sentiment string, confidence *float64, highlights ...string) *TranscriptionJob {
	job := &TranscriptionJob{
		ID:         "t1",
		Status:     TranscriptCompleted,
		Text:       "some transcribed text",
		Highlights: highlights,
	}
	if sentiment != "" {
		job.Sentiments = []SentimentSegment{{Text: "some transcribed text", Sentiment: sentiment, Confidence: confidence}}
	}
	return job
}

func TestSentimentEmotionMapping(t *testing.T) {
	cases := []struct {
		sentiment string
		emotion   string
	}{
		{"positive", "happy"},
		{"negative", "sad"},
		{"neutral", "calm"},
		{"POSITIVE", "happy"}, // 提供方返回大写时也要归一化
	}
	for _, tc := range cases {
		got := AnalyzeTranscript(transcriptWith(tc.sentiment, floatPtr(0.9)))
		if got.Emotion != tc.emotion {
			t.Fatalf("sentiment %q: expected emotion %q, got %q", tc.sentiment, tc.emotion, got.Emotion)
		}
	}
}

func TestTranscriptWithoutSentimentDefaultsNeutral(t *testing.T) {
	got := AnalyzeTranscript(transcriptWith("", nil))
	if got.Sentiment != models.SentimentNeutral {
		t.Fatalf("expected neutral sentiment, got %q", got.Sentiment)
	}
	if got.Emotion != "calm" {
		t.Fatalf("expected calm emotion, got %q", got.Emotion)
	}
	if got.Confidence != 0.7 {
		t.Fatalf("expected default confidence 0.7, got %v", got.Confidence)
	}
}

func TestConfidenceDefaultWhenSegmentOmitsIt(t *testing.T) {
	got := AnalyzeTranscript(transcriptWith("positive", nil))
	if got.Confidence != 0.7 {
		t.Fatalf("expected default confidence 0.7, got %v", got.Confidence)
	}
}

func TestKeywordsCappedAtFive(t *testing.T) {
	got := AnalyzeTranscript(transcriptWith("neutral", floatPtr(0.5),
		"one", "two", "three", "four", "five", "six", "seven"))
	if len(got.Keywords) != 5 {
		t.Fatalf("expected 5 keywords, got %d", len(got.Keywords))
	}
	if got.Keywords[0] != "one" || got.Keywords[4] != "five" {
		t.Fatalf("keyword order not preserved: %v", got.Keywords)
	}
}

func TestHighRiskDominatesMedium(t *testing.T) {
	// 同时命中高风险词和中风险词时，高风险无条件胜出
	got := AnalyzeTranscript(transcriptWith("negative", floatPtr(0.95),
		"feeling depressed", "thoughts of suicide"))
	if got.RiskLevel != models.RiskHigh {
		t.Fatalf("expected high risk, got %q", got.RiskLevel)
	}
}

func TestHighRiskSubstringMatch(t *testing.T) {
	// 子串匹配："harmony" 包含 "harm"，沿用线上行为
	got := AnalyzeTranscript(transcriptWith("positive", floatPtr(0.9), "living in harmony"))
	if got.RiskLevel != models.RiskHigh {
		t.Fatalf("expected high risk for substring match, got %q", got.RiskLevel)
	}
}

func TestHighRiskCaseInsensitive(t *testing.T) {
	got := AnalyzeTranscript(transcriptWith("neutral", floatPtr(0.5), "SUICIDE prevention"))
	if got.RiskLevel != models.RiskHigh {
		t.Fatalf("expected high risk, got %q", got.RiskLevel)
	}
}

func TestMediumRiskConfidenceBoundary(t *testing.T) {
	// 置信度阈值是严格大于0.8：恰好0.80不触发，0.81触发
	at := AnalyzeTranscript(transcriptWith("negative", floatPtr(0.80)))
	if at.RiskLevel != models.RiskLow {
		t.Fatalf("confidence 0.80: expected low risk, got %q", at.RiskLevel)
	}

	above := AnalyzeTranscript(transcriptWith("negative", floatPtr(0.81)))
	if above.RiskLevel != models.RiskMedium {
		t.Fatalf("confidence 0.81: expected medium risk, got %q", above.RiskLevel)
	}
}

func TestMediumRiskKeyword(t *testing.T) {
	got := AnalyzeTranscript(transcriptWith("positive", floatPtr(0.9), "so stressed lately"))
	if got.RiskLevel != models.RiskMedium {
		t.Fatalf("expected medium risk, got %q", got.RiskLevel)
	}
}

func TestSuggestionsTable(t *testing.T) {
	got := AnalyzeTranscript(transcriptWith("positive", floatPtr(0.9)))
	if len(got.Suggestions) != 2 || got.Suggestions[0] != "Keep spreading positivity!" {
		t.Fatalf("unexpected suggestions for happy: %v", got.Suggestions)
	}

	if s := suggestionsForEmotion("lonely"); len(s) != 1 || s[0] != "Be kind to yourself today." {
		t.Fatalf("expected generic fallback suggestion, got %v", s)
	}
}

func TestAnalyzeTextPositiveScenario(t *testing.T) {
	got := AnalyzeText("I feel good and happy today")
	if got.Sentiment != models.SentimentPositive {
		t.Fatalf("expected positive sentiment, got %q", got.Sentiment)
	}
	if got.Emotion != "happy" {
		t.Fatalf("expected happy emotion, got %q", got.Emotion)
	}
	if got.Confidence != 0.8 {
		t.Fatalf("expected fixed confidence 0.8, got %v", got.Confidence)
	}
	if got.RiskLevel != models.RiskLow {
		t.Fatalf("expected low risk, got %q", got.RiskLevel)
	}
}

func TestAnalyzeTextNegative(t *testing.T) {
	got := AnalyzeText("I am sad and tired, everything is bad")
	if got.Sentiment != models.SentimentNegative || got.Emotion != "sad" {
		t.Fatalf("expected negative/sad, got %q/%q", got.Sentiment, got.Emotion)
	}
	// 文本路径不做风险词扫描，即使出现中风险词风险也恒为low
	got = AnalyzeText("I am depressed and anxious")
	if got.RiskLevel != models.RiskLow {
		t.Fatalf("text path must always report low risk, got %q", got.RiskLevel)
	}
}

func TestAnalyzeTextNeutralOnTie(t *testing.T) {
	got := AnalyzeText("good but bad")
	if got.Sentiment != models.SentimentNeutral || got.Emotion != "calm" {
		t.Fatalf("expected neutral/calm on tie, got %q/%q", got.Sentiment, got.Emotion)
	}
}
