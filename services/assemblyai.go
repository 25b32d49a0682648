package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultAssemblyAIEndpoint = "https://api.assemblyai.com/v2"

// TranscriptionStatus 转写任务状态
type TranscriptionStatus string

const (
	TranscriptQueued     TranscriptionStatus = "queued"
	TranscriptProcessing TranscriptionStatus = "processing"
	TranscriptCompleted  TranscriptionStatus = "completed"
	TranscriptError      TranscriptionStatus = "error"
)

// SentimentSegment 提供方按句返回的情感片段
type SentimentSegment struct {
	Text      string
	Sentiment string
	// Confidence 为空表示提供方未给出置信度
	Confidence *float64
}

// TranscriptionJob 一次转写任务的快照。只在编排器的轮询循环中存在，
// 完成后即丢弃，不做持久化
type TranscriptionJob struct {
	ID         string
	Status     TranscriptionStatus
	Text       string
	Error      string
	Sentiments []SentimentSegment
	Highlights []string
}

// AssemblyAIClient 转写提供方客户端。本层不做重试，重试与超时策略属于编排器
type AssemblyAIClient struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

func NewAssemblyAIClient(apiKey, endpoint string) *AssemblyAIClient {
	if endpoint == "" {
		endpoint = defaultAssemblyAIEndpoint
	}
	return &AssemblyAIClient{
		apiKey:     apiKey,
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// UploadAudio 上传音频，返回提供方生成的audio url
func (c *AssemblyAIClient) UploadAudio(ctx context.Context, audio []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/upload", bytes.NewReader(audio))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	var payload struct {
		UploadURL string `json:"upload_url"`
	}
	if err := c.do(req, &payload); err != nil {
		return "", err
	}
	if payload.UploadURL == "" {
		return "", fmt.Errorf("audio upload failed: provider returned no upload_url")
	}
	return payload.UploadURL, nil
}

// CreateTranscriptionJob 创建转写任务，开启的功能集是产品决策，不按请求协商
func (c *AssemblyAIClient) CreateTranscriptionJob(ctx context.Context, audioURL string) (string, error) {
	body := map[string]interface{}{
		"audio_url":          audioURL,
		"language_detection": true,
		"auto_highlights":    true,
		"entity_detection":   true,
		"iab_categories":     false,
		"speaker_labels":     false,
		"sentiment_analysis": true,
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/transcript", bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	var payload struct {
		ID string `json:"id"`
	}
	if err := c.do(req, &payload); err != nil {
		return "", err
	}
	if payload.ID == "" {
		return "", fmt.Errorf("transcript creation failed: provider returned no id")
	}
	return payload.ID, nil
}

// PollTranscriptionJob 获取转写任务当前快照，提供方的松散JSON在这里完成校验，
// 不让未定型的数据越过客户端层
func (c *AssemblyAIClient) PollTranscriptionJob(ctx context.Context, jobID string) (*TranscriptionJob, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/transcript/"+jobID, nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		ID        string `json:"id"`
		Status    string `json:"status"`
		Text      string `json:"text"`
		Error     string `json:"error"`
		Sentiment []struct {
			Text       string   `json:"text"`
			Sentiment  string   `json:"sentiment"`
			Confidence *float64 `json:"confidence"`
		} `json:"sentiment_analysis_results"`
		AutoHighlights struct {
			Results []struct {
				Text string `json:"text"`
			} `json:"results"`
		} `json:"auto_highlights"`
	}
	if err := c.do(req, &payload); err != nil {
		return nil, err
	}

	status := TranscriptionStatus(strings.ToLower(payload.Status))
	switch status {
	case TranscriptQueued, TranscriptProcessing, TranscriptCompleted, TranscriptError:
	default:
		return nil, fmt.Errorf("provider returned unknown transcript status %q", payload.Status)
	}

	job := &TranscriptionJob{
		ID:     payload.ID,
		Status: status,
		Text:   payload.Text,
		Error:  payload.Error,
	}
	for _, s := range payload.Sentiment {
		job.Sentiments = append(job.Sentiments, SentimentSegment{
			Text:       s.Text,
			Sentiment:  s.Sentiment,
			Confidence: s.Confidence,
		})
	}
	for _, h := range payload.AutoHighlights.Results {
		job.Highlights = append(job.Highlights, h.Text)
	}
	return job, nil
}

// do 发送请求并解码响应，统一错误分类
func (c *AssemblyAIClient) do(req *http.Request, out interface{}) error {
	if c.apiKey == "" {
		return fmt.Errorf("%w: ASSEMBLYAI_API_KEY not configured", ErrProviderAuth)
	}
	// AssemblyAI 的鉴权头直接放key，不加Bearer前缀
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: transcription provider rejected credentials", ErrProviderAuth)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: transcription provider returned status %d", ErrProviderUnavailable, resp.StatusCode)
	case resp.StatusCode >= 400:
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error == "" {
			apiErr.Error = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return fmt.Errorf("transcription provider request failed: %s", apiErr.Error)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode provider response: %v", err)
	}
	return nil
}
