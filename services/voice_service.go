package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/chatchethu/mental-health-tracker/config"
	"github.com/chatchethu/mental-health-tracker/models"
)

// pipelineStage 语音分析管线状态机
type pipelineStage string

const (
	stageUploading     pipelineStage = "UPLOADING"
	stageJobCreated    pipelineStage = "JOB_CREATED"
	stagePolling       pipelineStage = "POLLING"
	stageDone          pipelineStage = "DONE"
	stageProviderError pipelineStage = "PROVIDER_ERROR"
	stageTimeout       pipelineStage = "TIMEOUT"
)

const (
	toneSummarySystemPrompt = "You are a kind mental-health coach. Be concise."
	toneSummaryUnavailable  = "Tone summary unavailable."
	toneSummaryFallback     = "Unable to analyze tone right now."
)

// TranscriptionProvider 转写提供方契约，由编排器消费
type TranscriptionProvider interface {
	UploadAudio(ctx context.Context, audio []byte) (string, error)
	CreateTranscriptionJob(ctx context.Context, audioURL string) (string, error)
	PollTranscriptionJob(ctx context.Context, jobID string) (*TranscriptionJob, error)
}

// CompletionProvider 补全提供方契约
type CompletionProvider interface {
	RequestCompletion(ctx context.Context, prompt, systemPrompt string) (string, error)
}

// VoiceService 语音分析编排器：上传 → 建任务 → 轮询至终态 → 情绪推断 → 语气总结。
// 每次调用独占自己的轮询循环和任务ID，无跨请求共享状态
type VoiceService struct {
	transcriber TranscriptionProvider
	completions CompletionProvider
	policy      PollPolicy
}

func NewVoiceService(transcriber TranscriptionProvider, completions CompletionProvider, policy PollPolicy) *VoiceService {
	return &VoiceService{
		transcriber: transcriber,
		completions: completions,
		policy:      policy,
	}
}

// AnalyzeVoice 执行完整语音分析管线。除 ErrInvalidInput 外的所有失败
// 都由 controller 在边界处转成统一的 {success:false, message} 响应
func (s *VoiceService) AnalyzeVoice(ctx context.Context, audio []byte) (*models.VoiceAnalysisData, error) {
	if len(audio) == 0 {
		return nil, fmt.Errorf("%w: no valid audio payload", ErrInvalidInput)
	}

	config.Logger.Infow("开始语音分析管线", "stage", stageUploading, "audioBytes", len(audio))
	audioURL, err := s.transcriber.UploadAudio(ctx, audio)
	if err != nil {
		return nil, err
	}

	config.Logger.Infow("音频上传完成", "stage", stageJobCreated, "audioURL", audioURL)
	jobID, err := s.transcriber.CreateTranscriptionJob(ctx, audioURL)
	if err != nil {
		return nil, err
	}

	config.Logger.Infow("转写任务已创建", "stage", stagePolling, "jobID", jobID)
	var job *TranscriptionJob
	err = s.policy.Run(ctx, func(ctx context.Context) (bool, error) {
		snapshot, pollErr := s.transcriber.PollTranscriptionJob(ctx, jobID)
		if pollErr != nil {
			return false, pollErr
		}
		job = snapshot
		config.Logger.Debugw("轮询转写状态", "jobID", jobID, "status", snapshot.Status)
		return snapshot.Status == TranscriptCompleted || snapshot.Status == TranscriptError, nil
	})
	if err != nil {
		stage := stageProviderError
		if errors.Is(err, ErrTranscriptionTimeout) {
			stage = stageTimeout
		}
		config.Logger.Errorw("转写轮询失败", "jobID", jobID, "stage", stage, "error", err)
		return nil, err
	}

	if job.Status == TranscriptError {
		msg := job.Error
		if msg == "" {
			msg = "transcription failed at provider"
		}
		config.Logger.Errorw("提供方报告转写失败", "jobID", jobID, "stage", stageProviderError, "providerError", msg)
		return nil, fmt.Errorf("%w: %s", ErrTranscriptionFailed, msg)
	}

	analysis := AnalyzeTranscript(job)
	toneSummary := s.toneSummary(ctx, job.Text, analysis)
	config.Logger.Infow("语音分析完成",
		"stage", stageDone,
		"jobID", jobID,
		"sentiment", analysis.Sentiment,
		"riskLevel", analysis.RiskLevel,
	)

	return &models.VoiceAnalysisData{
		Transcription: job.Text,
		Sentiment:     analysis.Sentiment,
		Emotion:       analysis.Emotion,
		Confidence:    analysis.Confidence,
		ToneSummary:   toneSummary,
		// 声学特征暂不支持，固定返回占位值
		Acoustic:    models.AcousticInfo{AvgPitch: "—", AvgEnergy: "—"},
		Keywords:    analysis.Keywords,
		Suggestions: analysis.Suggestions,
		RiskLevel:   analysis.RiskLevel,
	}, nil
}

// toneSummary 语气总结是尽力而为的增强：任何失败都回退为固定文案，
// 绝不让整个请求因此失败。回退策略集中在这一个点
func (s *VoiceService) toneSummary(ctx context.Context, text string, analysis EmotionAnalysis) string {
	if s.completions == nil {
		return toneSummaryUnavailable
	}

	prompt := fmt.Sprintf(`Emotion=%s, Sentiment=%s, Confidence=%.2f. Text: """%s"""`,
		analysis.Emotion, analysis.Sentiment, analysis.Confidence, text)

	summary, err := s.completions.RequestCompletion(ctx, prompt, toneSummarySystemPrompt)
	if err != nil {
		if errors.Is(err, ErrProviderAuth) {
			return toneSummaryUnavailable
		}
		config.Logger.Warnw("语气总结生成失败，使用回退文案", "error", err)
		return toneSummaryFallback
	}
	if summary == "" {
		return toneSummaryUnavailable
	}
	return summary
}
