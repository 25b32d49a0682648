package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type stubTranscriber struct {
	uploadErr error
	createErr error
	pollErr   error

	// statuses 依次返回的状态序列，超出后停留在最后一个
	statuses   []TranscriptionStatus
	pollCount  int
	text       string
	jobError   string
	sentiments []SentimentSegment
	highlights []string
}

func (s *stubTranscriber) UploadAudio(ctx context.Context, audio []byte) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	return "https://cdn.example.com/audio/upload-1", nil
}

func (s *stubTranscriber) CreateTranscriptionJob(ctx context.Context, audioURL string) (string, error) {
	if s.createErr != nil {
		return "", s.createErr
	}
	return "job-1", nil
}

func (s *stubTranscriber) PollTranscriptionJob(ctx context.Context, jobID string) (*TranscriptionJob, error) {
	if s.pollErr != nil {
		return nil, s.pollErr
	}
	idx := s.pollCount
	if idx >= len(s.statuses) {
		idx = len(s.statuses) - 1
	}
	s.pollCount++
	return &TranscriptionJob{
		ID:         jobID,
		Status:     s.statuses[idx],
		Text:       s.text,
		Error:      s.jobError,
		Sentiments: s.sentiments,
		Highlights: s.highlights,
	}, nil
}

type stubCompletions struct {
	reply string
	err   error
	calls int
}

func (s *stubCompletions) RequestCompletion(ctx context.Context, prompt, systemPrompt string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func instantPolicy(maxAttempts int) PollPolicy {
	return PollPolicy{
		Interval:    3 * time.Second,
		MaxAttempts: maxAttempts,
		Wait: func(ctx context.Context, d time.Duration) error {
			return ctx.Err()
		},
	}
}

func TestAnalyzeVoiceRejectsEmptyAudio(t *testing.T) {
	svc := NewVoiceService(&stubTranscriber{}, nil, instantPolicy(40))
	_, err := svc.AnalyzeVoice(context.Background(), nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAnalyzeVoiceSuccess(t *testing.T) {
	transcriber := &stubTranscriber{
		statuses:   []TranscriptionStatus{TranscriptQueued, TranscriptProcessing, TranscriptCompleted},
		text:       "I had a wonderful day",
		sentiments: []SentimentSegment{{Text: "I had a wonderful day", Sentiment: "POSITIVE", Confidence: floatPtr(0.92)}},
		highlights: []string{"wonderful day"},
	}
	completions := &stubCompletions{reply: "You sound upbeat and content."}
	svc := NewVoiceService(transcriber, completions, instantPolicy(40))

	data, err := svc.AnalyzeVoice(context.Background(), []byte("audio-bytes"))
	if err != nil {
		t.Fatalf("AnalyzeVoice error: %v", err)
	}
	if data.Transcription != "I had a wonderful day" {
		t.Fatalf("unexpected transcription: %q", data.Transcription)
	}
	if data.Sentiment != "positive" || data.Emotion != "happy" {
		t.Fatalf("unexpected sentiment/emotion: %q/%q", data.Sentiment, data.Emotion)
	}
	if data.Confidence != 0.92 {
		t.Fatalf("unexpected confidence: %v", data.Confidence)
	}
	if data.ToneSummary != "You sound upbeat and content." {
		t.Fatalf("unexpected tone summary: %q", data.ToneSummary)
	}
	if data.Acoustic.AvgPitch != "—" || data.Acoustic.AvgEnergy != "—" {
		t.Fatalf("expected acoustic placeholders, got %+v", data.Acoustic)
	}
	if transcriber.pollCount != 3 {
		t.Fatalf("expected 3 polls, got %d", transcriber.pollCount)
	}
	if completions.calls != 1 {
		t.Fatalf("expected 1 completion call, got %d", completions.calls)
	}
}

func TestAnalyzeVoiceTimesOutWhenNeverTerminal(t *testing.T) {
	transcriber := &stubTranscriber{statuses: []TranscriptionStatus{TranscriptProcessing}}
	svc := NewVoiceService(transcriber, nil, instantPolicy(40))

	_, err := svc.AnalyzeVoice(context.Background(), []byte("audio"))
	if !errors.Is(err, ErrTranscriptionTimeout) {
		t.Fatalf("expected ErrTranscriptionTimeout, got %v", err)
	}
	if transcriber.pollCount != 40 {
		t.Fatalf("expected exactly 40 polls before timeout, got %d", transcriber.pollCount)
	}
}

func TestAnalyzeVoiceProviderErrorStatus(t *testing.T) {
	transcriber := &stubTranscriber{
		statuses: []TranscriptionStatus{TranscriptProcessing, TranscriptError},
		jobError: "audio too short",
	}
	svc := NewVoiceService(transcriber, nil, instantPolicy(40))

	_, err := svc.AnalyzeVoice(context.Background(), []byte("audio"))
	if !errors.Is(err, ErrTranscriptionFailed) {
		t.Fatalf("expected ErrTranscriptionFailed, got %v", err)
	}
	if got := err.Error(); !strings.Contains(got, "audio too short") {
		t.Fatalf("expected provider message in error, got %q", got)
	}
}

func TestAnalyzeVoiceUploadFailurePropagates(t *testing.T) {
	transcriber := &stubTranscriber{uploadErr: ErrProviderUnavailable}
	svc := NewVoiceService(transcriber, nil, instantPolicy(40))

	_, err := svc.AnalyzeVoice(context.Background(), []byte("audio"))
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestToneSummaryNeverFailsThePipeline(t *testing.T) {
	transcriber := &stubTranscriber{
		statuses: []TranscriptionStatus{TranscriptCompleted},
		text:     "feeling ok",
	}

	// 补全提供方故障 → 回退文案
	svc := NewVoiceService(transcriber, &stubCompletions{err: errors.New("rate limited")}, instantPolicy(40))
	data, err := svc.AnalyzeVoice(context.Background(), []byte("audio"))
	if err != nil {
		t.Fatalf("tone summary failure must not fail the pipeline: %v", err)
	}
	if data.ToneSummary != "Unable to analyze tone right now." {
		t.Fatalf("unexpected fallback: %q", data.ToneSummary)
	}

	// 凭证缺失 → 未配置文案
	transcriber.pollCount = 0
	svc = NewVoiceService(transcriber, &stubCompletions{err: ErrProviderAuth}, instantPolicy(40))
	data, err = svc.AnalyzeVoice(context.Background(), []byte("audio"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.ToneSummary != "Tone summary unavailable." {
		t.Fatalf("unexpected fallback: %q", data.ToneSummary)
	}

	// 未配置补全客户端 → 未配置文案
	transcriber.pollCount = 0
	svc = NewVoiceService(transcriber, nil, instantPolicy(40))
	data, err = svc.AnalyzeVoice(context.Background(), []byte("audio"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.ToneSummary != "Tone summary unavailable." {
		t.Fatalf("unexpected fallback: %q", data.ToneSummary)
	}
}

func TestAnalyzeVoiceCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	transcriber := &stubTranscriber{statuses: []TranscriptionStatus{TranscriptProcessing}}
	policy := PollPolicy{
		Interval:    3 * time.Second,
		MaxAttempts: 40,
		Wait: func(ctx context.Context, d time.Duration) error {
			cancel()
			return ctx.Err()
		},
	}
	svc := NewVoiceService(transcriber, nil, policy)

	_, err := svc.AnalyzeVoice(ctx, []byte("audio"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if transcriber.pollCount != 0 {
		t.Fatalf("expected no polls after cancellation, got %d", transcriber.pollCount)
	}
}
