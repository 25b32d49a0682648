package services

import "errors"

// 核心错误分类，controller 通过 errors.Is 区分处理方式
var (
	// ErrInvalidInput 请求载荷缺失或非法，不重试
	ErrInvalidInput = errors.New("invalid input")
	// ErrProviderAuth 外部提供方凭证缺失或被拒绝，对客户端只暴露模糊信息
	ErrProviderAuth = errors.New("provider credentials missing or rejected")
	// ErrProviderUnavailable 外部提供方5xx或网络故障
	ErrProviderUnavailable = errors.New("provider unavailable")
	// ErrTranscriptionTimeout 轮询次数耗尽仍未到终态
	ErrTranscriptionTimeout = errors.New("transcription timeout")
	// ErrTranscriptionFailed 提供方报告转写失败
	ErrTranscriptionFailed = errors.New("transcription failed")
	// ErrMoodNotFound 心情记录不存在，与参数校验错误严格区分
	ErrMoodNotFound = errors.New("mood record not found")
)
