package services

import (
	"context"
	"time"
)

// WaitFunc 两次检查之间的挂起，可被上下文取消；测试中注入假等待以避免真实计时
type WaitFunc func(ctx context.Context, d time.Duration) error

func waitWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// PollPolicy 有界轮询策略：固定间隔 + 最大次数 + 终态判定
type PollPolicy struct {
	Interval    time.Duration
	MaxAttempts int
	Wait        WaitFunc
}

// DefaultPollPolicy 转写轮询默认策略：3秒一次，至多40次（约2分钟），无按请求覆盖
func DefaultPollPolicy() PollPolicy {
	return PollPolicy{
		Interval:    3 * time.Second,
		MaxAttempts: 40,
		Wait:        waitWithContext,
	}
}

// Run 先等待再检查。check 返回 true 表示到达终态；
// 次数耗尽仍未到终态时返回 ErrTranscriptionTimeout
func (p PollPolicy) Run(ctx context.Context, check func(ctx context.Context) (bool, error)) error {
	wait := p.Wait
	if wait == nil {
		wait = waitWithContext
	}
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		if err := wait(ctx, p.Interval); err != nil {
			return err
		}
		done, err := check(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
	return ErrTranscriptionTimeout
}
