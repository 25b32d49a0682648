package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeWait 不真实计时，只记录等待次数
func fakeWait(counter *int) WaitFunc {
	return func(ctx context.Context, d time.Duration) error {
		*counter++
		if err := ctx.Err(); err != nil {
			return err
		}
		return nil
	}
}

func TestPollPolicyTimeoutAfterMaxAttempts(t *testing.T) {
	waits := 0
	policy := PollPolicy{Interval: 3 * time.Second, MaxAttempts: 40, Wait: fakeWait(&waits)}

	checks := 0
	err := policy.Run(context.Background(), func(ctx context.Context) (bool, error) {
		checks++
		return false, nil // 永远不到终态
	})
	if !errors.Is(err, ErrTranscriptionTimeout) {
		t.Fatalf("expected ErrTranscriptionTimeout, got %v", err)
	}
	if checks != 40 {
		t.Fatalf("expected exactly 40 checks, got %d", checks)
	}
	if waits != 40 {
		t.Fatalf("expected exactly 40 waits, got %d", waits)
	}
}

func TestPollPolicyStopsOnTerminalState(t *testing.T) {
	waits := 0
	policy := PollPolicy{Interval: time.Second, MaxAttempts: 10, Wait: fakeWait(&waits)}

	checks := 0
	err := policy.Run(context.Background(), func(ctx context.Context) (bool, error) {
		checks++
		return checks == 3, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if checks != 3 {
		t.Fatalf("expected 3 checks, got %d", checks)
	}
}

func TestPollPolicyPropagatesCheckError(t *testing.T) {
	waits := 0
	policy := PollPolicy{Interval: time.Second, MaxAttempts: 10, Wait: fakeWait(&waits)}

	boom := errors.New("boom")
	err := policy.Run(context.Background(), func(ctx context.Context) (bool, error) {
		return false, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected check error to propagate, got %v", err)
	}
}

func TestPollPolicyCancellable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	policy := PollPolicy{Interval: time.Second, MaxAttempts: 10, Wait: func(ctx context.Context, d time.Duration) error {
		cancel() // 模拟调用方在等待期间中止请求
		return ctx.Err()
	}}

	err := policy.Run(ctx, func(ctx context.Context) (bool, error) {
		t.Fatal("check should not run after cancellation")
		return false, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDefaultPollPolicy(t *testing.T) {
	policy := DefaultPollPolicy()
	if policy.Interval != 3*time.Second {
		t.Fatalf("expected 3s interval, got %v", policy.Interval)
	}
	if policy.MaxAttempts != 40 {
		t.Fatalf("expected 40 max attempts, got %d", policy.MaxAttempts)
	}
}
