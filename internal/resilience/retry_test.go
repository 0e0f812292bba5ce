package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastPolicy(attempts int) Policy {
	return Policy{Attempts: attempts, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}
}

func TestRetry_SuccessOnFirstAttempt(t *testing.T) {
	var calls int
	got, err := Retry(context.Background(), fastPolicy(3), "test", func(context.Context) (string, error) {
		calls++
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" || calls != 1 {
		t.Errorf("got %q after %d calls, want \"ok\" after 1", got, calls)
	}
}

func TestRetry_SuccessAfterTransientFailures(t *testing.T) {
	var calls int
	got, err := Retry(context.Background(), fastPolicy(3), "test", func(context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, NewStatusError(503, errors.New("unavailable"))
		}
		return 42, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 || calls != 3 {
		t.Errorf("got %d after %d calls, want 42 after 3", got, calls)
	}
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	var calls int
	_, err := Retry(context.Background(), fastPolicy(3), "test", func(context.Context) (int, error) {
		calls++
		return 0, NewStatusError(500, errors.New("boom"))
	})
	if err == nil || err.Error() != "boom" {
		t.Fatalf("expected last error \"boom\", got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestRetry_PermanentErrorNotRetried(t *testing.T) {
	var calls int
	_, err := Retry(context.Background(), fastPolicy(5), "test", func(context.Context) (int, error) {
		calls++
		return 0, NewStatusError(400, errors.New("bad request"))
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestRetry_ZeroAttemptsMeansOneTry(t *testing.T) {
	var calls int
	_, _ = Retry(context.Background(), Policy{}, "test", func(context.Context) (int, error) {
		calls++
		return 0, NewStatusError(503, errors.New("unavailable"))
	})
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestRetry_ContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := Policy{Attempts: 5, BaseDelay: time.Hour}

	var calls int
	done := make(chan error, 1)
	go func() {
		_, err := Retry(ctx, p, "test", func(context.Context) (int, error) {
			calls++
			return 0, NewStatusError(503, errors.New("unavailable"))
		})
		done <- err
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected error")
		}
	case <-time.After(time.Second):
		t.Fatal("Retry did not return after cancellation")
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestRetry_CustomRetryable(t *testing.T) {
	sentinel := errors.New("try again")
	p := fastPolicy(4)
	p.Retryable = func(err error) bool { return errors.Is(err, sentinel) }

	var calls int
	_, _ = Retry(context.Background(), p, "test", func(context.Context) (int, error) {
		calls++
		return 0, sentinel
	})
	if calls != 4 {
		t.Errorf("expected 4 calls, got %d", calls)
	}
}

func TestPolicy_Backoff(t *testing.T) {
	p := Policy{BaseDelay: 100 * time.Millisecond, MaxDelay: 300 * time.Millisecond}

	want := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 300 * time.Millisecond, 300 * time.Millisecond}
	for i, w := range want {
		if got := p.backoff(i + 1); got != w {
			t.Errorf("backoff(%d) = %v, want %v", i+1, got, w)
		}
	}

	p.Jitter = 0.5
	for range 100 {
		d := p.backoff(1)
		if d < 50*time.Millisecond || d > 150*time.Millisecond {
			t.Fatalf("jittered delay %v outside [50ms, 150ms]", d)
		}
	}
}
