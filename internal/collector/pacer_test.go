package collector

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPacer_SpacesCalls(t *testing.T) {
	p := NewPacer(20*time.Millisecond, 0, 0)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := p.Wait(ctx); err != nil {
			t.Fatalf("wait: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("expected at least 40ms for 3 paced calls, got %s", elapsed)
	}
}

func TestPacer_DoGivesUp(t *testing.T) {
	p := NewPacer(0, 2, time.Millisecond)
	var retries []int
	p.OnRetry = func(attempt int, _ error) { retries = append(retries, attempt) }

	calls := 0
	errBoom := errors.New("boom")
	err := p.Do(context.Background(), func(context.Context) error {
		calls++
		return errBoom
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
	if len(retries) != 2 || retries[0] != 1 || retries[1] != 2 {
		t.Errorf("expected retries [1 2], got %v", retries)
	}
}

func TestPacer_DoSucceedsFirstTry(t *testing.T) {
	p := NewPacer(0, 3, time.Second)
	calls := 0
	if err := p.Do(context.Background(), func(context.Context) error {
		calls++
		return nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestPacer_WaitHonoursContext(t *testing.T) {
	p := NewPacer(time.Hour, 0, 0)
	ctx, cancel := context.WithCancel(context.Background())
	if err := p.Wait(ctx); err != nil {
		t.Fatalf("first wait should not block: %v", err)
	}
	cancel()
	if err := p.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
