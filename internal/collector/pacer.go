package collector

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Pacer spaces provider calls by a fixed delay and retries failures with
// exponential backoff. It is shared by every worker of a scan.
type Pacer struct {
	Delay      time.Duration
	MaxRetries int
	Backoff    time.Duration

	// OnRetry, when set, is called before each retry.
	OnRetry func(attempt int, err error)

	mu   sync.Mutex
	last time.Time
}

// NewPacer creates a pacer. backoff is the wait before the first retry and
// doubles on every further attempt.
func NewPacer(delay time.Duration, maxRetries int, backoff time.Duration) *Pacer {
	return &Pacer{Delay: delay, MaxRetries: maxRetries, Backoff: backoff}
}

// Wait blocks until Delay has passed since the previous call slot.
func (p *Pacer) Wait(ctx context.Context) error {
	p.mu.Lock()
	now := time.Now()
	slot := now
	if !p.last.IsZero() {
		if next := p.last.Add(p.Delay); next.After(now) {
			slot = next
		}
	}
	p.last = slot
	p.mu.Unlock()

	wait := slot.Sub(now)
	if wait <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Do runs fn after Wait, retrying up to MaxRetries times on error.
func (p *Pacer) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := p.Backoff
	var err error
	for attempt := 0; ; attempt++ {
		if werr := p.Wait(ctx); werr != nil {
			if err != nil {
				return fmt.Errorf("%w (last error: %v)", werr, err)
			}
			return werr
		}
		if err = fn(ctx); err == nil {
			return nil
		}
		if attempt >= p.MaxRetries || ctx.Err() != nil {
			break
		}
		slog.Debug("provider call failed, retrying", "attempt", attempt+1, "backoff", backoff, "error", err)
		if p.OnRetry != nil {
			p.OnRetry(attempt+1, err)
		}
		if backoff > 0 {
			timer := time.NewTimer(backoff)
			select {
			case <-ctx.Done():
				timer.Stop()
				return fmt.Errorf("%w (last error: %v)", ctx.Err(), err)
			case <-timer.C:
			}
			backoff *= 2
		}
	}
	if p.MaxRetries > 0 {
		return fmt.Errorf("after %d attempts: %w", p.MaxRetries+1, err)
	}
	return err
}
