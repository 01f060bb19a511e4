package content

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/geocoder89/portfolio/internal/domain/content"
)

type breakerState string

const (
	stateClosed   breakerState = "closed"
	stateOpen     breakerState = "open"
	stateHalfOpen breakerState = "half_open"
)

type BreakerConfig struct {
	Timeout          time.Duration // hard timeout per store read
	FailureThreshold int           // consecutive unreachable reads to open
	Cooldown         time.Duration // how long to stay open before half-open
	HalfOpenMaxCalls int           // trial reads allowed while half-open
}

// BreakerSource wraps the store. After FailureThreshold consecutive unreachable reads
// it answers ErrStoreUnavailable without calling the store until Cooldown has passed,
// so pages go straight to the fallback document while Postgres is down.
type BreakerSource struct {
	inner Source
	cfg   BreakerConfig
	now   func() time.Time

	mu                  sync.Mutex
	state               breakerState
	consecutiveFailures int
	openedAt            time.Time
	halfOpenInFlight    int
}

var _ Source = (*BreakerSource)(nil)

func NewBreakerSource(inner Source, cfg BreakerConfig) *BreakerSource {
	//defaults
	if cfg.Timeout <= 0 {
		cfg.Timeout = 3 * time.Second
	}
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 15 * time.Second
	}
	if cfg.HalfOpenMaxCalls <= 0 {
		cfg.HalfOpenMaxCalls = 1
	}

	return &BreakerSource{
		inner: inner,
		cfg:   cfg,
		now:   time.Now,
		state: stateClosed,
	}
}

func guarded[T any](ctx context.Context, b *BreakerSource, read func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	// fail-fast gate
	if !b.allowRequest() {
		return zero, ErrStoreUnavailable
	}

	readCtx, cancel := context.WithTimeout(ctx, b.cfg.Timeout)
	defer cancel()

	v, err := read(readCtx)

	b.afterRequest(err)

	return v, err
}

func (b *BreakerSource) allowRequest() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case stateOpen:
		if b.now().Sub(b.openedAt) >= b.cfg.Cooldown {
			b.state = stateHalfOpen
			b.halfOpenInFlight = 1
			return true
		}
		return false
	case stateHalfOpen:
		if b.halfOpenInFlight >= b.cfg.HalfOpenMaxCalls {
			return false
		}
		b.halfOpenInFlight++
		return true
	default:
		return true
	}
}

// afterRequest only counts connectivity failures; a query error still proves the store answered.
func (b *BreakerSource) afterRequest(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == stateHalfOpen && b.halfOpenInFlight > 0 {
		b.halfOpenInFlight--
	}

	if !errors.Is(err, ErrStoreUnavailable) {
		b.consecutiveFailures = 0
		b.state = stateClosed
		return
	}

	b.consecutiveFailures++

	if b.state == stateHalfOpen || b.consecutiveFailures >= b.cfg.FailureThreshold {
		b.state = stateOpen
		b.openedAt = b.now()
	}
}

func (b *BreakerSource) Education(ctx context.Context) ([]content.Education, error) {
	return guarded(ctx, b, b.inner.Education)
}

func (b *BreakerSource) Experiences(ctx context.Context) ([]content.Experience, error) {
	return guarded(ctx, b, b.inner.Experiences)
}

func (b *BreakerSource) Certifications(ctx context.Context) ([]content.Certification, error) {
	return guarded(ctx, b, b.inner.Certifications)
}

func (b *BreakerSource) Skills(ctx context.Context) (content.SkillGroups, error) {
	return guarded(ctx, b, b.inner.Skills)
}

func (b *BreakerSource) Projects(ctx context.Context) ([]content.Project, error) {
	return guarded(ctx, b, b.inner.Projects)
}

func (b *BreakerSource) Achievements(ctx context.Context) ([]content.Achievement, error) {
	return guarded(ctx, b, b.inner.Achievements)
}
