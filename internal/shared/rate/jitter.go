package rate

import (
	"context"
	"time"

	"go.uber.org/ratelimit"
)

// Jitter emits at most one signal per period on Chan. Signals are not accumulated
// while nobody reads, so a slow consumer never receives a burst.
type Jitter struct {
	ch     chan struct{}
	l      ratelimit.Limiter
	period time.Duration
}

func NewJitter(ctx context.Context, period time.Duration) *Jitter {
	if period <= 0 {
		period = time.Second
	}
	jitter := &Jitter{
		period: period,
		ch:     make(chan struct{}, 1),
		l: ratelimit.New(1,
			ratelimit.Per(period),
			ratelimit.WithoutSlack,
			ratelimit.WithClock(cancelableClock{ctx: ctx}),
		),
	}
	go jitter.provider(ctx)
	return jitter
}

func (l *Jitter) provider(ctx context.Context) {
	defer close(l.ch)
	for {
		l.l.Take()
		if ctx.Err() != nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		case l.ch <- struct{}{}:
		}
	}
}

func (l *Jitter) Period() time.Duration { return l.period }

func (l *Jitter) Take() {
	<-l.ch
}

func (l *Jitter) Chan() <-chan struct{} {
	return l.ch
}

// cancelableClock is a wall clock whose Sleep returns early once ctx is done,
// so a pending Take never outlives cancellation.
type cancelableClock struct {
	ctx context.Context
}

func (c cancelableClock) Now() time.Time { return time.Now() }

func (c cancelableClock) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-c.ctx.Done():
	case <-timer.C:
	}
}
