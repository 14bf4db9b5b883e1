package enrich

import (
	"context"
	"math/rand"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultMinDelay      = 4 * time.Second
	defaultMaxDelay      = 7 * time.Second
	defaultCooldownEvery = 20
	defaultCooldownMin   = 30 * time.Second
	defaultCooldownMax   = 60 * time.Second
)

// PacerOptions tunes request spacing. Zero values take the defaults the
// batch jobs have always run with: 4-7s between rows and a 30-60s cooldown
// every 20 rows.
type PacerOptions struct {
	MinDelay      time.Duration
	MaxDelay      time.Duration
	CooldownEvery int
	CooldownMin   time.Duration
	CooldownMax   time.Duration
	// Source seeds the jitter; nil uses wall-clock seeding.
	Source rand.Source
}

// Pacer spaces requests out with jittered delays. The minimum spacing is
// enforced by a rate limiter so a caller cannot accidentally burst; the
// jitter on top keeps the interval from looking mechanical.
type Pacer struct {
	limiter       *rate.Limiter
	rng           *rand.Rand
	minDelay      time.Duration
	maxDelay      time.Duration
	cooldownEvery int
	cooldownMin   time.Duration
	cooldownMax   time.Duration
}

// NewPacer constructs a pacer.
func NewPacer(opts PacerOptions) *Pacer {
	if opts.MinDelay <= 0 {
		opts.MinDelay = defaultMinDelay
	}
	if opts.MaxDelay < opts.MinDelay {
		opts.MaxDelay = opts.MinDelay
	}
	if opts.MaxDelay == opts.MinDelay && opts.MinDelay == defaultMinDelay {
		opts.MaxDelay = defaultMaxDelay
	}
	if opts.CooldownEvery <= 0 {
		opts.CooldownEvery = defaultCooldownEvery
	}
	if opts.CooldownMin <= 0 {
		opts.CooldownMin = defaultCooldownMin
	}
	if opts.CooldownMax < opts.CooldownMin {
		opts.CooldownMax = defaultCooldownMax
	}
	source := opts.Source
	if source == nil {
		source = rand.NewSource(time.Now().UnixNano())
	}
	return &Pacer{
		limiter:       rate.NewLimiter(rate.Every(opts.MinDelay), 1),
		rng:           rand.New(source),
		minDelay:      opts.MinDelay,
		maxDelay:      opts.MaxDelay,
		cooldownEvery: opts.CooldownEvery,
		cooldownMin:   opts.CooldownMin,
		cooldownMax:   opts.CooldownMax,
	}
}

// Wait blocks until the next row may start. processed is how many rows the
// run has completed; every cooldownEvery rows the wait stretches into a
// cooldown. Returns the context error when cancelled mid-wait.
func (p *Pacer) Wait(ctx context.Context, processed int) error {
	if processed > 0 && processed%p.cooldownEvery == 0 {
		if err := sleepCtx(ctx, p.jitter(p.cooldownMin, p.cooldownMax)); err != nil {
			return err
		}
	}
	if err := p.limiter.Wait(ctx); err != nil {
		return err
	}
	return sleepCtx(ctx, p.jitter(0, p.maxDelay-p.minDelay))
}

func (p *Pacer) jitter(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(p.rng.Int63n(int64(max-min)))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
