package localstore

import (
	"context"
	"math/rand/v2"
	"time"
)

// Delayed wraps a Store and waits a random duration in [min, max] before
// every call, the way a slow browser storage would.
type Delayed struct {
	Store
	min, max time.Duration
	jitter   func(n int64) int64
}

func NewDelayed(store Store, min, max time.Duration) *Delayed {
	if max < min {
		max = min
	}
	return &Delayed{Store: store, min: min, max: max, jitter: rand.Int64N}
}

func (d *Delayed) Get(ctx context.Context, key string, dest any) (bool, error) {
	if err := d.wait(ctx); err != nil {
		return false, err
	}
	return d.Store.Get(ctx, key, dest)
}

func (d *Delayed) Set(ctx context.Context, key string, value any) error {
	if err := d.wait(ctx); err != nil {
		return err
	}
	return d.Store.Set(ctx, key, value)
}

func (d *Delayed) delay() time.Duration {
	span := int64(d.max - d.min)
	if span <= 0 {
		return d.min
	}
	return d.min + time.Duration(d.jitter(span+1))
}

func (d *Delayed) wait(ctx context.Context) error {
	delay := d.delay()
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
