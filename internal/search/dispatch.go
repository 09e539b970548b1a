// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pdiddy/synosearch/pkg/types"
)

// Default politeness delay bounds.
const (
	DefaultMinDelay = 3 * time.Second
	DefaultMaxDelay = 10 * time.Second
)

// SleepFunc blocks for d or until ctx is done, returning ctx.Err() in the
// latter case.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the production SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Dispatcher sends queries to a Provider strictly one at a time. Before
// every search except its first it waits a random duration drawn
// uniformly from [MinDelay, MaxDelay]. A Dispatcher keeps that state
// across Dispatch calls, so an interactive session stays polite between
// batches. It is not safe for concurrent use.
type Dispatcher struct {
	Provider Provider
	Limit    int
	MinDelay time.Duration
	MaxDelay time.Duration

	// Sleep and Rand are replaced in tests; nil selects Sleep and
	// math/rand/v2.Float64.
	Sleep SleepFunc
	Rand  func() float64

	Logger *log.Logger

	calls int
}

// NewDispatcher returns a Dispatcher configured from cfg. Zero delay
// bounds select the defaults; use a Dispatcher literal for no delay.
func NewDispatcher(p Provider, cfg types.SearchConfig, logger *log.Logger) *Dispatcher {
	minDelay, maxDelay := cfg.MinDelay, cfg.MaxDelay
	if minDelay == 0 && maxDelay == 0 {
		minDelay, maxDelay = DefaultMinDelay, DefaultMaxDelay
	}
	return &Dispatcher{
		Provider: p,
		Limit:    clampLimit(cfg.Limit, 0),
		MinDelay: minDelay,
		MaxDelay: maxDelay,
		Logger:   logger,
	}
}

// Calls returns the number of searches issued so far.
func (d *Dispatcher) Calls() int { return d.calls }

// Delay draws the next politeness delay.
func (d *Dispatcher) Delay() time.Duration {
	lo, hi := d.MinDelay, d.MaxDelay
	if hi < lo {
		lo, hi = hi, lo
	}
	if hi == lo {
		return lo
	}
	r := d.Rand
	if r == nil {
		r = rand.Float64
	}
	return lo + time.Duration(r()*float64(hi-lo))
}

// Dispatch searches every query once, in lexical order, and returns one
// Outcome per distinct query in dispatch order. onOutcome, when non-nil,
// sees each Outcome as soon as it is known.
//
// A failed search is recorded as an Outcome without URLs and logged; the
// remaining queries still run. Cancelling ctx stops the loop between
// searches, during a delay or during a search; the outcomes collected so
// far are returned together with ctx.Err(). A search cut short by the
// cancellation leaves no outcome.
func (d *Dispatcher) Dispatch(ctx context.Context, queries []string, onOutcome func(types.Outcome)) ([]types.Outcome, error) {
	ordered := slices.Clone(queries)
	slices.Sort(ordered)
	ordered = slices.Compact(ordered)

	sleep := d.Sleep
	if sleep == nil {
		sleep = Sleep
	}
	logger := d.logger()

	outcomes := make([]types.Outcome, 0, len(ordered))
	for i, q := range ordered {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		if d.calls > 0 {
			wait := d.Delay()
			logger.Debug("politeness delay", "wait", wait.Round(10*time.Millisecond))
			if err := sleep(ctx, wait); err != nil {
				return outcomes, err
			}
		}

		d.calls++
		logger.Debug("searching", "query", q, "n", i+1, "of", len(ordered))
		o, err := d.searchOne(ctx, q)
		if err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, o)
		if onOutcome != nil {
			onOutcome(o)
		}
	}
	return outcomes, nil
}

// searchOne runs one search. A failure caused by cancelling ctx is not an
// outcome; searchOne returns ctx.Err() instead.
func (d *Dispatcher) searchOne(ctx context.Context, query string) (types.Outcome, error) {
	results, err := d.Provider.Search(ctx, query, d.Limit)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return types.Outcome{}, ctxErr
		}
		d.logger().Warn("search failed", "query", query, "provider", d.Provider.Name(), "err", err)
		return types.Outcome{Query: query, URLs: []string{}, Err: err.Error()}, nil
	}
	return types.Outcome{Query: query, URLs: urlsOf(results)}, nil
}

func (d *Dispatcher) logger() *log.Logger {
	if d.Logger == nil {
		return log.Default()
	}
	return d.Logger
}
