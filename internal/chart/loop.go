package chart

import (
	"context"
	"time"

	"github.com/facebookgo/clock"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

type request struct {
	fn   func(c *Controller, now time.Time)
	done chan struct{}
}

// Loop serialises access to a Controller on a single goroutine. Callers
// submit work with Do; Run executes it in arrival order, stamping each call
// with the loop's clock.
type Loop struct {
	ctrl  *Controller
	clock clock.Clock
	reqs  chan request
}

// NewLoop wraps ctrl. A nil clock uses the wall clock.
func NewLoop(ctrl *Controller, clk clock.Clock) *Loop {
	if clk == nil {
		clk = clock.New()
	}
	return &Loop{ctrl: ctrl, clock: clk, reqs: make(chan request)}
}

// Clock returns the loop's time source.
func (l *Loop) Clock() clock.Clock { return l.clock }

// Run processes submitted work until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	zap.L().Info("chart: event loop started", zap.Int("markers", len(l.ctrl.Records())))
	for {
		select {
		case <-ctx.Done():
			zap.L().Info("chart: event loop stopped")
			return nil
		case req := <-l.reqs:
			req.fn(l.ctrl, l.clock.Now())
			close(req.done)
		}
	}
}

// Do runs fn on the loop goroutine and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func(c *Controller, now time.Time)) error {
	req := request{fn: fn, done: make(chan struct{})}
	select {
	case l.reqs <- req:
	case <-ctx.Done():
		return eris.Wrap(ctx.Err(), "chart: submit")
	}
	select {
	case <-req.done:
		return nil
	case <-ctx.Done():
		return eris.Wrap(ctx.Err(), "chart: wait")
	}
}
