// Package anim evaluates time-based tweens against a clock.
package anim

import (
	"math"
	"time"

	"github.com/facebookgo/clock"
)

// DefaultDuration is the length of a transition when none is configured.
const DefaultDuration = time.Second

// Easing maps normalized time t in [0,1] onto normalized progress.
type Easing func(t float64) float64

// CubicInOut accelerates through the first half and decelerates through the
// second.
func CubicInOut(t float64) float64 {
	t *= 2
	if t <= 1 {
		return t * t * t / 2
	}
	t -= 2
	return (t*t*t + 2) / 2
}

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

// NewClock returns the wall clock.
func NewClock() clock.Clock { return clock.New() }

// Tween moves a single value from From to To over Duration starting at
// Start. The zero Duration makes a static value.
type Tween struct {
	From     float64
	To       float64
	Start    time.Time
	Duration time.Duration
	Ease     Easing
}

// Static returns a tween that already rests at v.
func Static(v float64) Tween {
	return Tween{From: v, To: v}
}

// Move returns a tween from one value to another beginning at now.
func Move(from, to float64, now time.Time, d time.Duration) Tween {
	return Tween{From: from, To: to, Start: now, Duration: d, Ease: CubicInOut}
}

// Progress returns the raw (un-eased) fraction of the tween elapsed at now.
func (t Tween) Progress(now time.Time) float64 {
	if t.Duration <= 0 {
		return 1
	}
	p := float64(now.Sub(t.Start)) / float64(t.Duration)
	return math.Min(1, math.Max(0, p))
}

// At interpolates the value at now.
func (t Tween) At(now time.Time) float64 {
	p := t.Progress(now)
	if p >= 1 {
		return t.To
	}
	if p <= 0 {
		return t.From
	}
	ease := t.Ease
	if ease == nil {
		ease = CubicInOut
	}
	return t.From + (t.To-t.From)*ease(p)
}

// Done reports whether the tween has reached its target at now.
func (t Tween) Done(now time.Time) bool {
	return t.Progress(now) >= 1
}

// Elapsed returns how far into the tween now is, clamped to [0, Duration].
func (t Tween) Elapsed(now time.Time) time.Duration {
	return time.Duration(t.Progress(now) * float64(t.Duration))
}

// Retarget starts a new tween toward to from the value interpolated at now.
// An in-flight tween is interrupted rather than queued.
func (t Tween) Retarget(to float64, now time.Time, d time.Duration) Tween {
	return Move(t.At(now), to, now, d)
}
