// Package redraw paces render passes. Invalidation requests can
// arrive far faster than frames should be drawn; hosts ask the pacer
// before each pass and skip it when the frame budget is spent. A
// declined pass is not queued anywhere; the caller's dirty state
// (the surface's invalidation flag, an overlay bit) stays set and
// the next frame simply asks again.
package redraw

import "golang.org/x/time/rate"

// DefaultFrameRate is used when a pacer is created with a
// non-positive rate.
const DefaultFrameRate = 30

// Pacer admits at most one render pass per frame interval. A nil
// pacer admits everything.
type Pacer struct {
	limiter *rate.Limiter
}

func NewPacer(framesPerSecond float64) *Pacer {
	if framesPerSecond <= 0 {
		framesPerSecond = DefaultFrameRate
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Limit(framesPerSecond), 1)}
}

// Admit reports whether a render pass may run now.
func (p *Pacer) Admit() bool {
	if p == nil {
		return true
	}
	return p.limiter.Allow()
}

// SetFrameRate adjusts the admission rate for subsequent passes.
func (p *Pacer) SetFrameRate(framesPerSecond float64) {
	if p == nil || framesPerSecond <= 0 {
		return
	}
	p.limiter.SetLimit(rate.Limit(framesPerSecond))
}
