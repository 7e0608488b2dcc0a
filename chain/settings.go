// Package chain models a chain of particles trailing the pointer.
//
// The model is a value: every transformation returns a new Model and never
// writes through to the particle slice of its input.
package chain

import "image/color"

// Settings configures the chain. Replace it wholesale to reconfigure.
type Settings struct {
	ParticleSize float64 // half-width base of each particle's silhouette
	FollowSpeed  float64 // fraction of remaining distance closed per scaled step
	SegmentCount int     // trailing particles besides the lead
	CanvasWidth  float64
	CanvasHeight float64

	// IdleWander makes the lead orbit the canvas centre until the pointer moves.
	IdleWander bool
	Wander     WanderSettings

	// TickDivisor scales elapsed milliseconds into simulation steps.
	TickDivisor float64

	FillColor color.RGBA
}

// WanderSettings controls idle orbiting.
type WanderSettings struct {
	Radius   float64
	SpeedMin float64 // radians per frame
	SpeedMax float64

	// IndependentAxes gives each axis its own phase and speed, tracing a
	// Lissajous figure instead of a circle.
	IndependentAxes bool
}

// DefaultSettings returns the stock configuration.
func DefaultSettings() Settings {
	return Settings{
		ParticleSize: 24,
		FollowSpeed:  0.1,
		SegmentCount: 16,
		CanvasWidth:  800,
		CanvasHeight: 600,
		IdleWander:   true,
		Wander: WanderSettings{
			Radius:   150,
			SpeedMin: 0.01,
			SpeedMax: 0.03,
		},
		TickDivisor: 10,
		FillColor:   color.RGBA{R: 0xf0, G: 0x5a, B: 0x28, A: 0xff},
	}
}

// Count returns the number of particles the settings call for.
func (s Settings) Count() int {
	if s.SegmentCount < 0 {
		return 1
	}
	return s.SegmentCount + 1
}

// Center returns the canvas centre.
func (s Settings) Center() Position {
	return Position{X: s.CanvasWidth / 2, Y: s.CanvasHeight / 2}
}
