package config

import "github.com/pthm-cable/trail/chain"

// ChainSettings maps the loaded config onto chain settings.
func (c *Config) ChainSettings() chain.Settings {
	return chain.Settings{
		ParticleSize: c.Chain.ParticleSize,
		FollowSpeed:  c.Chain.FollowSpeed,
		SegmentCount: c.Chain.SegmentCount,
		CanvasWidth:  float64(c.Screen.Width),
		CanvasHeight: float64(c.Screen.Height),
		IdleWander:   c.Chain.IdleWander,
		Wander: chain.WanderSettings{
			Radius:          c.Wander.Radius,
			SpeedMin:        c.Wander.SpeedMin,
			SpeedMax:        c.Wander.SpeedMax,
			IndependentAxes: c.Wander.IndependentAxes,
		},
		TickDivisor: c.Chain.TickDivisor,
		FillColor:   c.Derived.Fill,
	}
}
