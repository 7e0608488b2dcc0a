// Package form turns tuning-panel readings into chain messages. It has no
// raylib dependency so the mapping can be tested without a window.
package form

import "github.com/pthm-cable/trail/chain"

// Range widens [lo, hi] to include v. Sliders clamp to their range, so a
// configured value outside it would otherwise be rewritten on first draw.
func Range(v, lo, hi float32) (float32, float32) {
	return min(lo, v), max(hi, v)
}

// Reading is what the panel controls show after a draw.
type Reading struct {
	FollowSpeed  float32
	ParticleSize float32
	Segments     float32
	IdleWander   bool
}

// Changes returns one message per control whose reading differs from s.
func Changes(s chain.Settings, r Reading) []chain.Msg {
	var out []chain.Msg
	if r.FollowSpeed != float32(s.FollowSpeed) {
		out = append(out, chain.UpdateFollowSpeed{Value: float64(r.FollowSpeed)})
	}
	if r.ParticleSize != float32(s.ParticleSize) {
		out = append(out, chain.UpdateParticleSize{Value: float64(r.ParticleSize)})
	}
	if n := int(r.Segments + 0.5); n != s.SegmentCount {
		out = append(out, chain.UpdateSegmentCount{N: n})
	}
	if r.IdleWander != s.IdleWander {
		out = append(out, chain.UpdateIdleWander{Enabled: r.IdleWander})
	}
	return out
}

// Unchanged is the reading of controls nobody touched.
func Unchanged(s chain.Settings) Reading {
	return Reading{
		FollowSpeed:  float32(s.FollowSpeed),
		ParticleSize: float32(s.ParticleSize),
		Segments:     float32(s.SegmentCount),
		IdleWander:   s.IdleWander,
	}
}
