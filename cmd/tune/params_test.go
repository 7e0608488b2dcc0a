package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/trail/config"
)

func TestParamVectorNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-12 {
			t.Errorf("%s: got %v, want %v", pv.Specs[i].Name, back[i], raw[i])
		}
	}
}

func TestParamVectorClamp(t *testing.T) {
	pv := NewParamVector()
	got := pv.Clamp([]float64{-1, 500})
	if got[0] != pv.Specs[0].Min || got[1] != pv.Specs[1].Max {
		t.Errorf("expected values clamped to bounds, got %v", got)
	}
}

func TestApplyToConfigRoundsSegments(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	pv := NewParamVector()
	pv.ApplyToConfig(cfg, []float64{0.25, 7.6})

	if cfg.Chain.FollowSpeed != 0.25 {
		t.Errorf("expected follow speed 0.25, got %v", cfg.Chain.FollowSpeed)
	}
	if cfg.Chain.SegmentCount != 8 {
		t.Errorf("expected 8 segments, got %d", cfg.Chain.SegmentCount)
	}

	got := pv.ExtractFromConfig(cfg)
	if got[0] != 0.25 || got[1] != 8 {
		t.Errorf("unexpected extracted values %v", got)
	}
}

func TestDefaultsMatchConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	pv := NewParamVector()
	want := pv.ExtractFromConfig(cfg)
	got := pv.DefaultVector()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s default = %v, config has %v", pv.Specs[i].Name, got[i], want[i])
		}
	}
}
