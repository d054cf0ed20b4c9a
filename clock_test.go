package engine

import (
	"testing"
	"time"
)

func TestClampDelta(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want time.Duration
	}{
		{"zero", 0, time.Millisecond},
		{"negative", -5 * time.Millisecond, time.Millisecond},
		{"below min", 500 * time.Microsecond, time.Millisecond},
		{"min", time.Millisecond, time.Millisecond},
		{"typical", 16 * time.Millisecond, 16 * time.Millisecond},
		{"max", 100 * time.Millisecond, 100 * time.Millisecond},
		{"debugger pause", 500 * time.Millisecond, 100 * time.Millisecond},
		{"long stall", 10 * time.Second, 100 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampDelta(tt.d, MinDelta, MaxDelta); got != tt.want {
				t.Errorf("ClampDelta(%v) = %v, want %v", tt.d, got, tt.want)
			}
		})
	}
}

func TestFrameClockTick(t *testing.T) {
	ticks := []time.Duration{
		1000 * time.Millisecond, // construction
		1016 * time.Millisecond,
		1516 * time.Millisecond,
		1516 * time.Millisecond,
	}
	i := 0
	now := func() time.Duration {
		v := ticks[i]
		i++
		return v
	}
	c := newFrameClock(now, MinDelta, MaxDelta)

	want := []time.Duration{16 * time.Millisecond, 100 * time.Millisecond, time.Millisecond}
	for n, w := range want {
		if got := c.Tick(); got != w {
			t.Errorf("Tick #%d = %v, want %v", n, got, w)
		}
	}
}
