package engine

import (
	"testing"
	"time"

	"github.com/gogpu/engine/internal/fake"
	"github.com/gogpu/engine/render"
	"github.com/gogpu/gpucontext"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.clearColor != render.Black {
		t.Errorf("clearColor = %v, want black", o.clearColor)
	}
	if o.quitKey != gpucontext.KeyUnknown {
		t.Errorf("quitKey = %v, want none", o.quitKey)
	}
	if o.minDelta != time.Millisecond || o.maxDelta != 100*time.Millisecond {
		t.Errorf("delta clamp = [%v, %v], want [1ms, 100ms]", o.minDelta, o.maxDelta)
	}
	if o.platform != nil || o.gpu != nil || o.driver != "" || o.clock != nil {
		t.Error("platform, gpu, driver and clock should default to unset")
	}
}

func TestOptionsApplied(t *testing.T) {
	log := &fake.Log{}
	p := fake.NewPlatform(log)
	g := fake.NewGPU(log)
	clock := func() time.Duration { return 0 }

	a := New(DefaultApplicationSpecification(),
		WithPlatform(p),
		WithGPU(g),
		WithClearColor(render.Red),
		WithDriver("metal"),
		WithClock(clock),
		WithQuitKey(gpucontext.KeyQ),
		WithDeltaClamp(2*time.Millisecond, 50*time.Millisecond),
	)

	if a.platform != p {
		t.Error("WithPlatform not applied")
	}
	if a.gpu != g {
		t.Error("WithGPU not applied")
	}
	if a.pass.Color != render.Red {
		t.Errorf("clear color = %v, want red", a.pass.Color)
	}
	if a.opts.driver != "metal" {
		t.Errorf("driver = %q, want metal", a.opts.driver)
	}
	if a.opts.clock == nil {
		t.Error("WithClock not applied")
	}
	if a.opts.quitKey != gpucontext.KeyQ {
		t.Errorf("quitKey = %v, want Q", a.opts.quitKey)
	}
	if a.opts.minDelta != 2*time.Millisecond || a.opts.maxDelta != 50*time.Millisecond {
		t.Errorf("delta clamp = [%v, %v]", a.opts.minDelta, a.opts.maxDelta)
	}
}

func TestWithDeltaClampIgnoresInvalid(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi time.Duration
	}{
		{"zero min", 0, time.Second},
		{"negative", -time.Millisecond, time.Second},
		{"inverted", time.Second, time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := defaultOptions()
			WithDeltaClamp(tt.lo, tt.hi)(&o)
			if o.minDelta != MinDelta || o.maxDelta != MaxDelta {
				t.Errorf("clamp changed to [%v, %v]", o.minDelta, o.maxDelta)
			}
		})
	}
}

func TestNilLoggerFallsBackToPackageLogger(t *testing.T) {
	a := New(DefaultApplicationSpecification())
	if a.log != Logger() {
		t.Error("application without WithLogger should use Logger()")
	}
}
