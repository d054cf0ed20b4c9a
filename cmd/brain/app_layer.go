package main

import (
	"log/slog"
	"time"

	"github.com/gogpu/engine"
	"github.com/gogpu/engine/gpucore"
	"github.com/gogpu/gpucontext"
)

// AppLayer is the example application layer. It logs a frame-rate summary
// once a second and reports resizes and mouse clicks.
type AppLayer struct {
	ctx *engine.Context
	log *slog.Logger

	elapsed time.Duration
	frames  int
}

// NewAppLayer returns an unattached AppLayer.
func NewAppLayer() *AppLayer { return &AppLayer{} }

func (l *AppLayer) Key() engine.LayerKey { return "app" }

func (l *AppLayer) OnAttach(ctx *engine.Context) {
	l.ctx = ctx
	l.log = ctx.Logger()
	dev := ctx.Device()
	info := dev.AdapterInfo()
	l.log.Info("app: attached",
		"driver", dev.Driver(),
		"adapter", info.Name,
		"surface", dev.SurfaceFormat().String(),
		"framebuffer", ctx.Window().FramebufferSize())
}

func (l *AppLayer) OnDetach() {
	l.log.Info("app: detached", "frames", l.ctx.Frame())
}

func (l *AppLayer) OnUpdate(dt time.Duration) {
	l.elapsed += dt
	l.frames++
	if l.elapsed < time.Second {
		return
	}
	l.log.Debug("app: frame rate",
		"fps", float64(l.frames)/l.elapsed.Seconds(),
		"frame", l.ctx.Frame())
	l.elapsed = 0
	l.frames = 0
}

func (l *AppLayer) OnEvent(ev gpucore.Event) bool {
	switch ev.Type {
	case gpucore.EventWindowResized:
		l.log.Debug("app: resized", "width", ev.Width, "height", ev.Height)
	case gpucore.EventMouseButtonDown:
		if ev.Button == gpucontext.MouseButtonLeft {
			l.log.Debug("app: click", "pos", l.ctx.Window().MousePos())
			return true
		}
	}
	return false
}
