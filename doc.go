// Package engine is a small real-time application framework on a native
// window and a GPU device.
//
// # Overview
//
// An Application owns one window, one GPU device bound to it, and a stack
// of layers. Each frame it polls OS events, updates and renders every
// layer, applies queued layer transitions, and clears the swapchain image
// to a solid color.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/engine"
//	    _ "github.com/gogpu/engine/backend/wgpu"
//	    "github.com/gogpu/engine/internal/platform/glfw"
//	)
//
//	func init() { runtime.LockOSThread() }
//
//	func main() {
//	    app := engine.New(engine.DefaultApplicationSpecification(),
//	        engine.WithPlatform(glfw.New(nil)))
//	    if err := app.Run(context.Background()); err != nil {
//	        os.Exit(1)
//	    }
//	}
//
// # Layers
//
// A layer is any value with a Key method. It takes part in frame hooks by
// implementing EventHandler, Updater, Renderer, Attacher or Detacher:
//
//	type hud struct{ ctx *engine.Context }
//
//	func (h *hud) Key() engine.LayerKey          { return "hud" }
//	func (h *hud) OnAttach(ctx *engine.Context)  { h.ctx = ctx }
//	func (h *hud) OnUpdate(dt time.Duration)     { ... }
//
// Layers are looked up by key (LayerStack.Get, LayerAs). A layer replaces
// itself with Context.Transition; the replacement is applied after the
// frame's hooks have run.
//
// # Drivers
//
// The device prefers vulkan, then metal, then direct3d12, and otherwise
// lets the GPU library pick its platform default. WithDriver forces one.
//
// # Errors
//
// Init failures wrap ErrPlatformInit, ErrWindowCreate, ErrDeviceCreate or
// ErrClaimWindow; frame failures wrap ErrSwapchainAcquire or ErrSubmit.
// Every failure ends the loop; nothing is retried.
//
// # Logging
//
// The engine is silent by default. SetLogger installs a slog.Logger for the
// engine and its GPU backends.
package engine
