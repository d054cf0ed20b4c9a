// Command brain opens a window and clears it every frame through the
// engine's layer loop.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/gogpu/engine"
	_ "github.com/gogpu/engine/backend/wgpu"
	"github.com/gogpu/engine/internal/platform/glfw"
	"github.com/gogpu/engine/render"
	"github.com/gogpu/gpucontext"
)

// GLFW and the native GPU surface must stay on the main thread.
func init() { runtime.LockOSThread() }

func main() {
	var (
		driver   = flag.String("driver", "", "force a GPU driver (vulkan, metal, direct3d12, opengl, software)")
		logLevel = flag.String("log-level", "info", "log level: debug, info, warn, error")
		width    = flag.Uint("width", 1280, "window width")
		height   = flag.Uint("height", 720, "window height")
		title    = flag.String("title", "Brain", "window title")
	)
	flag.Parse()

	if *driver == "" {
		*driver = os.Getenv("BRAIN_DRIVER")
	}

	level, err := parseLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	engine.SetLogger(logger)

	spec := engine.DefaultApplicationSpecification()
	spec.Name = "Brain"
	spec.Identifier = "com.brain.brian-app"
	spec.Window.Title = *title
	spec.Window.Width = uint32(*width)
	spec.Window.Height = uint32(*height)

	app := engine.New(spec,
		engine.WithPlatform(glfw.New(logger)),
		engine.WithDriver(*driver),
		engine.WithClearColor(render.Red),
		engine.WithQuitKey(gpucontext.KeyEscape),
	)
	if err := app.PushLayer(NewAppLayer()); err != nil {
		logger.Error("push layer", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		logger.Error("brain: exiting", "error", err)
		stop()
		os.Exit(1)
	}
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid -log-level %q: %w", s, err)
	}
	return l, nil
}
