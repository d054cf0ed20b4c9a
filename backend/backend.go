package backend

import (
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/engine/gpucore"
	"github.com/gogpu/engine/internal/logging"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")
)

// Backend name constants.
const (
	// BackendWGPU is the Pure Go WebGPU backend (gogpu/wgpu).
	BackendWGPU = "wgpu"
	// BackendSoftware is the CPU backend. It clears into host memory and
	// needs no graphics driver.
	BackendSoftware = "software"
)

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(logging.Nop())
}

// SetLogger sets the logger passed to GPUs created by Get and Default.
// Pass nil to disable logging.
func SetLogger(l *slog.Logger) {
	loggerPtr.Store(logging.Or(l))
}

// Logger returns the backend logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by GPUs that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// propagateLogger passes the current logger to g if it accepts one.
func propagateLogger(g gpucore.GPU) {
	if ls, ok := g.(loggerSetter); ok {
		ls.SetLogger(Logger())
	}
}
