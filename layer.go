// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/engine/gpucore"
)

// LayerKey identifies a layer in a LayerStack. Keys are unique per stack.
type LayerKey string

// Layer is a unit of per-frame behavior. A layer takes part in a hook by
// implementing the matching capability interface: EventHandler, Updater,
// Renderer, Attacher or Detacher.
type Layer interface {
	Key() LayerKey
}

// EventHandler receives OS events the application did not claim. Handlers
// are offered events top of stack first; returning true stops the walk.
type EventHandler interface {
	OnEvent(ev gpucore.Event) bool
}

// Updater is called once per frame with the clamped frame delta.
type Updater interface {
	OnUpdate(dt time.Duration)
}

// Renderer is called once per frame after every Updater.
type Renderer interface {
	OnRender()
}

// Attacher is called when the layer joins a running application.
type Attacher interface {
	OnAttach(ctx *Context)
}

// Detacher is called when the layer leaves the stack or the application
// quits.
type Detacher interface {
	OnDetach()
}

// Layer stack errors.
var (
	ErrLayerNotFound  = errors.New("engine: layer not found")
	ErrDuplicateLayer = errors.New("engine: duplicate layer key")
)

type transition struct {
	from LayerKey
	to   Layer
}

// LayerStack owns the application's layers in push order. Replacements
// requested while frame hooks run are queued and applied by ApplyPending
// between frames, so the stack never changes under an iteration.
type LayerStack struct {
	layers  []Layer
	pending []transition
	ctx     *Context
}

// NewLayerStack returns an empty stack.
func NewLayerStack() *LayerStack {
	return &LayerStack{}
}

// Push appends l. If the stack is bound to a running application, l is
// attached immediately.
func (s *LayerStack) Push(l Layer) error {
	if l == nil {
		return errors.New("engine: nil layer")
	}
	if _, ok := s.index(l.Key()); ok {
		return fmt.Errorf("%w: %q", ErrDuplicateLayer, l.Key())
	}
	s.layers = append(s.layers, l)
	s.attach(l)
	return nil
}

// Get returns the layer pushed under key.
func (s *LayerStack) Get(key LayerKey) (Layer, bool) {
	i, ok := s.index(key)
	if !ok {
		return nil, false
	}
	return s.layers[i], true
}

// Len returns the number of layers.
func (s *LayerStack) Len() int { return len(s.layers) }

// Keys returns the layer keys in stack order.
func (s *LayerStack) Keys() []LayerKey {
	keys := make([]LayerKey, len(s.layers))
	for i, l := range s.layers {
		keys[i] = l.Key()
	}
	return keys
}

// RequestTransition queues the replacement of the layer keyed from by to.
// Nothing changes until ApplyPending.
func (s *LayerStack) RequestTransition(from LayerKey, to Layer) {
	s.pending = append(s.pending, transition{from: from, to: to})
}

// Pending returns the number of queued transitions.
func (s *LayerStack) Pending() int { return len(s.pending) }

// ApplyPending applies queued transitions in request order. Each one
// detaches the outgoing layer, puts the incoming layer in the same slot
// and attaches it; other slots and the stack length are unchanged.
// Transitions naming an unknown key, or whose incoming key is already used
// by another slot, are dropped and reported in the returned error.
func (s *LayerStack) ApplyPending() error {
	if len(s.pending) == 0 {
		return nil
	}
	queue := s.pending
	s.pending = nil

	var errs []error
	for _, t := range queue {
		i, ok := s.index(t.from)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: transition from %q", ErrLayerNotFound, t.from))
			continue
		}
		if t.to == nil {
			errs = append(errs, fmt.Errorf("engine: nil transition target for %q", t.from))
			continue
		}
		if j, ok := s.index(t.to.Key()); ok && j != i {
			errs = append(errs, fmt.Errorf("%w: transition %q -> %q", ErrDuplicateLayer, t.from, t.to.Key()))
			continue
		}
		s.detach(s.layers[i])
		s.layers[i] = t.to
		s.attach(t.to)
	}
	return errors.Join(errs...)
}

// LayerAs returns the layer keyed key as a T.
func LayerAs[T any](s *LayerStack, key LayerKey) (T, bool) {
	var zero T
	l, ok := s.Get(key)
	if !ok {
		return zero, false
	}
	t, ok := l.(T)
	return t, ok
}

func (s *LayerStack) index(key LayerKey) (int, bool) {
	for i, l := range s.layers {
		if l.Key() == key {
			return i, true
		}
	}
	return 0, false
}

func (s *LayerStack) update(dt time.Duration) {
	for _, l := range s.layers {
		if u, ok := l.(Updater); ok {
			u.OnUpdate(dt)
		}
	}
}

func (s *LayerStack) render() {
	for _, l := range s.layers {
		if r, ok := l.(Renderer); ok {
			r.OnRender()
		}
	}
}

// dispatch offers ev to event handlers from the top of the stack down.
func (s *LayerStack) dispatch(ev gpucore.Event) bool {
	for i := len(s.layers) - 1; i >= 0; i-- {
		if h, ok := s.layers[i].(EventHandler); ok && h.OnEvent(ev) {
			return true
		}
	}
	return false
}

// bind attaches every layer to ctx. Layers pushed later attach on push.
func (s *LayerStack) bind(ctx *Context) {
	s.ctx = ctx
	for _, l := range s.layers {
		s.attach(l)
	}
}

// unbind detaches every layer, top first.
func (s *LayerStack) unbind() {
	if s.ctx == nil {
		return
	}
	for i := len(s.layers) - 1; i >= 0; i-- {
		s.detach(s.layers[i])
	}
	s.ctx = nil
}

func (s *LayerStack) attach(l Layer) {
	if s.ctx == nil {
		return
	}
	if a, ok := l.(Attacher); ok {
		a.OnAttach(s.ctx)
	}
}

func (s *LayerStack) detach(l Layer) {
	if s.ctx == nil {
		return
	}
	if d, ok := l.(Detacher); ok {
		d.OnDetach()
	}
}
