package engine

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/gogpu/engine/gpucore"
)

// testLayer implements every capability and records what it saw.
type testLayer struct {
	key     LayerKey
	consume bool

	events   []gpucore.EventType
	updates  []time.Duration
	renders  int
	attached *Context
	detached int

	trace *[]string
}

func (l *testLayer) Key() LayerKey { return l.key }

func (l *testLayer) OnEvent(ev gpucore.Event) bool {
	l.events = append(l.events, ev.Type)
	l.note("event")
	return l.consume
}

func (l *testLayer) OnUpdate(dt time.Duration) {
	l.updates = append(l.updates, dt)
	l.note("update")
}

func (l *testLayer) OnRender() {
	l.renders++
	l.note("render")
}

func (l *testLayer) OnAttach(ctx *Context) {
	l.attached = ctx
	l.note("attach")
}

func (l *testLayer) OnDetach() {
	l.detached++
	l.note("detach")
}

func (l *testLayer) note(hook string) {
	if l.trace != nil {
		*l.trace = append(*l.trace, string(l.key)+"."+hook)
	}
}

// keyOnly participates in no hooks.
type keyOnly LayerKey

func (k keyOnly) Key() LayerKey { return LayerKey(k) }

func TestLayerStackPushGet(t *testing.T) {
	s := NewLayerStack()
	a := &testLayer{key: "a"}
	if err := s.Push(a); err != nil {
		t.Fatalf("Push: %v", err)
	}

	got, ok := s.Get("a")
	if !ok || got != a {
		t.Errorf("Get(a) = %v, %v; want the pushed instance", got, ok)
	}
	if got, ok := s.Get("missing"); ok || got != nil {
		t.Errorf("Get(missing) = %v, %v; want nil, false", got, ok)
	}
}

func TestLayerStackDuplicateKey(t *testing.T) {
	s := NewLayerStack()
	_ = s.Push(&testLayer{key: "a"})
	err := s.Push(&testLayer{key: "a"})
	if !errors.Is(err, ErrDuplicateLayer) {
		t.Errorf("Push duplicate = %v, want ErrDuplicateLayer", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	if err := s.Push(nil); err == nil {
		t.Error("Push(nil) should fail")
	}
}

func TestLayerAs(t *testing.T) {
	s := NewLayerStack()
	a := &testLayer{key: "a"}
	_ = s.Push(a)
	_ = s.Push(keyOnly("plain"))

	got, ok := LayerAs[*testLayer](s, "a")
	if !ok || got != a {
		t.Errorf("LayerAs[*testLayer](a) = %v, %v", got, ok)
	}
	if _, ok := LayerAs[*testLayer](s, "plain"); ok {
		t.Error("LayerAs with the wrong type should fail")
	}
	if _, ok := LayerAs[Updater](s, "plain"); ok {
		t.Error("keyOnly does not implement Updater")
	}
	if _, ok := LayerAs[*testLayer](s, "missing"); ok {
		t.Error("LayerAs(missing) should fail")
	}
}

func TestTransitionReplacesOnlyItsSlot(t *testing.T) {
	s := NewLayerStack()
	a, b, c := &testLayer{key: "a"}, &testLayer{key: "b"}, &testLayer{key: "c"}
	for _, l := range []Layer{a, b, c} {
		_ = s.Push(l)
	}

	next := &testLayer{key: "b2"}
	s.RequestTransition("b", next)

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	if got, _ := s.Get("b"); got != b {
		t.Error("transition applied before ApplyPending")
	}
	if s.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", s.Pending())
	}

	if err := s.ApplyPending(); err != nil {
		t.Fatalf("ApplyPending: %v", err)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d after transition, want 3", s.Len())
	}
	want := []LayerKey{"a", "b2", "c"}
	if got := s.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if got, _ := s.Get("a"); got != a {
		t.Error("slot a changed")
	}
	if got, _ := s.Get("c"); got != c {
		t.Error("slot c changed")
	}
	if got, _ := s.Get("b2"); got != next {
		t.Error("slot b does not hold the new layer")
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d after apply, want 0", s.Pending())
	}
}

func TestTransitionToSameKey(t *testing.T) {
	s := NewLayerStack()
	old := &testLayer{key: "game"}
	_ = s.Push(old)
	fresh := &testLayer{key: "game"}
	s.RequestTransition("game", fresh)
	if err := s.ApplyPending(); err != nil {
		t.Fatalf("ApplyPending: %v", err)
	}
	if got, _ := s.Get("game"); got != fresh {
		t.Error("same-key transition did not replace the layer")
	}
}

func TestTransitionErrors(t *testing.T) {
	s := NewLayerStack()
	_ = s.Push(&testLayer{key: "a"})
	_ = s.Push(&testLayer{key: "b"})

	s.RequestTransition("missing", &testLayer{key: "x"})
	s.RequestTransition("a", &testLayer{key: "b"})
	s.RequestTransition("a", nil)

	err := s.ApplyPending()
	if !errors.Is(err, ErrLayerNotFound) {
		t.Errorf("ApplyPending error = %v, want ErrLayerNotFound", err)
	}
	if !errors.Is(err, ErrDuplicateLayer) {
		t.Errorf("ApplyPending error = %v, want ErrDuplicateLayer", err)
	}
	if want := []LayerKey{"a", "b"}; !reflect.DeepEqual(s.Keys(), want) {
		t.Errorf("Keys() = %v, want %v", s.Keys(), want)
	}
}

func TestTransitionHooks(t *testing.T) {
	var trace []string
	s := NewLayerStack()
	ctx := &Context{}
	old := &testLayer{key: "old", trace: &trace}
	_ = s.Push(old)
	s.bind(ctx)

	next := &testLayer{key: "new", trace: &trace}
	s.RequestTransition("old", next)
	_ = s.ApplyPending()

	want := []string{"old.attach", "old.detach", "new.attach"}
	if !reflect.DeepEqual(trace, want) {
		t.Errorf("hooks = %v, want %v", trace, want)
	}
	if next.attached != ctx {
		t.Error("incoming layer not attached to the stack context")
	}
}

func TestUnboundStackSkipsHooks(t *testing.T) {
	s := NewLayerStack()
	l := &testLayer{key: "a"}
	_ = s.Push(l)
	s.RequestTransition("a", &testLayer{key: "b"})
	_ = s.ApplyPending()
	s.unbind()
	if l.attached != nil || l.detached != 0 {
		t.Error("hooks ran on an unbound stack")
	}
}

func TestUpdateRenderOrder(t *testing.T) {
	var trace []string
	s := NewLayerStack()
	_ = s.Push(&testLayer{key: "a", trace: &trace})
	_ = s.Push(keyOnly("skip"))
	_ = s.Push(&testLayer{key: "b", trace: &trace})

	s.update(time.Millisecond)
	s.render()

	want := []string{"a.update", "b.update", "a.render", "b.render"}
	if !reflect.DeepEqual(trace, want) {
		t.Errorf("order = %v, want %v", trace, want)
	}
}

func TestDispatchTopFirst(t *testing.T) {
	var trace []string
	s := NewLayerStack()
	bottom := &testLayer{key: "bottom", trace: &trace}
	top := &testLayer{key: "top", trace: &trace, consume: true}
	_ = s.Push(bottom)
	_ = s.Push(top)

	if !s.dispatch(gpucore.Event{Type: gpucore.EventKeyDown}) {
		t.Error("dispatch should report the event handled")
	}
	if len(bottom.events) != 0 {
		t.Error("event reached the bottom layer after the top consumed it")
	}

	top.consume = false
	trace = nil
	if s.dispatch(gpucore.Event{Type: gpucore.EventMouseMotion}) {
		t.Error("dispatch should report unhandled")
	}
	if want := []string{"top.event", "bottom.event"}; !reflect.DeepEqual(trace, want) {
		t.Errorf("dispatch order = %v, want %v", trace, want)
	}
}

func TestUnbindDetachesTopFirst(t *testing.T) {
	var trace []string
	s := NewLayerStack()
	_ = s.Push(&testLayer{key: "a", trace: &trace})
	_ = s.Push(&testLayer{key: "b", trace: &trace})
	s.bind(&Context{})
	trace = nil
	s.unbind()
	if want := []string{"b.detach", "a.detach"}; !reflect.DeepEqual(trace, want) {
		t.Errorf("detach order = %v, want %v", trace, want)
	}
}
