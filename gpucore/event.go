// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpucore

import "github.com/gogpu/gpucontext"

// WindowID identifies a native window for event routing. Zero is never a
// valid window.
type WindowID uint32

// EventType enumerates the OS events a Platform reports.
type EventType uint32

// Event types.
const (
	EventNone EventType = iota

	// EventQuit is an application-wide quit request (last window closed,
	// SIGINT, Cmd+Q).
	EventQuit

	// EventWindowCloseRequested is a close request for one window.
	EventWindowCloseRequested

	EventWindowResized
	EventWindowFocusGained
	EventWindowFocusLost
	EventKeyDown
	EventKeyUp
	EventMouseMotion
	EventMouseButtonDown
	EventMouseButtonUp
	EventMouseWheel
)

var eventTypeNames = [...]string{
	EventNone:                 "None",
	EventQuit:                 "Quit",
	EventWindowCloseRequested: "WindowCloseRequested",
	EventWindowResized:        "WindowResized",
	EventWindowFocusGained:    "WindowFocusGained",
	EventWindowFocusLost:      "WindowFocusLost",
	EventKeyDown:              "KeyDown",
	EventKeyUp:                "KeyUp",
	EventMouseMotion:          "MouseMotion",
	EventMouseButtonDown:      "MouseButtonDown",
	EventMouseButtonUp:        "MouseButtonUp",
	EventMouseWheel:           "MouseWheel",
}

// EventTypes lists every defined event type, in declaration order.
func EventTypes() []EventType {
	out := make([]EventType, len(eventTypeNames))
	for i := range eventTypeNames {
		out[i] = EventType(i)
	}
	return out
}

// String returns the event type name.
func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "Unknown"
}

// Event is a single OS event. Only the fields relevant to Type are set.
type Event struct {
	Type     EventType
	WindowID WindowID

	// Keyboard.
	Key    gpucontext.Key
	Mods   gpucontext.Modifiers
	Repeat bool

	// Mouse. X and Y are the cursor position for motion and button events
	// and the scroll offsets for wheel events.
	Button gpucontext.MouseButton
	X, Y   float64

	// Resize, in framebuffer pixels.
	Width, Height int
}
