// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glfw

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/gpucontext"
)

var keyMap = map[glfw.Key]gpucontext.Key{
	glfw.KeySpace:        gpucontext.KeySpace,
	glfw.KeyApostrophe:   gpucontext.KeyApostrophe,
	glfw.KeyComma:        gpucontext.KeyComma,
	glfw.KeyMinus:        gpucontext.KeyMinus,
	glfw.KeyPeriod:       gpucontext.KeyPeriod,
	glfw.KeySlash:        gpucontext.KeySlash,
	glfw.KeySemicolon:    gpucontext.KeySemicolon,
	glfw.KeyEqual:        gpucontext.KeyEqual,
	glfw.KeyLeftBracket:  gpucontext.KeyLeftBracket,
	glfw.KeyBackslash:    gpucontext.KeyBackslash,
	glfw.KeyRightBracket: gpucontext.KeyRightBracket,
	glfw.KeyGraveAccent:  gpucontext.KeyGrave,

	glfw.KeyEscape:    gpucontext.KeyEscape,
	glfw.KeyEnter:     gpucontext.KeyEnter,
	glfw.KeyTab:       gpucontext.KeyTab,
	glfw.KeyBackspace: gpucontext.KeyBackspace,
	glfw.KeyInsert:    gpucontext.KeyInsert,
	glfw.KeyDelete:    gpucontext.KeyDelete,
	glfw.KeyRight:     gpucontext.KeyRight,
	glfw.KeyLeft:      gpucontext.KeyLeft,
	glfw.KeyDown:      gpucontext.KeyDown,
	glfw.KeyUp:        gpucontext.KeyUp,
	glfw.KeyPageUp:    gpucontext.KeyPageUp,
	glfw.KeyPageDown:  gpucontext.KeyPageDown,
	glfw.KeyHome:      gpucontext.KeyHome,
	glfw.KeyEnd:       gpucontext.KeyEnd,

	glfw.KeyCapsLock:    gpucontext.KeyCapsLock,
	glfw.KeyScrollLock:  gpucontext.KeyScrollLock,
	glfw.KeyNumLock:     gpucontext.KeyNumLock,
	glfw.KeyPrintScreen: gpucontext.KeyPrintScreen,
	glfw.KeyPause:       gpucontext.KeyPause,

	glfw.KeyKPDecimal:  gpucontext.KeyNumpadDecimal,
	glfw.KeyKPDivide:   gpucontext.KeyNumpadDivide,
	glfw.KeyKPMultiply: gpucontext.KeyNumpadMultiply,
	glfw.KeyKPSubtract: gpucontext.KeyNumpadSubtract,
	glfw.KeyKPAdd:      gpucontext.KeyNumpadAdd,
	glfw.KeyKPEnter:    gpucontext.KeyNumpadEnter,

	glfw.KeyLeftShift:    gpucontext.KeyLeftShift,
	glfw.KeyRightShift:   gpucontext.KeyRightShift,
	glfw.KeyLeftControl:  gpucontext.KeyLeftControl,
	glfw.KeyRightControl: gpucontext.KeyRightControl,
	glfw.KeyLeftAlt:      gpucontext.KeyLeftAlt,
	glfw.KeyRightAlt:     gpucontext.KeyRightAlt,
	glfw.KeyLeftSuper:    gpucontext.KeyLeftSuper,
	glfw.KeyRightSuper:   gpucontext.KeyRightSuper,
}

// mapKey converts a GLFW key code. Letter, digit, function and keypad
// ranges are contiguous on both sides.
func mapKey(k glfw.Key) gpucontext.Key {
	switch {
	case k >= glfw.KeyA && k <= glfw.KeyZ:
		return gpucontext.KeyA + gpucontext.Key(k-glfw.KeyA)
	case k >= glfw.Key0 && k <= glfw.Key9:
		return gpucontext.Key0 + gpucontext.Key(k-glfw.Key0)
	case k >= glfw.KeyF1 && k <= glfw.KeyF12:
		return gpucontext.KeyF1 + gpucontext.Key(k-glfw.KeyF1)
	case k >= glfw.KeyKP0 && k <= glfw.KeyKP9:
		return gpucontext.KeyNumpad0 + gpucontext.Key(k-glfw.KeyKP0)
	}
	if key, ok := keyMap[k]; ok {
		return key
	}
	return gpucontext.KeyUnknown
}

func mapMods(m glfw.ModifierKey) gpucontext.Modifiers {
	var out gpucontext.Modifiers
	if m&glfw.ModShift != 0 {
		out |= gpucontext.ModShift
	}
	if m&glfw.ModControl != 0 {
		out |= gpucontext.ModControl
	}
	if m&glfw.ModAlt != 0 {
		out |= gpucontext.ModAlt
	}
	if m&glfw.ModSuper != 0 {
		out |= gpucontext.ModSuper
	}
	if m&glfw.ModCapsLock != 0 {
		out |= gpucontext.ModCapsLock
	}
	if m&glfw.ModNumLock != 0 {
		out |= gpucontext.ModNumLock
	}
	return out
}

func mapButton(b glfw.MouseButton) gpucontext.MouseButton {
	switch b {
	case glfw.MouseButtonRight:
		return gpucontext.MouseButtonRight
	case glfw.MouseButtonMiddle:
		return gpucontext.MouseButtonMiddle
	case glfw.MouseButton4:
		return gpucontext.MouseButton4
	case glfw.MouseButton5:
		return gpucontext.MouseButton5
	default:
		return gpucontext.MouseButtonLeft
	}
}
