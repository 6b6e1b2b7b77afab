//go:build linux

// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package keymap

import (
	"github.com/opentty/termkbd/internal/evdev"
	"github.com/opentty/termkbd/internal/keysyms"
)

// keytabSize is the fixed upper bound on keycodes this backend knows
// about: everything from KEY_RESERVED through KEY_RIGHTMETA, inclusive.
const keytabSize = evdev.KEY_RIGHTMETA + 1

// These tables do not contain every key from linux/input-event-codes.h.
// A keycode absent from a table maps to keysym 0 and is treated as not
// found by the layered lookup in process_key.
var keytabNormal = [keytabSize]uint32{
	evdev.KEY_ESC:         keysyms.Escape,
	evdev.KEY_1:           keysyms.Digit1,
	evdev.KEY_2:           keysyms.Digit2,
	evdev.KEY_3:           keysyms.Digit3,
	evdev.KEY_4:           keysyms.Digit4,
	evdev.KEY_5:           keysyms.Digit5,
	evdev.KEY_6:           keysyms.Digit6,
	evdev.KEY_7:           keysyms.Digit7,
	evdev.KEY_8:           keysyms.Digit8,
	evdev.KEY_9:           keysyms.Digit9,
	evdev.KEY_0:           keysyms.Digit0,
	evdev.KEY_MINUS:       keysyms.Minus,
	evdev.KEY_EQUAL:       keysyms.Equal,
	evdev.KEY_BACKSPACE:   keysyms.BackSpace,
	evdev.KEY_TAB:         keysyms.Tab,
	evdev.KEY_Q:           keysyms.Lowerq,
	evdev.KEY_W:           keysyms.Lowerw,
	evdev.KEY_E:           keysyms.Lowere,
	evdev.KEY_R:           keysyms.Lowerr,
	evdev.KEY_T:           keysyms.Lowert,
	evdev.KEY_Y:           keysyms.Lowery,
	evdev.KEY_U:           keysyms.Loweru,
	evdev.KEY_I:           keysyms.Loweri,
	evdev.KEY_O:           keysyms.Lowero,
	evdev.KEY_P:           keysyms.Lowerp,
	evdev.KEY_LEFTBRACE:   keysyms.BracketLeft,
	evdev.KEY_RIGHTBRACE:  keysyms.BracketRight,
	evdev.KEY_ENTER:       keysyms.Return,
	evdev.KEY_LEFTCTRL:    keysyms.ControlL,
	evdev.KEY_A:           keysyms.Lowera,
	evdev.KEY_S:           keysyms.Lowers,
	evdev.KEY_D:           keysyms.Lowerd,
	evdev.KEY_F:           keysyms.Lowerf,
	evdev.KEY_G:           keysyms.Lowerg,
	evdev.KEY_H:           keysyms.Lowerh,
	evdev.KEY_J:           keysyms.Lowerj,
	evdev.KEY_K:           keysyms.Lowerk,
	evdev.KEY_L:           keysyms.Lowerl,
	evdev.KEY_SEMICOLON:   keysyms.Semicolon,
	evdev.KEY_APOSTROPHE:  keysyms.Apostrophe,
	evdev.KEY_GRAVE:       keysyms.Grave,
	evdev.KEY_LEFTSHIFT:   keysyms.ShiftL,
	evdev.KEY_BACKSLASH:   keysyms.Backslash,
	evdev.KEY_Z:           keysyms.Lowerz,
	evdev.KEY_X:           keysyms.Lowerx,
	evdev.KEY_C:           keysyms.Lowerc,
	evdev.KEY_V:           keysyms.Lowerv,
	evdev.KEY_B:           keysyms.Lowerb,
	evdev.KEY_N:           keysyms.Lowern,
	evdev.KEY_M:           keysyms.Lowerm,
	evdev.KEY_COMMA:       keysyms.Comma,
	evdev.KEY_DOT:         keysyms.Period,
	evdev.KEY_SLASH:       keysyms.Slash,
	evdev.KEY_RIGHTSHIFT:  keysyms.ShiftR,
	evdev.KEY_KPASTERISK:  keysyms.KPMultiply,
	evdev.KEY_LEFTALT:     keysyms.AltL,
	evdev.KEY_SPACE:       keysyms.Space,
	evdev.KEY_CAPSLOCK:    keysyms.CapsLock,
	evdev.KEY_F1:          keysyms.F1,
	evdev.KEY_F2:          keysyms.F2,
	evdev.KEY_F3:          keysyms.F3,
	evdev.KEY_F4:          keysyms.F4,
	evdev.KEY_F5:          keysyms.F5,
	evdev.KEY_F6:          keysyms.F6,
	evdev.KEY_F7:          keysyms.F7,
	evdev.KEY_F8:          keysyms.F8,
	evdev.KEY_F9:          keysyms.F9,
	evdev.KEY_F10:         keysyms.F10,
	evdev.KEY_NUMLOCK:     keysyms.NumLock,
	evdev.KEY_SCROLLLOCK:  keysyms.ScrollLock,
	evdev.KEY_KP7:         keysyms.KPHome,
	evdev.KEY_KP8:         keysyms.KPUp,
	evdev.KEY_KP9:         keysyms.KPPageUp,
	evdev.KEY_KPMINUS:     keysyms.KPSubtract,
	evdev.KEY_KP4:         keysyms.KPLeft,
	evdev.KEY_KP5:         keysyms.KPBegin,
	evdev.KEY_KP6:         keysyms.KPRight,
	evdev.KEY_KPPLUS:      keysyms.KPAdd,
	evdev.KEY_KP1:         keysyms.KPEnd,
	evdev.KEY_KP2:         keysyms.KPDown,
	evdev.KEY_KP3:         keysyms.KPPageDown,
	evdev.KEY_KP0:         keysyms.KPInsert,
	evdev.KEY_KPDOT:       keysyms.KPDelete,
	evdev.KEY_F11:         keysyms.F11,
	evdev.KEY_F12:         keysyms.F12,
	evdev.KEY_KPENTER:     keysyms.KPEnter,
	evdev.KEY_RIGHTCTRL:   keysyms.ControlR,
	evdev.KEY_KPSLASH:     keysyms.KPDivide,
	evdev.KEY_RIGHTALT:    keysyms.AltR,
	evdev.KEY_LINEFEED:    keysyms.Linefeed,
	evdev.KEY_HOME:        keysyms.Home,
	evdev.KEY_UP:          keysyms.Up,
	evdev.KEY_PAGEUP:      keysyms.PageUp,
	evdev.KEY_LEFT:        keysyms.Left,
	evdev.KEY_RIGHT:       keysyms.Right,
	evdev.KEY_END:         keysyms.End,
	evdev.KEY_DOWN:        keysyms.Down,
	evdev.KEY_PAGEDOWN:    keysyms.PageDown,
	evdev.KEY_INSERT:      keysyms.Insert,
	evdev.KEY_DELETE:      keysyms.Delete,
	evdev.KEY_KPEQUAL:     keysyms.KPEqual,
	evdev.KEY_LEFTMETA:    keysyms.MetaL,
	evdev.KEY_RIGHTMETA:   keysyms.MetaR,
}

var keytabNumlock = [keytabSize]uint32{
	evdev.KEY_KP7: keysyms.KP7,
	evdev.KEY_KP8: keysyms.KP8,
	evdev.KEY_KP9: keysyms.KP9,
	evdev.KEY_KP4: keysyms.KP4,
	evdev.KEY_KP5: keysyms.KP5,
	evdev.KEY_KP6: keysyms.KP6,
	evdev.KEY_KP1: keysyms.KP1,
	evdev.KEY_KP2: keysyms.KP2,
	evdev.KEY_KP3: keysyms.KP3,
	evdev.KEY_KP0: keysyms.KP0,
}

var keytabShift = [keytabSize]uint32{
	evdev.KEY_1:          keysyms.Exclam,
	evdev.KEY_2:          keysyms.At,
	evdev.KEY_3:          keysyms.NumberSign,
	evdev.KEY_4:          keysyms.Dollar,
	evdev.KEY_5:          keysyms.Percent,
	evdev.KEY_6:          keysyms.AsciiCircum,
	evdev.KEY_7:          keysyms.Ampersand,
	evdev.KEY_8:          keysyms.Asterisk,
	evdev.KEY_9:          keysyms.ParenLeft,
	evdev.KEY_0:          keysyms.ParenRight,
	evdev.KEY_MINUS:      keysyms.Underscore,
	evdev.KEY_EQUAL:      keysyms.Plus,
	evdev.KEY_Q:          keysyms.Q,
	evdev.KEY_W:          keysyms.W,
	evdev.KEY_E:          keysyms.E,
	evdev.KEY_R:          keysyms.R,
	evdev.KEY_T:          keysyms.T,
	evdev.KEY_Y:          keysyms.Y,
	evdev.KEY_U:          keysyms.U,
	evdev.KEY_I:          keysyms.I,
	evdev.KEY_O:          keysyms.O,
	evdev.KEY_P:          keysyms.P,
	evdev.KEY_LEFTBRACE:  keysyms.BraceLeft,
	evdev.KEY_RIGHTBRACE: keysyms.BraceRight,
	evdev.KEY_A:          keysyms.A,
	evdev.KEY_S:          keysyms.S,
	evdev.KEY_D:          keysyms.D,
	evdev.KEY_F:          keysyms.F,
	evdev.KEY_G:          keysyms.G,
	evdev.KEY_H:          keysyms.H,
	evdev.KEY_J:          keysyms.J,
	evdev.KEY_K:          keysyms.K,
	evdev.KEY_L:          keysyms.L,
	evdev.KEY_SEMICOLON:  keysyms.Colon,
	evdev.KEY_APOSTROPHE: keysyms.QuoteDbl,
	evdev.KEY_GRAVE:      keysyms.AsciiTilde,
	evdev.KEY_BACKSLASH:  keysyms.Bar,
	evdev.KEY_Z:          keysyms.Z,
	evdev.KEY_X:          keysyms.X,
	evdev.KEY_C:          keysyms.C,
	evdev.KEY_V:          keysyms.V,
	evdev.KEY_B:          keysyms.B,
	evdev.KEY_N:          keysyms.N,
	evdev.KEY_M:          keysyms.M,
	evdev.KEY_COMMA:      keysyms.Less,
	evdev.KEY_DOT:        keysyms.Greater,
	evdev.KEY_SLASH:      keysyms.Question,
}

// keytabCapslock only remaps letters: capslock follows kernel-console
// convention, not XKB's group-shift model, so punctuation and the number
// row are untouched by it.
var keytabCapslock = [keytabSize]uint32{
	evdev.KEY_Q: keysyms.Q,
	evdev.KEY_W: keysyms.W,
	evdev.KEY_E: keysyms.E,
	evdev.KEY_R: keysyms.R,
	evdev.KEY_T: keysyms.T,
	evdev.KEY_Y: keysyms.Y,
	evdev.KEY_U: keysyms.U,
	evdev.KEY_I: keysyms.I,
	evdev.KEY_O: keysyms.O,
	evdev.KEY_P: keysyms.P,
	evdev.KEY_A: keysyms.A,
	evdev.KEY_S: keysyms.S,
	evdev.KEY_D: keysyms.D,
	evdev.KEY_F: keysyms.F,
	evdev.KEY_G: keysyms.G,
	evdev.KEY_H: keysyms.H,
	evdev.KEY_J: keysyms.J,
	evdev.KEY_K: keysyms.K,
	evdev.KEY_L: keysyms.L,
	evdev.KEY_Z: keysyms.Z,
	evdev.KEY_X: keysyms.X,
	evdev.KEY_C: keysyms.C,
	evdev.KEY_V: keysyms.V,
	evdev.KEY_B: keysyms.B,
	evdev.KEY_N: keysyms.N,
	evdev.KEY_M: keysyms.M,
}

// modKind distinguishes the two modifier behaviors defined in §4.C.
type modKind int

const (
	modNormal modKind = iota + 1
	modLock
)

type modEntry struct {
	mask uint32
	kind modKind
}

var modmap = [keytabSize]modEntry{
	evdev.KEY_LEFTCTRL:  {Control, modNormal},
	evdev.KEY_LEFTSHIFT: {Shift, modNormal},
	evdev.KEY_RIGHTSHIFT: {Shift, modNormal},
	evdev.KEY_LEFTALT:   {Mod1, modNormal},
	evdev.KEY_CAPSLOCK:  {Lock, modLock},
	evdev.KEY_NUMLOCK:   {Mod2, modLock},
	evdev.KEY_RIGHTCTRL: {Control, modNormal},
	evdev.KEY_RIGHTALT:  {Mod1, modNormal},
	evdev.KEY_LEFTMETA:  {Mod4, modNormal},
	evdev.KEY_RIGHTMETA: {Mod4, modNormal},
}
