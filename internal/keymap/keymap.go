//go:build linux

// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package keymap implements the dumb keycode-to-keysym backend: four
// layered lookup tables plus a modifier mask, with no dependency on a
// compiled XKB keymap. It trades layout richness for a backend that
// never needs an external compiler or keymap database.
package keymap

import (
	"errors"

	"github.com/opentty/termkbd/internal/bitset"
	"github.com/opentty/termkbd/internal/evdev"
	"github.com/opentty/termkbd/internal/keysyms"
)

// ErrNoEvent is returned by ProcessKey when the key event produced no
// observable input event: a modifier key, the release of a key that was
// never a modifier, a keycode outside the tables, or a key with no
// keysym under the current modifiers. Callers must treat it as "nothing
// happened", not as a failure.
var ErrNoEvent = errors.New("keymap: no event")

// Desc is an immutable keyboard description. The dumb backend ignores
// layout/variant/options beyond recording them for diagnostics; they
// exist so callers written against a richer backend still compile
// against this one.
type Desc struct {
	Layout  string
	Variant string
	Options string
}

// NewDesc builds a keyboard description. Layout, variant and options are
// accepted for API compatibility but do not change the fixed tables
// this backend ships.
func NewDesc(layout, variant, options string) *Desc {
	return &Desc{Layout: layout, Variant: variant, Options: options}
}

// Dev is one open keyboard's modifier state, tracked against a shared
// Desc. A Dev is not safe for concurrent use from multiple goroutines.
type Dev struct {
	desc *Desc
	mods uint32
}

// NewDev creates a keyboard device bound to desc, with every modifier
// cleared.
func NewDev(desc *Desc) *Dev {
	return &Dev{desc: desc}
}

// Event is one decoded key event: the raw keycode, the resolved keysym,
// its Unicode code point (keysyms.InvalidUnicode if the keysym has none),
// and the modifier mask active at the time of the event.
type Event struct {
	Keycode uint16
	Keysym  uint32
	Unicode uint32
	Mods    uint32
}

// Reset clears all modifier state. If ledbits is non-nil it is
// interpreted as an EVIOCGLED bitmask and used to resynchronize the lock
// modifiers (capslock, numlock) with what the hardware LEDs currently
// show, the way a freshly woken device picks up locks toggled while the
// device node was closed.
func (d *Dev) Reset(ledbits []byte) {
	d.mods = 0
	if ledbits == nil {
		return
	}
	if bitset.Test(ledbits, evdev.LED_CAPSL) {
		d.mods |= Lock
	}
	if bitset.Test(ledbits, evdev.LED_NUML) {
		d.mods |= Mod2
	}
}

// ProcessKey feeds one evdev key event (keyState: 0 release, 1 press,
// 2 autorepeat) for code through the modifier and lookup tables. It
// returns ErrNoEvent when code is outside the tables, when the key is a
// modifier, when the event is a plain release of a non-modifier key, or
// when the layered lookup yields no keysym.
func (d *Dev) ProcessKey(keyState int, code uint16) (Event, error) {
	if int(code) >= keytabSize {
		return Event{}, ErrNoEvent
	}

	if entry := modmap[code]; entry.kind != 0 {
		switch entry.kind {
		case modNormal:
			if keyState == 1 {
				d.mods |= entry.mask
			} else if keyState == 0 {
				d.mods &^= entry.mask
			}
		case modLock:
			if keyState == 1 {
				d.mods ^= entry.mask
			}
		}
		return Event{}, ErrNoEvent
	}

	if keyState == 0 {
		return Event{}, ErrNoEvent
	}

	keysym := lookup(code, d.mods)
	if keysym == 0 {
		return Event{}, ErrNoEvent
	}

	return Event{
		Keycode: code,
		Keysym:  keysym,
		Unicode: keysyms.ToUnicode(keysym),
		Mods:    d.mods,
	}, nil
}

// lookup resolves code against the four layered tables, numlock first,
// then shift, then capslock, then the unmodified table: the first
// nonzero keysym wins.
func lookup(code uint16, mods uint32) uint32 {
	if mods&Mod2 != 0 {
		if sym := keytabNumlock[code]; sym != 0 {
			return sym
		}
	}
	if mods&Shift != 0 {
		if sym := keytabShift[code]; sym != 0 {
			return sym
		}
	}
	if mods&Lock != 0 {
		if sym := keytabCapslock[code]; sym != 0 {
			return sym
		}
	}
	return keytabNormal[code]
}
