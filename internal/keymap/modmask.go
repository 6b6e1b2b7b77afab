//go:build linux

// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package keymap

// Modifier mask bits. Positions are chosen by this implementation but
// their semantic identities are part of the contract observers rely on.
const (
	Shift   uint32 = 1 << 0
	Lock    uint32 = 1 << 1 // capslock
	Control uint32 = 1 << 2
	Mod1    uint32 = 1 << 3 // alt
	Mod2    uint32 = 1 << 4 // numlock
	Mod4    uint32 = 1 << 6 // meta/super

	// allMods masks every bit this backend ever sets; any other X-style
	// mask bit is an unused placeholder.
	allMods = Shift | Lock | Control | Mod1 | Mod2 | Mod4
)
