//go:build linux

// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package keymap

import (
	"testing"

	"github.com/opentty/termkbd/internal/evdev"
	"github.com/opentty/termkbd/internal/keysyms"
)

func newTestDev() *Dev {
	return NewDev(NewDesc("us", "", ""))
}

func TestLowerCaseTyping(t *testing.T) {
	dev := newTestDev()

	ev, err := dev.ProcessKey(1, evdev.KEY_H)
	if err != nil {
		t.Fatalf("press h: unexpected error %v", err)
	}
	if ev.Keysym != keysyms.Lowerh || ev.Unicode != uint32('h') {
		t.Fatalf("press h: got keysym %#x unicode %q", ev.Keysym, ev.Unicode)
	}

	if _, err := dev.ProcessKey(0, evdev.KEY_H); err != ErrNoEvent {
		t.Fatalf("release h: expected ErrNoEvent, got %v", err)
	}

	ev, err = dev.ProcessKey(1, evdev.KEY_I)
	if err != nil {
		t.Fatalf("press i: unexpected error %v", err)
	}
	if ev.Keysym != keysyms.Loweri || ev.Unicode != uint32('i') {
		t.Fatalf("press i: got keysym %#x unicode %q", ev.Keysym, ev.Unicode)
	}
}

func TestShiftedPunctuation(t *testing.T) {
	dev := newTestDev()

	if _, err := dev.ProcessKey(1, evdev.KEY_LEFTSHIFT); err != ErrNoEvent {
		t.Fatalf("press shift: expected ErrNoEvent, got %v", err)
	}

	ev, err := dev.ProcessKey(1, evdev.KEY_1)
	if err != nil {
		t.Fatalf("press shift+1: unexpected error %v", err)
	}
	if ev.Keysym != keysyms.Exclam || ev.Unicode != uint32('!') {
		t.Fatalf("press shift+1: got keysym %#x unicode %q", ev.Keysym, ev.Unicode)
	}
	if ev.Mods&Shift == 0 {
		t.Fatalf("press shift+1: expected Shift bit set in mods, got %#x", ev.Mods)
	}

	if _, err := dev.ProcessKey(0, evdev.KEY_LEFTSHIFT); err != ErrNoEvent {
		t.Fatalf("release shift: expected ErrNoEvent, got %v", err)
	}

	ev, err = dev.ProcessKey(1, evdev.KEY_1)
	if err != nil {
		t.Fatalf("press 1 after shift release: unexpected error %v", err)
	}
	if ev.Keysym != keysyms.Digit1 {
		t.Fatalf("press 1 after shift release: expected digit, got keysym %#x", ev.Keysym)
	}
}

func TestCapslockAffectsLettersOnly(t *testing.T) {
	dev := newTestDev()

	if _, err := dev.ProcessKey(1, evdev.KEY_CAPSLOCK); err != ErrNoEvent {
		t.Fatalf("press capslock: expected ErrNoEvent, got %v", err)
	}
	// autorepeat and release of a lock modifier never toggle it again.
	if _, err := dev.ProcessKey(2, evdev.KEY_CAPSLOCK); err != ErrNoEvent {
		t.Fatalf("autorepeat capslock: expected ErrNoEvent, got %v", err)
	}
	if _, err := dev.ProcessKey(0, evdev.KEY_CAPSLOCK); err != ErrNoEvent {
		t.Fatalf("release capslock: expected ErrNoEvent, got %v", err)
	}

	ev, err := dev.ProcessKey(1, evdev.KEY_Q)
	if err != nil {
		t.Fatalf("press q under capslock: unexpected error %v", err)
	}
	if ev.Keysym != keysyms.Q || ev.Unicode != uint32('Q') {
		t.Fatalf("press q under capslock: got keysym %#x unicode %q", ev.Keysym, ev.Unicode)
	}

	ev, err = dev.ProcessKey(1, evdev.KEY_1)
	if err != nil {
		t.Fatalf("press 1 under capslock: unexpected error %v", err)
	}
	if ev.Keysym != keysyms.Digit1 {
		t.Fatalf("press 1 under capslock: expected digit unaffected by capslock, got %#x", ev.Keysym)
	}
}

func TestNumlockTogglesKeypadDigits(t *testing.T) {
	dev := newTestDev()

	ev, err := dev.ProcessKey(1, evdev.KEY_KP7)
	if err != nil {
		t.Fatalf("press kp7 before numlock: unexpected error %v", err)
	}
	if ev.Keysym != keysyms.KPHome {
		t.Fatalf("press kp7 before numlock: expected KPHome, got %#x", ev.Keysym)
	}

	if _, err := dev.ProcessKey(1, evdev.KEY_NUMLOCK); err != ErrNoEvent {
		t.Fatalf("press numlock: expected ErrNoEvent, got %v", err)
	}

	ev, err = dev.ProcessKey(1, evdev.KEY_KP7)
	if err != nil {
		t.Fatalf("press kp7 after numlock: unexpected error %v", err)
	}
	if ev.Keysym != keysyms.KP7 {
		t.Fatalf("press kp7 after numlock: expected digit keysym, got %#x", ev.Keysym)
	}

	if _, err := dev.ProcessKey(1, evdev.KEY_NUMLOCK); err != ErrNoEvent {
		t.Fatalf("press numlock again: expected ErrNoEvent, got %v", err)
	}

	ev, err = dev.ProcessKey(1, evdev.KEY_KP7)
	if err != nil {
		t.Fatalf("press kp7 after numlock off: unexpected error %v", err)
	}
	if ev.Keysym != keysyms.KPHome {
		t.Fatalf("press kp7 after numlock off: expected KPHome again, got %#x", ev.Keysym)
	}
}

func TestResetSyncsLocksFromLEDs(t *testing.T) {
	dev := newTestDev()

	led := make([]byte, 1)
	led[evdev.LED_CAPSL/8] |= 1 << (evdev.LED_CAPSL % 8)
	dev.Reset(led)

	ev, err := dev.ProcessKey(1, evdev.KEY_Q)
	if err != nil {
		t.Fatalf("press q after LED-synced reset: unexpected error %v", err)
	}
	if ev.Keysym != keysyms.Q {
		t.Fatalf("press q after LED-synced reset: expected capslock active, got %#x", ev.Keysym)
	}

	dev.Reset(nil)
	ev, err = dev.ProcessKey(1, evdev.KEY_Q)
	if err != nil {
		t.Fatalf("press q after plain reset: unexpected error %v", err)
	}
	if ev.Keysym != keysyms.Lowerq {
		t.Fatalf("press q after plain reset: expected lowercase, got %#x", ev.Keysym)
	}
}

func TestUnknownCodeIsNoEvent(t *testing.T) {
	dev := newTestDev()
	if _, err := dev.ProcessKey(1, 0xffff); err != ErrNoEvent {
		t.Fatalf("oversized code: expected ErrNoEvent, got %v", err)
	}
}
