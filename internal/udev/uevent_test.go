//go:build linux

// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package udev

import "testing"

func TestParseUEvent(t *testing.T) {
	raw := "add@/devices/virtual/input/input3/event3\x00ACTION=add\x00DEVPATH=/devices/virtual/input/input3/event3\x00SUBSYSTEM=input\x00DEVNAME=input/event3\x00"

	ev := ParseUEvent([]byte(raw))
	if ev == nil {
		t.Fatal("expected a parsed event, got nil")
	}
	if ev.Action != "add" {
		t.Fatalf("Action = %q, want add", ev.Action)
	}
	if ev.KObj != "/devices/virtual/input/input3/event3" {
		t.Fatalf("KObj = %q", ev.KObj)
	}
	if ev.Subsystem() != "input" {
		t.Fatalf("Subsystem() = %q, want input", ev.Subsystem())
	}
	if ev.DevName() != "input/event3" {
		t.Fatalf("DevName() = %q, want input/event3", ev.DevName())
	}
}

func TestParseUEventWithLibudevHeader(t *testing.T) {
	raw := "libudev\x00add@/devices/virtual/input/input3/event3\x00ACTION=add\x00SUBSYSTEM=input\x00"

	ev := ParseUEvent([]byte(raw))
	if ev == nil {
		t.Fatal("expected a parsed event past the libudev header, got nil")
	}
	if ev.Action != "add" || ev.Subsystem() != "input" {
		t.Fatalf("got Action=%q Subsystem=%q", ev.Action, ev.Subsystem())
	}
}

func TestParseUEventRejectsMalformed(t *testing.T) {
	if ev := ParseUEvent(nil); ev != nil {
		t.Fatal("expected nil for empty input")
	}
	if ev := ParseUEvent([]byte("not-a-uevent")); ev != nil {
		t.Fatal("expected nil for input with no '@'")
	}
}

func TestKObjFromDevName(t *testing.T) {
	if got := KObjFromDevName("input/event3"); got != "/dev/input/event3" {
		t.Fatalf("KObjFromDevName = %q", got)
	}
}
