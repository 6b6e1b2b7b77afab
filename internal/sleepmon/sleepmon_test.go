//go:build linux

// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package sleepmon

import (
	"errors"
	"testing"

	dbus "github.com/godbus/dbus/v5"
)

type fakeTarget struct {
	slept, woke int
	wakeErr     error
}

func (f *fakeTarget) Sleep() error  { f.slept++; return nil }
func (f *fakeTarget) WakeUp() error { f.woke++; return f.wakeErr }

func TestHandlePrepareForSleepActive(t *testing.T) {
	target := &fakeTarget{}
	m := &Monitor{target: target}

	sig := &dbus.Signal{
		Name: managerIface + "." + signalMember,
		Body: []interface{}{true},
	}
	m.handle(sig)

	if target.slept != 1 || target.woke != 0 {
		t.Fatalf("expected exactly one Sleep call, got slept=%d woke=%d", target.slept, target.woke)
	}
}

func TestHandlePrepareForSleepResume(t *testing.T) {
	target := &fakeTarget{}
	m := &Monitor{target: target}

	sig := &dbus.Signal{
		Name: managerIface + "." + signalMember,
		Body: []interface{}{false},
	}
	m.handle(sig)

	if target.woke != 1 || target.slept != 0 {
		t.Fatalf("expected exactly one WakeUp call, got slept=%d woke=%d", target.slept, target.woke)
	}
}

func TestHandleIgnoresOtherSignals(t *testing.T) {
	target := &fakeTarget{}
	m := &Monitor{target: target}

	m.handle(&dbus.Signal{Name: "org.freedesktop.login1.Manager.SomethingElse", Body: []interface{}{true}})
	if target.slept != 0 || target.woke != 0 {
		t.Fatal("expected no target calls for an unrelated signal")
	}
}

func TestHandleIgnoresMalformedBody(t *testing.T) {
	target := &fakeTarget{}
	m := &Monitor{target: target}

	m.handle(&dbus.Signal{Name: managerIface + "." + signalMember, Body: []interface{}{}})
	m.handle(&dbus.Signal{Name: managerIface + "." + signalMember, Body: []interface{}{"not-a-bool"}})

	if target.slept != 0 || target.woke != 0 {
		t.Fatal("expected no target calls for a malformed PrepareForSleep body")
	}
}

func TestHandleSurvivesWakeError(t *testing.T) {
	target := &fakeTarget{wakeErr: errors.New("boom")}
	m := &Monitor{target: target}

	// handle only logs the error; it must not panic or block.
	m.handle(&dbus.Signal{Name: managerIface + "." + signalMember, Body: []interface{}{false}})
	if target.woke != 1 {
		t.Fatalf("expected WakeUp to still be invoked once, got %d", target.woke)
	}
}
