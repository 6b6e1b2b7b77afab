//go:build linux

// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package sleepmon bridges logind's system-sleep notifications to an
// inputmanager.Manager's AWAKE/ASLEEP lifecycle: when the system is
// about to suspend every keyboard is put to sleep, and when it resumes
// every keyboard is woken back up and resynced against current LED
// state.
package sleepmon

import (
	"fmt"
	"log"

	dbus "github.com/godbus/dbus/v5"
)

const (
	loginBusName    = "org.freedesktop.login1"
	loginObjectPath = "/org/freedesktop/login1"
	managerIface    = "org.freedesktop.login1.Manager"
	signalMember    = "PrepareForSleep"
)

// Target is the subset of inputmanager.Manager this package drives. It
// is expressed as an interface so sleepmon does not import
// inputmanager directly, keeping the dependency edge one-directional.
type Target interface {
	Sleep() error
	WakeUp() error
}

// Monitor subscribes to logind's PrepareForSleep signal on the system
// bus and forwards it to a Target.
type Monitor struct {
	conn    *dbus.Conn
	target  Target
	signals chan *dbus.Signal
	done    chan struct{}
}

// New connects to the system bus and arms the PrepareForSleep match
// rule. The connection is not yet listening; call Start.
func New(target Target) (*Monitor, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, fmt.Errorf("sleepmon: connect system bus: %w", err)
	}

	rule := fmt.Sprintf("type='signal',interface='%s',member='%s',path='%s'",
		managerIface, signalMember, loginObjectPath)
	if err := conn.BusObject().Call("org.freedesktop.DBus.AddMatch", 0, rule).Err; err != nil {
		conn.Close()
		return nil, fmt.Errorf("sleepmon: add match: %w", err)
	}

	return &Monitor{
		conn:   conn,
		target: target,
	}, nil
}

// Start begins listening for PrepareForSleep in a background goroutine.
// It returns once the listener is armed; signal handling happens
// asynchronously until Close is called.
func (m *Monitor) Start() {
	m.signals = make(chan *dbus.Signal, 8)
	m.done = make(chan struct{})
	m.conn.Signal(m.signals)
	go m.run()
}

func (m *Monitor) run() {
	for {
		select {
		case sig, ok := <-m.signals:
			if !ok {
				return
			}
			m.handle(sig)
		case <-m.done:
			return
		}
	}
}

func (m *Monitor) handle(sig *dbus.Signal) {
	if sig.Name != managerIface+"."+signalMember {
		return
	}
	if len(sig.Body) == 0 {
		return
	}
	active, ok := sig.Body[0].(bool)
	if !ok {
		return
	}

	// active == true: the system is about to suspend.
	// active == false: the system has just resumed.
	var err error
	if active {
		err = m.target.Sleep()
	} else {
		err = m.target.WakeUp()
	}
	if err != nil {
		log.Printf("sleepmon: transition failed (active=%v): %v", active, err)
	}
}

// Close stops listening and releases the bus connection.
func (m *Monitor) Close() error {
	if m.done != nil {
		close(m.done)
	}
	if m.signals != nil {
		m.conn.RemoveSignal(m.signals)
	}
	return m.conn.Close()
}
