//go:build linux

// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package inputmanager owns the full set of keyboard devices on one
// seat: it enumerates and hot-plugs them via udev, feature-probes each
// one, and tracks a single AWAKE/ASLEEP lifecycle that every device
// follows in lockstep, the way the terminal's own display lifecycle
// does (console switches, VT blanking, system suspend).
package inputmanager

import (
	"sync"

	"github.com/opentty/termkbd/internal/device"
	"github.com/opentty/termkbd/internal/evdev"
	"github.com/opentty/termkbd/internal/keymap"
	"github.com/opentty/termkbd/internal/loop"
	"github.com/opentty/termkbd/internal/logger"
	"github.com/opentty/termkbd/internal/udev"
)

// State is the manager's lifecycle state.
type State int

const (
	Asleep State = iota
	Awake
)

// Observer is notified of every key event the manager's devices
// produce. State transitions are not reported to observers.
type Observer interface {
	OnKeyEvent(devnode string, ev keymap.Event)
}

// Manager is the top-level component owning seat-filtered keyboard
// hot-plug, feature probing and the AWAKE/ASLEEP lifecycle.
type Manager struct {
	seat string
	desc *keymap.Desc
	log  logger.Logger

	mu        sync.Mutex
	state     State
	devices   []*device.Device
	observers []Observer

	loop      loop.Loop
	monitor   *udev.Monitor
	connected bool
}

// New creates a manager for seat, using desc to build every device's
// keymap state. log may be nil, in which case a no-op logger is used.
func New(seat string, desc *keymap.Desc, log logger.Logger) *Manager {
	if seat == "" {
		seat = udev.DefaultSeat
	}
	if log == nil {
		log, _ = logger.Configure(logger.Config{Level: logger.ErrorLevel})
	}
	return &Manager{
		seat:  seat,
		desc:  desc,
		log:   log,
		state: Asleep,
	}
}

// RegisterObserver adds obs to the set notified of key events. Safe to
// call at any time.
func (m *Manager) RegisterObserver(obs Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, obs)
}

// UnregisterObserver removes obs. A no-op if obs was never registered.
func (m *Manager) UnregisterObserver(obs Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	// Snapshot-and-rebuild rather than in-place delete: this can run
	// from inside a key-event dispatch that is itself mid-iteration
	// over the same slice.
	kept := make([]Observer, 0, len(m.observers))
	for _, o := range m.observers {
		if o != obs {
			kept = append(kept, o)
		}
	}
	m.observers = kept
}

func (m *Manager) notify(devnode string, ev keymap.Event) {
	m.mu.Lock()
	observers := make([]Observer, len(m.observers))
	copy(observers, m.observers)
	m.mu.Unlock()

	for _, obs := range observers {
		obs.OnKeyEvent(devnode, ev)
	}
}

// IsAsleep reports the manager's current lifecycle state.
func (m *Manager) IsAsleep() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == Asleep
}

// Connect attaches the manager to an event loop: it registers the udev
// hot-plug monitor and enumerates every already-present device on the
// manager's seat. Connect may only be called once.
func (m *Manager) Connect(l loop.Loop) error {
	m.mu.Lock()
	if m.connected {
		m.mu.Unlock()
		return newError(AlreadyConnected, "Connect", nil)
	}
	m.mu.Unlock()

	mon, err := udev.NewMonitor()
	if err != nil {
		return newError(Io, "Connect", err)
	}

	if err := l.Register(mon.Fd(), func(fd int) error {
		return m.handleUEvent(l, mon)
	}); err != nil {
		mon.Close()
		return newError(Io, "Connect", err)
	}

	m.mu.Lock()
	m.loop = l
	m.monitor = mon
	m.connected = true
	m.mu.Unlock()

	m.addInitialDevices()
	return nil
}

// Disconnect tears down every device and the hot-plug monitor. A no-op
// if the manager was never connected.
func (m *Manager) Disconnect() error {
	m.mu.Lock()
	if !m.connected {
		m.mu.Unlock()
		return nil
	}
	l := m.loop
	mon := m.monitor
	devices := m.devices
	m.devices = nil
	m.connected = false
	m.loop = nil
	m.monitor = nil
	m.mu.Unlock()

	for _, d := range devices {
		_ = d.Sleep(l)
	}
	_ = l.Unregister(mon.Fd())
	if err := mon.Close(); err != nil {
		return newError(Io, "Disconnect", err)
	}
	return nil
}

// Sleep puts every device to sleep and transitions the manager to
// Asleep. A no-op if already Asleep.
func (m *Manager) Sleep() error {
	m.mu.Lock()
	if m.state == Asleep {
		m.mu.Unlock()
		return nil
	}
	l := m.loop
	devices := m.devices
	m.mu.Unlock()

	for _, d := range devices {
		if err := d.Sleep(l); err != nil {
			m.log.Warning("inputmanager: sleep %s: %v", d.Devnode, err)
		}
	}

	m.mu.Lock()
	m.state = Asleep
	m.mu.Unlock()
	return nil
}

// WakeUp wakes every tracked device and transitions the manager to
// Awake. Any device that fails to wake is retired rather than left in
// a half-open state. A no-op if already Awake.
func (m *Manager) WakeUp() error {
	m.mu.Lock()
	if m.state == Awake {
		m.mu.Unlock()
		return nil
	}
	l := m.loop
	devices := append([]*device.Device(nil), m.devices...)
	m.mu.Unlock()

	var survivors []*device.Device
	for _, d := range devices {
		if err := d.WakeUp(l); err != nil {
			m.log.Warning("inputmanager: wake %s failed, retiring: %v", d.Devnode, err)
			continue
		}
		survivors = append(survivors, d)
	}

	m.mu.Lock()
	m.devices = survivors
	m.state = Awake
	m.mu.Unlock()
	return nil
}

// addInitialDevices enumerates every evdev node in sysfs and attempts
// to add each one, mirroring add_initial_devices's enumerate-then-add.
func (m *Manager) addInitialDevices() {
	nodes, err := udev.Enumerate()
	if err != nil {
		m.log.Warning("inputmanager: enumerate: %v", err)
		return
	}
	for _, node := range nodes {
		m.addDevice(node)
	}
}

// addDevice seat-filters, feature-probes and (if the manager is
// currently Awake) immediately wakes a candidate device node. A device
// with no FEATURE_HAS_KEYS, or on the wrong seat, is silently skipped.
func (m *Manager) addDevice(devnode string) {
	seat, err := udev.Seat(devnode)
	if err != nil {
		m.log.Debug("inputmanager: seat lookup %s: %v", devnode, err)
		seat = udev.DefaultSeat
	}
	if seat != m.seat {
		m.log.Debug("inputmanager: %s belongs to %s, not %s, skipping", devnode, seat, m.seat)
		return
	}

	feats, err := evdev.ProbeFeatures(devnode)
	if err != nil {
		m.log.Warning("inputmanager: probe %s: %v", devnode, err)
		return
	}
	if !feats.HasKeys {
		m.log.Debug("inputmanager: %s has no keys, skipping", devnode)
		return
	}

	d := device.New(devnode, seat, m.desc, func(dev *device.Device, ev keymap.Event) {
		m.notify(dev.Devnode, ev)
	}, func(dev *device.Device, err error) {
		m.log.Warning("inputmanager: %s: %v, retiring", dev.Devnode, err)
		m.removeDevice(dev.Devnode)
	})

	m.mu.Lock()
	awake := m.state == Awake
	l := m.loop
	for _, existing := range m.devices {
		if existing.Devnode == devnode {
			m.mu.Unlock()
			return
		}
	}
	m.devices = append(m.devices, d)
	m.mu.Unlock()

	if awake {
		if err := d.WakeUp(l); err != nil {
			m.log.Warning("inputmanager: wake new device %s: %v", devnode, err)
			m.removeDevice(devnode)
		}
	}
}

// removeDevice retires and forgets devnode. A no-op if it is not
// currently tracked.
func (m *Manager) removeDevice(devnode string) {
	m.mu.Lock()
	l := m.loop
	var found *device.Device
	kept := make([]*device.Device, 0, len(m.devices))
	for _, d := range m.devices {
		if d.Devnode == devnode {
			found = d
			continue
		}
		kept = append(kept, d)
	}
	m.devices = kept
	m.mu.Unlock()

	if found != nil {
		_ = found.Sleep(l)
	}
}

// handleUEvent reads one pending netlink uevent and dispatches add or
// remove, ignoring any subsystem other than "input".
func (m *Manager) handleUEvent(l loop.Loop, mon *udev.Monitor) error {
	ev, ok, err := mon.ReadEvent()
	if err != nil {
		return err
	}
	if !ok || ev.Subsystem() != "input" {
		return nil
	}

	switch ev.Action {
	case "add":
		if devname := ev.DevName(); devname != "" {
			m.addDevice(udev.KObjFromDevName(devname))
		}
	case "remove":
		if devname := ev.DevName(); devname != "" {
			m.removeDevice(udev.KObjFromDevName(devname))
		}
	}
	return nil
}
