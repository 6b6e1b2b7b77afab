//go:build linux

// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package device implements one open keyboard: a devnode, its evdev fd,
// and the keymap.Dev tracking its modifier state. It owns the
// wake/sleep transitions and the read-and-decode loop that turns raw
// input_event records into keymap events.
package device

import (
	"fmt"
	"io"

	"github.com/opentty/termkbd/internal/evdev"
	"github.com/opentty/termkbd/internal/keymap"
	"github.com/opentty/termkbd/internal/loop"
	"golang.org/x/sys/unix"
)

// EventHook receives every successfully decoded key event from any
// device the owning manager controls.
type EventHook func(dev *Device, ev keymap.Event)

// ErrorHook is invoked once drain reports an I/O error or EOF on the
// device's fd. It runs synchronously from inside the event loop's
// dispatch of this device's readability callback, so the owner can
// retire the device (unregister and close its fd) before returning.
// Without this the fd would stay registered after it has gone bad,
// and since epoll is level-triggered that fd would be ready on every
// subsequent wait, spinning the loop.
type ErrorHook func(dev *Device, err error)

// Registrar is the subset of loop.Loop a Device needs.
type Registrar interface {
	Register(fd int, cb loop.Callback) error
	Unregister(fd int) error
}

// Device is one evdev keyboard. It is created asleep (fd == -1) and is
// only useful once WakeUp has opened its node.
type Device struct {
	Devnode string
	Seat    string

	fd      int
	kbd     *keymap.Dev
	hook    EventHook
	onError ErrorHook
}

// New creates a device for devnode, bound to a fresh keymap device built
// from desc. It does not open the node; call WakeUp for that. onError
// may be nil, in which case a drain failure is only reflected in the
// readability callback's return value.
func New(devnode, seat string, desc *keymap.Desc, hook EventHook, onError ErrorHook) *Device {
	return &Device{
		Devnode: devnode,
		Seat:    seat,
		fd:      -1,
		kbd:     keymap.NewDev(desc),
		hook:    hook,
		onError: onError,
	}
}

// Fd returns the device's open fd, or -1 if asleep.
func (d *Device) Fd() int { return d.fd }

// WakeUp opens the device node and registers it with loop for
// readability, resyncing lock-modifier state from the current LED
// state. It is a no-op if the device is already awake.
func (d *Device) WakeUp(loop Registrar) error {
	if d.fd >= 0 {
		return nil
	}

	fd, err := evdev.Open(d.Devnode)
	if err != nil {
		return fmt.Errorf("device: open %s: %w", d.Devnode, err)
	}

	ledbits, err := evdev.LEDState(fd)
	if err != nil {
		// A device with no LEDs (EVIOCGLED unsupported) still wakes;
		// it just resets with no lock-state resync.
		ledbits = nil
	}
	d.kbd.Reset(ledbits)

	if err := loop.Register(fd, func(fd int) error {
		return d.handleReadable()
	}); err != nil {
		unix.Close(fd)
		return fmt.Errorf("device: register %s: %w", d.Devnode, err)
	}

	d.fd = fd
	return nil
}

// Sleep unregisters and closes the device's fd. It is a no-op if the
// device is already asleep. The fd is unregistered from loop before it
// is closed; an Unregister error is ignored.
func (d *Device) Sleep(loop Registrar) error {
	if d.fd < 0 {
		return nil
	}
	_ = loop.Unregister(d.fd)
	err := unix.Close(d.fd)
	d.fd = -1
	if err != nil {
		return fmt.Errorf("device: close %s: %w", d.Devnode, err)
	}
	return nil
}

// handleReadable is the callback registered with the event loop. It
// drains the fd and, on any error (EOF or otherwise), runs onError
// before propagating the error, so the owner can retire the device
// before the loop's next wait.
func (d *Device) handleReadable() error {
	if err := d.drain(); err != nil {
		if d.onError != nil {
			d.onError(d, err)
		}
		return err
	}
	return nil
}

// drain reads and decodes every complete frame currently available on
// the device's fd, feeding each key record through the keymap and
// invoking the hook for every event it actually produces. It mirrors
// the original read loop: EWOULDBLOCK ends a drain cleanly, EOF or any
// other read error is reported to the caller (see handleReadable), and
// a read whose length is not a whole number of records is discarded
// without attempting to resynchronize mid-stream.
func (d *Device) drain() error {
	buf := make([]byte, evdev.FrameBytes)
	for {
		n, err := unix.Read(d.fd, buf)
		if err != nil {
			if err == unix.EWOULDBLOCK || err == unix.EAGAIN {
				return nil
			}
			return fmt.Errorf("device: read %s: %w", d.Devnode, err)
		}
		if n == 0 {
			return io.EOF
		}

		records, ok := evdev.DecodeFrame(buf, n)
		if !ok {
			// Misaligned read: discard this chunk and keep going, same
			// as a short/torn read against the kernel's own framing.
			continue
		}

		for _, rec := range records {
			if rec.Type != evdev.EV_KEY {
				continue
			}
			ev, err := d.kbd.ProcessKey(int(rec.Value), rec.Code)
			if err != nil {
				continue
			}
			if d.hook != nil {
				d.hook(d, ev)
			}
		}
	}
}
