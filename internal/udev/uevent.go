//go:build linux

// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package udev gives the input manager a hot-plug monitor and device
// enumerator without linking against libudev: a raw netlink socket
// listening on the kernel uevent broadcast group, sysfs directory
// walks for the initial device set, and the udev runtime database under
// /run/udev/data for inherited properties such as ID_SEAT.
package udev

import (
	"bytes"
	"strings"
)

// UEvent is one parsed kernel device event: "ACTION@KOBJ" followed by a
// NUL-separated KEY=VALUE environment block.
type UEvent struct {
	Action string
	KObj   string
	Env    map[string]string
}

// Subsystem is a convenience accessor over Env["SUBSYSTEM"].
func (e *UEvent) Subsystem() string { return e.Env["SUBSYSTEM"] }

// DevName is a convenience accessor over Env["DEVNAME"], the path
// relative to /dev (e.g. "input/event3").
func (e *UEvent) DevName() string { return e.Env["DEVNAME"] }

// ParseUEvent decodes one netlink datagram from the kernel uevent
// broadcast group. It returns nil if data does not look like a uevent.
func ParseUEvent(data []byte) *UEvent {
	if len(data) == 0 {
		return nil
	}

	// udevd-relayed events are prefixed with a "libudev" binary header
	// before the action@path text; scan past NUL boundaries until one
	// is shortly followed by '@', which marks the real payload start.
	if bytes.HasPrefix(data, []byte("libudev")) {
		for i := 0; i < len(data)-1; i++ {
			if data[i] != 0 {
				continue
			}
			rest := data[i+1:]
			if at := bytes.IndexByte(rest, '@'); at > 0 && at < 20 {
				data = rest
				break
			}
		}
	}

	parts := bytes.Split(data, []byte{0})
	if len(parts) == 0 || len(parts[0]) == 0 {
		return nil
	}

	header := string(parts[0])
	at := strings.Index(header, "@")
	if at < 1 {
		return nil
	}

	ev := &UEvent{
		Action: header[:at],
		KObj:   header[at+1:],
		Env:    make(map[string]string),
	}

	for _, part := range parts[1:] {
		if len(part) == 0 {
			continue
		}
		kv := string(part)
		eq := strings.Index(kv, "=")
		if eq < 1 {
			continue
		}
		ev.Env[kv[:eq]] = kv[eq+1:]
	}

	return ev
}
