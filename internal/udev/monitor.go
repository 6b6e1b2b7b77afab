//go:build linux

// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package udev

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// kobjectUevent is NETLINK_KOBJECT_UEVENT from linux/netlink.h.
const kobjectUevent = 15

// kernelGroup is the kernel broadcast multicast group every uevent is
// sent to; 1 is the only group the kernel itself ever uses.
const kernelGroup = 1

const recvBufSize = 8192

// Monitor is a non-blocking netlink socket subscribed to the kernel's
// uevent broadcast group. It is meant to be registered with an
// internal/loop.Loop: call ReadEvent from the registered fd's callback.
type Monitor struct {
	fd int
}

// NewMonitor opens and binds the netlink socket. The returned Monitor's
// Fd is non-blocking and close-on-exec.
func NewMonitor() (*Monitor, error) {
	fd, err := unix.Socket(unix.AF_NETLINK, unix.SOCK_DGRAM|unix.SOCK_CLOEXEC|unix.SOCK_NONBLOCK, kobjectUevent)
	if err != nil {
		return nil, fmt.Errorf("udev: socket: %w", err)
	}

	addr := &unix.SockaddrNetlink{Family: unix.AF_NETLINK, Groups: kernelGroup}
	if err := unix.Bind(fd, addr); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("udev: bind: %w", err)
	}

	return &Monitor{fd: fd}, nil
}

// Fd returns the socket fd, for registration with a loop.Loop.
func (m *Monitor) Fd() int { return m.fd }

// Close releases the socket.
func (m *Monitor) Close() error {
	return unix.Close(m.fd)
}

// ReadEvent reads and parses one pending datagram. ok is false when the
// socket had nothing to read (EAGAIN) or the datagram did not parse as
// a uevent; callers should treat both as "nothing happened" rather than
// an error.
func (m *Monitor) ReadEvent() (ev *UEvent, ok bool, err error) {
	buf := make([]byte, recvBufSize)
	n, _, err := unix.Recvfrom(m.fd, buf, 0)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("udev: recvfrom: %w", err)
	}
	if n == 0 {
		return nil, false, nil
	}
	ev = ParseUEvent(buf[:n])
	return ev, ev != nil, nil
}
