//go:build linux

// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package loop

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// maxEvents bounds a single EpollWait batch. A hot-plugged terminal
// rarely has more than a handful of keyboards open at once; this is
// generous headroom, not a hard cap on registrations.
const maxEvents = 64

// Epoll is the production Loop, backed by epoll(7). Stop is delivered
// through an eventfd registered alongside the caller's fds, so a blocked
// epoll_wait wakes immediately instead of waiting for the next I/O event.
type Epoll struct {
	epfd   int
	stopfd int

	mu        sync.Mutex
	callbacks map[int]Callback
}

var _ Loop = (*Epoll)(nil)

// New creates an epoll instance ready for registrations.
func New() (*Epoll, error) {
	fd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("loop: epoll_create1: %w", err)
	}
	stopfd, err := unix.Eventfd(0, unix.EFD_CLOEXEC|unix.EFD_NONBLOCK)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("loop: eventfd: %w", err)
	}
	event := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(stopfd)}
	if err := unix.EpollCtl(fd, unix.EPOLL_CTL_ADD, stopfd, &event); err != nil {
		unix.Close(stopfd)
		unix.Close(fd)
		return nil, fmt.Errorf("loop: epoll_ctl add stopfd: %w", err)
	}
	return &Epoll{
		epfd:      fd,
		stopfd:    stopfd,
		callbacks: make(map[int]Callback),
	}, nil
}

func (e *Epoll) Register(fd int, cb Callback) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.callbacks[fd]; exists {
		return fmt.Errorf("loop: fd %d already registered", fd)
	}

	event := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(fd)}
	if err := unix.EpollCtl(e.epfd, unix.EPOLL_CTL_ADD, fd, &event); err != nil {
		return fmt.Errorf("loop: epoll_ctl add fd %d: %w", fd, err)
	}
	e.callbacks[fd] = cb
	return nil
}

func (e *Epoll) Unregister(fd int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.unregisterLocked(fd)
}

func (e *Epoll) unregisterLocked(fd int) error {
	if _, exists := e.callbacks[fd]; !exists {
		return fmt.Errorf("loop: fd %d not registered", fd)
	}
	// EPOLL_CTL_DEL on a closed fd returns EBADF; callers unregister
	// before closing, so this only ever removes a live fd from the set.
	_ = unix.EpollCtl(e.epfd, unix.EPOLL_CTL_DEL, fd, nil)
	delete(e.callbacks, fd)
	return nil
}

func (e *Epoll) Run() error {
	events := make([]unix.EpollEvent, maxEvents)
	for {
		n, err := unix.EpollWait(e.epfd, events, -1)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return fmt.Errorf("loop: epoll_wait: %w", err)
		}

		// Snapshot the batch before dispatching: a callback may
		// unregister another fd that is also ready this round, and the
		// removal must not perturb the slice we are iterating.
		batch := make([]int, 0, n)
		stopSignalled := false
		for i := 0; i < n; i++ {
			fd := int(events[i].Fd)
			if fd == e.stopfd {
				stopSignalled = true
				continue
			}
			batch = append(batch, fd)
		}

		for _, fd := range batch {
			e.mu.Lock()
			cb, ok := e.callbacks[fd]
			e.mu.Unlock()
			if !ok {
				continue
			}
			if err := cb(fd); err != nil {
				// The loop has no component-specific context to act on
				// this: a callback that can fail (e.g. a device read)
				// is expected to handle its own teardown before
				// returning here, typically by unregistering itself.
				// The error is discarded; the loop keeps running
				// regardless.
				_ = err
			}
		}

		if stopSignalled {
			return nil
		}
	}
}

// Stop writes to the internal eventfd so a blocked epoll_wait wakes
// immediately. Safe to call from a Callback or another goroutine.
func (e *Epoll) Stop() {
	var buf [8]byte
	buf[0] = 1
	_, _ = unix.Write(e.stopfd, buf[:])
}

func (e *Epoll) Close() error {
	err1 := unix.Close(e.stopfd)
	err2 := unix.Close(e.epfd)
	if err1 != nil {
		return err1
	}
	return err2
}
