//go:build linux

// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

// Package loop provides the single-threaded readiness-polling loop every
// other component in this subsystem runs on: the udev hot-plug monitor
// and every open input device each register one fd and get called back
// when it becomes readable. The logind sleep bridge does not use it; it
// runs its own goroutine.
package loop

// Callback is invoked when its registered fd becomes readable. A
// non-nil error is discarded by the loop and does not stop it.
type Callback func(fd int) error

// Loop is the fd-multiplexing contract the rest of this subsystem is
// written against. The production implementation is epoll-backed; tests
// can substitute a fake.
type Loop interface {
	// Register adds fd to the readability set, invoking cb whenever it
	// becomes readable. Registering the same fd twice is an error.
	Register(fd int, cb Callback) error

	// Unregister removes fd from the set immediately. It is safe to call
	// from within a Callback, for its own fd or a different one: the
	// running callback has already been fetched, and Run looks each
	// ready fd up again before dispatching it, so an fd removed earlier
	// in the same batch is skipped.
	Unregister(fd int) error

	// Run blocks, dispatching callbacks as registered fds become
	// readable, until Stop is called or an unrecoverable polling error
	// occurs.
	Run() error

	// Stop asks a running Run to return after its current dispatch
	// batch. Safe to call from a Callback or another goroutine.
	Stop()

	// Close releases the loop's own resources (e.g. the epoll fd).
	// Run must not be in progress.
	Close() error
}
