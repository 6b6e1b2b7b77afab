//go:build linux

// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package evdev

import (
	"encoding/binary"

	"golang.org/x/sys/unix"
)

// Record is one decoded kernel input_event. Only the fields the keymap
// engine needs are kept; the timestamp is dropped on decode.
type Record struct {
	Type  uint16
	Code  uint16
	Value int32
}

// recordSize is sizeof(struct input_event) on a 64-bit kernel: two
// timeval fields (16 bytes total) followed by type, code, value.
// This is the ABI the kernel actually writes on amd64/arm64, which is
// what this subsystem targets.
const recordSize = 24

// ChunkSize is the number of records read per drain iteration (component
// D reads frames "in chunks of up to 16 entries").
const ChunkSize = 16

// FrameBytes is the byte size of one read chunk.
const FrameBytes = ChunkSize * recordSize

// DecodeFrame splits a raw byte buffer read from a device node into
// Records. It returns ok == false if n is not a whole multiple of
// recordSize, signalling a corrupt read that the caller must discard.
func DecodeFrame(buf []byte, n int) ([]Record, bool) {
	if n%recordSize != 0 {
		return nil, false
	}
	count := n / recordSize
	records := make([]Record, count)
	for i := 0; i < count; i++ {
		off := i * recordSize
		records[i] = Record{
			Type:  binary.LittleEndian.Uint16(buf[off+16 : off+18]),
			Code:  binary.LittleEndian.Uint16(buf[off+18 : off+20]),
			Value: int32(binary.LittleEndian.Uint32(buf[off+20 : off+24])),
		}
	}
	return records, true
}

// Open opens an evdev device node for the long-lived, epoll-registered
// fd a woken device reads from: read-only, non-blocking and
// close-on-exec. This stays a raw open rather than golang-evdev's Open
// (used only for the short-lived capability probe in ProbeFeatures)
// because that library's own usage pattern is a blocking Read() driven
// from a dedicated per-device goroutine; it never puts a device's fd
// in non-blocking mode for level-triggered epoll, which is the only
// read model this subsystem's single shared event loop supports.
func Open(path string) (int, error) {
	return unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
}
