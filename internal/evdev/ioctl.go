//go:build linux

// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package evdev

import (
	"unsafe"

	"github.com/opentty/termkbd/internal/bitset"
	"golang.org/x/sys/unix"
)

// ioctl direction/size encoding, from asm-generic/ioctl.h. Mirrors the
// scheme used throughout the pack's own ioctl helpers (e.g. the 'E'
// magic for the evdev ioctl family).
//
// This is the one ioctl this subsystem still issues by hand: golang-evdev
// covers device open and EVIOCGBIT-derived capability discovery (see
// ProbeFeatures), but its Capabilities map is fixed at open time and
// never exposes the current EVIOCGLED bitmask a wake-up needs to
// resynchronize lock-modifier state with hardware LEDs that toggled
// while the node was closed. That one read stays a direct syscall.
const (
	iocNRBits   = 8
	iocTypeBits = 8
	iocSizeBits = 14

	iocNRShift   = 0
	iocTypeShift = iocNRShift + iocNRBits
	iocSizeShift = iocTypeShift + iocTypeBits
	iocDirShift  = iocSizeShift + iocSizeBits

	iocRead = 2
)

func iocCode(dir, typ, nr, size uint) uint {
	return dir<<iocDirShift | typ<<iocTypeShift | nr<<iocNRShift | size<<iocSizeShift
}

// eviocgled returns the ioctl request code for reading the current LED
// bitmask into a buffer of length bytes.
func eviocgled(length uint) uint {
	return iocCode(iocRead, 'E', 0x19, length)
}

func ioctlBytes(fd int, req uint, buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(req), uintptr(unsafe.Pointer(&buf[0])))
	if errno != 0 {
		return errno
	}
	return nil
}

// LEDState fetches the EVIOCGLED(...) bitmask: which LEDs are currently lit.
func LEDState(fd int) ([]byte, error) {
	buf := make([]byte, bitset.Words(LED_CNT))
	if err := ioctlBytes(fd, eviocgled(uint(len(buf))), buf); err != nil {
		return nil, err
	}
	return buf, nil
}
