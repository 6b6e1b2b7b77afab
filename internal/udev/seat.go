//go:build linux

// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package udev

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// DefaultSeat is the seat every device belongs to unless the udev
// database says otherwise.
const DefaultSeat = "seat0"

// Seat returns the ID_SEAT property of the device node at path, or
// DefaultSeat if the udev runtime database has no opinion. This mirrors
// udev_device_get_property_value(dev, "ID_SEAT") without linking
// libudev: the kernel's stat gives the device's major:minor, which
// indexes directly into /run/udev/data.
func Seat(devnode string) (string, error) {
	var st unix.Stat_t
	if err := unix.Stat(devnode, &st); err != nil {
		return "", fmt.Errorf("udev: stat %s: %w", devnode, err)
	}
	rdev := uint64(st.Rdev)
	major := (rdev >> 8) & 0xfff
	minor := (rdev & 0xff) | ((rdev >> 12) & 0xfff00)

	dbPath := fmt.Sprintf("/run/udev/data/c%d:%d", major, minor)
	seat, err := seatFromDB(dbPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSeat, nil
		}
		return "", err
	}
	if seat == "" {
		return DefaultSeat, nil
	}
	return seat, nil
}

// seatFromDB scans a udev database record for an "E:ID_SEAT=" property
// line. The database format is one "<type>:<rest>" line per record
// entry; property lines use type 'E'.
func seatFromDB(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	const prefix = "E:ID_SEAT="
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, prefix) {
			return strings.TrimPrefix(line, prefix), nil
		}
	}
	return "", scanner.Err()
}
