//go:build linux

// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package udev

import (
	"os"
	"path/filepath"
	"strings"
)

const sysClassInput = "/sys/class/input"

// Enumerate lists every existing evdev character device node under
// /sys/class/input, the sysfs equivalent of udev_enumerate with
// subsystem "input" filtered down to the eventN children. This is how
// the initial device set is discovered at startup, before any hot-plug
// event has ever arrived.
func Enumerate() ([]string, error) {
	entries, err := os.ReadDir(sysClassInput)
	if err != nil {
		return nil, err
	}

	var nodes []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "event") {
			continue
		}
		nodes = append(nodes, "/dev/input/"+name)
	}
	return nodes, nil
}

// KObjFromDevName turns a DEVNAME uevent property ("input/event3") into
// the /dev path ("/dev/input/event3") add_device expects.
func KObjFromDevName(devname string) string {
	return filepath.Join("/dev", devname)
}
