//go:build linux

// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package evdev

import (
	"fmt"

	gvevdev "github.com/gvalkov/golang-evdev"
)

// Features summarizes what probing a device node discovered about it.
type Features struct {
	HasKeys bool
	HasLEDs bool
}

// ProbeFeatures opens node through golang-evdev, the same library a
// keyboard-hotkey listener uses to decide whether a node is worth
// watching, and inspects the Capabilities it reports for EV_KEY and
// EV_LED entries. Opening is short-lived: the node is closed again
// before returning, same as a capability-only probe. An open failure is
// reported to the caller; capability absence is not an error, just a
// zero Features value.
//
// HasKeys requires a supported code in [KEY_RESERVED,
// KEY_MIN_INTERESTING], matching probe_device_features: a device whose
// only EV_KEY codes are outside that range (a mouse's buttons, a
// remote's multimedia keys) is not "a keyboard" for this subsystem's
// purposes, even though it does technically support EV_KEY.
func ProbeFeatures(node string) (Features, error) {
	dev, err := gvevdev.Open(node)
	if err != nil {
		return Features{}, fmt.Errorf("evdev: open %s: %w", node, err)
	}
	defer dev.File.Close()

	var feats Features
	for capType, codes := range dev.Capabilities {
		switch capType.Type {
		case EV_KEY:
			for _, c := range codes {
				if c.Code >= KEY_RESERVED && c.Code <= KEY_MIN_INTERESTING {
					feats.HasKeys = true
					break
				}
			}
		case EV_LED:
			feats.HasLEDs = len(codes) > 0
		}
	}
	return feats, nil
}
