// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package logger

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultLogger_LevelGating(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	tests := []struct {
		name      string
		logLevel  LogLevel
		logMethod func(*DefaultLogger, string, ...interface{})
		shouldLog bool
	}{
		{"debug suppressed at info", InfoLevel, (*DefaultLogger).Debug, false},
		{"info logs at info", InfoLevel, (*DefaultLogger).Info, true},
		{"info suppressed at warning", WarningLevel, (*DefaultLogger).Info, false},
		{"warning logs at warning", WarningLevel, (*DefaultLogger).Warning, true},
		{"warning suppressed at error", ErrorLevel, (*DefaultLogger).Warning, false},
		{"error logs at error", ErrorLevel, (*DefaultLogger).Error, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			logger := NewDefaultLogger(tt.logLevel)
			tt.logMethod(logger, "message")

			if tt.shouldLog != (buf.Len() > 0) {
				t.Errorf("shouldLog=%v, got output %q", tt.shouldLog, buf.String())
			}
		})
	}
}

// inputmanager and cmd/termkbdd log devnodes and keysyms through
// Debug/Warning; this just pins the "%[verb] args" passthrough they
// rely on.
func TestDefaultLogger_Formatting(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	logger := NewDefaultLogger(DebugLevel)
	logger.Warning("%s: wake failed, retiring: %v", "/dev/input/event3", os.ErrClosed)

	output := buf.String()
	if !strings.Contains(output, "[WARNING]") {
		t.Errorf("expected [WARNING] prefix, got %q", output)
	}
	if !strings.Contains(output, "/dev/input/event3: wake failed, retiring") {
		t.Errorf("expected formatted message, got %q", output)
	}
}

func TestConfigure_WithoutFileSetsLevel(t *testing.T) {
	logger, err := Configure(Config{Level: WarningLevel})
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if logger.level != WarningLevel {
		t.Errorf("level = %v, want WarningLevel", logger.level)
	}
}

func TestConfigure_WritesToFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "nested", "termkbdd.log")

	logger, err := Configure(Config{Level: DebugLevel, File: logPath})
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}
	defer log.SetOutput(os.Stderr)

	logger.Info("seat0 connected")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "seat0 connected") {
		t.Errorf("log file does not contain the logged message: %q", data)
	}
}
