//go:build linux

// Copyright (c) 2025 Asher Buk
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/opentty/termkbd/internal/config"
	"github.com/opentty/termkbd/internal/inputmanager"
	"github.com/opentty/termkbd/internal/keymap"
	"github.com/opentty/termkbd/internal/logger"
	"github.com/opentty/termkbd/internal/loop"
	"github.com/opentty/termkbd/internal/sleepmon"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

type options struct {
	configFile string
	debug      bool
}

func parseOptions(args []string) (*options, error) {
	opts := &options{configFile: "termkbd.yaml"}

	fs := flag.NewFlagSet("termkbdd", flag.ContinueOnError)
	fs.StringVar(&opts.configFile, "config", opts.configFile, "path to configuration file")
	fs.BoolVar(&opts.debug, "debug", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if remaining := fs.Args(); len(remaining) > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", remaining)
	}
	return opts, nil
}

func run(args []string) int {
	opts, err := parseOptions(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	cfg, err := config.Load(opts.configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "termkbdd: %v\n", err)
		return 1
	}

	logLevel := logger.InfoLevel
	switch cfg.LogLevel {
	case "debug":
		logLevel = logger.DebugLevel
	case "warning":
		logLevel = logger.WarningLevel
	case "error":
		logLevel = logger.ErrorLevel
	}
	if opts.debug {
		logLevel = logger.DebugLevel
	}
	log, err := logger.Configure(logger.Config{Level: logLevel, File: cfg.LogFile})
	if err != nil {
		fmt.Fprintf(os.Stderr, "termkbdd: logger: %v\n", err)
		return 1
	}

	l, err := loop.New()
	if err != nil {
		log.Error("epoll: %v", err)
		return 1
	}
	defer l.Close()

	desc := keymap.NewDesc(cfg.XkbLayout, cfg.XkbVariant, cfg.XkbOptions)
	mgr := inputmanager.New(cfg.Seat, desc, log)
	mgr.RegisterObserver(loggingObserver{log: log})

	if err := mgr.Connect(l); err != nil {
		log.Error("connect: %v", err)
		return 1
	}
	defer mgr.Disconnect()

	if err := mgr.WakeUp(); err != nil {
		log.Error("wake up: %v", err)
		return 1
	}

	sleep, err := sleepmon.New(mgr)
	if err != nil {
		log.Warning("sleepmon unavailable, suspend/resume will not retire devices: %v", err)
	} else {
		sleep.Start()
		defer sleep.Close()
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		l.Stop()
	}()

	log.Info("termkbdd listening on seat %s", cfg.Seat)
	if err := l.Run(); err != nil {
		log.Error("event loop: %v", err)
		return 1
	}
	return 0
}

type loggingObserver struct {
	log logger.Logger
}

func (o loggingObserver) OnKeyEvent(devnode string, ev keymap.Event) {
	o.log.Debug("%s: keycode=%d keysym=%#x unicode=%q mods=%#x", devnode, ev.Keycode, ev.Keysym, ev.Unicode, ev.Mods)
}
