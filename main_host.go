package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"wavescope/app"
	"wavescope/hal"
)

func main() {
	var (
		hcfg hal.HeadlessConfig
		wcfg hal.WindowConfig
		acfg app.Config
	)
	flag.BoolVar(&hcfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&hcfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&hcfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.IntVar(&wcfg.Scale, "scale", 1, "Window scale factor.")
	flag.BoolVar(&wcfg.HUD, "hud", false, "Show TPS/FPS overlay in the window.")
	flag.StringVar(&acfg.Signal, "signal", "", "Signal source (SINE, SQUARE, SAW, CLIP, NOISE).")
	flag.IntVar(&acfg.Divider, "div", 4, "Host ticks per plotted sample.")
	flag.Uint64Var(&acfg.LogEvery, "log-every", 0, "Log a status line every N samples (0 = off).")
	flag.Parse()

	newApp := func(h hal.HAL) func() error {
		return app.NewWithConfig(h, acfg)
	}

	if hcfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, hcfg); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	acfg.HoldPanic = true
	if err := hal.RunWindow(newApp, wcfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
