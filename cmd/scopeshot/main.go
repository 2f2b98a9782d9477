package main

import (
	"flag"
	"fmt"
	"os"

	"wavescope/hal"
	"wavescope/scopekit/snapshot"
	"wavescope/scopekit/tasks/scopeview"
)

// stepTicks stays below the host tick queue depth.
const stepTicks = 512

func main() {
	var (
		outPath = flag.String("out", "", "Output image (.png or .bmp).")
		sig     = flag.String("signal", "SINE", "Signal source.")
		samples = flag.Uint64("samples", 640, "Samples to plot before capturing.")
		status  = flag.String("text", "", "Fixed overlay text (default: live status).")
		div     = flag.Int("div", 4, "Host ticks per sample.")
	)
	flag.Parse()

	if *outPath == "" {
		fatalf("usage: scopeshot -out frame.png [-signal SINE] [-samples 640] [-div 4] [-text status]")
	}
	if _, err := snapshot.FormatFor(*outPath); err != nil {
		fatalf("%v", err)
	}
	if *div <= 0 {
		fatalf("div out of range: %d", *div)
	}

	if err := capture(*outPath, *sig, *status, *div, *samples); err != nil {
		fatalf("scopeshot: %v", err)
	}
}

func capture(outPath, sig, status string, div int, samples uint64) error {
	h, step := hal.NewHeadless()
	task, err := scopeview.New(h, scopeview.Config{Signal: sig, Divider: div, Status: status})
	if err != nil {
		return err
	}

	for task.Pushed() < samples {
		want := (samples - task.Pushed()) * uint64(div)
		step(min(want, stepTicks))
		if err := task.Step(); err != nil {
			return err
		}
	}
	if err := task.Step(); err != nil {
		return err
	}

	frame, err := task.Frame()
	if err != nil {
		return err
	}
	return snapshot.Save(outPath, frame)
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
