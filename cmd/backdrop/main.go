//go:build !js

// Command backdrop previews the decorative background in a desktop window.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/gekko3d/backdrop"
	"github.com/gekko3d/backdrop/platform/desktop"
	"github.com/gekko3d/backdrop/rt/probe"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	width := flag.Int("width", 1280, "window width in screen coordinates")
	height := flag.Int("height", 720, "window height in screen coordinates")
	tier := flag.String("tier", "", "force a capability tier (low, medium, high) instead of probing")
	config := flag.String("config", "", "JSON settings file applied over the tier preset")
	debug := flag.Bool("debug", false, "debug logging and the on-screen parameter panel")
	pixelRatio := flag.Float64("pixel-ratio", 0, "override the device pixel ratio (0 detects it)")
	flag.Parse()

	if err := run(*width, *height, *tier, *config, *debug, *pixelRatio); err != nil {
		fmt.Fprintln(os.Stderr, "backdrop:", err)
		os.Exit(1)
	}
}

func run(width, height int, tier, config string, debug bool, pixelRatio float64) error {
	logger := backdrop.NewDefaultLogger("backdrop", debug)

	host := desktop.NewWindow(desktop.WindowConfig{
		Title:      "backdrop",
		Width:      width,
		Height:     height,
		PixelRatio: pixelRatio,
	})
	opts := backdrop.Options{
		Host:   host,
		Probe:  desktop.Probe{},
		Logger: logger,
	}
	if tier != "" {
		t, err := probe.ParseTier(tier)
		if err != nil {
			return err
		}
		preset := backdrop.Preset(t)
		opts.Settings = &preset
	}
	if config != "" {
		data, err := os.ReadFile(config)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		opts.Overrides = data
	}

	// The loop needs the window, which only exists after Init attaches it; frames
	// requested during Init are queued here and handed over.
	var loop *desktop.Loop
	var early []func(now time.Duration)
	opts.Scheduler = backdrop.SchedulerFunc(func(fn func(now time.Duration)) {
		if loop == nil {
			early = append(early, fn)
			return
		}
		loop.RequestFrame(fn)
	})

	sys := backdrop.New(opts)
	if err := sys.Init(); err != nil {
		return err
	}
	defer sys.Destroy()

	window := host.GLFW()
	loop = desktop.NewLoop(window)
	for _, fn := range early {
		loop.RequestFrame(fn)
	}
	desktop.Bind(window, sys)
	if debug {
		sys.OnKey("d")
	}

	logger.Infof("tier %s, settings %+v", sys.Tier(), sys.Settings())
	loop.Run()
	return nil
}
