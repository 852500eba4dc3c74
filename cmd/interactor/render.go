package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/gogpu/gg"

	"github.com/grindlemire/go-interactor"
)

// runRender implements the render subcommand.
// It draws the machine's current regions to a PNG, optionally after
// replaying a script so the picture shows the resulting state.
func runRender(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	var common commonFlags
	common.register(fs)
	debugDraw := fs.Bool("debug", false, "Outline region bounds")
	script := fs.String("events", "", "Replay this script before drawing")
	width := fs.Int("width", 0, "Canvas width in pixels")
	height := fs.Int("height", 0, "Canvas height in pixels")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := common.resolve(fs)
	if err != nil {
		return err
	}
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "debug":
			cfg.DebugDraw = *debugDraw
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		}
	})
	if err := cfg.validate(); err != nil {
		return err
	}

	closer, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	var location, output string
	switch rest := fs.Args(); {
	case len(rest) == 2:
		location, output = rest[0], rest[1]
	case len(rest) == 1 && cfg.Definition != "":
		location, output = cfg.Definition, rest[0]
	default:
		return fmt.Errorf("usage: interactor render [options] <definition> <out.png>")
	}

	var events []interactor.RawEvent
	if *script != "" {
		if events, err = readScript(*script); err != nil {
			return err
		}
	}

	var eventOut io.Writer
	if len(events) > 0 {
		eventOut = out
	}
	ss, err := openSession(context.Background(), cfg, location, eventOut)
	if err != nil {
		return err
	}
	ss.feed(events)

	if err := renderPNG(ss.surface, cfg.Width, cfg.Height, output); err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s (%dx%d)\n", output, cfg.Width, cfg.Height)
	return nil
}

// renderPNG draws s onto a white canvas and saves it to path. Region draw
// failures are reported but do not prevent the file from being written.
func renderPNG(s *interactor.Surface, width, height int, path string) error {
	dc := gg.NewContext(width, height)
	defer dc.Close()
	dc.ClearWithColor(gg.White)

	drawErr := s.Draw(dc)
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	if drawErr != nil {
		return fmt.Errorf("drawing: %w", drawErr)
	}
	return nil
}
