package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/shanginn/weekend-raytracer/pkg/core"
	"github.com/shanginn/weekend-raytracer/pkg/imageio"
	"github.com/shanginn/weekend-raytracer/pkg/renderer"
	"github.com/shanginn/weekend-raytracer/pkg/scene"
	"github.com/shanginn/weekend-raytracer/pkg/sysinfo"
)

// Config holds the command line options
type Config struct {
	Scene      string
	Width      int
	Height     int
	Samples    int
	Workers    int
	Seed       int64
	Output     string // Empty: output/<scene>/render_<timestamp>.<format>
	Format     string
	CPUProfile string
	Quiet      bool
}

// parseFlags parses args (without the program name) into a Config
func parseFlags(args []string, stderr io.Writer) (Config, error) {
	var cfg Config
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&cfg.Scene, "scene", "random", "Scene: "+strings.Join(scene.Names(), ", "))
	fs.IntVar(&cfg.Width, "width", 800, "Image width in pixels")
	fs.IntVar(&cfg.Height, "height", 300, "Image height in pixels")
	fs.IntVar(&cfg.Samples, "samples", 100, "Samples per pixel")
	fs.IntVar(&cfg.Workers, "workers", 0, "Parallel workers (0 = one per physical core)")
	fs.Int64Var(&cfg.Seed, "seed", 0, "Random seed for scene and sampling (0 = time-based)")
	fs.StringVar(&cfg.Output, "out", "", "Output file; the extension picks the format")
	fs.StringVar(&cfg.Format, "format", "ppm", "Output format when -out is not given: ppm, png, bmp or tiff")
	fs.StringVar(&cfg.CPUProfile, "cpuprofile", "", "Write a CPU profile to file")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Suppress progress output")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Weekend Raytracer")
		fmt.Fprintln(stderr, "Usage: raytracer [options]")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Output is saved to output/<scene>/render_<timestamp>.<format> unless -out is set")
	}

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() > 0 {
		return cfg, errors.Errorf("unexpected arguments: %v", fs.Args())
	}
	if _, err := imageio.ParseFormat(cfg.Format); err != nil {
		return cfg, err
	}
	if cfg.Output != "" {
		if _, err := imageio.FormatFromPath(cfg.Output); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// outputPath resolves where the render is written
func (cfg Config) outputPath(now time.Time) string {
	if cfg.Output != "" {
		return cfg.Output
	}
	format, _ := imageio.ParseFormat(cfg.Format)
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", cfg.Scene, fmt.Sprintf("render_%s.%s", timestamp, format))
}

// run renders the configured scene and saves it, returning the output path
func run(cfg Config, logger core.Logger) (string, error) {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = sysinfo.DefaultWorkers()
	}

	selected, err := scene.NewSeeded(cfg.Scene, cfg.Width, cfg.Height, cfg.Seed)
	if err != nil {
		return "", err
	}
	camera, err := selected.Camera()
	if err != nil {
		return "", err
	}
	logger.Printf("Using %s scene (%d spheres)...\n", selected.Name, selected.World.Len())

	config := renderer.RenderConfig{
		Width:           cfg.Width,
		Height:          cfg.Height,
		Workers:         cfg.Workers,
		SamplesPerPixel: cfg.Samples,
		Seed:            cfg.Seed,
		Logger:          logger,
	}
	r, err := renderer.NewRenderer(config, selected.World, camera, nil)
	if err != nil {
		return "", err
	}

	pixels, _, err := r.Render(context.Background())
	if err != nil {
		return "", err
	}

	path := cfg.outputPath(time.Now())
	if err := imageio.Save(path, pixels, cfg.Width, cfg.Height); err != nil {
		return "", err
	}
	logger.Printf("Render saved as %s\n", path)
	return path, nil
}

// startCPUProfile starts profiling into path and returns the function that
// stops profiling and closes the file. An empty path disables profiling.
func startCPUProfile(path string) (func() error, error) {
	if path == "" {
		return func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "creating CPU profile")
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "starting CPU profile")
	}
	return func() error {
		pprof.StopCPUProfile()
		return f.Close()
	}, nil
}

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	var logger core.Logger = renderer.NewDefaultLogger()
	if cfg.Quiet {
		logger = core.NopLogger{}
	}

	logger.Printf("Starting Weekend Raytracer...\n")
	if info, err := sysinfo.Detect(); err != nil {
		logger.Printf("Host: %v (partial: %v)\n", info, err)
	} else {
		logger.Printf("Host: %v\n", info)
	}

	stopProfile, err := startCPUProfile(cfg.CPUProfile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	_, err = run(cfg, logger)
	// os.Exit skips deferred calls, so the profile is flushed and closed first
	if stopErr := stopProfile(); stopErr != nil {
		fmt.Fprintf(os.Stderr, "Error closing CPU profile: %v\n", stopErr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
