package renderer

import (
	"context"
	"runtime"
	"time"

	"github.com/pkg/errors"

	"github.com/shanginn/weekend-raytracer/pkg/core"
	"github.com/shanginn/weekend-raytracer/pkg/geometry"
	"github.com/shanginn/weekend-raytracer/pkg/integrator"
)

var (
	// ErrInvalidConfig is returned for unusable image dimensions or sample counts
	ErrInvalidConfig = errors.New("invalid render config")
	// ErrWorkerFailed is returned when a worker panics mid-render
	ErrWorkerFailed = errors.New("render worker failed")
)

// RenderConfig contains the settings for one render
type RenderConfig struct {
	Width           int         // Image width in pixels
	Height          int         // Image height in pixels
	Workers         int         // Parallel workers (0 = use CPU count)
	SamplesPerPixel int         // Jittered camera rays per pixel
	Seed            int64       // Base seed; worker i uses Seed + i
	Logger          core.Logger // Progress output (nil = silent)
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Width:           200,
		Height:          100,
		Workers:         0,
		SamplesPerPixel: 100,
		Seed:            42,
	}
}

// Renderer turns a world and camera into a flat pixel buffer
type Renderer struct {
	config     RenderConfig
	world      geometry.Hittable
	camera     *geometry.Camera
	integrator integrator.Integrator
	logger     core.Logger
}

// NewRenderer validates config and creates a renderer. A nil integrator
// selects the default path tracer.
func NewRenderer(config RenderConfig, world geometry.Hittable, camera *geometry.Camera, integ integrator.Integrator) (*Renderer, error) {
	if err := validateRenderConfig(config); err != nil {
		return nil, err
	}
	if world == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "world is nil")
	}
	if camera == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "camera is nil")
	}

	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if integ == nil {
		integ = integrator.NewPathTracingIntegrator(integrator.DefaultIntegratorConfig())
	}
	logger := config.Logger
	if logger == nil {
		logger = core.NopLogger{}
	}

	return &Renderer{
		config:     config,
		world:      world,
		camera:     camera,
		integrator: integ,
		logger:     logger,
	}, nil
}

func validateRenderConfig(c RenderConfig) error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.Wrapf(ErrInvalidConfig, "image size %dx%d must be positive", c.Width, c.Height)
	case c.SamplesPerPixel <= 0:
		return errors.Wrapf(ErrInvalidConfig, "samples per pixel %d must be positive", c.SamplesPerPixel)
	}
	return nil
}

// Config returns the renderer's configuration with defaults resolved
func (r *Renderer) Config() RenderConfig {
	return r.config
}

// Render produces width*height display colors in row-major order, top row
// first, each component in [0, 1]. On error no buffer is returned.
func (r *Renderer) Render(ctx context.Context) ([]core.Vec3, RenderStats, error) {
	start := time.Now()
	total := r.config.Width * r.config.Height
	pixels := make([]core.Vec3, total)

	chunks := Partition(total, r.config.Workers)
	tasks := make([]TileTask, len(chunks))
	for i, chunk := range chunks {
		tasks[i] = TileTask{
			Chunk:  chunk,
			Pixels: pixels[chunk.Start:chunk.End],
			Seed:   r.config.Seed + int64(chunk.Index),
		}
	}

	r.logger.Printf("Rendering %dx%d at %d samples/pixel using %d workers...\n",
		r.config.Width, r.config.Height, r.config.SamplesPerPixel, len(chunks))

	tileRenderer := NewTileRenderer(r.world, r.camera, r.integrator,
		r.config.Width, r.config.Height, r.config.SamplesPerPixel)
	pool := NewWorkerPool(tileRenderer, len(chunks))

	results, err := pool.Run(ctx, tasks)
	if err != nil {
		r.logger.Printf("Render failed: %v\n", err)
		return nil, RenderStats{}, err
	}

	stats := RenderStats{
		TotalPixels: total,
		Workers:     len(chunks),
		Duration:    time.Since(start),
		Chunks:      make([]ChunkStats, len(results)),
	}
	for i, result := range results {
		stats.Chunks[i] = result.Stats
		stats.TotalSamples += result.Stats.Samples
	}

	r.logger.Printf("Render completed in %v (%.0f samples/s, average luminance %.3f)\n",
		stats.Duration, stats.SamplesPerSecond(), AverageLuminance(pixels))

	return pixels, stats, nil
}

// Render renders world through camera with a time-based seed. Workers <= 0
// uses the CPU count.
func Render(width, height, workers, samples int, world geometry.Hittable, camera *geometry.Camera) ([]core.Vec3, error) {
	config := RenderConfig{
		Width:           width,
		Height:          height,
		Workers:         workers,
		SamplesPerPixel: samples,
		Seed:            time.Now().UnixNano(),
	}

	r, err := NewRenderer(config, world, camera, nil)
	if err != nil {
		return nil, err
	}

	pixels, _, err := r.Render(context.Background())
	return pixels, err
}
