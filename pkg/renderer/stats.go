package renderer

import (
	"time"

	"github.com/shanginn/weekend-raytracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels  int           // Total number of pixels rendered
	TotalSamples int           // Total number of samples taken
	Workers      int           // Number of workers actually used
	Duration     time.Duration // Wall time from fork to join
	Chunks       []ChunkStats  // Per-worker statistics in chunk order
}

// ChunkStats contains statistics for one worker's chunk
type ChunkStats struct {
	Index    int           // Chunk index
	Pixels   int           // Pixels written
	Samples  int           // Samples taken
	Duration time.Duration // Time spent rendering the chunk
}

// SamplesPerSecond returns overall throughput
func (rs RenderStats) SamplesPerSecond() float64 {
	if rs.Duration <= 0 {
		return 0
	}
	return float64(rs.TotalSamples) / rs.Duration.Seconds()
}

// PixelStats accumulates samples for a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator for final result
	SampleCount int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Divide(float64(ps.SampleCount))
}

// AverageLuminance returns the mean luminance of a finished pixel buffer
func AverageLuminance(pixels []core.Vec3) float64 {
	if len(pixels) == 0 {
		return 0
	}
	var total float64
	for _, p := range pixels {
		total += p.Luminance()
	}
	return total / float64(len(pixels))
}
