package renderer

import (
	"math"
	"time"

	"github.com/shanginn/weekend-raytracer/pkg/core"
	"github.com/shanginn/weekend-raytracer/pkg/geometry"
	"github.com/shanginn/weekend-raytracer/pkg/integrator"
)

// TileRenderer renders chunks of the flat pixel buffer. It holds only
// read-only state and may be shared by all workers.
type TileRenderer struct {
	world           geometry.Hittable
	camera          *geometry.Camera
	integrator      integrator.Integrator
	width, height   int
	samplesPerPixel int
}

// NewTileRenderer creates a tile renderer for a width x height image
func NewTileRenderer(world geometry.Hittable, camera *geometry.Camera, integ integrator.Integrator, width, height, samplesPerPixel int) *TileRenderer {
	return &TileRenderer{
		world:           world,
		camera:          camera,
		integrator:      integ,
		width:           width,
		height:          height,
		samplesPerPixel: samplesPerPixel,
	}
}

// RenderChunk fills pixels, which must be the buffer slice for chunk
// (len(pixels) == chunk.Len()), using sampler for all randomness
func (tr *TileRenderer) RenderChunk(chunk Chunk, pixels []core.Vec3, sampler core.Sampler) ChunkStats {
	start := time.Now()
	stats := ChunkStats{Index: chunk.Index}

	for i := range pixels {
		pixels[i] = tr.samplePixel(chunk.Start+i, sampler)
		stats.Pixels++
		stats.Samples += tr.samplesPerPixel
	}

	stats.Duration = time.Since(start)
	return stats
}

// samplePixel box-filters samplesPerPixel jittered rays through the pixel at
// buffer position. Row 0 of the buffer is the top of the image, while the
// camera's t coordinate grows upward, so the row is flipped.
func (tr *TileRenderer) samplePixel(position int, sampler core.Sampler) core.Vec3 {
	x := position % tr.width
	y := tr.height - 1 - position/tr.width

	var ps PixelStats
	for sample := 0; sample < tr.samplesPerPixel; sample++ {
		s := (float64(x) + sampler.Float64()) / float64(tr.width)
		t := (float64(y) + sampler.Float64()) / float64(tr.height)

		ray := tr.camera.GetRay(s, t, sampler)
		ps.AddSample(tr.integrator.RayColor(ray, tr.world, sampler))
	}

	return toDisplay(ps.GetColor())
}

// toDisplay applies gamma 2 and forces every component into [0, 1]
func toDisplay(linear core.Vec3) core.Vec3 {
	c := linear.Sqrt()
	return core.NewVec3(clampUnit(c.X), clampUnit(c.Y), clampUnit(c.Z))
}

func clampUnit(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return max(0, min(1, x))
}
