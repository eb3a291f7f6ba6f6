package scene

import (
	"github.com/shanginn/weekend-raytracer/pkg/core"
	"github.com/shanginn/weekend-raytracer/pkg/geometry"
	"github.com/shanginn/weekend-raytracer/pkg/material"
)

// Grid of small spheres spans [-gridHalf, gridHalf) on both ground axes
const gridHalf = 11

// NewRandomScene creates the cover scene: a jittered grid of small random
// spheres around three large ones. The same seed yields the same scene.
func NewRandomScene(aspectRatio float64, seed int64) (*Scene, error) {
	lookFrom := core.NewVec3(-14, 2, -4)
	lookAt := core.NewVec3(-4, 1, 0)
	cameraConfig := geometry.CameraConfig{
		LookFrom:      lookFrom,
		LookAt:        lookAt,
		ViewUp:        core.NewVec3(0, 1, 0),
		VFov:          15,
		AspectRatio:   aspectRatio,
		Aperture:      0.15,
		FocusDistance: lookFrom.Subtract(lookAt).Length(),
	}

	sampler := core.NewSeededSampler(seed)
	// Uniform in [low, high)
	between := func(low, high float64) float64 { return low + (high-low)*sampler.Float64() }

	world := geometry.NewHittableList(4 + 4*gridHalf*gridHalf)
	if err := add(world, geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000,
		material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))); err != nil {
		return nil, err
	}

	clearing := core.NewVec3(4, 0.2, 0)
	for a := -gridHalf; a < gridHalf; a++ {
		for b := -gridHalf; b < gridHalf; b++ {
			chooseMat := sampler.Float64()
			radius := between(0.1, 0.3)
			center := core.NewVec3(
				float64(a)+0.9*sampler.Float64(),
				radius,
				float64(b)+0.9*sampler.Float64(),
			)

			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			var mat material.Material
			switch {
			case chooseMat < 0.5:
				mat = material.NewLambertian(core.NewVec3(
					sampler.Float64()*sampler.Float64(),
					sampler.Float64()*sampler.Float64(),
					sampler.Float64()*sampler.Float64(),
				))
			case chooseMat < 0.8:
				// Albedo may exceed 1; display values are clamped at the end
				mat = material.NewMetal(core.NewVec3(
					0.5*between(1, 4),
					0.5*between(1, 4),
					0.5*between(1, 4),
				), between(0, 0.5))
			default:
				mat = material.NewDielectric(1.5)
			}

			if err := add(world, geometry.NewSphere(center, radius, mat)); err != nil {
				return nil, err
			}
		}
	}

	err := add(world,
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0)),
	)
	if err != nil {
		return nil, err
	}

	return &Scene{Name: "random", World: world, CameraConfig: cameraConfig}, nil
}
