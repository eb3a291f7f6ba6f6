package material

import (
	"github.com/samber/lo"

	"github.com/shanginn/weekend-raytracer/pkg/core"
)

// NewMetal creates a metal material. Fuzz is clamped to [0, 1];
// 0 is a perfect mirror.
func NewMetal(albedo core.Vec3, fuzz float64) Material {
	return Material{Kind: KindMetal, Albedo: albedo, Fuzz: lo.Clamp(fuzz, 0.0, 1.0)}
}

func (m Material) scatterMetal(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	reflected := reflect(rayIn.Direction.UnitVector(), hit.Normal)
	fuzz := lo.Clamp(m.Fuzz, 0.0, 1.0)
	direction := reflected.Add(core.RandomInUnitSphere(sampler).Multiply(fuzz))
	scattered := core.NewRay(hit.Point, direction)

	// Fuzz may push the ray below the surface; treat that as absorbed
	return ScatterResult{
		Attenuation: m.Albedo,
		Scattered:   scattered,
	}, scattered.Direction.Dot(hit.Normal) > 0
}
