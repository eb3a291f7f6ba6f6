package material

import (
	"math"

	"github.com/shanginn/weekend-raytracer/pkg/core"
)

// NewDielectric creates a clear refractive material (e.g. 1.5 for glass).
// The index must exceed 1; Validate reports values that do not.
func NewDielectric(refractiveIndex float64) Material {
	return Material{Kind: KindDielectric, RefractiveIndex: refractiveIndex}
}

func (m Material) scatterDielectric(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Glass absorbs nothing
	attenuation := core.NewVec3(1, 1, 1)
	direction := rayIn.Direction
	index := m.RefractiveIndex

	var outwardNormal core.Vec3
	var ratio, cosine float64
	if d := direction.Dot(hit.Normal); d > 0 {
		// Leaving the material
		outwardNormal = hit.Normal.Negate()
		ratio = index
		cosine = index * d / direction.Length()
	} else {
		outwardNormal = hit.Normal
		ratio = 1.0 / index
		cosine = -d / direction.Length()
	}

	reflected := reflect(direction, hit.Normal)

	refracted, ok := refract(direction, outwardNormal, ratio)
	if !ok || sampler.Float64() < Reflectance(cosine, index) {
		return ScatterResult{Attenuation: attenuation, Scattered: core.NewRay(hit.Point, reflected)}, true
	}
	return ScatterResult{Attenuation: attenuation, Scattered: core.NewRay(hit.Point, refracted)}, true
}

// refract bends v through a surface with normal n using Snell's law.
// The bool is false on total internal reflection.
func refract(v, n core.Vec3, ratio float64) (core.Vec3, bool) {
	uv := v.UnitVector()
	dt := uv.Dot(n)
	discriminant := 1.0 - ratio*ratio*(1.0-dt*dt)
	if discriminant <= 0 {
		return core.Vec3{}, false
	}
	return uv.Subtract(n.Multiply(dt)).Multiply(ratio).Subtract(n.Multiply(math.Sqrt(discriminant))), true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractiveIndex float64) float64 {
	r0 := (1 - refractiveIndex) / (1 + refractiveIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
