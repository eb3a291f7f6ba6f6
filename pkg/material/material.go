package material

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/shanginn/weekend-raytracer/pkg/core"
)

// ErrInvalidMaterial is returned for materials whose parameters make scattering meaningless
var ErrInvalidMaterial = errors.New("invalid material")

// Kind identifies which scattering model a Material uses
type Kind uint8

const (
	// KindLambertian is a perfectly diffuse surface
	KindLambertian Kind = iota
	// KindMetal is a specular reflector with optional fuzz
	KindMetal
	// KindDielectric is a clear refractive surface such as glass
	KindDielectric
)

// String returns the lowercase name of the kind
func (k Kind) String() string {
	switch k {
	case KindLambertian:
		return "lambertian"
	case KindMetal:
		return "metal"
	case KindDielectric:
		return "dielectric"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Material is a closed set of scattering models. Only the fields relevant
// to Kind are meaningful. Materials are small immutable values and are
// copied into every hit record.
type Material struct {
	Kind            Kind
	Albedo          core.Vec3 // Lambertian and Metal
	Fuzz            float64   // Metal, in [0, 1]
	RefractiveIndex float64   // Dielectric
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	T        float64   // Parameter t along the ray
	Point    core.Vec3 // Point of intersection
	Normal   core.Vec3 // (Point - Center) / Radius for spheres; inward for negative radii
	Material Material  // Material of the hit object
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Attenuation core.Vec3 // Color attenuation
	Scattered   core.Ray  // The scattered ray
}

// Scatter decides how rayIn leaves the surface described by hit.
// The bool is false when the ray is absorbed.
func (m Material) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	switch m.Kind {
	case KindLambertian:
		return m.scatterLambertian(hit, sampler)
	case KindMetal:
		return m.scatterMetal(rayIn, hit, sampler)
	case KindDielectric:
		return m.scatterDielectric(rayIn, hit, sampler)
	default:
		panic(fmt.Sprintf("material: unhandled kind %v", m.Kind))
	}
}

// Validate rejects unknown kinds and dielectrics whose refractive index is
// not a finite value above 1
func (m Material) Validate() error {
	switch m.Kind {
	case KindLambertian, KindMetal:
		return nil
	case KindDielectric:
		if !(m.RefractiveIndex > 1) || math.IsInf(m.RefractiveIndex, 0) {
			return errors.Wrapf(ErrInvalidMaterial, "refractive index %g must be above 1", m.RefractiveIndex)
		}
		return nil
	default:
		return errors.Wrapf(ErrInvalidMaterial, "unhandled kind %v", m.Kind)
	}
}

// reflect calculates the reflection of a vector v off a surface with normal n
func reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
