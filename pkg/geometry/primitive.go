package geometry

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/shanginn/weekend-raytracer/pkg/core"
	"github.com/shanginn/weekend-raytracer/pkg/material"
)

// Kind identifies the shape stored in a Primitive
type Kind uint8

const (
	// KindSphere is a Sphere primitive
	KindSphere Kind = iota
)

// String returns the lowercase name of the kind
func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Primitive is a closed set of shapes dispatched by Kind. New shapes add a
// Kind, a field and a case in each switch below.
type Primitive struct {
	kind   Kind
	sphere Sphere
}

// SpherePrimitive wraps a sphere
func SpherePrimitive(s Sphere) Primitive {
	return Primitive{kind: KindSphere, sphere: s}
}

// Kind returns the shape kind
func (p Primitive) Kind() Kind {
	return p.kind
}

// Sphere returns the wrapped sphere; ok is false for other kinds
func (p Primitive) Sphere() (Sphere, bool) {
	return p.sphere, p.kind == KindSphere
}

// Material returns the material of the wrapped shape
func (p Primitive) Material() material.Material {
	switch p.kind {
	case KindSphere:
		return p.sphere.Material
	default:
		panic(fmt.Sprintf("geometry: unhandled kind %v", p.kind))
	}
}

// Validate checks the wrapped shape for degenerate parameters
func (p Primitive) Validate() error {
	switch p.kind {
	case KindSphere:
		return p.sphere.Validate()
	default:
		return errors.Errorf("geometry: unhandled kind %v", p.kind)
	}
}

// Hit dispatches the intersection test to the wrapped shape
func (p Primitive) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	switch p.kind {
	case KindSphere:
		return p.sphere.Hit(ray, tMin, tMax)
	default:
		panic(fmt.Sprintf("geometry: unhandled kind %v", p.kind))
	}
}
