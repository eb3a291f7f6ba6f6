package geometry

import (
	"github.com/pkg/errors"

	"github.com/shanginn/weekend-raytracer/pkg/core"
	"github.com/shanginn/weekend-raytracer/pkg/material"
)

var (
	// ErrInvalidCamera is returned when a camera configuration cannot form a valid view
	ErrInvalidCamera = errors.New("invalid camera configuration")
	// ErrDegenerateGeometry is returned for primitives that cannot be intersected reliably
	ErrDegenerateGeometry = errors.New("degenerate geometry")
)

// Hittable is anything a ray can be tested against. Implementations return
// the nearest intersection with t strictly inside (tMin, tMax).
type Hittable interface {
	Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool)
}
