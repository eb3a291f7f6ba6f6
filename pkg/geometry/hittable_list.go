package geometry

import (
	"github.com/shanginn/weekend-raytracer/pkg/core"
	"github.com/shanginn/weekend-raytracer/pkg/material"
)

// HittableList is an ordered scene aggregate searched linearly.
// It must not be modified once rendering starts; concurrent Hit calls
// are safe because Hit never writes.
type HittableList struct {
	primitives []Primitive
}

// NewHittableList creates an empty list with room for capacity primitives
func NewHittableList(capacity int) *HittableList {
	return &HittableList{primitives: make([]Primitive, 0, capacity)}
}

// Add validates and appends a primitive
func (l *HittableList) Add(p Primitive) error {
	if err := p.Validate(); err != nil {
		return err
	}
	l.primitives = append(l.primitives, p)
	return nil
}

// AddSphere validates and appends a sphere
func (l *HittableList) AddSphere(s Sphere) error {
	return l.Add(SpherePrimitive(s))
}

// Len returns the number of primitives
func (l *HittableList) Len() int {
	return len(l.primitives)
}

// Primitives returns a copy of the primitives in insertion order
func (l *HittableList) Primitives() []Primitive {
	out := make([]Primitive, len(l.primitives))
	copy(out, l.primitives)
	return out
}

// Hit returns the closest intersection across all primitives. On equal
// distances the earlier primitive wins because later ones must be strictly
// closer than closestSoFar.
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	hit, index := l.HitIndex(ray, tMin, tMax)
	return hit, index >= 0
}

// HitIndex is Hit that also reports which primitive was struck, or -1
func (l *HittableList) HitIndex(ray core.Ray, tMin, tMax float64) (material.HitRecord, int) {
	var closestHit material.HitRecord
	closestSoFar := tMax
	closestIndex := -1

	for i, p := range l.primitives {
		if hit, isHit := p.Hit(ray, tMin, closestSoFar); isHit {
			closestIndex = i
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestIndex
}
