package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pkg/errors"

	"github.com/shanginn/weekend-raytracer/pkg/core"
	"github.com/shanginn/weekend-raytracer/pkg/material"
)

var testMaterial = material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1))
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_TangentIsMiss(t *testing.T) {
	// Discriminant is exactly zero for a tangent ray
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1))

	if _, isHit := sphere.Hit(ray, 0.001, math.Inf(1)); isHit {
		t.Error("Tangent ray should not count as a hit")
	}
}

func TestSphere_Hit_NearAndFarRoots(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedNormal core.Vec3
	}{
		{
			name:           "outside hits near side",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "inside hits far side with outward normal",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "non-unit direction scales t",
			rayOrigin:      core.NewVec3(0, 0, 3),
			rayDirection:   core.NewVec3(0, 0, -2),
			expectedT:      1.0,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1))

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if !hit.Normal.ApproxEquals(tt.expectedNormal, 1e-9) {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
			if hit.Material != testMaterial {
				t.Errorf("Expected material %v, got %v", testMaterial, hit.Material)
			}
		})
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	tests := []struct {
		name      string
		tMin      float64
		tMax      float64
		expectHit bool
		expectedT float64
	}{
		{"tMax before near root", 0.001, 0.5, false, 0},
		{"tMax equal to near root is exclusive", 0.001, 1.0, false, 0},
		{"tMin past near root selects far root", 1.5, 10, true, 3},
		{"tMin equal to far root is exclusive", 3.0, 10, false, 0},
		{"both roots inside", 0.001, 10, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := sphere.Hit(ray, tt.tMin, tt.tMax)
			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%t, got %t", tt.expectHit, isHit)
			}
			if isHit && math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, hit.T)
			}
		})
	}
}

func TestSphere_Hit_RoundTripFromAllDirections(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	for _, r := range []float64{0.25, 1, 7.5} {
		sphere := NewSphere(core.NewVec3(0, 0, 0), r, testMaterial)
		for i := 0; i < 200; i++ {
			dir := core.NewVec3(random.NormFloat64(), random.NormFloat64(), random.NormFloat64()).UnitVector()
			origin := dir.Multiply(2 * r)
			ray := core.NewRay(origin, origin.Negate())

			hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1))
			if !isHit {
				t.Fatalf("Ray from %v toward center missed sphere r=%f", origin, r)
			}
			if hit.T <= 0 {
				t.Errorf("Expected positive t, got %f", hit.T)
			}
			if math.Abs(hit.Point.Length()-r) > 1e-9*r {
				t.Errorf("Hit point %v not on sphere of radius %f", hit.Point, r)
			}
			if math.Abs(hit.Normal.Length()-1) > 1e-9 {
				t.Errorf("Expected unit normal, got length %f", hit.Normal.Length())
			}
		}
	}
}

func TestSphere_NegativeRadiusFlipsNormal(t *testing.T) {
	outer := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	inner := NewSphere(core.NewVec3(0, 0, 0), -1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	outerHit, _ := outer.Hit(ray, 0.001, math.Inf(1))
	innerHit, isHit := inner.Hit(ray, 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Inverted sphere should still be hit")
	}
	if innerHit.T != outerHit.T {
		t.Errorf("Inverted sphere should be hit at the same t: %f vs %f", innerHit.T, outerHit.T)
	}
	if !innerHit.Normal.ApproxEquals(outerHit.Normal.Negate(), 1e-12) {
		t.Errorf("Expected inward normal %v, got %v", outerHit.Normal.Negate(), innerHit.Normal)
	}
}

func TestSphere_Validate(t *testing.T) {
	tests := []struct {
		name    string
		radius  float64
		wantErr bool
	}{
		{"positive radius", 1, false},
		{"negative radius", -0.5, false},
		{"zero radius", 0, true},
		{"NaN radius", math.NaN(), true},
		{"infinite radius", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewSphere(core.NewVec3(0, 0, 0), tt.radius, testMaterial).Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected error=%t, got %v", tt.wantErr, err)
			}
			if err != nil && !errors.Is(err, ErrDegenerateGeometry) {
				t.Errorf("Expected ErrDegenerateGeometry, got %v", err)
			}
		})
	}
}
