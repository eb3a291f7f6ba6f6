package geometry

import (
	"math"
	"testing"

	"github.com/pkg/errors"

	"github.com/shanginn/weekend-raytracer/pkg/core"
	"github.com/shanginn/weekend-raytracer/pkg/material"
)

func TestHittableList_Empty(t *testing.T) {
	list := NewHittableList(0)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if _, isHit := list.Hit(ray, 0.001, math.Inf(1)); isHit {
		t.Error("Empty list should never report a hit")
	}
}

func TestHittableList_ReturnsClosest(t *testing.T) {
	near := material.NewLambertian(core.NewVec3(1, 0, 0))
	far := material.NewLambertian(core.NewVec3(0, 0, 1))

	list := NewHittableList(2)
	// Far sphere added first to make sure order does not decide the result
	if err := list.AddSphere(NewSphere(core.NewVec3(0, 0, -10), 1, far)); err != nil {
		t.Fatal(err)
	}
	if err := list.AddSphere(NewSphere(core.NewVec3(0, 0, -3), 1, near)); err != nil {
		t.Fatal(err)
	}

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	hit, isHit := list.Hit(ray, 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.T-2) > 1e-9 {
		t.Errorf("Expected closest t=2, got %f", hit.T)
	}
	if hit.Material != near {
		t.Errorf("Expected near material, got %v", hit.Material)
	}
}

func TestHittableList_TieKeepsFirst(t *testing.T) {
	first := material.NewLambertian(core.NewVec3(1, 0, 0))
	second := material.NewMetal(core.NewVec3(0, 1, 0), 0)

	list := NewHittableList(2)
	_ = list.AddSphere(NewSphere(core.NewVec3(0, 0, -3), 1, first))
	_ = list.AddSphere(NewSphere(core.NewVec3(0, 0, -3), 1, second))

	hit, isHit := list.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit")
	}
	if hit.Material != first {
		t.Errorf("Expected first primitive to win the tie, got %v", hit.Material)
	}
}

func TestHittableList_RespectsInterval(t *testing.T) {
	list := NewHittableList(1)
	_ = list.AddSphere(NewSphere(core.NewVec3(0, 0, -3), 1, testMaterial))

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if _, isHit := list.Hit(ray, 0.001, 1.5); isHit {
		t.Error("Expected miss when tMax is before the sphere")
	}
}

func TestHittableList_AddRejectsDegenerate(t *testing.T) {
	list := NewHittableList(1)
	err := list.AddSphere(NewSphere(core.NewVec3(0, 0, 0), 0, testMaterial))
	if !errors.Is(err, ErrDegenerateGeometry) {
		t.Errorf("Expected ErrDegenerateGeometry, got %v", err)
	}
	if list.Len() != 0 {
		t.Errorf("Rejected primitive should not be added, len=%d", list.Len())
	}
}

func TestHittableList_AddRejectsInvalidMaterial(t *testing.T) {
	list := NewHittableList(1)
	err := list.AddSphere(NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewDielectric(0)))
	if !errors.Is(err, material.ErrInvalidMaterial) {
		t.Errorf("Expected ErrInvalidMaterial, got %v", err)
	}
	if list.Len() != 0 {
		t.Errorf("Rejected primitive should not be added, len=%d", list.Len())
	}
}

func TestHittableList_PrimitivesIsACopy(t *testing.T) {
	list := NewHittableList(1)
	_ = list.AddSphere(NewSphere(core.NewVec3(0, 0, -1), 0.5, testMaterial))

	prims := list.Primitives()
	prims[0] = SpherePrimitive(NewSphere(core.NewVec3(5, 5, 5), 1, testMaterial))

	s, ok := list.Primitives()[0].Sphere()
	if !ok || !s.Center.Equals(core.NewVec3(0, 0, -1)) {
		t.Errorf("Mutating the returned slice changed the list: %v", s)
	}
}

func TestPrimitive_Dispatch(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -2), 1, testMaterial)
	p := SpherePrimitive(sphere)

	if p.Kind() != KindSphere || p.Kind().String() != "sphere" {
		t.Errorf("Expected sphere kind, got %v", p.Kind())
	}
	if p.Material() != testMaterial {
		t.Errorf("Expected material %v, got %v", testMaterial, p.Material())
	}

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	direct, _ := sphere.Hit(ray, 0.001, math.Inf(1))
	viaPrimitive, _ := p.Hit(ray, 0.001, math.Inf(1))
	if direct != viaPrimitive {
		t.Errorf("Primitive dispatch changed the hit: %v vs %v", direct, viaPrimitive)
	}
}

func TestHittableList_HitIndex(t *testing.T) {
	mat := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	list := NewHittableList(3)
	_ = list.AddSphere(NewSphere(core.NewVec3(0, 0, -10), 1, mat))
	_ = list.AddSphere(NewSphere(core.NewVec3(0, 0, -3), 1, mat))
	_ = list.AddSphere(NewSphere(core.NewVec3(5, 0, -3), 1, mat))

	_, index := list.HitIndex(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	if index != 1 {
		t.Errorf("Expected primitive 1, got %d", index)
	}

	_, index = list.HitIndex(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), 0.001, math.Inf(1))
	if index != -1 {
		t.Errorf("Expected -1 for a miss, got %d", index)
	}
}
