package server

import (
	"net/http"
	"testing"

	"github.com/shanginn/weekend-raytracer/pkg/core"
	"github.com/shanginn/weekend-raytracer/pkg/geometry"
	"github.com/shanginn/weekend-raytracer/pkg/material"
	"github.com/shanginn/weekend-raytracer/pkg/scene"
)

func TestInspectPixel_CenterHitsSphere(t *testing.T) {
	sc, err := scene.New("single", 40, 20)
	if err != nil {
		t.Fatal(err)
	}
	camera, err := sc.Camera()
	if err != nil {
		t.Fatal(err)
	}

	result := inspectPixel(sc.World, camera, 40, 20, 20, 10)
	if !result.Hit {
		t.Fatal("Expected the centre pixel to hit the sphere")
	}
	if sphere, _ := result.Primitive.Sphere(); sphere.Center != core.NewVec3(0, 0, -1) {
		t.Errorf("Expected the single sphere, got %+v", sphere)
	}

	// Top-left corner looks at the sky
	if result := inspectPixel(sc.World, camera, 40, 20, 0, 0); result.Hit {
		t.Error("Expected the corner pixel to miss")
	}
}

func TestExtractMaterialInfo(t *testing.T) {
	tests := []struct {
		mat      material.Material
		expected string
		property string
	}{
		{material.NewLambertian(core.NewVec3(1, 0, 0)), "lambertian", "albedo"},
		{material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3), "metal", "fuzz"},
		{material.NewDielectric(1.5), "dielectric", "refractiveIndex"},
	}

	for _, tt := range tests {
		name, props := extractMaterialInfo(tt.mat)
		if name != tt.expected {
			t.Errorf("Expected %s, got %s", tt.expected, name)
		}
		if _, ok := props[tt.property]; !ok {
			t.Errorf("%s: expected property %s, got %v", name, tt.property, props)
		}
	}

	if _, props := extractMaterialInfo(material.NewLambertian(core.NewVec3(1, 0, 0))); props["color"] != "#ff0000" {
		t.Errorf("Expected red hex color, got %v", props["color"])
	}
}

func TestExtractGeometryInfo(t *testing.T) {
	p := geometry.SpherePrimitive(geometry.NewSphere(core.NewVec3(1, 2, 3), -0.5, material.NewDielectric(1.5)))
	name, props := extractGeometryInfo(p)
	if name != "sphere" {
		t.Errorf("Expected sphere, got %s", name)
	}
	if props["radius"] != -0.5 || props["inverted"] != true {
		t.Errorf("Unexpected properties %v", props)
	}
}

func TestHandleInspect(t *testing.T) {
	s := NewServer(0)

	rec := doGet(t, s, "/api/inspect?scene=single&width=40&height=20&x=20&y=10")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body InspectResponse
	decodeJSON(t, rec, &body)
	if !body.Hit || body.MaterialType != "lambertian" || body.GeometryType != "sphere" {
		t.Errorf("Unexpected inspection %+v", body)
	}
	if !body.FrontFace {
		t.Error("Expected to hit the outside of the sphere")
	}

	rec = doGet(t, s, "/api/inspect?scene=single&width=40&height=20&x=0&y=0")
	decodeJSON(t, rec, &body)
	if rec.Code != http.StatusOK || body.Hit {
		t.Errorf("Expected a miss for the corner, got %d %+v", rec.Code, body)
	}
}

func TestHandleInspect_BadCoordinates(t *testing.T) {
	for _, query := range []string{"x=abc&y=1", "x=40&y=1", "x=1&y=-1", "x=1"} {
		rec := doGet(t, NewServer(0), "/api/inspect?scene=single&width=40&height=20&"+query)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", query, rec.Code)
		}
	}
}
