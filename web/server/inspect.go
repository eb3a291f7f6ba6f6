package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/shanginn/weekend-raytracer/pkg/core"
	"github.com/shanginn/weekend-raytracer/pkg/geometry"
	"github.com/shanginn/weekend-raytracer/pkg/material"
	"github.com/shanginn/weekend-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties"`
}

func vecJSON(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// extractMaterialInfo describes a material for the inspector
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch mat.Kind {
	case material.KindLambertian:
		properties["albedo"] = vecJSON(mat.Albedo)
		properties["color"] = hexColor(mat.Albedo)

	case material.KindMetal:
		properties["albedo"] = vecJSON(mat.Albedo)
		properties["color"] = hexColor(mat.Albedo)
		properties["fuzz"] = mat.Fuzz

	case material.KindDielectric:
		properties["refractiveIndex"] = mat.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
	}

	return mat.Kind.String(), properties
}

// extractGeometryInfo describes a primitive for the inspector
func extractGeometryInfo(p geometry.Primitive) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	if sphere, ok := p.Sphere(); ok {
		properties["center"] = vecJSON(sphere.Center)
		properties["radius"] = sphere.Radius
		properties["inverted"] = sphere.Radius < 0
	}

	return p.Kind().String(), properties
}

// InspectResult contains information about the object hit by an inspection ray
type InspectResult struct {
	Hit       bool
	HitRecord material.HitRecord
	Primitive geometry.Primitive
	Ray       core.Ray
}

// inspectPixel casts a ray through the centre of pixel (x, y), y counted from
// the top row, and reports the first object hit
func inspectPixel(world *geometry.HittableList, camera *geometry.Camera, width, height, pixelX, pixelY int) InspectResult {
	s := (float64(pixelX) + 0.5) / float64(width)
	t := (float64(height-1-pixelY) + 0.5) / float64(height)

	// Centre of the lens: the sampler is only consulted for aperture > 0
	ray := camera.GetRay(s, t, core.NewSequenceSampler(0.5))

	hit, index := world.HitIndex(ray, 0.001, math.Inf(1))
	if index < 0 {
		return InspectResult{Hit: false, Ray: ray}
	}
	return InspectResult{
		Hit:       true,
		HitRecord: hit,
		Primitive: world.Primitives()[index],
		Ray:       ray,
	}
}

// parsePixel reads a non-negative integer coordinate below limit
func parsePixel(c echo.Context, key string, limit int) (int, error) {
	value, err := strconv.Atoi(c.QueryParam(key))
	if err != nil {
		return 0, errors.Errorf("invalid %s coordinate", key)
	}
	if value < 0 || value >= limit {
		return 0, errors.Errorf("pixel coordinates out of bounds")
	}
	return value, nil
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(c echo.Context) error {
	req, err := parseRenderRequest(c)
	if err != nil {
		return badRequest(c, errors.Wrap(err, "invalid scene parameters"))
	}

	pixelX, err := parsePixel(c, "x", req.Width)
	if err != nil {
		return badRequest(c, err)
	}
	pixelY, err := parsePixel(c, "y", req.Height)
	if err != nil {
		return badRequest(c, err)
	}

	sc, err := scene.NewSeeded(req.Scene, req.Width, req.Height, req.seed())
	if err != nil {
		return badRequest(c, err)
	}
	camera, err := sc.Camera()
	if err != nil {
		return badRequest(c, err)
	}

	result := inspectPixel(sc.World, camera, req.Width, req.Height, pixelX, pixelY)
	if !result.Hit {
		return c.JSON(http.StatusOK, InspectResponse{Hit: false})
	}

	materialType, materialProps := extractMaterialInfo(result.HitRecord.Material)
	geometryType, geometryProps := extractGeometryInfo(result.Primitive)

	return c.JSON(http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vecJSON(result.HitRecord.Point),
		Normal:       vecJSON(result.HitRecord.Normal),
		Distance:     result.HitRecord.T,
		FrontFace:    result.HitRecord.Normal.Dot(result.Ray.Direction) < 0,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
