package integrator

import (
	"math"

	"github.com/shanginn/weekend-raytracer/pkg/core"
	"github.com/shanginn/weekend-raytracer/pkg/geometry"
)

// Background is a vertical sky gradient used for rays that escape the scene
type Background struct {
	Top    core.Vec3 // Color looking straight up
	Bottom core.Vec3 // Color looking straight down
}

// SkyBackground returns the white to sky-blue gradient
func SkyBackground() Background {
	return Background{
		Top:    core.NewVec3(0.5, 0.7, 1.0),
		Bottom: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// Color returns the gradient color for direction, lerping on its unit y
func (b Background) Color(direction core.Vec3) core.Vec3 {
	unitDirection := direction.UnitVector()
	t := 0.5 * (unitDirection.Y + 1.0)
	return b.Bottom.Multiply(1.0 - t).Add(b.Top.Multiply(t))
}

// IntegratorConfig contains path tracing parameters
type IntegratorConfig struct {
	MaxDepth   int        // Bounces allowed before a path is cut to black
	TMin       float64    // Lower hit bound; avoids self-intersection acne
	Background Background // Radiance for escaped rays
}

// DefaultIntegratorConfig returns the standard 50-bounce configuration
func DefaultIntegratorConfig() IntegratorConfig {
	return IntegratorConfig{
		MaxDepth:   50,
		TMin:       0.001,
		Background: SkyBackground(),
	}
}

// PathTracingIntegrator implements unidirectional path tracing with no
// light sampling: radiance only comes from the background
type PathTracingIntegrator struct {
	config IntegratorConfig
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config IntegratorConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// Config returns the integrator configuration
func (pt *PathTracingIntegrator) Config() IntegratorConfig {
	return pt.config
}

// RayColor computes the color for a single camera ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Hittable, sampler core.Sampler) core.Vec3 {
	return pt.rayColor(ray, world, 0, sampler)
}

func (pt *PathTracingIntegrator) rayColor(ray core.Ray, world geometry.Hittable, depth int, sampler core.Sampler) core.Vec3 {
	hit, isHit := world.Hit(ray, pt.config.TMin, math.Inf(1))
	if !isHit {
		return pt.config.Background.Color(ray.Direction)
	}

	scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
	if depth >= pt.config.MaxDepth || !didScatter {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	return scatter.Attenuation.MultiplyVec(pt.rayColor(scatter.Scattered, world, depth+1, sampler))
}
