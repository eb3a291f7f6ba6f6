package scene

import (
	"github.com/shanginn/weekend-raytracer/pkg/core"
	"github.com/shanginn/weekend-raytracer/pkg/geometry"
	"github.com/shanginn/weekend-raytracer/pkg/material"
)

// NewDefaultScene creates three spheres on a large ground sphere: diffuse in
// the middle, fuzzy gold on the right and a hollow glass bubble on the left
func NewDefaultScene(aspectRatio float64) (*Scene, error) {
	lookFrom := core.NewVec3(-2, 2, 1)
	lookAt := core.NewVec3(0, 0, -1)
	cameraConfig := geometry.CameraConfig{
		LookFrom:      lookFrom,
		LookAt:        lookAt,
		ViewUp:        core.NewVec3(0, 1, 0),
		VFov:          30,
		AspectRatio:   aspectRatio,
		Aperture:      0.1,
		FocusDistance: lookFrom.Subtract(lookAt).Length(), // Centre sphere in focus
	}

	lambertianGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	lambertianBlue := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	glass := material.NewDielectric(1.5)

	world := geometry.NewHittableList(5)
	err := add(world,
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, lambertianGround),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, lambertianBlue),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, metalGold),
		// Negative inner radius flips the normals, leaving a thin glass shell
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, glass),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), -0.45, glass),
	)
	if err != nil {
		return nil, err
	}

	return &Scene{Name: "default", World: world, CameraConfig: cameraConfig}, nil
}

// NewSingleSphereScene creates one diffuse sphere in front of a pinhole camera
func NewSingleSphereScene(aspectRatio float64) (*Scene, error) {
	cameraConfig := geometry.DefaultCameraConfig()
	cameraConfig.AspectRatio = aspectRatio

	world := geometry.NewHittableList(1)
	if err := add(world, geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5,
		material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))); err != nil {
		return nil, err
	}

	return &Scene{Name: "single", World: world, CameraConfig: cameraConfig}, nil
}
