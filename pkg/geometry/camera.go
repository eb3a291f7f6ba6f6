package geometry

import (
	"math"

	"github.com/pkg/errors"

	"github.com/shanginn/weekend-raytracer/pkg/core"
)

// CameraConfig describes a thin-lens camera
type CameraConfig struct {
	LookFrom      core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera looks at
	ViewUp        core.Vec3 // Up direction; need not be unit or orthogonal to the view axis
	VFov          float64   // Vertical field of view in degrees, (0, 180)
	AspectRatio   float64   // Width / height
	Aperture      float64   // Lens diameter; 0 is a pinhole
	FocusDistance float64   // Distance to the plane of focus, > 0
}

// DefaultCameraConfig returns a pinhole camera at the origin looking down -z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		ViewUp:      core.NewVec3(0, 1, 0),
		VFov:          90,
		AspectRatio:   16.0 / 9.0,
		FocusDistance: 1,
	}
}

// Camera generates rays for rendering. It is immutable after construction
// and safe to share between workers.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
	lensRadius      float64
	config          CameraConfig
}

// NewCamera validates config and derives the camera basis and focal plane
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := validateCameraConfig(config); err != nil {
		return nil, err
	}

	theta := config.VFov * math.Pi / 180
	halfHeight := math.Tan(theta / 2)
	halfWidth := config.AspectRatio * halfHeight
	focus := config.FocusDistance

	w := config.LookFrom.Subtract(config.LookAt).UnitVector()
	u := config.ViewUp.Cross(w).UnitVector()
	v := w.Cross(u)

	origin := config.LookFrom
	lowerLeftCorner := origin.
		Subtract(u.Multiply(halfWidth * focus)).
		Subtract(v.Multiply(halfHeight * focus)).
		Subtract(w.Multiply(focus))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      u.Multiply(2 * halfWidth * focus),
		vertical:        v.Multiply(2 * halfHeight * focus),
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
		config:          config,
	}, nil
}

func validateCameraConfig(c CameraConfig) error {
	switch {
	case !(c.VFov > 0 && c.VFov < 180):
		return errors.Wrapf(ErrInvalidCamera, "vertical fov %g outside (0, 180)", c.VFov)
	case !(c.AspectRatio > 0) || math.IsInf(c.AspectRatio, 0):
		return errors.Wrapf(ErrInvalidCamera, "aspect ratio %g must be positive", c.AspectRatio)
	case !(c.Aperture >= 0):
		return errors.Wrapf(ErrInvalidCamera, "aperture %g must not be negative", c.Aperture)
	case !(c.FocusDistance > 0):
		return errors.Wrapf(ErrInvalidCamera, "focus distance %g must be positive", c.FocusDistance)
	}

	view := c.LookFrom.Subtract(c.LookAt)
	if view.LengthSquared() == 0 {
		return errors.Wrapf(ErrInvalidCamera, "look-from and look-at coincide at %v", c.LookFrom)
	}
	if c.ViewUp.Cross(view).LengthSquared() <= 1e-12*c.ViewUp.LengthSquared()*view.LengthSquared() {
		return errors.Wrapf(ErrInvalidCamera, "view-up %v is parallel to the view direction", c.ViewUp)
	}
	return nil
}

// GetRay generates a ray for image-plane coordinates (s, t) where 0 <= s,t <= 1,
// (0, 0) being the lower-left corner
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(sampler).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(rd.X)).Add(c.v.Multiply(rd.Y))
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRay(origin, direction)
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// LensRadius returns half the aperture
func (c *Camera) LensRadius() float64 {
	return c.lensRadius
}

// Basis returns the right (u), up (v) and backward (w) unit vectors
func (c *Camera) Basis() (u, v, w core.Vec3) {
	return c.u, c.v, c.w
}
