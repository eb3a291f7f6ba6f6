package scene

import (
	"slices"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/shanginn/weekend-raytracer/pkg/geometry"
)

// ErrUnknownScene is returned when a scene name is not registered
var ErrUnknownScene = errors.New("unknown scene")

// DefaultSeed seeds procedural scenes when the caller does not choose one
const DefaultSeed int64 = 42

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	World        *geometry.HittableList // Read-only once built
	CameraConfig geometry.CameraConfig
}

// Camera builds the scene's camera
func (s *Scene) Camera() (*geometry.Camera, error) {
	return geometry.NewCamera(s.CameraConfig)
}

// builder constructs a scene for the given aspect ratio and seed
type builder func(aspectRatio float64, seed int64) (*Scene, error)

var registry = map[string]builder{
	"default": func(aspectRatio float64, _ int64) (*Scene, error) { return NewDefaultScene(aspectRatio) },
	"random":  NewRandomScene,
	"single":  func(aspectRatio float64, _ int64) (*Scene, error) { return NewSingleSphereScene(aspectRatio) },
}

// Names returns the registered scene names in sorted order
func Names() []string {
	names := lo.Keys(registry)
	slices.Sort(names)
	return names
}

// New builds the named scene framed for a width x height image
func New(name string, width, height int) (*Scene, error) {
	return NewSeeded(name, width, height, DefaultSeed)
}

// NewSeeded builds the named scene, seeding any procedural placement with seed
func NewSeeded(name string, width, height int, seed int64) (*Scene, error) {
	build, ok := registry[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownScene, "%q (available: %v)", name, Names())
	}
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(geometry.ErrInvalidCamera, "image size %dx%d must be positive", width, height)
	}
	return build(float64(width)/float64(height), seed)
}

// add appends spheres to world, stopping at the first invalid one
func add(world *geometry.HittableList, spheres ...geometry.Sphere) error {
	for _, s := range spheres {
		if err := world.AddSphere(s); err != nil {
			return err
		}
	}
	return nil
}
