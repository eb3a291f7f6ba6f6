package server

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/shanginn/weekend-raytracer/pkg/geometry"
	"github.com/shanginn/weekend-raytracer/pkg/imageio"
	"github.com/shanginn/weekend-raytracer/pkg/renderer"
	"github.com/shanginn/weekend-raytracer/pkg/scene"
	"github.com/shanginn/weekend-raytracer/pkg/sysinfo"
)

// Request limits
const (
	maxImageSide  = 2000
	maxSamples    = 10000
	maxWorkers    = 256
	historyLimit  = 32
	consoleBuffer = 100
)

// Server handles web requests for the raytracer
type Server struct {
	port    int
	echo    *echo.Echo
	history *renderHistory
}

// NewServer creates a new web server with all routes registered
func NewServer(port int) *Server {
	s := &Server{
		port:    port,
		echo:    echo.New(),
		history: newRenderHistory(historyLimit),
	}

	e := s.echo
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// API endpoints
	e.GET("/api/health", s.handleHealth)
	e.GET("/api/scenes", s.handleScenes)
	e.GET("/api/render", s.handleRender)
	e.GET("/api/renders/:id", s.handleRenderRecord)
	e.GET("/api/inspect", s.handleInspect)

	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the web server and blocks until it stops
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string `query:"scene" json:"scene"`
	Width   int    `query:"width" json:"width"`
	Height  int    `query:"height" json:"height"`
	Samples int    `query:"samples" json:"samples"`
	Workers int    `query:"workers" json:"workers"` // 0 = one per physical core
	Seed    int64  `query:"seed" json:"seed"`       // 0 = scene.DefaultSeed
	Format  string `query:"format" json:"format"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels      int     `json:"totalPixels"`
	TotalSamples     int     `json:"totalSamples"`
	Workers          int     `json:"workers"`
	ElapsedMs        int64   `json:"elapsedMs"`
	SamplesPerSecond float64 `json:"samplesPerSecond"`
	AverageLuminance float64 `json:"averageLuminance"`
}

func defaultRenderRequest() RenderRequest {
	return RenderRequest{
		Scene:   "default",
		Width:   400,
		Height:  225,
		Samples: 20,
		Format:  string(imageio.FormatPNG),
	}
}

// parseRenderRequest binds query parameters over the defaults and validates them
func parseRenderRequest(c echo.Context) (RenderRequest, error) {
	req := defaultRenderRequest()
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &req); err != nil {
		return req, errors.Wrap(err, "invalid query")
	}

	if err := checkRange("width", req.Width, 1, maxImageSide); err != nil {
		return req, err
	}
	if err := checkRange("height", req.Height, 1, maxImageSide); err != nil {
		return req, err
	}
	if err := checkRange("samples", req.Samples, 1, maxSamples); err != nil {
		return req, err
	}
	if err := checkRange("workers", req.Workers, 0, maxWorkers); err != nil {
		return req, err
	}
	format, err := imageio.ParseFormat(req.Format)
	if err != nil {
		return req, err
	}
	req.Format = string(format)

	// Performance warning
	if req.Width*req.Height > 800*600 && req.Samples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}
	return req, nil
}

// seed resolves the request seed so that render and inspect agree on the
// procedural layout of a scene
func (r RenderRequest) seed() int64 {
	if r.Seed == 0 {
		return scene.DefaultSeed
	}
	return r.Seed
}

func checkRange(key string, value, low, high int) error {
	if value < low || value > high {
		return errors.Errorf("%s must be between %d and %d, got: %d", key, low, high, value)
	}
	return nil
}

// badRequest writes a JSON error with status 400
func badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	info, err := sysinfo.Detect()
	response := map[string]interface{}{
		"status": "ok",
		"host":   info,
	}
	if err != nil {
		response["hostError"] = err.Error()
	}
	return c.JSON(http.StatusOK, response)
}

// handleScenes lists the available scenes with their default request
func (s *Server) handleScenes(c echo.Context) error {
	defaults := defaultRenderRequest()
	scenes := make([]map[string]interface{}, 0, len(scene.Names()))

	for _, name := range scene.Names() {
		sc, err := scene.New(name, defaults.Width, defaults.Height)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		scenes = append(scenes, map[string]interface{}{
			"name":    name,
			"spheres": sc.World.Len(),
			"camera":  cameraJSON(sc.CameraConfig),
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"scenes":   scenes,
		"defaults": defaults,
		"formats":  imageio.Formats,
		"limits": map[string]interface{}{
			"width":   map[string]int{"min": 1, "max": maxImageSide},
			"height":  map[string]int{"min": 1, "max": maxImageSide},
			"samples": map[string]int{"min": 1, "max": maxSamples},
			"workers": map[string]int{"min": 0, "max": maxWorkers},
		},
	})
}

func cameraJSON(cfg geometry.CameraConfig) map[string]interface{} {
	return map[string]interface{}{
		"lookFrom":      vecJSON(cfg.LookFrom),
		"lookAt":        vecJSON(cfg.LookAt),
		"vfov":          cfg.VFov,
		"aperture":      cfg.Aperture,
		"focusDistance": cfg.FocusDistance,
	}
}

// handleRender renders the requested scene and returns the encoded image.
// The render ID is returned in the X-Render-ID header; its console output
// can be fetched from /api/renders/:id.
func (s *Server) handleRender(c echo.Context) error {
	req, err := parseRenderRequest(c)
	if err != nil {
		return badRequest(c, err)
	}

	renderID := uuid.NewString()
	consoleChan := make(chan ConsoleMessage, consoleBuffer)
	logger := NewWebLogger(renderID, consoleChan)
	seed := req.seed()
	c.Response().Header().Set("X-Render-ID", renderID)
	c.Response().Header().Set("X-Render-Seed", strconv.FormatInt(seed, 10))

	record := RenderRecord{ID: renderID, Request: req}
	defer func() {
		record.Console = drain(consoleChan)
		record.Finished = time.Now()
		s.history.add(record)
	}()

	workers := req.Workers
	if workers == 0 {
		workers = sysinfo.DefaultWorkers()
	}

	sc, err := scene.NewSeeded(req.Scene, req.Width, req.Height, seed)
	if err != nil {
		record.Error = err.Error()
		return badRequest(c, err)
	}
	camera, err := sc.Camera()
	if err != nil {
		record.Error = err.Error()
		return badRequest(c, err)
	}

	logger.Printf("Rendering %s scene (%d spheres)\n", sc.Name, sc.World.Len())

	r, err := renderer.NewRenderer(renderer.RenderConfig{
		Width:           req.Width,
		Height:          req.Height,
		Workers:         workers,
		SamplesPerPixel: req.Samples,
		Seed:            seed,
		Logger:          logger,
	}, sc.World, camera, nil)
	if err != nil {
		record.Error = err.Error()
		return badRequest(c, err)
	}

	// Use request context to detect client disconnection
	pixels, stats, err := r.Render(c.Request().Context())
	if err != nil {
		record.Error = err.Error()
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Render error: " + err.Error()})
	}

	record.Stats = &Stats{
		TotalPixels:      stats.TotalPixels,
		TotalSamples:     stats.TotalSamples,
		Workers:          stats.Workers,
		ElapsedMs:        stats.Duration.Milliseconds(),
		SamplesPerSecond: stats.SamplesPerSecond(),
		AverageLuminance: renderer.AverageLuminance(pixels),
	}

	format := imageio.Format(req.Format)
	var buf bytes.Buffer
	if err := imageio.Encode(&buf, format, pixels, req.Width, req.Height); err != nil {
		record.Error = err.Error()
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Encode error: " + err.Error()})
	}

	return c.Blob(http.StatusOK, format.ContentType(), buf.Bytes())
}

// handleRenderRecord returns the console output and stats of a recent render
func (s *Server) handleRenderRecord(c echo.Context) error {
	record, ok := s.history.get(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Unknown render: " + c.Param("id")})
	}
	return c.JSON(http.StatusOK, record)
}
