package renderer

import (
	"context"
	"fmt"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/shanginn/weekend-raytracer/pkg/core"
)

// TileTask is one worker's share of the render
type TileTask struct {
	Chunk  Chunk
	Pixels []core.Vec3 // Sub-slice of the shared buffer owned by this task
	Seed   int64       // Seed for the task's private sampler
}

// TileResult contains the result from rendering a chunk
type TileResult struct {
	TaskID int
	Stats  ChunkStats
	Error  error
}

// WorkerPool runs tile tasks in parallel and joins them. Every task gets its
// own goroutine and sampler; the tile renderer is shared read-only.
type WorkerPool struct {
	tileRenderer *TileRenderer
	numWorkers   int
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(tileRenderer *TileRenderer, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{
		tileRenderer: tileRenderer,
		numWorkers:   numWorkers,
	}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run forks one goroutine per task and waits for all of them. Results are
// returned in task order. If any task fails the first error is returned and
// the contents of the task buffers are unspecified.
func (wp *WorkerPool) Run(ctx context.Context, tasks []TileTask) ([]TileResult, error) {
	results := make([]TileResult, len(tasks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(wp.numWorkers)

	for i, task := range tasks {
		g.Go(func() error {
			results[i] = wp.runTask(ctx, i, task)
			return results[i].Error
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// runTask renders a single task, turning a panic into ErrWorkerFailed
func (wp *WorkerPool) runTask(ctx context.Context, taskID int, task TileTask) (result TileResult) {
	result.TaskID = taskID

	defer func() {
		if r := recover(); r != nil {
			result.Error = errors.Wrapf(ErrWorkerFailed, "chunk %d [%d, %d): %v",
				task.Chunk.Index, task.Chunk.Start, task.Chunk.End, r)
		}
	}()

	if err := ctx.Err(); err != nil {
		result.Error = errors.Wrapf(err, "chunk %d not started", task.Chunk.Index)
		return result
	}
	if len(task.Pixels) != task.Chunk.Len() {
		panic(fmt.Sprintf("buffer holds %d pixels, chunk needs %d", len(task.Pixels), task.Chunk.Len()))
	}

	sampler := core.NewSeededSampler(task.Seed)
	result.Stats = wp.tileRenderer.RenderChunk(task.Chunk, task.Pixels, sampler)
	return result
}
