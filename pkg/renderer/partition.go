package renderer

// Chunk is a contiguous range [Start, End) of the flat pixel buffer owned
// by one worker for the whole render
type Chunk struct {
	Index int
	Start int
	End   int
}

// Len returns the number of pixels in the chunk
func (c Chunk) Len() int {
	return c.End - c.Start
}

// Partition splits total pixels into workers contiguous, disjoint chunks in
// buffer order. Chunk sizes differ by at most one pixel, so every pixel is
// owned by exactly one chunk even when workers does not divide total.
// Workers is clamped to [1, total].
func Partition(total, workers int) []Chunk {
	if total <= 0 {
		return nil
	}
	workers = max(1, min(workers, total))

	chunks := make([]Chunk, workers)
	for i := range chunks {
		chunks[i] = Chunk{
			Index: i,
			Start: i * total / workers,
			End:   (i + 1) * total / workers,
		}
	}
	return chunks
}
