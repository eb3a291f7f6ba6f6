package renderer

import "testing"

func TestPartition_CoversBufferExactlyOnce(t *testing.T) {
	tests := []struct {
		total, workers int
	}{
		{800, 4},
		{801, 4},
		{7, 3},
		{5, 5},
		{3, 8},
		{1, 1},
		{20000, 16},
		{10, 0},
	}

	for _, tt := range tests {
		chunks := Partition(tt.total, tt.workers)

		wantChunks := max(1, min(tt.workers, tt.total))
		if len(chunks) != wantChunks {
			t.Errorf("Partition(%d, %d): expected %d chunks, got %d", tt.total, tt.workers, wantChunks, len(chunks))
			continue
		}

		owners := make([]int, tt.total)
		next := 0
		for i, c := range chunks {
			if c.Index != i {
				t.Errorf("Partition(%d, %d): chunk %d has index %d", tt.total, tt.workers, i, c.Index)
			}
			if c.Start != next {
				t.Errorf("Partition(%d, %d): chunk %d starts at %d, expected %d", tt.total, tt.workers, i, c.Start, next)
			}
			for p := c.Start; p < c.End; p++ {
				owners[p]++
			}
			next = c.End
		}
		if next != tt.total {
			t.Errorf("Partition(%d, %d): chunks end at %d", tt.total, tt.workers, next)
		}
		for p, n := range owners {
			if n != 1 {
				t.Fatalf("Partition(%d, %d): pixel %d owned %d times", tt.total, tt.workers, p, n)
			}
		}
	}
}

func TestPartition_BalancedSizes(t *testing.T) {
	chunks := Partition(803, 4)
	minLen, maxLen := chunks[0].Len(), chunks[0].Len()
	for _, c := range chunks {
		minLen = min(minLen, c.Len())
		maxLen = max(maxLen, c.Len())
	}
	if maxLen-minLen > 1 {
		t.Errorf("Expected chunk sizes within one pixel, got %d..%d", minLen, maxLen)
	}
}

func TestPartition_EvenSplit(t *testing.T) {
	// 200x4 image with 4 workers: 200 pixels each
	chunks := Partition(800, 4)
	for i, c := range chunks {
		if c.Start != i*200 || c.End != (i+1)*200 {
			t.Errorf("Chunk %d: expected [%d, %d), got [%d, %d)", i, i*200, (i+1)*200, c.Start, c.End)
		}
	}
}

func TestPartition_EmptyImage(t *testing.T) {
	if chunks := Partition(0, 4); chunks != nil {
		t.Errorf("Expected no chunks for an empty image, got %v", chunks)
	}
}
