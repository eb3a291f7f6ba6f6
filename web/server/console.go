package server

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/shanginn/weekend-raytracer/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger by sending messages to a console channel
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage) core.Logger {
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	// Also write to the server log, tagged with the render
	log.Printf("[%s] %s", wl.renderID, message)

	// Send to web console if channel is available (non-blocking)
	if wl.consoleChan != nil {
		select {
		case wl.consoleChan <- ConsoleMessage{
			Message:   message,
			Timestamp: time.Now(),
			Level:     "info",
		}:
		default:
			// Channel full, skip (don't block)
		}
	}
}

// RenderRecord is what the server remembers about a finished render
type RenderRecord struct {
	ID       string           `json:"id"`
	Request  RenderRequest    `json:"request"`
	Stats    *Stats           `json:"stats,omitempty"`
	Error    string           `json:"error,omitempty"`
	Console  []ConsoleMessage `json:"console"`
	Finished time.Time        `json:"finished"`
}

// renderHistory keeps the most recent render records, oldest evicted first
type renderHistory struct {
	mu      sync.Mutex
	limit   int
	order   []string
	records map[string]RenderRecord
}

func newRenderHistory(limit int) *renderHistory {
	return &renderHistory{
		limit:   limit,
		records: make(map[string]RenderRecord),
	}
}

func (h *renderHistory) add(record RenderRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.records[record.ID]; !exists {
		h.order = append(h.order, record.ID)
	}
	h.records[record.ID] = record

	for len(h.order) > h.limit {
		delete(h.records, h.order[0])
		h.order = h.order[1:]
	}
}

func (h *renderHistory) get(id string) (RenderRecord, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	record, ok := h.records[id]
	return record, ok
}

// drain collects everything buffered on ch without blocking
func drain(ch <-chan ConsoleMessage) []ConsoleMessage {
	var messages []ConsoleMessage
	for {
		select {
		case msg := <-ch:
			messages = append(messages, msg)
		default:
			return messages
		}
	}
}
