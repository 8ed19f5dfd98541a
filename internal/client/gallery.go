package client

import (
	"sync"
	"time"

	"github.com/jengzang/crosswell-viewer/internal/models"
)

// Gallery is the image modal. Each Show replaces the previous content.
type Gallery struct {
	mu        sync.RWMutex
	resources []models.Resource
	visible   bool
	shows     int
}

// NewGallery creates an empty, hidden gallery
func NewGallery() *Gallery {
	return &Gallery{}
}

// Show replaces the displayed images and opens the gallery
func (g *Gallery) Show(rs []models.Resource) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.resources = append([]models.Resource(nil), rs...)
	g.visible = true
	g.shows++
}

// Close hides the gallery without dropping its content
func (g *Gallery) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.visible = false
}

// Visible reports whether the gallery is open
func (g *Gallery) Visible() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.visible
}

// Shows counts how many times content was replaced
func (g *Gallery) Shows() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.shows
}

// Resources returns the displayed images in order
func (g *Gallery) Resources() []models.Resource {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]models.Resource(nil), g.resources...)
}

// ByCategory returns the displayed images of one category
func (g *Gallery) ByCategory(cat models.Category) []models.Resource {
	var out []models.Resource
	for _, r := range g.Resources() {
		if r.Category == cat {
			out = append(out, r)
		}
	}
	return out
}

// Level of a status notice
type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Status is one notice for the status indicator
type Status struct {
	Level   Level
	Message string
	At      time.Time
}

// Notifier is a non-blocking status channel. When nobody drains it,
// the oldest notice is dropped rather than blocking the sender.
type Notifier struct {
	ch chan Status
}

// NewNotifier creates a notifier buffering up to size notices
func NewNotifier(size int) *Notifier {
	if size < 1 {
		size = 1
	}
	return &Notifier{ch: make(chan Status, size)}
}

// Notify publishes a notice without blocking
func (n *Notifier) Notify(level Level, msg string) {
	st := Status{Level: level, Message: msg, At: time.Now()}
	for {
		select {
		case n.ch <- st:
			return
		default:
		}
		select {
		case <-n.ch:
		default:
		}
	}
}

// C is the receive side for the status indicator
func (n *Notifier) C() <-chan Status {
	return n.ch
}
