package client

import (
	"context"
	"sync"

	"github.com/jengzang/crosswell-viewer/internal/diagram"
	"github.com/jengzang/crosswell-viewer/internal/models"
)

// Surface receives every redraw of the diagram
type Surface interface {
	Draw(d diagram.Diagram)
}

// Selector is the source-depth dropdown
type Selector interface {
	SetOptions(opts []models.DepthOption)
	SetValue(value string)
}

// Session owns the interactive state of one page: the selection
// controller, its selector binding and the heatmap orchestrator.
// Surface.Draw runs while the session lock is held and must not call
// back into the session.
type Session struct {
	mu           sync.Mutex
	ctl          *diagram.Controller
	selector     Selector
	orchestrator *Orchestrator
}

// NewSession wires a catalog to its surface, selector and orchestrator.
// orchestrator may be nil for a diagram-only session.
func NewSession(catalog *diagram.Catalog, surface Surface, selector Selector, orchestrator *Orchestrator) *Session {
	return &Session{
		ctl:          diagram.NewController(catalog, surface.Draw),
		selector:     selector,
		orchestrator: orchestrator,
	}
}

// Start fills the selector and draws the initial diagram
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selector.SetOptions(s.ctl.Catalog().Options())
	s.ctl.Start()
	s.syncSelector()
}

// State returns the current selection
func (s *Session) State() models.SelectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctl.State()
}

// ChangeSelector handles a dropdown change
func (s *Session) ChangeSelector(value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, all, err := s.ctl.Catalog().ParseSelectorValue(value)
	if err != nil {
		return err
	}
	if all {
		return s.ctl.SelectAll()
	}
	return s.ctl.SelectDepth(i)
}

// ClickSource handles a click on source point i and moves the selector
// to match.
func (s *Session) ClickSource(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ctl.SelectDepth(i); err != nil {
		return err
	}
	s.syncSelector()
	return nil
}

// ChangePattern handles the pattern selector
func (s *Session) ChangePattern(value string) error {
	p, err := models.ParsePattern(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctl.SetPattern(p)
	return nil
}

// SubmitKs starts a heatmap request. It never touches the selection.
func (s *Session) SubmitKs(ctx context.Context, raw string) <-chan Result {
	if s.orchestrator == nil {
		out := make(chan Result, 1)
		out <- Result{Outcome: OutcomeNone}
		return out
	}
	return s.orchestrator.SubmitAsync(ctx, raw)
}

func (s *Session) syncSelector() {
	s.selector.SetValue(s.ctl.State().SelectorValue())
}
