package client

import (
	"context"
	"testing"

	"github.com/jengzang/crosswell-viewer/internal/diagram"
	"github.com/jengzang/crosswell-viewer/internal/models"
)

type recordingSurface struct {
	draws []diagram.Diagram
}

func (r *recordingSurface) Draw(d diagram.Diagram) {
	r.draws = append(r.draws, d)
}

type recordingSelector struct {
	options []models.DepthOption
	value   string
	sets    int
}

func (r *recordingSelector) SetOptions(opts []models.DepthOption) { r.options = opts }

func (r *recordingSelector) SetValue(v string) {
	r.value = v
	r.sets++
}

func newTestSession() (*Session, *recordingSurface, *recordingSelector) {
	surface := &recordingSurface{}
	selector := &recordingSelector{}
	catalog := diagram.NewCatalog(diagram.Range{Min: 0, Max: 640, Step: 40}, true)
	return NewSession(catalog, surface, selector, nil), surface, selector
}

func TestSessionStart(t *testing.T) {
	s, surface, selector := newTestSession()
	s.Start()
	if len(surface.draws) != 1 {
		t.Fatalf("draws = %d", len(surface.draws))
	}
	if len(selector.options) != 18 || selector.value != "0" {
		t.Errorf("selector = %d options, value %q", len(selector.options), selector.value)
	}
}

func TestSessionClickSyncsSelector(t *testing.T) {
	s, surface, selector := newTestSession()
	s.Start()

	if err := s.ClickSource(6); err != nil {
		t.Fatal(err)
	}
	if selector.value != "6" {
		t.Errorf("selector value = %q, want 6", selector.value)
	}
	if len(surface.draws) != 2 {
		t.Fatalf("draws = %d, want 2", len(surface.draws))
	}
	last := surface.draws[len(surface.draws)-1]
	if !last.Sources[6].Selected || len(last.Rays) != 17 {
		t.Errorf("click did not redraw the fan from source 6")
	}

	if err := s.ClickSource(40); err == nil {
		t.Error("click outside the catalog accepted")
	}
	if len(surface.draws) != 2 || selector.value != "6" {
		t.Error("rejected click changed the view")
	}
}

func TestSessionSelectorAndPattern(t *testing.T) {
	s, surface, _ := newTestSession()
	s.Start()

	if err := s.ChangeSelector("3"); err != nil {
		t.Fatal(err)
	}
	if err := s.ChangePattern("single"); err != nil {
		t.Fatal(err)
	}
	last := surface.draws[len(surface.draws)-1]
	if len(last.Rays) != 1 || last.Rays[0].Source != 3 {
		t.Fatalf("single pattern rays = %+v", last.Rays)
	}

	if err := s.ChangeSelector("all"); err != nil {
		t.Fatal(err)
	}
	last = surface.draws[len(surface.draws)-1]
	if last.Pattern != models.PatternCrossing || len(last.Rays) != 17*17 {
		t.Errorf("ALL drew %s with %d rays", last.Pattern, len(last.Rays))
	}
	if s.State().Pattern != models.PatternSingle {
		t.Errorf("stored pattern = %s", s.State().Pattern)
	}

	if err := s.ChangePattern("spiral"); err == nil {
		t.Error("unknown pattern accepted")
	}
	if len(surface.draws) != 4 {
		t.Errorf("draws = %d, want 4", len(surface.draws))
	}
}

func TestSessionSubmitDoesNotTouchSelection(t *testing.T) {
	s, surface, _ := newTestSession()
	s.Start()
	before := s.State()

	res := <-s.SubmitKs(context.Background(), "4,8")
	if res.Outcome != OutcomeNone {
		t.Errorf("outcome = %s", res.Outcome)
	}
	if s.State() != before || len(surface.draws) != 1 {
		t.Error("heatmap submit changed the diagram")
	}
}
