package diagram

import (
	"errors"
	"testing"

	"github.com/jengzang/crosswell-viewer/internal/models"
)

func TestControllerTransitions(t *testing.T) {
	c := testCatalog()
	var last Diagram
	renders := 0
	ctl := NewController(c, func(d Diagram) {
		renders++
		last = d
	})

	if ctl.Started() {
		t.Fatal("controller should start unselected")
	}
	ctl.Start()
	if renders != 1 || ctl.State() != models.DefaultSelection() {
		t.Fatalf("after Start: renders=%d state=%+v", renders, ctl.State())
	}

	if err := ctl.SelectDepth(4); err != nil {
		t.Fatal(err)
	}
	if renders != 2 || ctl.State().Index != 4 || !last.Sources[4].Selected {
		t.Fatalf("after SelectDepth: renders=%d state=%+v", renders, ctl.State())
	}

	ctl.SetPattern(models.PatternSingle)
	if renders != 3 || ctl.State().Index != 4 || len(last.Rays) != 1 {
		t.Fatalf("after SetPattern: renders=%d rays=%d", renders, len(last.Rays))
	}

	if err := ctl.SelectAll(); err != nil {
		t.Fatal(err)
	}
	if renders != 4 || last.Pattern != models.PatternCrossing {
		t.Fatalf("after SelectAll: renders=%d pattern=%s", renders, last.Pattern)
	}

	// pattern changes under ALL keep drawing Crossing
	ctl.SetPattern(models.PatternFan)
	if renders != 5 || last.Pattern != models.PatternCrossing || ctl.State().Pattern != models.PatternFan {
		t.Fatalf("SetPattern under ALL: drawn=%s stored=%s", last.Pattern, ctl.State().Pattern)
	}

	// leaving ALL restores the stored pattern
	if err := ctl.SelectDepth(2); err != nil {
		t.Fatal(err)
	}
	if last.Pattern != models.PatternFan || len(last.Rays) != c.Len() {
		t.Fatalf("after leaving ALL: pattern=%s rays=%d", last.Pattern, len(last.Rays))
	}
	if ctl.Renders() != renders {
		t.Errorf("Renders() = %d, callback saw %d", ctl.Renders(), renders)
	}
}

func TestControllerRejectsBadInput(t *testing.T) {
	renders := 0
	ctl := NewController(testCatalog(), func(Diagram) { renders++ })
	ctl.Start()

	if err := ctl.SelectDepth(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("SelectDepth(-1) err = %v", err)
	}
	if err := ctl.SelectDepth(17); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("SelectDepth(17) err = %v", err)
	}

	noAll := NewController(NewCatalog(Range{Min: 0, Max: 40, Step: 40}, false), func(Diagram) { renders++ })
	if err := noAll.SelectAll(); !errors.Is(err, ErrAllUnsupported) {
		t.Errorf("SelectAll err = %v", err)
	}
	if renders != 1 {
		t.Errorf("rejected transitions rendered: %d renders", renders)
	}
}
