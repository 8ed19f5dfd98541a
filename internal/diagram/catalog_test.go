package diagram

import (
	"math"
	"testing"

	"github.com/jengzang/crosswell-viewer/internal/models"
)

func TestDepthsLengthAndOrder(t *testing.T) {
	cases := []struct {
		min, max, step float64
	}{
		{0, 640, 40},
		{100, 1600, 100},
		{-640, -40, 40},
		{5, 5, 1},
		{0, 10, 3},
		{0.1, 0.3, 0.1},
	}
	for _, tc := range cases {
		zs := Depths(tc.min, tc.max, tc.step)
		want := int(math.Floor((tc.max-tc.min)/tc.step+1e-9)) + 1
		if len(zs) != want {
			t.Errorf("Depths(%g,%g,%g) len = %d, want %d", tc.min, tc.max, tc.step, len(zs), want)
			continue
		}
		asc := Reverse(zs)
		for i := 1; i < len(asc); i++ {
			if asc[i] <= asc[i-1] {
				t.Errorf("Depths(%g,%g,%g) not strictly ordered at %d: %v", tc.min, tc.max, tc.step, i, asc)
			}
		}
		if asc[0] != tc.min {
			t.Errorf("first depth = %g, want %g", asc[0], tc.min)
		}
	}
}

func TestDepthsInclusiveBounds(t *testing.T) {
	zs := Depths(0, 640, 40)
	if len(zs) != 17 {
		t.Fatalf("len = %d, want 17", len(zs))
	}
	if zs[0] != 640 || zs[len(zs)-1] != 0 {
		t.Errorf("got first=%g last=%g, want 640 and 0", zs[0], zs[len(zs)-1])
	}
}

func TestReverseIsInvolution(t *testing.T) {
	zs := []float64{1, 2, 3, 5, 8}
	got := Reverse(Reverse(zs))
	for i := range zs {
		if got[i] != zs[i] {
			t.Fatalf("Reverse(Reverse(x)) = %v, want %v", got, zs)
		}
	}
}

func TestDepthsInvalidRange(t *testing.T) {
	if zs := Depths(10, 0, 1); zs != nil {
		t.Errorf("min > max: got %v, want nil", zs)
	}
	if zs := Depths(0, 10, 0); zs != nil {
		t.Errorf("zero step: got %v, want nil", zs)
	}
}

func TestNewCatalogSharesCardinality(t *testing.T) {
	c := NewCatalog(Range{Min: 0, Max: 640, Step: 40}, true)
	if len(c.Sources) != len(c.Receivers) {
		t.Fatalf("sources=%d receivers=%d", len(c.Sources), len(c.Receivers))
	}
	for i, p := range c.Sources {
		if p.Index != i || p.Role != models.RoleSource {
			t.Errorf("source %d = %+v", i, p)
		}
		if c.Receivers[i].Role != models.RoleReceiver {
			t.Errorf("receiver %d role = %s", i, c.Receivers[i].Role)
		}
	}
}

func TestCatalogOptions(t *testing.T) {
	c := NewCatalog(Range{Min: 100, Max: 300, Step: 100}, true)
	opts := c.Options()
	want := []models.DepthOption{
		{Value: "0", Label: "Depth 300"},
		{Value: "1", Label: "Depth 200"},
		{Value: "2", Label: "Depth 100"},
		{Value: "all", Label: "All sources"},
	}
	if len(opts) != len(want) {
		t.Fatalf("options = %v", opts)
	}
	for i := range want {
		if opts[i] != want[i] {
			t.Errorf("option %d = %+v, want %+v", i, opts[i], want[i])
		}
	}

	c.AllowAll = false
	if n := len(c.Options()); n != 3 {
		t.Errorf("without ALL got %d options, want 3", n)
	}
}

func TestParseSelectorValue(t *testing.T) {
	c := NewCatalog(Range{Min: 0, Max: 40, Step: 10}, true)

	if i, all, err := c.ParseSelectorValue("3"); err != nil || all || i != 3 {
		t.Errorf(`"3" -> %d %v %v`, i, all, err)
	}
	if _, all, err := c.ParseSelectorValue("all"); err != nil || !all {
		t.Errorf(`"all" -> %v %v`, all, err)
	}
	if _, _, err := c.ParseSelectorValue("9"); err == nil {
		t.Error(`"9" should be out of range`)
	}
	if _, _, err := c.ParseSelectorValue("x"); err == nil {
		t.Error(`"x" should fail`)
	}
	c.AllowAll = false
	if _, _, err := c.ParseSelectorValue("all"); err != ErrAllUnsupported {
		t.Errorf(`"all" without ALL: err = %v`, err)
	}
}

func TestRangeLast(t *testing.T) {
	tests := []struct {
		r     Range
		count int
		last  float64
	}{
		{Range{Min: 0, Max: 640, Step: 40}, 17, 640},
		{Range{Min: 0, Max: 650, Step: 40}, 17, 640},
		{Range{Min: 5, Max: 5, Step: 1}, 1, 5},
		{Range{Min: 10, Max: 0, Step: 1}, 0, 10},
	}
	for _, tt := range tests {
		if got := tt.r.Count(); got != tt.count {
			t.Errorf("%+v Count = %d, want %d", tt.r, got, tt.count)
		}
		if got := tt.r.Last(); got != tt.last {
			t.Errorf("%+v Last = %g, want %g", tt.r, got, tt.last)
		}
	}
}
