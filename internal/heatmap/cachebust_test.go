package heatmap

import (
	"strings"
	"testing"
	"time"
)

func TestCacheBusterStrictlyIncreasing(t *testing.T) {
	fixed := time.UnixMilli(1_700_000_000_000)
	b := &CacheBuster{now: func() time.Time { return fixed }}
	seen := map[string]bool{}
	prev := ""
	for i := 0; i < 100; i++ {
		tok := b.Next()
		if seen[tok] {
			t.Fatalf("token %s repeated", tok)
		}
		seen[tok] = true
		if prev != "" && len(tok) == len(prev) && tok <= prev {
			t.Fatalf("token %s not after %s", tok, prev)
		}
		prev = tok
	}
}

func TestCacheBust(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"/all_heatmaps.png", "/all_heatmaps.png?t=42"},
		{"/img.png?size=2", "/img.png?size=2&t=42"},
		{"/heatmaps_resmodel_rank_4.png?t=1", "/heatmaps_resmodel_rank_4.png?t=1"},
		{"/a.png?x=1&t=7", "/a.png?x=1&t=7"},
		{"/a.png#top", "/a.png?t=42#top"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := CacheBust(tc.in, "42"); got != tc.want {
			t.Errorf("CacheBust(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCacheBustNeverDoubles(t *testing.T) {
	once := CacheBust("/x.png", "1")
	twice := CacheBust(once, "2")
	if twice != once {
		t.Fatalf("second CacheBust changed %q to %q", once, twice)
	}
	if strings.Count(twice, "t=") != 1 {
		t.Fatalf("token appended twice: %q", twice)
	}
}
