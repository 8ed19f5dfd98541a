package heatmap

import (
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// CacheParam is the query parameter that defeats browser caching
const CacheParam = "t"

// CacheBuster hands out time-based tokens that strictly increase, even
// when two calls land in the same millisecond.
type CacheBuster struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewCacheBuster creates a token source on the wall clock
func NewCacheBuster() *CacheBuster {
	return &CacheBuster{now: time.Now}
}

// Next returns a fresh token
func (b *CacheBuster) Next() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := time.Now
	if b.now != nil {
		now = b.now
	}
	t := now().UnixMilli()
	if t <= b.last {
		t = b.last + 1
	}
	b.last = t
	return strconv.FormatInt(t, 10)
}

// HasToken reports whether ref already carries a cache-busting token
func HasToken(ref string) bool {
	u, err := url.Parse(ref)
	if err != nil {
		return strings.Contains(ref, "?"+CacheParam+"=") || strings.Contains(ref, "&"+CacheParam+"=")
	}
	return u.Query().Has(CacheParam)
}

// CacheBust appends the token to ref unless ref already has one
func CacheBust(ref, token string) string {
	if ref == "" || HasToken(ref) {
		return ref
	}
	frag := ""
	if i := strings.IndexByte(ref, '#'); i >= 0 {
		ref, frag = ref[:i], ref[i:]
	}
	sep := "?"
	if strings.Contains(ref, "?") {
		sep = "&"
	}
	return ref + sep + CacheParam + "=" + url.QueryEscape(token) + frag
}
