package generator

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jengzang/crosswell-viewer/internal/heatmap"
)

// Coalescer shares one invocation between concurrent callers asking for
// the same K sequence. Invocations are detached from the caller's
// context: a client going away does not kill a process other callers
// are waiting on.
type Coalescer struct {
	next    Runner
	timeout time.Duration
	group   singleflight.Group
}

// NewCoalescer wraps next. A positive timeout bounds each invocation.
func NewCoalescer(next Runner, timeout time.Duration) *Coalescer {
	return &Coalescer{next: next, timeout: timeout}
}

// Run implements Runner
func (c *Coalescer) Run(ctx context.Context, ks []int) (Result, error) {
	res, _, err := c.Do(ctx, ks)
	return res, err
}

// Do is Run that also reports whether the result was shared with
// another caller.
func (c *Coalescer) Do(ctx context.Context, ks []int) (Result, bool, error) {
	v, err, shared := c.group.Do(heatmap.Key(ks), func() (interface{}, error) {
		runCtx := context.WithoutCancel(ctx)
		if c.timeout > 0 {
			var cancel context.CancelFunc
			runCtx, cancel = context.WithTimeout(runCtx, c.timeout)
			defer cancel()
		}
		return c.next.Run(runCtx, append([]int(nil), ks...))
	})
	res, _ := v.(Result)
	return res, shared, err
}
