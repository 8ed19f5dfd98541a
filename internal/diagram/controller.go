package diagram

import (
	"errors"
	"fmt"

	"github.com/jengzang/crosswell-viewer/internal/models"
)

var (
	ErrIndexOutOfRange = errors.New("source index out of range")
	ErrAllUnsupported  = errors.New("catalog has no ALL option")
)

// RenderFunc receives every freshly rendered diagram
type RenderFunc func(Diagram)

// Controller owns the selection state machine. Each accepted transition
// renders exactly once, synchronously, before the method returns.
type Controller struct {
	catalog   *Catalog
	state     models.SelectionState
	started   bool
	onRender  RenderFunc
	renderCnt int
}

// NewController creates a controller in the Unselected state
func NewController(catalog *Catalog, onRender RenderFunc) *Controller {
	return &Controller{
		catalog:  catalog,
		state:    models.DefaultSelection(),
		onRender: onRender,
	}
}

// Start performs the initial render with the default selection
func (c *Controller) Start() {
	c.started = true
	c.render()
}

// Started reports whether the controller left the Unselected state
func (c *Controller) Started() bool {
	return c.started
}

// State returns a copy of the current selection
func (c *Controller) State() models.SelectionState {
	return c.state
}

// Catalog returns the catalog the controller renders
func (c *Controller) Catalog() *Catalog {
	return c.catalog
}

// Renders is the number of renders performed so far
func (c *Controller) Renders() int {
	return c.renderCnt
}

// SelectDepth selects a single source point
func (c *Controller) SelectDepth(i int) error {
	if !c.catalog.Contains(i) {
		return fmt.Errorf("select source %d: %w", i, ErrIndexOutOfRange)
	}
	c.state.Index = i
	c.state.All = false
	c.started = true
	c.render()
	return nil
}

// SelectAll switches to the aggregate view
func (c *Controller) SelectAll() error {
	if !c.catalog.AllowAll {
		return ErrAllUnsupported
	}
	c.state.All = true
	c.started = true
	c.render()
	return nil
}

// SetPattern stores p and keeps the source selection. While ALL is
// selected the stored pattern is kept but Crossing is drawn.
func (c *Controller) SetPattern(p models.Pattern) {
	c.state.Pattern = p
	c.started = true
	c.render()
}

func (c *Controller) render() {
	d := Render(c.catalog, c.state)
	c.renderCnt++
	if c.onRender != nil {
		c.onRender(d)
	}
}
