// tomoviz drives the viewer from a terminal: it writes the ray diagram
// for a selection as SVG and asks a running server for heatmaps.
//
// Usage:
//
//	tomoviz -source 3 -pattern crossing -svg rays.svg
//	tomoviz -server http://localhost:3000 -ks 4,8
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jengzang/crosswell-viewer/internal/client"
	"github.com/jengzang/crosswell-viewer/internal/config"
	"github.com/jengzang/crosswell-viewer/internal/diagram"
	"github.com/jengzang/crosswell-viewer/internal/log"
	"github.com/jengzang/crosswell-viewer/internal/models"
)

// svgFile rewrites its file on every draw
type svgFile struct {
	path string
	err  error
}

func (f *svgFile) Draw(d diagram.Diagram) {
	if f.path == "" {
		return
	}
	var buf bytes.Buffer
	if err := diagram.EncodeSVG(&buf, d); err != nil {
		f.err = err
		return
	}
	f.err = os.WriteFile(f.path, buf.Bytes(), 0o644)
}

// printedSelector echoes the selector value the page would display
type printedSelector struct {
	options []models.DepthOption
}

func (p *printedSelector) SetOptions(opts []models.DepthOption) { p.options = opts }

func (p *printedSelector) SetValue(v string) {
	for _, o := range p.options {
		if o.Value == v {
			fmt.Printf("source: %s\n", o.Label)
			return
		}
	}
}

func main() {
	cfg := config.Load()

	server := flag.String("server", "http://localhost"+cfg.Port, "viewer server base URL")
	ks := flag.String("ks", "", "comma-separated K values; empty shows the default image set")
	source := flag.String("source", "0", "source index or \"all\"")
	click := flag.Int("click", -1, "simulate a click on this source point after selecting")
	pattern := flag.String("pattern", string(models.PatternFan), "ray pattern: fan, single or crossing")
	svgPath := flag.String("svg", "", "write the diagram to this SVG file")
	heatmaps := flag.Bool("heatmaps", false, "request heatmaps from the server")
	timeout := flag.Duration("timeout", 5*time.Minute, "heatmap request timeout")
	debug := flag.Bool("debug", cfg.Debug, "debug logging")
	flag.Parse()

	if err := log.Init(*debug); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	catalog := diagram.NewCatalog(diagram.Range{Min: cfg.DepthMin, Max: cfg.DepthMax, Step: cfg.DepthStep}, true)
	surface := &svgFile{path: *svgPath}
	gallery := client.NewGallery()
	orch := client.NewOrchestrator(*server, gallery, client.WithDefaultImage("/"+cfg.DefaultHeatmapImage))
	session := client.NewSession(catalog, surface, &printedSelector{}, orch)

	session.Start()
	steps := []func() error{
		func() error { return session.ChangePattern(*pattern) },
		func() error { return session.ChangeSelector(*source) },
	}
	if *click >= 0 {
		steps = append(steps, func() error { return session.ClickSource(*click) })
	}
	for _, step := range steps {
		if err := step(); err != nil {
			log.Fatalf("%v", err)
		}
	}
	if surface.err != nil {
		log.Fatalf("write diagram: %v", surface.err)
	}

	d := diagram.Render(catalog, session.State())
	fmt.Printf("pattern: %s, rays: %d (highlighted %d)\n", d.Pattern, len(d.Rays), d.HighlightedRays())

	if !*heatmaps && *ks == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	res := <-session.SubmitKs(ctx, *ks)
	if res.Err != nil {
		fmt.Fprintf(os.Stderr, "invalid K values: %v\n", res.Err)
		os.Exit(2)
	}
	drainNotices(orch.Notifier())
	for i, r := range gallery.Resources() {
		fmt.Printf("%s. [%s] %s\n", strconv.Itoa(i+1), r.Category, r.URL)
	}
}

func drainNotices(n *client.Notifier) {
	for {
		select {
		case st := <-n.C():
			fmt.Fprintf(os.Stderr, "%s: %s\n", st.Level, st.Message)
		default:
			return
		}
	}
}
