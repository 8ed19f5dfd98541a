// Package client is the viewer side of the system: the diagram session
// and the heatmap orchestrator talking to the generation endpoint.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jengzang/crosswell-viewer/internal/heatmap"
	"github.com/jengzang/crosswell-viewer/internal/log"
	"github.com/jengzang/crosswell-viewer/internal/models"
)

// GeneratePath is the generation endpoint relative to the base URL
const GeneratePath = "/generate-heatmap"

// Outcome says what a submit ended up displaying
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeDefault
	OutcomeGenerated
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDefault:
		return "default"
	case OutcomeGenerated:
		return "generated"
	case OutcomeFailed:
		return "failed"
	}
	return "none"
}

// Orchestrator turns a K submission into images in the gallery
type Orchestrator struct {
	baseURL      string
	defaultImage string
	httpClient   *http.Client
	gallery      *Gallery
	notifier     *Notifier
	tokens       *heatmap.CacheBuster
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(o *Orchestrator) { o.httpClient = c }
}

// WithDefaultImage sets the image shown when no K is given
func WithDefaultImage(ref string) Option {
	return func(o *Orchestrator) { o.defaultImage = ref }
}

// WithNotifier routes status notices to n
func WithNotifier(n *Notifier) Option {
	return func(o *Orchestrator) { o.notifier = n }
}

// NewOrchestrator creates an orchestrator for the server at baseURL
func NewOrchestrator(baseURL string, gallery *Gallery, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		baseURL:      strings.TrimRight(baseURL, "/"),
		defaultImage: "/all_heatmaps.png",
		httpClient:   &http.Client{Timeout: 5 * time.Minute},
		gallery:      gallery,
		notifier:     NewNotifier(16),
		tokens:       heatmap.NewCacheBuster(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Notifier returns the status channel
func (o *Orchestrator) Notifier() *Notifier {
	return o.notifier
}

// Submit handles one press of the generate button. Only validation
// errors are returned; request failures are logged, reported on the
// notifier and leave the gallery untouched.
func (o *Orchestrator) Submit(ctx context.Context, raw string) (Outcome, error) {
	ks, err := heatmap.ParseKs(raw)
	if err != nil {
		o.notifier.Notify(LevelWarn, err.Error())
		return OutcomeNone, err
	}

	if len(ks) == 0 {
		o.display([]models.Resource{{URL: o.defaultImage, Category: models.ClassifyResource(o.defaultImage)}})
		return OutcomeDefault, nil
	}

	req, err := heatmap.NewRequest(ks)
	if err != nil {
		o.notifier.Notify(LevelWarn, err.Error())
		return OutcomeNone, err
	}

	resources, err := o.request(ctx, req)
	if err != nil {
		log.Warnw("suppressed heatmap generation error", "ks", heatmap.Key(req.Ks), "error", err)
		o.notifier.Notify(LevelError, "Heatmap generation failed")
		return OutcomeFailed, nil
	}

	o.display(resources)
	o.notifier.Notify(LevelInfo, fmt.Sprintf("Showing %d image(s) for K=%s", len(resources), heatmap.Key(req.Ks)))
	return OutcomeGenerated, nil
}

// SubmitAsync runs Submit on its own goroutine. The result channel
// receives exactly one value.
func (o *Orchestrator) SubmitAsync(ctx context.Context, raw string) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		outcome, err := o.Submit(ctx, raw)
		out <- Result{Outcome: outcome, Err: err}
	}()
	return out
}

// Result of an asynchronous submit
type Result struct {
	Outcome Outcome
	Err     error
}

func (o *Orchestrator) request(ctx context.Context, req models.HeatmapRequest) ([]models.Resource, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+GeneratePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e models.ErrorResponse
		_ = json.Unmarshal(data, &e)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, e.Error)
	}

	decoded, err := heatmap.DecodeResponse(data)
	if err != nil {
		return nil, err
	}
	resources := heatmap.Normalize(decoded)
	if len(resources) == 0 {
		return nil, fmt.Errorf("%w: no images", heatmap.ErrUnrecognizedResponse)
	}
	return resources, nil
}

func (o *Orchestrator) display(rs []models.Resource) {
	token := o.tokens.Next()
	out := make([]models.Resource, len(rs))
	for i, r := range rs {
		out[i] = models.Resource{URL: o.resolve(heatmap.CacheBust(r.URL, token)), Category: r.Category}
	}
	o.gallery.Show(out)
}

// resolve makes server-relative references absolute against the base URL
func (o *Orchestrator) resolve(ref string) string {
	if strings.HasPrefix(ref, "/") && !strings.HasPrefix(ref, "//") {
		return o.baseURL + ref
	}
	return ref
}
