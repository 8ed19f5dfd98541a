package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jengzang/crosswell-viewer/internal/generator"
	"github.com/jengzang/crosswell-viewer/internal/heatmap"
	"github.com/jengzang/crosswell-viewer/internal/log"
	"github.com/jengzang/crosswell-viewer/internal/models"
	"github.com/jengzang/crosswell-viewer/internal/repository"
	"github.com/jengzang/crosswell-viewer/internal/stats"
)

// HeatmapService validates generation requests, runs the generator and
// builds the image reference returned to the client.
type HeatmapService struct {
	runner       *generator.Coalescer
	runs         *repository.GenerationRunRepository
	tokens       *heatmap.CacheBuster
	imagePattern string
	defaultImage string
}

// NewHeatmapService creates a new heatmap service. runs may be nil, in
// which case invocations are not recorded.
func NewHeatmapService(runner generator.Runner, runs *repository.GenerationRunRepository, timeout time.Duration, imagePattern, defaultImage string) *HeatmapService {
	s := &HeatmapService{
		runs:         runs,
		tokens:       heatmap.NewCacheBuster(),
		imagePattern: imagePattern,
		defaultImage: defaultImage,
	}
	s.runner = generator.NewCoalescer(&recordingRunner{next: runner, runs: runs}, timeout)
	return s
}

// ImagePath is the static path of the heatmap generated for k
func (s *HeatmapService) ImagePath(k int) string {
	return "/" + strings.TrimPrefix(path.Clean(fmt.Sprintf(s.imagePattern, k)), "/")
}

// DefaultImagePath is the precomputed combined image shown without Ks
func (s *HeatmapService) DefaultImagePath() string {
	return "/" + strings.TrimPrefix(path.Clean(s.defaultImage), "/")
}

// Generate filters the raw ks array, runs the generator and returns the
// image for the first K with a fresh cache-busting token.
func (s *HeatmapService) Generate(ctx context.Context, raw []any) (*models.HeatmapResponse, error) {
	ks := heatmap.FilterKs(raw)
	if len(ks) < heatmap.MinKs {
		return nil, heatmap.ErrNoKs
	}

	res, shared, err := s.runner.Do(ctx, ks)
	if err != nil {
		return nil, err
	}
	log.Infow("heatmaps generated", "ks", heatmap.Key(ks), "shared", shared, "duration", res.Duration)

	return &models.HeatmapResponse{
		ImageURL: heatmap.CacheBust(s.ImagePath(ks[0]), s.tokens.Next()),
	}, nil
}

// ListRuns returns recorded generator invocations
func (s *HeatmapService) ListRuns(status string, limit, offset int) ([]*models.GenerationRun, error) {
	if s.runs == nil {
		return []*models.GenerationRun{}, nil
	}
	return s.runs.List(status, limit, offset)
}

// GetRun returns one recorded invocation
func (s *HeatmapService) GetRun(id string) (*models.GenerationRun, error) {
	if s.runs == nil {
		return nil, repository.ErrRunNotFound
	}
	return s.runs.GetByID(id)
}

// durationWindow bounds how many recent completed runs feed the summary
const durationWindow = 100

// RunStats summarizes the run ledger
type RunStats struct {
	Counts    map[string]int        `json:"counts"`
	Durations stats.DurationSummary `json:"durations"`
}

// RunStats counts recorded invocations per status and summarizes how long
// recent completed runs took.
func (s *HeatmapService) RunStats() (*RunStats, error) {
	if s.runs == nil {
		return &RunStats{Counts: map[string]int{}}, nil
	}
	counts, err := s.runs.CountByStatus()
	if err != nil {
		return nil, err
	}
	durations, err := s.runs.CompletedDurations(durationWindow)
	if err != nil {
		return nil, err
	}
	return &RunStats{Counts: counts, Durations: stats.SummarizeDurations(durations)}, nil
}

// recordingRunner logs and records each real invocation. It sits behind
// the coalescer, so shared requests are recorded once.
type recordingRunner struct {
	next generator.Runner
	runs *repository.GenerationRunRepository
}

func (r *recordingRunner) Run(ctx context.Context, ks []int) (generator.Result, error) {
	run := &models.GenerationRun{
		ID:        uuid.NewString(),
		Key:       heatmap.Key(ks),
		Ks:        ks,
		Status:    models.RunStatusRunning,
		StartedAt: time.Now(),
	}
	if r.runs != nil {
		if err := r.runs.Create(run); err != nil {
			log.Warnw("failed to record generation run", "run", run.ID, "error", err)
		}
	}

	res, err := r.next.Run(ctx, ks)

	run.Status = models.RunStatusCompleted
	run.ExitCode = res.ExitCode
	run.DurationMs = res.Duration.Milliseconds()
	if err != nil {
		run.Status = models.RunStatusFailed
		var exitErr *generator.ExitError
		if errors.As(err, &exitErr) {
			run.ExitCode = exitErr.Code
			log.Errorw("heatmap generator failed", "run", run.ID, "ks", run.Key, "exit_code", exitErr.Code, "stderr", exitErr.Stderr)
		} else {
			log.Errorw("heatmap generator failed", "run", run.ID, "ks", run.Key, "error", err)
		}
	} else if res.Stdout != "" {
		log.Debugw("heatmap generator output", "run", run.ID, "stdout", res.Stdout)
	}

	if r.runs != nil {
		if cerr := r.runs.Complete(run); cerr != nil {
			log.Warnw("failed to complete generation run", "run", run.ID, "error", cerr)
		}
	}
	return res, err
}
