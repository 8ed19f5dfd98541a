package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jengzang/crosswell-viewer/internal/models"
)

// ErrRunNotFound is returned when no run has the requested id
var ErrRunNotFound = errors.New("generation run not found")

// GenerationRunRepository handles database operations for generation runs
type GenerationRunRepository struct {
	db *sql.DB
}

// NewGenerationRunRepository creates a new generation run repository
func NewGenerationRunRepository(db *sql.DB) *GenerationRunRepository {
	return &GenerationRunRepository{db: db}
}

// Create records a run that has just started
func (r *GenerationRunRepository) Create(run *models.GenerationRun) error {
	query := `
		INSERT INTO generation_runs (id, run_key, status, exit_code, duration_ms, started_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query, run.ID, run.Key, run.Status, run.ExitCode, run.DurationMs, run.StartedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to create generation run: %w", err)
	}
	return nil
}

// Complete stores the outcome of a run
func (r *GenerationRunRepository) Complete(run *models.GenerationRun) error {
	if run.CompletedAt == nil {
		now := time.Now()
		run.CompletedAt = &now
	}
	query := `
		UPDATE generation_runs
		SET status = ?,
		    exit_code = ?,
		    duration_ms = ?,
		    completed_at = ?
		WHERE id = ?
	`
	result, err := r.db.Exec(query, run.Status, run.ExitCode, run.DurationMs, run.CompletedAt.UTC(), run.ID)
	if err != nil {
		return fmt.Errorf("failed to complete generation run: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, run.ID)
	}
	return nil
}

// GetByID retrieves a run by id
func (r *GenerationRunRepository) GetByID(id string) (*models.GenerationRun, error) {
	query := `
		SELECT id, run_key, status, exit_code, duration_ms, started_at, completed_at
		FROM generation_runs
		WHERE id = ?
	`
	run, err := scanRun(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get generation run: %w", err)
	}
	return run, nil
}

// List retrieves runs, newest first, optionally filtered by status
func (r *GenerationRunRepository) List(status string, limit int, offset int) ([]*models.GenerationRun, error) {
	query := `
		SELECT id, run_key, status, exit_code, duration_ms, started_at, completed_at
		FROM generation_runs
		WHERE 1=1
	`
	args := []interface{}{}
	if status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}
	query += " ORDER BY started_at DESC, rowid DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list generation runs: %w", err)
	}
	defer rows.Close()

	runs := []*models.GenerationRun{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan generation run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// CountByStatus returns the number of runs per status
func (r *GenerationRunRepository) CountByStatus() (map[string]int, error) {
	rows, err := r.db.Query("SELECT status, COUNT(*) FROM generation_runs GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("failed to count generation runs: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan run count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// CompletedDurations returns the durations of the most recent completed runs
func (r *GenerationRunRepository) CompletedDurations(limit int) ([]int64, error) {
	rows, err := r.db.Query(`
		SELECT duration_ms FROM generation_runs
		WHERE status = ?
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?`, models.RunStatusCompleted, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query run durations: %w", err)
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var ms int64
		if err := rows.Scan(&ms); err != nil {
			return nil, fmt.Errorf("failed to scan run duration: %w", err)
		}
		out = append(out, ms)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*models.GenerationRun, error) {
	run := &models.GenerationRun{}
	var completed sql.NullTime
	if err := row.Scan(
		&run.ID,
		&run.Key,
		&run.Status,
		&run.ExitCode,
		&run.DurationMs,
		&run.StartedAt,
		&completed,
	); err != nil {
		return nil, err
	}
	if completed.Valid {
		t := completed.Time
		run.CompletedAt = &t
	}
	run.Ks = parseKey(run.Key)
	return run, nil
}

func parseKey(key string) []int {
	ks := []int{}
	for _, part := range strings.Split(key, ",") {
		if k, err := strconv.Atoi(part); err == nil {
			ks = append(ks, k)
		}
	}
	return ks
}
