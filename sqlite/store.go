package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/seodiff/seodiff"
)

// Compile-time interface verification.
var _ seodiff.ResultStore = (*Store)(nil)

// Store implements seodiff.ResultStore by recording each batch run and its
// per-URL analyses. The format argument is ignored here; the database schema
// is the format. Content hashes let later runs detect whether a page's
// visible text changed between audits without storing the text itself.
type Store struct {
	db *DB
}

// NewStore creates a new Store.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// Job is a stored batch run summary.
type Job struct {
	ID            string
	StartedAt     time.Time
	FinishedAt    time.Time
	URLsProcessed int
	URLsSucceeded int
	URLsFailed    int
	SuccessRate   float64
}

// Analysis is a stored per-URL record.
type Analysis struct {
	ID                  string
	JobID               string
	Position            int
	URL                 string
	FinalURL            string
	HTTPStatus          int
	Success             bool
	RawWordCount        int
	RenderedWordCount   int
	WordCountDelta      int
	InvisiblePercent    float64
	RawContentHash      string
	RenderedContentHash string
	Errors              []string
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// SaveResult persists the run and returns the generated job ID.
func (s *Store) SaveResult(ctx context.Context, result *seodiff.JobResult, _ seodiff.Format) (string, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	jobID := uuid.New().String()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO jobs (id, started_at, finished_at, urls_processed, urls_succeeded, urls_failed, success_rate)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, jobID, result.StartedAt.Format(time.RFC3339), result.FinishedAt.Format(time.RFC3339),
		result.URLsProcessed, result.URLsSucceeded, result.URLsFailed, result.SuccessRate())
	if err != nil {
		return "", err
	}

	for i, a := range result.Results {
		var rawWords, renderedWords, delta int
		var invisible float64
		if d := a.Differences; d != nil {
			rawWords = d.RawWordCount
			renderedWords = d.RenderedWordCount
			delta = d.WordCountDelta()
			invisible = d.ContentInvisibleWithoutJSPercentage()
		}

		var rawHash, renderedHash string
		if a.RawContent != nil {
			rawHash = hashContent(a.RawContent.VisibleText)
		}
		if a.RenderedContent != nil {
			renderedHash = hashContent(a.RenderedContent.VisibleText)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO analyses (id, job_id, position, url, final_url, http_status, success,
				raw_word_count, rendered_word_count, word_count_delta, invisible_percent,
				raw_content_hash, rendered_content_hash, errors)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, uuid.New().String(), jobID, i, a.URL, a.FinalURL, a.HTTPStatus, boolToInt(a.Success()),
			rawWords, renderedWords, delta, invisible,
			rawHash, renderedHash, strings.Join(a.AllErrors(), "; "))
		if err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}

	return jobID, nil
}

// FindJobByID retrieves a stored run summary.
func (s *Store) FindJobByID(ctx context.Context, id string) (*Job, error) {
	var job Job
	var startedAt, finishedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at, urls_processed, urls_succeeded, urls_failed, success_rate
		FROM jobs
		WHERE id = ?
	`, id).Scan(&job.ID, &startedAt, &finishedAt,
		&job.URLsProcessed, &job.URLsSucceeded, &job.URLsFailed, &job.SuccessRate)

	if err == sql.ErrNoRows {
		return nil, seodiff.Errorf(seodiff.ENOTFOUND, "job not found")
	}
	if err != nil {
		return nil, err
	}

	if job.StartedAt, err = time.Parse(time.RFC3339, startedAt); err != nil {
		return nil, fmt.Errorf("failed to parse started_at: %w", err)
	}
	if job.FinishedAt, err = time.Parse(time.RFC3339, finishedAt); err != nil {
		return nil, fmt.Errorf("failed to parse finished_at: %w", err)
	}

	return &job, nil
}

// FindRecentJobs retrieves the most recent run summaries, newest first.
func (s *Store) FindRecentJobs(ctx context.Context, limit int) ([]*Job, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, urls_processed, urls_succeeded, urls_failed, success_rate
		FROM jobs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*Job
	for rows.Next() {
		var job Job
		var startedAt, finishedAt string

		if err := rows.Scan(&job.ID, &startedAt, &finishedAt,
			&job.URLsProcessed, &job.URLsSucceeded, &job.URLsFailed, &job.SuccessRate); err != nil {
			return nil, err
		}

		if job.StartedAt, err = time.Parse(time.RFC3339, startedAt); err != nil {
			return nil, fmt.Errorf("failed to parse started_at: %w", err)
		}
		if job.FinishedAt, err = time.Parse(time.RFC3339, finishedAt); err != nil {
			return nil, fmt.Errorf("failed to parse finished_at: %w", err)
		}

		jobs = append(jobs, &job)
	}

	return jobs, rows.Err()
}

// FindAnalysesByJob retrieves the per-URL records of a run in input order.
func (s *Store) FindAnalysesByJob(ctx context.Context, jobID string) ([]*Analysis, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, job_id, position, url, final_url, http_status, success,
			raw_word_count, rendered_word_count, word_count_delta, invisible_percent,
			raw_content_hash, rendered_content_hash, errors
		FROM analyses
		WHERE job_id = ?
		ORDER BY position ASC
	`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var analyses []*Analysis
	for rows.Next() {
		var a Analysis
		var success int
		var errs string

		if err := rows.Scan(&a.ID, &a.JobID, &a.Position, &a.URL, &a.FinalURL, &a.HTTPStatus, &success,
			&a.RawWordCount, &a.RenderedWordCount, &a.WordCountDelta, &a.InvisiblePercent,
			&a.RawContentHash, &a.RenderedContentHash, &errs); err != nil {
			return nil, err
		}

		a.Success = success != 0
		if errs != "" {
			a.Errors = strings.Split(errs, "; ")
		}

		analyses = append(analyses, &a)
	}

	return analyses, rows.Err()
}

// DeleteJob permanently removes a run and its analyses.
func (s *Store) DeleteJob(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM jobs WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return seodiff.Errorf(seodiff.ENOTFOUND, "job not found")
	}

	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
