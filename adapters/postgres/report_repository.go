package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"dqlens/domain/core"
	"dqlens/domain/quality"
	"dqlens/ports"

	"github.com/jmoiron/sqlx"
)

// ReportRepositoryImpl implements ReportRepository for PostgreSQL
type ReportRepositoryImpl struct {
	db *sqlx.DB
}

// NewReportRepository creates a new PostgreSQL report repository
func NewReportRepository(db *sqlx.DB) ports.ReportRepository {
	return &ReportRepositoryImpl{db: db}
}

// SaveReport persists a stored report and its category score rows
func (r *ReportRepositoryImpl) SaveReport(ctx context.Context, stored *ports.StoredReport) error {
	payload, err := json.Marshal(stored.Report)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO analyses (id, created_at, dataset_name, row_count, column_count, global_score, fingerprint, report)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, stored.ID.String(), stored.CreatedAt.Time(), stored.Report.DatasetName,
		stored.Report.Rows, stored.Report.Columns, stored.Report.GlobalScore,
		stored.Fingerprint.String(), payload)
	if err != nil {
		return err
	}

	for _, cat := range quality.Categories() {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO category_scores (analysis_id, category, score)
			VALUES ($1, $2, $3)
		`, stored.ID.String(), string(cat), stored.Report.CategoryScores[cat])
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetReport retrieves a stored report by id
func (r *ReportRepositoryImpl) GetReport(ctx context.Context, id core.AnalysisID) (*ports.StoredReport, error) {
	var row struct {
		ID          string    `db:"id"`
		CreatedAt   time.Time `db:"created_at"`
		Fingerprint string    `db:"fingerprint"`
		Report      []byte    `db:"report"`
	}
	err := r.db.GetContext(ctx, &row, `
		SELECT id, created_at, fingerprint, report
		FROM analyses
		WHERE id = $1
	`, id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrAnalysisNotFound
	}
	if err != nil {
		return nil, err
	}

	var report quality.Report
	if err := json.Unmarshal(row.Report, &report); err != nil {
		return nil, err
	}

	return &ports.StoredReport{
		ID:          core.AnalysisID(row.ID),
		CreatedAt:   core.NewTimestamp(row.CreatedAt),
		Fingerprint: core.Fingerprint(row.Fingerprint),
		Report:      &report,
	}, nil
}

// ListReports returns the most recent analyses, newest first
func (r *ReportRepositoryImpl) ListReports(ctx context.Context, limit int) ([]ports.AnalysisSummary, error) {
	query := `
		SELECT id, created_at, dataset_name, row_count, column_count, global_score, fingerprint
		FROM analyses
		ORDER BY created_at DESC
	`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}
	return r.querySummaries(ctx, query, args...)
}

// ScoreHistory returns past analyses of one dataset, newest first
func (r *ReportRepositoryImpl) ScoreHistory(ctx context.Context, datasetName string, limit int) ([]ports.AnalysisSummary, error) {
	query := `
		SELECT id, created_at, dataset_name, row_count, column_count, global_score, fingerprint
		FROM analyses
		WHERE dataset_name = $1
		ORDER BY created_at DESC
	`
	args := []interface{}{datasetName}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}
	return r.querySummaries(ctx, query, args...)
}

func (r *ReportRepositoryImpl) querySummaries(ctx context.Context, query string, args ...interface{}) ([]ports.AnalysisSummary, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []ports.AnalysisSummary
	for rows.Next() {
		var (
			id          string
			createdAt   time.Time
			fingerprint string
			s           ports.AnalysisSummary
		)
		if err := rows.Scan(&id, &createdAt, &s.DatasetName, &s.Rows, &s.Columns, &s.GlobalScore, &fingerprint); err != nil {
			return nil, err
		}
		s.ID = core.AnalysisID(id)
		s.CreatedAt = core.NewTimestamp(createdAt)
		s.Fingerprint = core.Fingerprint(fingerprint)
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
