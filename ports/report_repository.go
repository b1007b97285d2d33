package ports

import (
	"context"

	"dqlens/domain/core"
	"dqlens/domain/quality"
)

// StoredReport wraps an immutable report with its persistence identity.
// The report itself never carries an id or timestamp.
type StoredReport struct {
	ID          core.AnalysisID  `json:"id"`
	CreatedAt   core.Timestamp   `json:"created_at"`
	Fingerprint core.Fingerprint `json:"fingerprint"`
	Report      *quality.Report  `json:"report"`
}

// AnalysisSummary is the listing projection of a stored report
type AnalysisSummary struct {
	ID          core.AnalysisID  `json:"id"`
	CreatedAt   core.Timestamp   `json:"created_at"`
	DatasetName string           `json:"dataset_name"`
	Rows        int              `json:"rows"`
	Columns     int              `json:"columns"`
	GlobalScore float64          `json:"global_score"`
	Fingerprint core.Fingerprint `json:"fingerprint"`
}

// ReportRepository persists analysis reports and their score history
type ReportRepository interface {
	SaveReport(ctx context.Context, stored *StoredReport) error
	GetReport(ctx context.Context, id core.AnalysisID) (*StoredReport, error)
	ListReports(ctx context.Context, limit int) ([]AnalysisSummary, error)
	ScoreHistory(ctx context.Context, datasetName string, limit int) ([]AnalysisSummary, error)
}
