package memory

import (
	"context"
	"sort"
	"sync"

	"dqlens/domain/core"
	"dqlens/ports"
)

// ReportRepository keeps stored reports in process memory. It backs the
// service when no database URL is configured; history is lost on restart.
type ReportRepository struct {
	mu      sync.RWMutex
	reports map[core.AnalysisID]*ports.StoredReport
	order   []core.AnalysisID
}

// NewReportRepository creates an empty in-memory repository
func NewReportRepository() *ReportRepository {
	return &ReportRepository{
		reports: make(map[core.AnalysisID]*ports.StoredReport),
	}
}

// SaveReport stores a report
func (r *ReportRepository) SaveReport(_ context.Context, stored *ports.StoredReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.reports[stored.ID]; !exists {
		r.order = append(r.order, stored.ID)
	}
	r.reports[stored.ID] = stored
	return nil
}

// GetReport retrieves a stored report by id
func (r *ReportRepository) GetReport(_ context.Context, id core.AnalysisID) (*ports.StoredReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.reports[id]
	if !ok {
		return nil, core.ErrAnalysisNotFound
	}
	return stored, nil
}

// ListReports returns summaries, newest first
func (r *ReportRepository) ListReports(_ context.Context, limit int) ([]ports.AnalysisSummary, error) {
	return r.summaries(func(*ports.StoredReport) bool { return true }, limit), nil
}

// ScoreHistory returns summaries for one dataset, newest first
func (r *ReportRepository) ScoreHistory(_ context.Context, datasetName string, limit int) ([]ports.AnalysisSummary, error) {
	return r.summaries(func(s *ports.StoredReport) bool {
		return s.Report.DatasetName == datasetName
	}, limit), nil
}

func (r *ReportRepository) summaries(keep func(*ports.StoredReport) bool, limit int) []ports.AnalysisSummary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []ports.AnalysisSummary
	for _, id := range r.order {
		stored := r.reports[id]
		if !keep(stored) {
			continue
		}
		out = append(out, ports.AnalysisSummary{
			ID:          stored.ID,
			CreatedAt:   stored.CreatedAt,
			DatasetName: stored.Report.DatasetName,
			Rows:        stored.Report.Rows,
			Columns:     stored.Report.Columns,
			GlobalScore: stored.Report.GlobalScore,
			Fingerprint: stored.Fingerprint,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
