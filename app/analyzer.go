package app

import (
	"context"

	"dqlens/domain/dataset"
	"dqlens/domain/quality"
	"dqlens/domain/quality/catalog"
	"dqlens/internal/inference"
	"dqlens/internal/recommend"
	"dqlens/internal/rules"
	"dqlens/internal/scoring"

	"golang.org/x/sync/errgroup"
)

// Analyzer runs one full quality analysis: profiling, rule evaluation,
// scoring and recommendations. It holds only immutable configuration (the
// loaded catalog, validated weights, sampling bounds), so a single analyzer
// serves many runs and concurrent callers.
type Analyzer struct {
	inferencer *inference.Inferencer
	engine     *rules.Engine
	aggregator *scoring.Aggregator
}

// NewAnalyzer wires the four stages around an explicit catalog; there is no
// ambient global catalog.
func NewAnalyzer(cat *catalog.Catalog, weights quality.Weights, sampling inference.Sampling) *Analyzer {
	return &Analyzer{
		inferencer: inference.NewInferencer(sampling),
		engine:     rules.NewEngine(cat),
		aggregator: scoring.NewAggregator(weights),
	}
}

// Analyze produces the quality report for one dataset. Per-column work runs
// in parallel: each goroutine writes only its own profile and result slot,
// and everything is joined before scoring.
func (a *Analyzer) Analyze(ctx context.Context, ds *dataset.Dataset) (*quality.Report, error) {
	columns := ds.Columns()
	totalRows := ds.RowCount()

	profiles := make([]quality.ColumnProfile, len(columns))
	columnResults := make([][]quality.RuleResult, len(columns))

	g, ctx := errgroup.WithContext(ctx)
	for i, col := range columns {
		i, col := i, col
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			profiles[i] = a.inferencer.ProfileColumn(col)
			columnResults[i] = a.engine.EvaluateColumn(col, totalRows, profiles[i])
			return nil
		})
	}
	datasetResults := a.engine.EvaluateDataset(ds)
	if err := g.Wait(); err != nil {
		return nil, err
	}

	eval := quality.Evaluation{
		DatasetResults: datasetResults,
		ColumnResults:  make(map[string][]quality.RuleResult, len(columns)),
	}
	for i, col := range columns {
		eval.ColumnResults[col.Name] = columnResults[i]
	}
	eval.Summary = rules.Summarize(eval.All(ds.ColumnNames()))

	score := a.aggregator.Score(eval)
	recs := recommend.Generate(eval, ds.ColumnNames(), score.GlobalScore)

	return &quality.Report{
		DatasetName:     ds.Name,
		Rows:            totalRows,
		Columns:         ds.ColumnCount(),
		GlobalScore:     score.GlobalScore,
		CategoryScores:  score.CategoryScores,
		Evaluation:      eval,
		ColumnProfiles:  profiles,
		Recommendations: recs,
	}, nil
}
