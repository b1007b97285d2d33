package app

import (
	"context"
	"fmt"
	"testing"

	"dqlens/domain/dataset"
	"dqlens/domain/quality"
	"dqlens/domain/quality/catalog"
	"dqlens/internal/inference"
	"dqlens/internal/testkit"
)

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	return NewAnalyzer(cat, quality.DefaultWeights(), inference.DefaultSampling())
}

func repeat(raw string, n int) []dataset.Value {
	out := make([]dataset.Value, n)
	for i := range out {
		out[i] = dataset.NewValue(raw)
	}
	return out
}

func TestAnalyze_CleanDatasetScoresHigh(t *testing.T) {
	ds, err := testkit.NewCustomerDataGenerator(testkit.CleanCustomerConfig()).Generate()
	if err != nil {
		t.Fatalf("fixture generation failed: %v", err)
	}

	report, err := newTestAnalyzer(t).Analyze(context.Background(), ds)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if report.GlobalScore < 95 {
		t.Errorf("clean dataset should score at least 95, got %v", report.GlobalScore)
	}
	if len(report.Recommendations) != 0 {
		t.Errorf("clean dataset should yield no recommendations, got %d: %+v",
			len(report.Recommendations), report.Recommendations)
	}
	if report.Rows != ds.RowCount() || report.Columns != ds.ColumnCount() {
		t.Errorf("report shape mismatch: %d x %d", report.Rows, report.Columns)
	}
}

func TestAnalyze_AllDuplicateRows(t *testing.T) {
	ds, err := dataset.New("dup", []dataset.Column{
		{Name: "a", Values: repeat("x", 10)},
		{Name: "b", Values: repeat("y", 10)},
	})
	if err != nil {
		t.Fatalf("dataset build failed: %v", err)
	}

	report, err := newTestAnalyzer(t).Analyze(context.Background(), ds)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	var dup *quality.RuleResult
	for i := range report.Evaluation.DatasetResults {
		if report.Evaluation.DatasetResults[i].RuleID == "R002_DUPLICATE_ROWS" {
			dup = &report.Evaluation.DatasetResults[i]
		}
	}
	if dup == nil {
		t.Fatal("expected a duplicate rows result")
	}
	if dup.Severity != quality.SeverityCritical {
		t.Errorf("expected critical duplicates, got %s", dup.Severity)
	}

	foundHigh := false
	for _, rec := range report.Recommendations {
		if rec.Priority == quality.PriorityHigh && rec.Category == "Dataset" {
			foundHigh = true
		}
	}
	if !foundHigh {
		t.Error("expected a HIGH dataset-level recommendation")
	}
	if report.CategoryScores[quality.CategoryUniqueness] >= 100 {
		t.Errorf("uniqueness must be penalized, got %v", report.CategoryScores[quality.CategoryUniqueness])
	}
}

func TestAnalyze_MismatchedAgeColumn(t *testing.T) {
	ds, err := dataset.New("mismatch", []dataset.Column{
		{Name: "age", Values: []dataset.Value{
			dataset.NewValue("young"), dataset.NewValue("older"),
			dataset.NewValue("oldest"), dataset.NewValue("younger"),
		}},
	})
	if err != nil {
		t.Fatalf("dataset build failed: %v", err)
	}

	report, err := newTestAnalyzer(t).Analyze(context.Background(), ds)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	profile := report.ColumnProfiles[0]
	if profile.ExpectedType != quality.TypeNumeric {
		t.Errorf("age should be expected numeric, got %s", profile.ExpectedType)
	}
	if profile.ActualType == quality.TypeNumeric {
		t.Errorf("content is not numeric, got %s", profile.ActualType)
	}
	if profile.ConformityRate != 0 {
		t.Errorf("no value validates as numeric, expected conformity 0, got %v", profile.ConformityRate)
	}

	var mismatch *quality.RuleResult
	for i, r := range report.Evaluation.ColumnResults["age"] {
		if r.RuleID == "R003_TYPE_MISMATCH" {
			mismatch = &report.Evaluation.ColumnResults["age"][i]
		}
	}
	if mismatch == nil {
		t.Fatal("expected a type mismatch result for age")
	}
	if mismatch.Severity != quality.SeverityCritical {
		t.Errorf("conformity 0 must be critical, got %s", mismatch.Severity)
	}
	if report.CategoryScores[quality.CategoryValidity] == 100 {
		t.Error("validity must be penalized")
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	config := testkit.DefaultCustomerConfig()
	config.RowCount = 120

	run := func() string {
		t.Helper()
		ds, err := testkit.NewCustomerDataGenerator(config).Generate()
		if err != nil {
			t.Fatalf("fixture generation failed: %v", err)
		}
		report, err := newTestAnalyzer(t).Analyze(context.Background(), ds)
		if err != nil {
			t.Fatalf("Analyze failed: %v", err)
		}
		fp, err := report.Fingerprint()
		if err != nil {
			t.Fatalf("Fingerprint failed: %v", err)
		}
		return fp.String()
	}

	if run() != run() {
		t.Error("two analyses of identical input produced different fingerprints")
	}
}

func TestAnalyze_DefectsLowerTheScore(t *testing.T) {
	clean, err := testkit.NewCustomerDataGenerator(testkit.CleanCustomerConfig()).Generate()
	if err != nil {
		t.Fatalf("fixture generation failed: %v", err)
	}

	dirtyConfig := testkit.DefaultCustomerConfig()
	dirtyConfig.MissingEmailRate = 0.3
	dirtyConfig.BadEmailRate = 0.2
	dirtyConfig.DuplicateRowRate = 0.2
	dirty, err := testkit.NewCustomerDataGenerator(dirtyConfig).Generate()
	if err != nil {
		t.Fatalf("fixture generation failed: %v", err)
	}

	analyzer := newTestAnalyzer(t)
	cleanReport, err := analyzer.Analyze(context.Background(), clean)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	dirtyReport, err := analyzer.Analyze(context.Background(), dirty)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if dirtyReport.GlobalScore >= cleanReport.GlobalScore {
		t.Errorf("defects must lower the score: dirty %v >= clean %v",
			dirtyReport.GlobalScore, cleanReport.GlobalScore)
	}
	if len(dirtyReport.Recommendations) == 0 {
		t.Error("a defect-ridden dataset must yield recommendations")
	}
}

func TestAnalyze_ZeroRowDataset(t *testing.T) {
	ds, err := dataset.New("empty", []dataset.Column{
		{Name: "customer_id"},
		{Name: "email"},
	})
	if err != nil {
		t.Fatalf("dataset build failed: %v", err)
	}

	report, err := newTestAnalyzer(t).Analyze(context.Background(), ds)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if report.GlobalScore != 100 {
		t.Errorf("a dataset with no rows must score 100, got %v", report.GlobalScore)
	}
	for _, cat := range quality.Categories() {
		if report.CategoryScores[cat] != 100 {
			t.Errorf("category %s: expected 100, got %v", cat, report.CategoryScores[cat])
		}
	}
	if len(report.Recommendations) != 0 {
		t.Errorf("no rows means nothing to recommend, got %d", len(report.Recommendations))
	}
}

func TestAnalyze_MoreAbsentValuesNeverRaiseScore(t *testing.T) {
	ages := []string{"31", "32", "33", "34", "35", "36", "37", "38", "39", "40"}
	notes := make([]dataset.Value, len(ages))
	for i := range notes {
		notes[i] = dataset.NewValue(fmt.Sprintf("record %d", i))
	}

	analyzer := newTestAnalyzer(t)
	prev := 101.0
	for absent := 0; absent <= len(ages); absent++ {
		values := make([]dataset.Value, len(ages))
		for i, raw := range ages {
			if i < absent {
				values[i] = dataset.Missing()
			} else {
				values[i] = dataset.NewValue(raw)
			}
		}
		ds, err := dataset.New("erosion", []dataset.Column{
			{Name: "age", Values: values},
			{Name: "notes", Values: notes},
		})
		if err != nil {
			t.Fatalf("dataset build failed: %v", err)
		}

		report, err := analyzer.Analyze(context.Background(), ds)
		if err != nil {
			t.Fatalf("Analyze failed: %v", err)
		}
		if report.GlobalScore > prev {
			t.Errorf("score rose from %v to %v when absent count grew to %d",
				prev, report.GlobalScore, absent)
		}
		prev = report.GlobalScore
	}
}

func TestAnalyze_CancelledContext(t *testing.T) {
	ds, err := testkit.NewCustomerDataGenerator(testkit.DefaultCustomerConfig()).Generate()
	if err != nil {
		t.Fatalf("fixture generation failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := newTestAnalyzer(t).Analyze(ctx, ds); err == nil {
		t.Error("expected an error from a cancelled context")
	}
}

func TestAnalyze_SummaryCountsMatch(t *testing.T) {
	ds, err := testkit.NewCustomerDataGenerator(testkit.DefaultCustomerConfig()).Generate()
	if err != nil {
		t.Fatalf("fixture generation failed: %v", err)
	}

	report, err := newTestAnalyzer(t).Analyze(context.Background(), ds)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	s := report.Evaluation.Summary
	if s.TotalRulesExecuted != s.RulesPassed+s.RulesWarning+s.RulesCritical {
		t.Errorf("summary does not add up: %+v", s)
	}
	total := len(report.Evaluation.DatasetResults)
	for _, results := range report.Evaluation.ColumnResults {
		total += len(results)
	}
	if s.TotalRulesExecuted != total {
		t.Errorf("summary counts %d results, evaluation holds %d", s.TotalRulesExecuted, total)
	}
}
