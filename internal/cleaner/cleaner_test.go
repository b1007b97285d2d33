package cleaner

import (
	"testing"

	"dqlens/domain/dataset"
)

func buildDataset(t *testing.T, columns []dataset.Column) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New("test", columns)
	if err != nil {
		t.Fatalf("dataset build failed: %v", err)
	}
	return ds
}

func values(raws ...string) []dataset.Value {
	out := make([]dataset.Value, len(raws))
	for i, raw := range raws {
		if raw == "<nil>" {
			out[i] = dataset.Missing()
		} else {
			out[i] = dataset.NewValue(raw)
		}
	}
	return out
}

func TestRemoveDuplicateRows_KeepsFirst(t *testing.T) {
	ds := buildDataset(t, []dataset.Column{
		{Name: "a", Values: values("1", "1", "2", "1")},
		{Name: "b", Values: values("x", "x", "y", "x")},
	})

	c := New(ds).RemoveDuplicateRows()
	cleaned, err := c.Result()
	if err != nil {
		t.Fatalf("Result failed: %v", err)
	}
	if cleaned.RowCount() != 2 {
		t.Errorf("expected 2 rows after dedupe, got %d", cleaned.RowCount())
	}

	report := c.CleaningReport()
	if len(report.Operations) != 1 || report.Operations[0].RowsRemoved != 2 {
		t.Errorf("unexpected cleaning log: %+v", report.Operations)
	}
}

func TestRemoveEmptyAndConstantColumns(t *testing.T) {
	ds := buildDataset(t, []dataset.Column{
		{Name: "empty", Values: values("<nil>", "<nil>")},
		{Name: "constant", Values: values("crm", "crm")},
		{Name: "useful", Values: values("1", "2")},
	})

	c := New(ds).RemoveEmptyColumns().RemoveConstantColumns()
	cleaned, err := c.Result()
	if err != nil {
		t.Fatalf("Result failed: %v", err)
	}
	if cleaned.ColumnCount() != 1 {
		t.Fatalf("expected 1 surviving column, got %d", cleaned.ColumnCount())
	}
	if cleaned.Columns()[0].Name != "useful" {
		t.Errorf("wrong column survived: %s", cleaned.Columns()[0].Name)
	}
}

func TestRemoveHighMissingColumns(t *testing.T) {
	ds := buildDataset(t, []dataset.Column{
		{Name: "holey", Values: values("<nil>", "<nil>", "<nil>", "x")},
		{Name: "full", Values: values("1", "2", "3", "4")},
	})

	cleaned, err := New(ds).RemoveHighMissingColumns(0.7).Result()
	if err != nil {
		t.Fatalf("Result failed: %v", err)
	}
	if cleaned.ColumnCount() != 1 || cleaned.Columns()[0].Name != "full" {
		t.Errorf("expected only the full column to survive, got %v", cleaned.ColumnNames())
	}
}

func TestTrimWhitespace(t *testing.T) {
	ds := buildDataset(t, []dataset.Column{
		{Name: "city", Values: values("  Paris ", "Lyon")},
	})

	cleaned, err := New(ds).TrimWhitespace().Result()
	if err != nil {
		t.Fatalf("Result failed: %v", err)
	}
	if got := cleaned.Columns()[0].Values[0].Raw; got != "Paris" {
		t.Errorf("expected trimmed value, got %q", got)
	}
}

func TestStandardizeColumnNames(t *testing.T) {
	ds := buildDataset(t, []dataset.Column{
		{Name: "First Name", Values: values("a")},
		{Name: "Prix (EUR)", Values: values("1")},
		{Name: "first_name", Values: values("b")},
	})

	cleaned, err := New(ds).StandardizeColumnNames().Result()
	if err != nil {
		t.Fatalf("Result failed: %v", err)
	}
	names := cleaned.ColumnNames()
	if names[0] != "first_name" {
		t.Errorf("expected first_name, got %s", names[0])
	}
	if names[1] != "prix_eur" {
		t.Errorf("expected prix_eur, got %s", names[1])
	}
	// Collision with the already-standardized first column gets a suffix
	if names[2] == names[0] {
		t.Errorf("name collision not resolved: %v", names)
	}
}

func TestFillMissingNumeric_Median(t *testing.T) {
	ds := buildDataset(t, []dataset.Column{
		{Name: "age", Values: values("10", "20", "30", "<nil>")},
	})

	cleaned, err := New(ds).FillMissingNumeric("median").Result()
	if err != nil {
		t.Fatalf("Result failed: %v", err)
	}
	col := cleaned.Columns()[0]
	if col.NullCount() != 0 {
		t.Fatalf("expected no absent values after fill, got %d", col.NullCount())
	}
	if got := col.Values[3].Raw; got != "20" {
		t.Errorf("expected median 20, got %q", got)
	}
}

func TestFillMissingNumeric_SkipsTextColumns(t *testing.T) {
	ds := buildDataset(t, []dataset.Column{
		{Name: "city", Values: values("Paris", "Lyon", "Nice", "<nil>")},
	})

	cleaned, err := New(ds).FillMissingNumeric("median").Result()
	if err != nil {
		t.Fatalf("Result failed: %v", err)
	}
	if cleaned.Columns()[0].NullCount() != 1 {
		t.Error("numeric fill must not touch a text column")
	}
}

func TestFillMissingCategorical_Mode(t *testing.T) {
	ds := buildDataset(t, []dataset.Column{
		{Name: "status", Values: values("active", "active", "inactive", "<nil>")},
	})

	cleaned, err := New(ds).FillMissingCategorical("mode").Result()
	if err != nil {
		t.Fatalf("Result failed: %v", err)
	}
	if got := cleaned.Columns()[0].Values[3].Raw; got != "active" {
		t.Errorf("expected the mode to fill the gap, got %q", got)
	}
}

func TestAutoClean_DoesNotMutateSource(t *testing.T) {
	ds := buildDataset(t, []dataset.Column{
		{Name: "a", Values: values(" x ", " y ")},
	})

	if _, err := New(ds).AutoClean(true).Result(); err != nil {
		t.Fatalf("AutoClean failed: %v", err)
	}
	if got := ds.Columns()[0].Values[0].Raw; got != " x " {
		t.Errorf("cleaning mutated the source dataset: %q", got)
	}
}

func TestCleaningReport_Counts(t *testing.T) {
	ds := buildDataset(t, []dataset.Column{
		{Name: "a", Values: values("1", "1")},
		{Name: "empty", Values: values("<nil>", "<nil>")},
	})

	c := New(ds).RemoveEmptyColumns().RemoveDuplicateRows()
	report := c.CleaningReport()
	if report.OriginalRows != 2 || report.OriginalColumns != 2 {
		t.Errorf("wrong original shape: %+v", report)
	}
	if report.CleanedRows != 1 || report.CleanedColumns != 1 {
		t.Errorf("wrong cleaned shape: %+v", report)
	}
}
