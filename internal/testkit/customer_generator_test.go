package testkit

import (
	"strings"
	"testing"
)

func TestCustomerDataGenerator_Basic(t *testing.T) {
	config := DefaultCustomerConfig()
	config.RowCount = 50

	ds, err := NewCustomerDataGenerator(config).Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if ds.RowCount() < config.RowCount {
		t.Errorf("expected at least %d rows, got %d", config.RowCount, ds.RowCount())
	}
	if ds.ColumnCount() != 7 {
		t.Errorf("expected 7 columns, got %d", ds.ColumnCount())
	}

	ids, err := ds.Column("customer_id")
	if err != nil {
		t.Fatalf("customer_id column missing: %v", err)
	}
	for _, v := range ids.NonAbsent() {
		if !strings.HasPrefix(v, "CUST-") {
			t.Fatalf("unexpected id format: %q", v)
		}
	}
}

func TestCustomerDataGenerator_Deterministic(t *testing.T) {
	config := DefaultCustomerConfig()
	config.RowCount = 30

	ds1, err := NewCustomerDataGenerator(config).Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	ds2, err := NewCustomerDataGenerator(config).Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if ds1.RowCount() != ds2.RowCount() {
		t.Fatalf("row counts differ: %d vs %d", ds1.RowCount(), ds2.RowCount())
	}
	for i := 0; i < ds1.RowCount(); i++ {
		if ds1.RowKey(i) != ds2.RowKey(i) {
			t.Fatalf("row %d differs between identically seeded runs", i)
		}
	}
}

func TestCustomerDataGenerator_CleanConfigHasNoDefects(t *testing.T) {
	config := CleanCustomerConfig()
	config.RowCount = 100

	ds, err := NewCustomerDataGenerator(config).Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if ds.RowCount() != 100 {
		t.Errorf("clean config must not duplicate rows, got %d", ds.RowCount())
	}
	for _, col := range ds.Columns() {
		if col.NullCount() != 0 {
			t.Errorf("column %s has %d absent values in clean mode", col.Name, col.NullCount())
		}
	}

	emails, _ := ds.Column("email")
	for _, v := range emails.NonAbsent() {
		if !strings.Contains(v, "@") {
			t.Fatalf("clean mode produced a bad email: %q", v)
		}
	}
}

func TestCustomerDataGenerator_ConstantColumnOption(t *testing.T) {
	config := DefaultCustomerConfig()
	config.RowCount = 10
	config.ConstantColumn = true

	ds, err := NewCustomerDataGenerator(config).Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	source, err := ds.Column("source")
	if err != nil {
		t.Fatalf("expected a source column: %v", err)
	}
	if source.UniqueCount() != 1 {
		t.Errorf("source column should be constant, got %d distinct values", source.UniqueCount())
	}
}
