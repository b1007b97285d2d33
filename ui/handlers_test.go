package ui

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dqlens/adapters/memory"
	"dqlens/app"
	"dqlens/domain/quality"
	"dqlens/domain/quality/catalog"
	"dqlens/internal/inference"
	"dqlens/ports"
)

const customersCSV = `customer_id,email,age
CUST-00001,alice@example.com,34
CUST-00002,bruno@example.com,28
CUST-00003,claire@example.com,45
CUST-00004,david@example.com,51
`

func newTestApp(t *testing.T) *App {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	analyzer := app.NewAnalyzer(cat, quality.DefaultWeights(), inference.DefaultSampling())
	return NewApp(analyzer, cat, memory.NewReportRepository())
}

func uploadRequest(t *testing.T, target, filename, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to build multipart body: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("failed to write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHandleHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestApp(t).Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}
}

func TestHandleAnalyze_CSVUpload(t *testing.T) {
	a := newTestApp(t)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, uploadRequest(t, "/api/analyses", "customers.csv", customersCSV))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var stored ports.StoredReport
	if err := json.Unmarshal(rec.Body.Bytes(), &stored); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if stored.ID == "" {
		t.Error("expected a generated analysis id")
	}
	if stored.Report == nil || stored.Report.DatasetName != "customers" {
		t.Fatalf("unexpected report: %+v", stored.Report)
	}
	if stored.Report.Rows != 4 || stored.Report.Columns != 3 {
		t.Errorf("expected 4x3 dataset, got %dx%d", stored.Report.Rows, stored.Report.Columns)
	}
	if stored.Fingerprint == "" {
		t.Error("expected a fingerprint on the stored report")
	}
}

func TestHandleAnalyze_MissingFilePart(t *testing.T) {
	a := newTestApp(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	writer.Close()
	req := httptest.NewRequest(http.MethodPost, "/api/analyses", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without a file part, got %d", rec.Code)
	}
}

func TestHandleGetAnalysis_RoundTrip(t *testing.T) {
	a := newTestApp(t)

	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, uploadRequest(t, "/api/analyses", "customers.csv", customersCSV))
	if rec.Code != http.StatusCreated {
		t.Fatalf("analyze failed: %d", rec.Code)
	}
	var stored ports.StoredReport
	if err := json.Unmarshal(rec.Body.Bytes(), &stored); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}

	rec = httptest.NewRecorder()
	a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analyses/"+stored.ID.String(), nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for stored analysis, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analyses/does-not-exist", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown analysis, got %d", rec.Code)
	}
}

func TestHandleAnalysisSummary_Formats(t *testing.T) {
	a := newTestApp(t)

	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, uploadRequest(t, "/api/analyses", "customers.csv", customersCSV))
	var stored ports.StoredReport
	if err := json.Unmarshal(rec.Body.Bytes(), &stored); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}

	rec = httptest.NewRecorder()
	a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analyses/"+stored.ID.String()+"/summary", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "# Quality Report: customers") {
		t.Error("expected a markdown summary")
	}

	rec = httptest.NewRecorder()
	a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analyses/"+stored.ID.String()+"/summary?format=html", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected an HTML content type, got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "<table>") {
		t.Error("expected rendered HTML tables")
	}
}

func TestHandleListAnalyses(t *testing.T) {
	a := newTestApp(t)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		a.Router().ServeHTTP(rec, uploadRequest(t, "/api/analyses", "customers.csv", customersCSV))
		if rec.Code != http.StatusCreated {
			t.Fatalf("analyze failed: %d", rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analyses?limit=1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var summaries []ports.AnalysisSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summaries); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(summaries) != 1 {
		t.Errorf("expected limit to cap the list at 1, got %d", len(summaries))
	}
}

func TestHandleScoreHistory(t *testing.T) {
	a := newTestApp(t)

	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, uploadRequest(t, "/api/analyses", "customers.csv", customersCSV))
	if rec.Code != http.StatusCreated {
		t.Fatalf("analyze failed: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/datasets/customers/history", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var history []ports.AnalysisSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &history); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(history) != 1 || history[0].DatasetName != "customers" {
		t.Errorf("unexpected history: %+v", history)
	}
}

func TestHandleCatalog(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestApp(t).Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/catalog", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "R001_MISSING_VALUES") {
		t.Error("expected the rule catalog in the response")
	}
}

func TestHandleClean(t *testing.T) {
	a := newTestApp(t)

	csv := "customer_id, name \nCUST-00001,  alice \nCUST-00001,  alice \nCUST-00002,bruno\n"
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, uploadRequest(t, "/api/clean", "messy.csv", csv))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Report struct {
			OriginalRows int `json:"original_rows"`
			CleanedRows  int `json:"cleaned_rows"`
		} `json:"report"`
		Columns []struct {
			Name string `json:"name"`
		} `json:"columns"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body.Report.OriginalRows != 3 || body.Report.CleanedRows != 2 {
		t.Errorf("expected duplicate row removal 3 -> 2, got %d -> %d",
			body.Report.OriginalRows, body.Report.CleanedRows)
	}
	if len(body.Columns) != 2 {
		t.Errorf("expected 2 columns, got %d", len(body.Columns))
	}
}
