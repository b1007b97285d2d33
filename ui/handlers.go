package ui

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"

	"dqlens/domain/core"
	"dqlens/internal/cleaner"
	"dqlens/internal/export"
	"dqlens/ports"
)

const maxUploadBytes = 64 << 20

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAnalyze accepts a multipart upload ("file"), runs the full quality
// analysis and persists the report.
func (a *App) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	path, cleanup, err := saveUpload(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	defer cleanup()

	ds, err := a.openFile(path).Read()
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err)
		return
	}

	report, err := a.analyzer.Analyze(r.Context(), ds)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	fingerprint, err := report.Fingerprint()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	stored := &ports.StoredReport{
		ID:          core.AnalysisID(core.NewID()),
		CreatedAt:   core.Now(),
		Fingerprint: fingerprint,
		Report:      report,
	}
	if err := a.reports.SaveReport(r.Context(), stored); err != nil {
		log.Printf("[ui] failed to persist report for %s: %v", report.DatasetName, err)
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	respondJSON(w, http.StatusCreated, stored)
}

func (a *App) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	summaries, err := a.reports.ListReports(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, summaries)
}

func (a *App) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseAnalysisID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	stored, err := a.reports.GetReport(r.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, core.ErrAnalysisNotFound) {
			status = http.StatusNotFound
		}
		respondError(w, status, err)
		return
	}
	respondJSON(w, http.StatusOK, stored)
}

// handleAnalysisSummary renders a stored report as markdown or HTML
func (a *App) handleAnalysisSummary(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseAnalysisID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	stored, err := a.reports.GetReport(r.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, core.ErrAnalysisNotFound) {
			status = http.StatusNotFound
		}
		respondError(w, status, err)
		return
	}

	switch r.URL.Query().Get("format") {
	case "html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(export.HTML(stored.Report))
	default:
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		io.WriteString(w, export.Markdown(stored.Report))
	}
}

func (a *App) handleScoreHistory(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	limit := queryInt(r, "limit", 20)
	history, err := a.reports.ScoreHistory(r.Context(), name, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, history)
}

func (a *App) handleCatalog(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, a.catalog)
}

// handleClean accepts an upload, runs the auto-clean pipeline and returns
// the cleaning report plus the cleaned data.
func (a *App) handleClean(w http.ResponseWriter, r *http.Request) {
	path, cleanup, err := saveUpload(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	defer cleanup()

	ds, err := a.openFile(path).Read()
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err)
		return
	}

	aggressive := r.URL.Query().Get("aggressive") == "true"
	c := cleaner.New(ds).AutoClean(aggressive)
	cleaned, err := c.Result()
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"report":  c.CleaningReport(),
		"columns": cleaned.Columns(),
	})
}

// saveUpload writes the multipart "file" part to a temp file, preserving
// the extension so the reader can pick the right format.
func saveUpload(r *http.Request) (string, func(), error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return "", nil, err
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, err
	}
	defer file.Close()

	return writeTemp(file, header.Filename)
}

func writeTemp(file multipart.File, filename string) (string, func(), error) {
	// Keep the original extension so the reader picks the right format
	tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(filename))
	if err != nil {
		return "", nil, err
	}
	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", nil, err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", nil, err
	}
	path := tmp.Name()
	cleanup := func() { os.Remove(path) }
	return path, cleanup, nil
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[ui] failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, map[string]string{"error": err.Error()})
}

func queryInt(r *http.Request, key string, fallback int) int {
	if raw := r.URL.Query().Get(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}
