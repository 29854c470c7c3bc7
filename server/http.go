package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/c360studio/readyspec/analysis"
	"github.com/c360studio/readyspec/catalog"
)

// maxRequestBodySize limits POST body sizes to prevent DoS.
const maxRequestBodySize = 1 << 20 // 1 MB

// maxBatchSize caps the number of inputs in one batch request.
const maxBatchSize = 100

// RegisterHTTPHandlers registers all API handlers under the given prefix.
// The prefix should be the path segment without a trailing slash (e.g.
// "api/v1"). Handlers are registered as:
//
//	POST <prefix>/analyze
//	POST <prefix>/analyze-batch
//	GET  <prefix>/catalog
//	POST <prefix>/catalog/reload
//	GET  <prefix>/healthz
func (s *Server) RegisterHTTPHandlers(prefix string, mux *http.ServeMux) {
	// Normalise: ensure leading slash and trailing slash.
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix = prefix + "/"
	}

	mux.HandleFunc(prefix+"analyze", s.handleAnalyze)
	mux.HandleFunc(prefix+"analyze-batch", s.handleAnalyzeBatch)
	mux.HandleFunc(prefix+"catalog", s.handleCatalog)
	mux.HandleFunc(prefix+"catalog/reload", s.handleCatalogReload)
	mux.HandleFunc(prefix+"healthz", s.handleHealthz)
}

// AnalyzeRequest is the request body for POST <prefix>/analyze.
type AnalyzeRequest struct {
	// Text is the requirement or test-case statement to analyze.
	Text string `json:"text"`
}

// handleAnalyze analyzes a single statement and returns the full result.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	start := time.Now()
	result, err := s.engine.Analyze(req.Text)
	if err != nil {
		s.logger.Warn("Analysis rejected", "error", err)
		writeJSON(w, http.StatusUnprocessableEntity, errorBody(err))
		return
	}
	s.metrics.ObserveAnalysis(string(result.ReadinessLevel), time.Since(start))

	writeJSON(w, http.StatusOK, result)
}

// AnalyzeBatchRequest is the request body for POST <prefix>/analyze-batch.
type AnalyzeBatchRequest struct {
	// Texts are analyzed independently; results come back in input order.
	Texts []string `json:"texts"`
}

// AnalyzeBatchResponse is the response body for POST <prefix>/analyze-batch.
type AnalyzeBatchResponse struct {
	Results []*analysis.Result `json:"results"`
}

// handleAnalyzeBatch analyzes up to maxBatchSize statements in input order.
func (s *Server) handleAnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	var req AnalyzeBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Texts) == 0 {
		http.Error(w, "texts is required", http.StatusBadRequest)
		return
	}
	if len(req.Texts) > maxBatchSize {
		http.Error(w, "too many texts in one batch", http.StatusBadRequest)
		return
	}

	start := time.Now()
	results, err := s.engine.AnalyzeMany(req.Texts)
	if err != nil {
		s.logger.Warn("Batch analysis rejected", "error", err)
		writeJSON(w, http.StatusUnprocessableEntity, errorBody(err))
		return
	}
	for _, result := range results {
		s.metrics.ObserveAnalysis(string(result.ReadinessLevel), time.Since(start)/time.Duration(len(results)))
	}

	writeJSON(w, http.StatusOK, AnalyzeBatchResponse{Results: results})
}

// CatalogRuleInfo is one rule row in the catalog listing.
type CatalogRuleInfo struct {
	Name     string           `json:"name"`
	Category catalog.Category `json:"category"`
	Axis     catalog.Axis     `json:"axis"`
	Weight   float64          `json:"weight"`
}

// CatalogResponse is the response body for GET <prefix>/catalog.
type CatalogResponse struct {
	Version string            `json:"version"`
	Rules   []CatalogRuleInfo `json:"rules"`
}

// handleCatalog lists the active catalog's version and rule table.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snapshot := s.engine.Catalogs().Current()
	rules := make([]CatalogRuleInfo, 0, len(snapshot.Rules()))
	for _, rule := range snapshot.Rules() {
		rules = append(rules, CatalogRuleInfo{
			Name:     rule.Name,
			Category: rule.Category,
			Axis:     rule.Axis(),
			Weight:   rule.Weight,
		})
	}

	writeJSON(w, http.StatusOK, CatalogResponse{
		Version: snapshot.Version(),
		Rules:   rules,
	})
}

// ReloadResponse is the response body for POST <prefix>/catalog/reload.
type ReloadResponse struct {
	Version string `json:"version"`
}

// handleCatalogReload re-reads the backing catalog file. A failed reload
// leaves the active catalog in effect and reports the load error.
func (s *Server) handleCatalogReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	store := s.engine.Catalogs()
	if err := store.Reload(); err != nil {
		s.metrics.ObserveReload("failure")
		writeJSON(w, http.StatusConflict, errorBody(err))
		return
	}
	s.metrics.ObserveReload("success")

	writeJSON(w, http.StatusOK, ReloadResponse{Version: store.Current().Version()})
}

// HealthResponse is the response body for GET <prefix>/healthz.
type HealthResponse struct {
	Status         string `json:"status"`
	CatalogVersion string `json:"catalog_version"`
}

// handleHealthz reports liveness and the active catalog version.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:         "ok",
		CatalogVersion: s.engine.Catalogs().Current().Version(),
	})
}

func errorBody(err error) map[string]string {
	return map[string]string{"error": err.Error()}
}

// writeJSON marshals v as JSON and writes it to w with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Response is already partially written; nothing to recover.
		_ = err
	}
}
