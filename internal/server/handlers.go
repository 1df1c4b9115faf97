package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/floorsight/floorplan-api/internal/furniture"
	"github.com/floorsight/floorplan-api/internal/imaging"
	"github.com/floorsight/floorplan-api/internal/logger"
	"github.com/floorsight/floorplan-api/internal/search"
	"github.com/floorsight/floorplan-api/internal/upstream"
)

// uploadField is the multipart form field carrying the image.
const uploadField = "image"

// defaultProductLimit bounds product lookups when the request does not
// ask for a specific count.
const defaultProductLimit = 3

// allowedExtensions lists the accepted upload file types.
var allowedExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		respondError(w, http.StatusNotFound, "Not found")
		return
	}
	if !getOnly(w, r) {
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"service": serviceTitle,
		"version": serviceVersion,
		"endpoints": map[string]string{
			"POST /analyze":           "Full floor plan analysis with room buttons",
			"POST /analyze/image":     "Annotated floor plan as a PNG image",
			"POST /analyze-furniture": "Furniture identification for a room photo",
			"POST /search-products":   "Product search for one furniture item",
			"POST /analyze-and-shop":  "Furniture analysis with product matches",
			"POST /visual-search":     "Reverse image product search",
			"GET /health":             "Service health",
			"GET /metrics":            "Prometheus metrics",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !getOnly(w, r) {
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"service":   serviceName,
		"version":   serviceVersion,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !postOnly(w, r) {
		return
	}
	data, detail := s.readImageUpload(r)
	if detail != "" {
		respondError(w, http.StatusBadRequest, detail)
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), data, r.FormValue("context"))
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleAnalyzeImage(w http.ResponseWriter, r *http.Request) {
	if !postOnly(w, r) {
		return
	}
	data, detail := s.readImageUpload(r)
	if detail != "" {
		respondError(w, http.StatusBadRequest, detail)
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), data, r.FormValue("context"))
	if err != nil {
		respondFailure(w, err)
		return
	}
	png, err := result.AnnotatedPNG()
	if err != nil || len(png) == 0 {
		logger.Error(module, "annotated image missing from analysis result")
		respondError(w, http.StatusInternalServerError, "Failed to generate image")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		logger.Error(module, "write image response: %v", err)
	}
}

func (s *Server) handleAnalyzeFurniture(w http.ResponseWriter, r *http.Request) {
	if !postOnly(w, r) {
		return
	}
	data, detail := s.readImageUpload(r)
	if detail != "" {
		respondError(w, http.StatusBadRequest, detail)
		return
	}

	analysis, err := s.analyzer.AnalyzeFurniture(r.Context(), data)
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		*furniture.Analysis
	}{"success", analysis})
}

func (s *Server) handleSearchProducts(w http.ResponseWriter, r *http.Request) {
	if !postOnly(w, r) {
		return
	}
	var req struct {
		Furniture furniture.Item `json:"furniture"`
		Limit     int            `json:"limit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Furniture.Name == "" && req.Furniture.Category == "" {
		respondError(w, http.StatusBadRequest, "Missing furniture name or category")
		return
	}

	report := s.agent.Search(r.Context(), req.Furniture)
	limit := req.Limit
	if limit <= 0 {
		limit = defaultProductLimit
	}
	respondJSON(w, http.StatusOK, struct {
		search.Report
		Products []search.Product `json:"products"`
	}{report, s.lookupProducts(r.Context(), report.SearchQueries, limit)})
}

func (s *Server) handleAnalyzeAndShop(w http.ResponseWriter, r *http.Request) {
	if !postOnly(w, r) {
		return
	}
	data, detail := s.readImageUpload(r)
	if detail != "" {
		respondError(w, http.StatusBadRequest, detail)
		return
	}

	result, err := s.analyzer.AnalyzeAndShop(r.Context(), data)
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleVisualSearch(w http.ResponseWriter, r *http.Request) {
	if !postOnly(w, r) {
		return
	}
	if s.searcher == nil || !s.searcher.Configured() {
		respondError(w, http.StatusServiceUnavailable, "Visual search not configured")
		return
	}
	data, detail := s.readImageUpload(r)
	if detail != "" {
		respondError(w, http.StatusBadRequest, detail)
		return
	}

	product, err := s.searcher.SearchByImage(r.Context(), base64.StdEncoding.EncodeToString(data))
	if err != nil {
		s.metrics.SearchErrors.Add(1)
		respondFailure(w, err)
		return
	}

	resp := map[string]any{"status": "success", "product": product}
	if product == nil {
		resp["message"] = "No visual matches found"
	}
	respondJSON(w, http.StatusOK, resp)
}

// lookupProducts runs up to limit of the given queries against the
// product search engine. Misses and per-query failures are skipped so
// one bad query cannot sink the response.
func (s *Server) lookupProducts(ctx context.Context, queries []string, limit int) []search.Product {
	products := []search.Product{}
	if s.searcher == nil || !s.searcher.Configured() {
		return products
	}
	for _, query := range queries {
		if len(products) >= limit {
			break
		}
		s.metrics.ProductSearches.Add(1)
		product, err := s.searcher.SearchProducts(ctx, query)
		if err != nil {
			s.metrics.SearchErrors.Add(1)
			logger.Warn(module, "product search %q: %v", query, err)
			continue
		}
		if product != nil {
			products = append(products, *product)
		}
	}
	return products
}

// readImageUpload extracts and validates the uploaded image. A
// non-empty detail string is the user-facing 400 message.
func (s *Server) readImageUpload(r *http.Request) ([]byte, string) {
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		return nil, "Invalid multipart form data"
	}
	file, header, err := r.FormFile(uploadField)
	if err != nil {
		return nil, "No filename provided"
	}
	defer file.Close()

	if header.Filename == "" {
		return nil, "No filename provided"
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	allowed := false
	for _, a := range allowedExtensions {
		if ext == a {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Sprintf("Invalid file type. Allowed: %s", strings.Join(allowedExtensions, ", "))
	}

	data, err := io.ReadAll(io.LimitReader(file, s.maxUploadBytes+1))
	if err != nil {
		return nil, "Failed to read file"
	}
	if int64(len(data)) > s.maxUploadBytes {
		return nil, fmt.Sprintf("File too large. Max: %dMB", s.maxUploadBytes/(1<<20))
	}
	if len(data) == 0 {
		return nil, "Empty file"
	}
	if _, err := imaging.Inspect(data); err != nil {
		return nil, "Invalid or corrupted image file"
	}
	return data, ""
}

// postOnly rejects non-POST methods.
func postOnly(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return false
	}
	return true
}

// getOnly rejects non-GET methods.
func getOnly(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return false
	}
	return true
}

// respondFailure maps an analysis error onto a status code: upstream
// collaborator failures surface as 502, everything else as 500.
func respondFailure(w http.ResponseWriter, err error) {
	logger.Error(module, "%v", err)
	if ue, ok := upstream.As(err); ok {
		respondError(w, http.StatusBadGateway, fmt.Sprintf("%s service error (status %d)", ue.Service, ue.Status))
		return
	}
	respondError(w, http.StatusInternalServerError, err.Error())
}

// respondError writes an error response in the API's {"detail": ...}
// shape.
func respondError(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, map[string]string{"detail": detail})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error(module, "encode response: %v", err)
	}
}
