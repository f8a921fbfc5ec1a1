// Package api - Thin HTTP layer over the proposal engine
// The API is ONLY responsible for: input ingestion, engine
// orchestration, output serialization. The API NEVER performs fee
// logic; every figure comes from the core packages.
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"proposal-cost/adapters/storage"
	"proposal-cost/core/proposal"
	"proposal-cost/core/rates"
	"proposal-cost/core/rollup"
	"proposal-cost/internal/errors"
	"proposal-cost/internal/logging"
)

// Server is the API server
type Server struct {
	mux     *http.ServeMux
	version string
	store   storage.Store
	rates   *rates.Table
}

// NewServer creates an API server. The rate table may be nil when no
// rate source is configured; rate endpoints then serve empty results.
func NewServer(version string, store storage.Store, table *rates.Table) *Server {
	if table == nil {
		table = rates.NewTable(nil)
	}
	s := &Server{
		mux:     http.NewServeMux(),
		version: version,
		store:   store,
		rates:   table,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	// Core endpoints
	s.mux.HandleFunc("POST /totals", s.handleTotals)
	s.mux.HandleFunc("GET /proposals", s.handleListProposals)
	s.mux.HandleFunc("POST /proposals", s.handleCreateProposal)
	s.mux.HandleFunc("GET /proposals/{id}", s.handleGetProposal)
	s.mux.HandleFunc("PUT /proposals/{id}", s.handleUpdateProposal)
	s.mux.HandleFunc("DELETE /proposals/{id}", s.handleDeleteProposal)

	// Rate table
	s.mux.HandleFunc("GET /rates", s.handleListRates)
	s.mux.HandleFunc("GET /rates/{discipline}", s.handleRatesForDiscipline)

	// Supporting endpoints
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
}

// handleTotals handles POST /totals: a stateless rollup of a submitted
// project_data payload
func (s *Server) handleTotals(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, "INVALID_BODY", err.Error(), http.StatusBadRequest)
		return
	}

	// Hydration is defensive: malformed sections load as empty, the
	// same way the editor treats a partially-written record.
	p := proposal.Hydrate(body)
	s.writeJSON(w, totalsOf(p), http.StatusOK)
}

// handleCreateProposal handles POST /proposals
func (s *Server) handleCreateProposal(w http.ResponseWriter, r *http.Request) {
	s.saveProposal(w, r, "")
}

// handleUpdateProposal handles PUT /proposals/{id}
func (s *Server) handleUpdateProposal(w http.ResponseWriter, r *http.Request) {
	s.saveProposal(w, r, r.PathValue("id"))
}

func (s *Server) saveProposal(w http.ResponseWriter, r *http.Request, id string) {
	var req SaveProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}
	if err := validateSaveRequest(&req); err != nil {
		s.writeError(w, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
		return
	}

	record := &storage.Record{
		ID:          id,
		Name:        req.Name,
		ClientID:    req.ClientID,
		ProjectData: req.ProjectData,
	}
	if err := s.store.Save(r.Context(), record); err != nil {
		s.writeStoreError(w, err)
		return
	}

	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	s.writeJSON(w, s.proposalResponse(record), status)
}

// handleGetProposal handles GET /proposals/{id}
func (s *Server) handleGetProposal(w http.ResponseWriter, r *http.Request) {
	record, err := s.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, s.proposalResponse(record), http.StatusOK)
}

// handleListProposals handles GET /proposals
func (s *Server) handleListProposals(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.List(r.Context(), &storage.ListFilter{
		ClientID: r.URL.Query().Get("client_id"),
	})
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	if records == nil {
		records = []*storage.Record{}
	}
	s.writeJSON(w, records, http.StatusOK)
}

// handleDeleteProposal handles DELETE /proposals/{id}
func (s *Server) handleDeleteProposal(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleListRates handles GET /rates
func (s *Server) handleListRates(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"rates": s.rates.All(),
		"count": s.rates.Size(),
	}, http.StatusOK)
}

// handleRatesForDiscipline handles GET /rates/{discipline}
func (s *Server) handleRatesForDiscipline(w http.ResponseWriter, r *http.Request) {
	rows := s.rates.ForDiscipline(r.PathValue("discipline"))
	s.writeJSON(w, map[string]interface{}{
		"rates": rows,
		"count": len(rows),
	}, http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.version,
		"engine":      "proposal-cost",
		"api_version": "v1",
	}, http.StatusOK)
}

func (s *Server) proposalResponse(record *storage.Record) *ProposalResponse {
	p := proposal.HydrateRecord(record.ID, record.ProjectData)
	return &ProposalResponse{
		ID:          record.ID,
		Name:        record.Name,
		ClientID:    record.ClientID,
		ProjectData: record.ProjectData,
		Totals:      totalsOf(p),
	}
}

func totalsOf(p *proposal.Proposal) TotalsResponse {
	grand := p.GrandTotal()
	return TotalsResponse{
		GrandTotal:          grand,
		GrandTotalFormatted: rollup.FormatAmount(grand),
		Categories:          p.CategoryTotals(),
		Construction:        p.ConstructionTotals(),
	}
}

func validateSaveRequest(req *SaveProposalRequest) error {
	if req.Name == "" {
		return errors.Input("name is required")
	}
	if len(req.ProjectData) == 0 {
		return errors.Input("project_data is required")
	}
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) writeError(w http.ResponseWriter, code, message string, status int) {
	s.writeJSON(w, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}, status)
}

// writeStoreError maps gateway errors to HTTP statuses, passing the
// store's message through unchanged
func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	logging.Warn("proposal store error", zap.Error(err))
	switch {
	case errors.IsType(err, errors.TypeUnauthorized):
		s.writeError(w, string(errors.TypeUnauthorized), err.Error(), http.StatusUnauthorized)
	case errors.IsType(err, errors.TypeNotFound):
		s.writeError(w, string(errors.TypeNotFound), err.Error(), http.StatusNotFound)
	case errors.IsType(err, errors.TypeNetwork):
		s.writeError(w, string(errors.TypeNetwork), err.Error(), http.StatusBadGateway)
	default:
		s.writeError(w, string(errors.TypeStorage), err.Error(), http.StatusBadGateway)
	}
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
