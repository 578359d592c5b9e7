package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/vanityforge/create2-miner/internal/metrics"
	"github.com/vanityforge/create2-miner/pkg/create2"
	"github.com/vanityforge/create2-miner/pkg/difficulty"
	"github.com/vanityforge/create2-miner/pkg/types"
)

// ComputeRequest is the body of POST /api/v1/compute
type ComputeRequest struct {
	Deployer     string `json:"deployer"`
	Salt         string `json:"salt"`
	InitCodeHash string `json:"initCodeHash"`
}

// ComputeResponse carries the derived address
type ComputeResponse struct {
	Address string `json:"address"`
}

// MineRequest is the body of POST /api/v1/mine
type MineRequest struct {
	Deployer     string `json:"deployer"`
	InitCodeHash string `json:"initCodeHash"`
	Termination  string `json:"termination"`
	AttemptCap   int64  `json:"attemptCap"`
}

// MineResponse carries a successful mining result
type MineResponse struct {
	Salt       string `json:"salt"`
	Address    string `json:"address"`
	Attempts   int64  `json:"attempts"`
	DurationMs int64  `json:"durationMs"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error    string `json:"error"`
	Attempts int64  `json:"attempts,omitempty"`
}

// handleCompute derives a CREATE2 address for a caller-supplied salt.
// POST /api/v1/compute
func (s *Server) handleCompute(w http.ResponseWriter, r *http.Request) {
	var req ComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	deployer, err := create2.ParseAddress(req.Deployer)
	if err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	salt, err := create2.ParseSalt(req.Salt)
	if err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	initCodeHash, err := create2.ParseHash(req.InitCodeHash)
	if err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	address := create2.Derive(deployer, salt, initCodeHash)
	metrics.AddressesDerived.Inc()

	s.writeJSON(w, http.StatusOK, ComputeResponse{Address: address.Hex()})
}

// handleMine runs a vanity-suffix salt search bounded by the attempt cap and
// the request deadline.
// POST /api/v1/mine
func (s *Server) handleMine(w http.ResponseWriter, r *http.Request) {
	var req MineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	deployer, err := create2.ParseAddress(req.Deployer)
	if err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	initCodeHash, err := create2.ParseHash(req.InitCodeHash)
	if err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	if s.cfg.MineTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(s.cfg.MineTimeout)*time.Second)
		defer cancel()
	}

	result, err := s.miner.Mine(ctx, types.SearchSpec{
		Deployer:     deployer,
		InitCodeHash: initCodeHash,
		Termination:  req.Termination,
		AttemptCap:   s.cfg.ClampAttemptCap(req.AttemptCap),
	})
	if err != nil {
		s.sendMineError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, MineResponse{
		Salt:       result.Salt,
		Address:    result.Address,
		Attempts:   result.Attempts,
		DurationMs: result.Duration.Milliseconds(),
	})
}

// handleDifficulty reports expected search cost for a termination.
// GET /api/v1/difficulty?termination=...
// The estimator never fails; invalid input yields a report with valid=false.
func (s *Server) handleDifficulty(w http.ResponseWriter, r *http.Request) {
	report := difficulty.Estimate(r.URL.Query().Get("termination"))
	s.writeJSON(w, http.StatusOK, report)
}

// handleHealth returns health status
// GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"service":   "create2-miner",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// sendMineError maps the core error taxonomy onto HTTP status codes.
func (s *Server) sendMineError(w http.ResponseWriter, err error) {
	var exhausted *types.ExhaustedError
	var cancelled *types.CancelledError
	switch {
	case errors.Is(err, types.ErrInvalidInput):
		s.sendError(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &exhausted):
		s.writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:    "search exhausted",
			Attempts: exhausted.Attempts,
		})
	case errors.As(err, &cancelled):
		s.writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{
			Error:    "search cancelled",
			Attempts: cancelled.Attempts,
		})
	default:
		s.logger.Printf("mine failed: %v", err)
		s.sendError(w, "internal server error", http.StatusInternalServerError)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Printf("failed to encode response: %v", err)
	}
}

func (s *Server) sendError(w http.ResponseWriter, msg string, status int) {
	s.writeJSON(w, status, ErrorResponse{Error: msg})
}
