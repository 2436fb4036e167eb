package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/blongho/cap5610-project/internal/evaluate"
)

type evaluateRequest struct {
	Summary   string `json:"summary"`
	Reference string `json:"reference"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(&req); err != nil {
		jsonError(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Summary) == "" || strings.TrimSpace(req.Reference) == "" {
		jsonError(w, "summary and reference are required", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, evaluate.Evaluate(req.Summary, req.Reference))
}
