package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/blongho/cap5610-project/internal/summarize"
)

const maxJSONBody = 8 << 20

type summarizeRequest struct {
	Text        string `json:"text"`
	UseCoT      bool   `json:"use_cot"`
	SectionName string `json:"section_name"`
}

type summaryBody struct {
	Text         string `json:"text"`
	Citation     string `json:"citation,omitempty"`
	Reasoning    string `json:"reasoning,omitempty"`
	FinalSummary string `json:"final_summary,omitempty"`
}

type summarizeResponse struct {
	Summary   summaryBody `json:"summary"`
	UseCoT    bool        `json:"use_cot"`
	Model     string      `json:"model"`
	ID        string      `json:"id"`
	Clipped   bool        `json:"clipped"`
	LatencyMs int64       `json:"latency_ms"`
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	if s.summarizer == nil {
		jsonError(w, "summarizer unavailable", http.StatusServiceUnavailable)
		return
	}

	var req summarizeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(&req); err != nil {
		jsonError(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return
	}

	res, err := s.summarizer.Summarize(r.Context(), summarize.Request{
		Text:        req.Text,
		SectionName: req.SectionName,
		Mode:        summarize.ModeFor(req.UseCoT),
	})
	if err != nil {
		if errors.Is(err, summarize.ErrEmptyText) {
			jsonError(w, "No text provided", http.StatusBadRequest)
			return
		}
		s.log.Error("summarize request failed", "error", err, "use_cot", req.UseCoT)
		jsonError(w, "summarization failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	body := summaryBody{Text: res.Text}
	if res.Parsed != nil {
		body.Citation = res.Parsed.Citation
		body.Reasoning = res.Parsed.Reasoning
		body.FinalSummary = res.Parsed.FinalSummary
	}
	writeJSON(w, http.StatusOK, summarizeResponse{
		Summary:   body,
		UseCoT:    req.UseCoT,
		Model:     res.Model,
		ID:        res.ID,
		Clipped:   res.Clipped,
		LatencyMs: res.LatencyMs,
	})
}
