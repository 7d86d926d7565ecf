package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/cognicore/rake/internal/htmltext"
	"github.com/cognicore/rake/pkg/rake/report"
)

type extractRequest struct {
	Text    string `json:"text"`
	HTML    bool   `json:"html"`
	Top     string `json:"top"`
	Explain bool   `json:"explain"`
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)

	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sel, err := report.ParseSelection(req.Top)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	text := req.Text
	if req.HTML {
		text = htmltext.FromString(text)
	}

	e := s.Extractor()
	res := e.Extract(text)
	rep, err := s.builder.Build(e, res, report.Options{Selection: sel, Explain: req.Explain})
	if err != nil {
		s.logger.Error("report failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.logger.Debug("extract request",
		zap.String("id", rep.ID),
		zap.Int("chars", len(text)),
		zap.Int("keywords", len(rep.Keywords)),
	)
	s.respondJSON(w, http.StatusOK, rep)
}

func (s *Server) handleStopwords(w http.ResponseWriter, r *http.Request) {
	words := s.Extractor().Stopwords().Words()
	if words == nil {
		words = []string{}
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":     len(words),
		"stopwords": words,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
