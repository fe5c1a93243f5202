package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/fibseq/internal/logging"
	"github.com/agbru/fibseq/internal/sysmon"
)

// sequenceResponse is the payload of /api/v1/sequence. Values are decimal
// strings because terms past F(92) exceed every native integer type, JSON
// numbers included.
type sequenceResponse struct {
	Count    int      `json:"count"`
	Sequence []string `json:"sequence"`
}

// termResponse is the payload of /api/v1/term.
type termResponse struct {
	N    int    `json:"n"`
	Term string `json:"term"`
}

// errorResponse is the payload of every non-2xx API response.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON serializes v with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encoding response", err)
	}
}

// writeError serializes an error payload.
func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

// handleSequence serves GET /api/v1/sequence?count=K.
// A missing count defaults to 20; non-positive counts yield an empty
// sequence, mirroring the generator contract. Counts above the configured
// cap are rejected.
func (s *Server) handleSequence(w http.ResponseWriter, r *http.Request) {
	count := 20
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "count must be an integer")
			return
		}
		count = parsed
	}
	if count > s.security.MaxCount {
		s.writeError(w, http.StatusBadRequest, "count exceeds maximum of "+strconv.Itoa(s.security.MaxCount))
		return
	}

	_, span := s.tracer.Start(r.Context(), "sequence.generate",
		trace.WithAttributes(attribute.Int("fibseq.count", count)))
	seq := s.gen.Generate(count)
	span.End()

	resp := sequenceResponse{Count: len(seq), Sequence: make([]string, len(seq))}
	for i, v := range seq {
		resp.Sequence[i] = v.String()
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// handleTerm serves GET /api/v1/term?n=K.
func (s *Server) handleTerm(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("n")
	if raw == "" {
		s.writeError(w, http.StatusBadRequest, "missing required parameter n")
		return
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "n must be an integer")
		return
	}
	if n < 0 {
		s.writeError(w, http.StatusBadRequest, "n must be >= 0")
		return
	}
	if n > s.security.MaxCount {
		s.writeError(w, http.StatusBadRequest, "n exceeds maximum of "+strconv.Itoa(s.security.MaxCount))
		return
	}

	_, span := s.tracer.Start(r.Context(), "term.compute",
		trace.WithAttributes(attribute.Int("fibseq.n", n)))
	term := s.gen.Term(n)
	span.End()

	s.writeJSON(w, http.StatusOK, termResponse{N: n, Term: term.String()})
}

// handleStatus serves GET /api/v1/status with a best-effort resource
// usage snapshot.
func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	stats := sysmon.Sample()
	s.log.Debug("status sampled",
		logging.Float64("cpu_percent", stats.CPUPercent),
		logging.Float64("mem_percent", stats.MemPercent),
	)
	s.writeJSON(w, http.StatusOK, stats)
}

// handleHealthz serves GET /healthz.
func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}
