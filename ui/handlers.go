package ui

import (
	"encoding/json"
	"net/http"
	"sync"

	"randeval/adapters/report"
	"randeval/app"
	"randeval/domain/battery"
	"randeval/domain/core"
	"randeval/ports"
)

type runRequest struct {
	Values []float64 `json:"values"`
	Alpha  float64   `json:"alpha"`
	Tests  []string  `json:"tests"`
}

type runResponse struct {
	Summary  *app.RunSummary `json:"summary"`
	Warnings []string        `json:"warnings"`
}

// warningCollector gathers the orchestrator's non-blocking warnings so
// the response can surface them; fallbacks are never silent.
type warningCollector struct {
	mu       sync.Mutex
	warnings []string
}

func (c *warningCollector) TestCompleted(battery.TestID, ports.RunStatus) {}

func (c *warningCollector) Warning(id battery.TestID, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warnings = append(c.warnings, message)
}

func (s *Server) handleListTests(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tests":         s.svc.AvailableTests(),
		"default_alpha": s.cfg.DefaultAlpha,
	})
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Alpha == 0 {
		req.Alpha = s.cfg.DefaultAlpha
	}
	selection := make([]battery.TestID, 0, len(req.Tests))
	for _, t := range req.Tests {
		selection = append(selection, battery.TestID(t))
	}
	if len(selection) == 0 {
		selection = s.svc.AvailableTests()
	}

	if !s.runSem.TryAcquire(1) {
		writeError(w, http.StatusConflict, "an analysis run is already in progress")
		return
	}
	defer s.runSem.Release(1)

	collector := &warningCollector{}
	summary, err := s.svc.Run(r.Context(), app.RunRequest{
		Values:    req.Values,
		Alpha:     req.Alpha,
		Selection: selection,
		Events:    collector,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if core.IsDatasetError(err) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}

	resp := &runResponse{Summary: summary, Warnings: collector.warnings}
	s.mu.Lock()
	s.last = resp
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	last := s.last
	s.mu.RUnlock()
	if last == nil {
		writeError(w, http.StatusNotFound, "no analysis run in this session yet")
		return
	}
	writeJSON(w, http.StatusOK, last)
}

func (s *Server) latestReport() (report.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return report.Report{}, false
	}
	sum := s.last.Summary
	return report.Assemble(sum.RunID, sum.Alpha, sum.Profile, sum.Entries), true
}

func (s *Server) handleReportMarkdown(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.latestReport()
	if !ok {
		writeError(w, http.StatusNotFound, "no analysis run in this session yet")
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write(report.RenderMarkdown(rep))
}

func (s *Server) handleReportHTML(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.latestReport()
	if !ok {
		writeError(w, http.StatusNotFound, "no analysis run in this session yet")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(report.RenderHTML(rep))
}

func (s *Server) handleReportXLSX(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.latestReport()
	if !ok {
		writeError(w, http.StatusNotFound, "no analysis run in this session yet")
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="reporte_pruebas.xlsx"`)
	if err := report.RenderXLSX(rep, w); err != nil {
		s.logger.Error("report download failed: %v", err)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexPage))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

const indexPage = `<!DOCTYPE html>
<html lang="es">
<head><meta charset="utf-8"><title>Evaluador de Pruebas Estadísticas</title></head>
<body>
<h1>Evaluador de Pruebas Estadísticas</h1>
<p>API:</p>
<ul>
<li>GET /api/tests — pruebas disponibles</li>
<li>POST /api/runs — {"values": [...], "alpha": 0.05, "tests": [...]}</li>
<li>GET /api/runs/latest — resultados de la última corrida</li>
<li>GET /api/report.md | /api/report.html | /api/report.xlsx</li>
</ul>
</body>
</html>
`
