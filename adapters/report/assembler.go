// Package report assembles the final mapping of normalized results
// into renderable shapes. The core makes no formatting decisions; this
// package is the rendering collaborator.
package report

import (
	"time"

	"randeval/domain/core"
	"randeval/internal/profiling"
	"randeval/internal/session"
	"randeval/ports"
)

// Row is one test's line in the summary table, in selection order.
type Row struct {
	ID            string  `json:"id"`
	TestName      string  `json:"tipo_prueba"`
	Status        string  `json:"status"`
	Statistic     float64 `json:"estadistico"`
	CriticalValue float64 `json:"valor_critico"`
	PValue        float64 `json:"p_valor"`
	RejectNull    bool    `json:"rechaza_h0"`
	Note          string  `json:"note,omitempty"`
}

// Report is the assembled, render-ready aggregate of one run.
type Report struct {
	RunID       core.RunID        `json:"run_id"`
	GeneratedAt time.Time         `json:"generated_at"`
	Alpha       float64           `json:"alpha"`
	Profile     profiling.Profile `json:"profile"`
	Rows        []Row             `json:"rows"`
}

// Assemble builds the report from the session store snapshot. Failure
// markers become rows with a note and no figures, so every selected
// test appears exactly once regardless of outcome.
func Assemble(runID core.RunID, alpha float64, profile profiling.Profile, entries []session.Entry) Report {
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		row := Row{
			ID:     string(e.ID),
			Status: string(e.Status),
		}
		switch e.Status {
		case ports.StatusFailed:
			row.TestName = string(e.ID)
			row.Note = e.Err
		default:
			row.TestName = e.Result.TestName
			row.Statistic = e.Result.Statistic
			row.CriticalValue = e.Result.CriticalValue
			row.PValue = e.Result.PValue
			row.RejectNull = e.Result.RejectNull
			if e.Status == ports.StatusFallback {
				row.Note = e.Err
			}
		}
		rows = append(rows, row)
	}

	return Report{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Alpha:       alpha,
		Profile:     profile,
		Rows:        rows,
	}
}
