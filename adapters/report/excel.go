package report

import (
	"io"

	"github.com/xuri/excelize/v2"

	"randeval/internal/errors"
)

const summarySheet = "Resumen"

// WriteXLSX renders the report as a spreadsheet file at path.
func WriteXLSX(rep Report, path string) error {
	f, err := buildXLSX(rep)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(err, "failed to save report to %s", path)
	}
	return nil
}

// RenderXLSX streams the spreadsheet to w (HTTP download path).
func RenderXLSX(rep Report, w io.Writer) error {
	f, err := buildXLSX(rep)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "failed to stream report")
	}
	return nil
}

// buildXLSX lays out the summary table of every executed test plus the
// dataset profile block underneath.
func buildXLSX(rep Report) (*excelize.File, error) {
	f := excelize.NewFile()

	f.SetSheetName("Sheet1", summarySheet)

	headers := []string{"Prueba", "Identificador", "Estado", "Estadístico", "Valor Crítico", "P-Valor", "Rechaza H0", "Nota"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(summarySheet, cell, h); err != nil {
			return nil, errors.Wrap(err, "failed to write report header")
		}
	}

	for r, row := range rep.Rows {
		values := []interface{}{
			row.TestName,
			row.ID,
			row.Status,
			row.Statistic,
			row.CriticalValue,
			row.PValue,
			decisionLabel(row),
			row.Note,
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(summarySheet, cell, v); err != nil {
				return nil, errors.Wrapf(err, "failed to write report row %d", r+1)
			}
		}
	}

	profileStart := len(rep.Rows) + 4
	profile := [][]interface{}{
		{"Datos", rep.Profile.N},
		{"Media", rep.Profile.Mean},
		{"Desv. Estándar", rep.Profile.StdDev},
		{"Mínimo", rep.Profile.Min},
		{"Máximo", rep.Profile.Max},
		{"Mediana", rep.Profile.Median},
		{"Alpha", rep.Alpha},
		{"Run ID", rep.RunID.String()},
		{"Generado", rep.GeneratedAt.Format("2006-01-02 15:04:05 UTC")},
	}
	for r, pair := range profile {
		for c, v := range pair {
			cell, _ := excelize.CoordinatesToCellName(c+1, profileStart+r)
			if err := f.SetCellValue(summarySheet, cell, v); err != nil {
				return nil, errors.Wrap(err, "failed to write profile block")
			}
		}
	}

	return f, nil
}

func decisionLabel(row Row) string {
	if row.Status == "failed" {
		return ""
	}
	if row.RejectNull {
		return "Se RECHAZA H0"
	}
	return "NO se rechaza H0"
}
