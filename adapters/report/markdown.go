package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// RenderMarkdown renders the report as a Markdown document.
func RenderMarkdown(rep Report) []byte {
	var b strings.Builder

	b.WriteString("# Evaluación de Pruebas Estadísticas\n\n")
	fmt.Fprintf(&b, "Run `%s` — generado %s, alpha = %g\n\n",
		rep.RunID, rep.GeneratedAt.Format("2006-01-02 15:04:05 UTC"), rep.Alpha)

	b.WriteString("## Resumen\n\n")
	b.WriteString("| Prueba | Estado | Estadístico | Valor Crítico | P-Valor | Decisión | Nota |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	for _, row := range rep.Rows {
		if row.Status == "failed" {
			fmt.Fprintf(&b, "| %s | %s | — | — | — | — | %s |\n", row.TestName, row.Status, row.Note)
			continue
		}
		fmt.Fprintf(&b, "| %s | %s | %.6f | %.6f | %.6f | %s | %s |\n",
			row.TestName, row.Status, row.Statistic, row.CriticalValue,
			row.PValue, decisionLabel(row), row.Note)
	}

	b.WriteString("\n## Perfil de los datos\n\n")
	fmt.Fprintf(&b, "- n: %d\n", rep.Profile.N)
	fmt.Fprintf(&b, "- media: %.6f\n", rep.Profile.Mean)
	fmt.Fprintf(&b, "- desviación estándar: %.6f\n", rep.Profile.StdDev)
	fmt.Fprintf(&b, "- mínimo: %.6f\n", rep.Profile.Min)
	fmt.Fprintf(&b, "- máximo: %.6f\n", rep.Profile.Max)
	fmt.Fprintf(&b, "- mediana: %.6f\n", rep.Profile.Median)

	return []byte(b.String())
}

// RenderHTML renders the report as a standalone HTML fragment.
func RenderHTML(rep Report) []byte {
	md := RenderMarkdown(rep)

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse(md)

	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}
