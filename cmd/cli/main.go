package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"randeval/adapters/ingest"
	"randeval/adapters/report"
	"randeval/adapters/stats/tests"
	"randeval/app"
	"randeval/domain/battery"
	"randeval/internal"
	"randeval/internal/config"
	"randeval/internal/testkit"
	"randeval/ports"
)

func main() {
	// .env is optional; environment variables win.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "randeval",
		Short: "Battery of statistical randomness tests over a numeric dataset",
	}

	rootCmd.AddCommand(
		newListCmd(),
		newRunCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available test identifiers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			registry := tests.DefaultRegistry(cfg.Analysis.ChiIntervals, cfg.Analysis.RunsThreshold)
			for _, id := range registry.List() {
				t, _ := registry.Resolve(id)
				fmt.Printf("%-45s %s\n", id, t.DisplayName())
			}
			return nil
		},
	}
}

func newRunCmd() *cobra.Command {
	var alpha float64
	var selected []string
	var intervals int
	var threshold float64
	var out string
	var demo int
	var seed int64

	cmd := &cobra.Command{
		Use:   "run [dataset.csv|dataset.xlsx]",
		Short: "Run the selected tests against a dataset file",
		Long: `Run the battery against the first numeric column of a CSV or Excel file.

Example: randeval run muestras.csv --alpha 0.05 --tests rachas_ascendentes_descendentes,chi_cuadrado --out reporte.xlsx`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if intervals == 0 {
				intervals = cfg.Analysis.ChiIntervals
			}
			if alpha == 0 {
				alpha = cfg.Analysis.DefaultAlpha
			}
			if threshold == 0 {
				threshold = cfg.Analysis.RunsThreshold
			}

			var values []float64
			switch {
			case demo > 0:
				values = testkit.Uniform(demo, seed)
			case len(args) == 1:
				values, err = ingest.NewReader(args[0]).Read()
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("provide a dataset file or --demo N")
			}

			registry := tests.DefaultRegistry(intervals, threshold)
			svc := app.NewBatteryService(registry, internal.DefaultLogger)

			selection := registry.List()
			if len(selected) > 0 {
				selection = selection[:0]
				for _, s := range selected {
					selection = append(selection, battery.TestID(strings.TrimSpace(s)))
				}
			}

			summary, err := svc.Run(cmd.Context(), app.RunRequest{
				Values:    values,
				Alpha:     alpha,
				Selection: selection,
				Events:    consoleSink{},
			})
			if err != nil {
				return err
			}

			rep := report.Assemble(summary.RunID, summary.Alpha, summary.Profile, summary.Entries)
			os.Stdout.Write(report.RenderMarkdown(rep))

			if out != "" {
				if err := report.WriteXLSX(rep, out); err != nil {
					return err
				}
				fmt.Printf("\nreporte guardado en %s\n", out)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&alpha, "alpha", 0, "significance level (default from config)")
	cmd.Flags().StringSliceVar(&selected, "tests", nil, "comma-separated test identifiers (default: all)")
	cmd.Flags().IntVar(&intervals, "intervals", 0, "class intervals for goodness-of-fit tests")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "threshold for above/below runs tests (default from config)")
	cmd.Flags().StringVar(&out, "out", "", "write the report to this .xlsx path")
	cmd.Flags().IntVar(&demo, "demo", 0, "skip the file and analyze N generated uniform values")
	cmd.Flags().Int64Var(&seed, "seed", 42, "seed for --demo data")

	return cmd
}

// consoleSink prints per-test progress as the orchestrator advances.
type consoleSink struct{}

func (consoleSink) TestCompleted(id battery.TestID, status ports.RunStatus) {
	fmt.Fprintf(os.Stderr, "[%s] %s\n", status, id)
}

func (consoleSink) Warning(id battery.TestID, message string) {
	fmt.Fprintf(os.Stderr, "advertencia: %s\n", message)
}
