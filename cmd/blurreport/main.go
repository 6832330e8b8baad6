// Command blurreport turns raw blur benchmark runs into aggregate and
// derived performance tables, and ranks profiler hotspot reports.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/blur-lab/go-blurbench/hotspot"
	"github.com/blur-lab/go-blurbench/report"
	"github.com/blur-lab/go-blurbench/runs"
)

var cfgPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("blurreport failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "blurreport",
		Short:         "Summarize image-blur benchmark runs and profiler hotspots",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file")
	root.AddCommand(newReportCmd(), newHotspotsCmd())

	return root
}

func newReportCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "report <runs.csv>",
		Short: "Aggregate benchmark runs and print the speedup summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = cfg.OutputDir
			}

			f, err := os.Open(args[0])
			if err != nil {
				return errors.Wrap(err, "open runs csv")
			}
			defer f.Close()

			records, err := runs.FromCSV(f)
			if err != nil {
				return err
			}

			aggs, err := report.Aggregate(records)
			if err != nil {
				return err
			}
			derived := report.Derive(aggs)
			rows := report.Summaries(derived)

			fmt.Fprintln(cmd.OutOrStdout(), renderSummaryTable(rows))

			if outDir != "" {
				if err := writeTables(outDir, derived, rows); err != nil {
					return err
				}
				slog.Info("tables written", "dir", outDir)
			}

			slog.Info("report complete",
				"runs", len(records), "groups", len(aggs), "summary_rows", len(rows))

			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "directory to write agg.csv and summary.csv")

	return cmd
}

func newHotspotsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hotspots <report.txt>",
		Short: "Rank profiler self-cost records by cost share",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return errors.Wrap(err, "open hotspot report")
			}
			defer f.Close()

			parser := hotspot.Parser{Delimiter: cfg.HotspotDelimiter}
			records, err := parser.Parse(f)
			if err != nil {
				return err
			}

			if len(records) > cfg.TopHotspots {
				records = records[:cfg.TopHotspots]
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderHotspotTable(records))
			slog.Info("hotspots parsed", "records", len(records))

			return nil
		},
	}

	return cmd
}

// writeTables persists the enriched aggregate table and the summary
// rows for the external plotting tooling.
func writeTables(dir string, derived []report.DerivedRecord, rows []report.SummaryRow) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create output directory")
	}

	agg, err := os.Create(filepath.Join(dir, "agg.csv"))
	if err != nil {
		return errors.Wrap(err, "create agg.csv")
	}
	defer agg.Close()
	if err := report.WriteAggregateCSV(agg, derived); err != nil {
		return err
	}

	summary, err := os.Create(filepath.Join(dir, "summary.csv"))
	if err != nil {
		return errors.Wrap(err, "create summary.csv")
	}
	defer summary.Close()

	return report.WriteSummaryCSV(summary, rows)
}
