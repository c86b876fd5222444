package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/thok/internal/config"
	"github.com/verte-zerg/thok/internal/model"
	"github.com/verte-zerg/thok/internal/resultlog"
	"github.com/verte-zerg/thok/internal/stats"
	"github.com/verte-zerg/thok/internal/store"
)

const (
	defaultCurveWindow = 10
	defaultRecent      = 10
	curveHeight        = 10
)

var (
	statsSince       string
	statsLast        int
	statsTimed       bool
	statsCurveWindow int
	statsRecent      int
	statsFromLog     bool
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show typing history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N results")
	cmd.Flags().BoolVar(&statsTimed, "timed", false, "only timed tests")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().IntVar(&statsRecent, "recent", defaultRecent, "number of results in the recent table")
	cmd.Flags().BoolVar(&statsFromLog, "log", false, "read the CSV results log instead of the database")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	filter, err := statsFilter()
	if err != nil {
		return err
	}
	paths, err := config.LoadPaths()
	if err != nil {
		return fmt.Errorf("failed to resolve paths: %w", err)
	}

	var report stats.Report
	if statsFromLog {
		rows, err := resultlog.ReadAll(paths.Log)
		if err != nil {
			return fmt.Errorf("failed to read results log: %w", err)
		}
		report = stats.ReportFromLog(rows, filter)
	} else {
		st, err := store.Open(paths.DB)
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
		report, err = stats.BuildReport(context.Background(), st, filter, statsRecent)
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
	}
	return renderReport(cmd.OutOrStdout(), report)
}

func statsFilter() (model.HistoryFilter, error) {
	filter := model.HistoryFilter{Last: statsLast, TimedOnly: statsTimed}
	if statsLast < 0 {
		return filter, fmt.Errorf("--last must be >= 0")
	}
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return filter, fmt.Errorf("invalid --since value: %w", err)
		}
		filter.Since = &parsed
	}
	return filter, nil
}

func renderReport(w io.Writer, report stats.Report) error {
	if err := stats.RenderSummary(w, report.Summary); err != nil {
		return err
	}
	if err := stats.RenderCurves(w, report.Plain(), statsCurveWindow, 0, curveHeight, false); err != nil {
		return err
	}
	return stats.RenderRecent(w, report.Recent(statsRecent), report.Samples)
}
