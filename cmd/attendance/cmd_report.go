package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"teamhours-backend/internal/attendance"
	"teamhours-backend/internal/intake"
	"teamhours-backend/internal/report"
)

var (
	eventsPath   string
	sessionsPath string
	usersPath    string
	outputFormat string
	summaryOnly  bool
)

var reportCmd = &cobra.Command{
	Use:   "report [files...]",
	Short: "Aggregate activity exports into an attendance report",
	Long: `Builds the attendance report from CSV exports.

Files are recognised by name: one containing "ActivityEvents", one containing
"ActivitySessions" and optionally one containing "Misc". Use --events,
--sessions and --users to name them explicitly instead.

Example:
  attendance report exports/ActivityEvents.csv exports/ActivitySessions.csv exports/Misc.csv
  attendance report --events ev.csv --sessions se.csv --format yaml --summary`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&eventsPath, "events", "", "ActivityEvents export")
	reportCmd.Flags().StringVar(&sessionsPath, "sessions", "", "ActivitySessions export")
	reportCmd.Flags().StringVar(&usersPath, "users", "", "Misc export with user names (optional)")
	reportCmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format: json or yaml")
	reportCmd.Flags().BoolVar(&summaryOnly, "summary", false, "Print per-user totals instead of per-event attendees")
}

func pathFile(path string) *intake.File {
	if path == "" {
		return nil
	}
	f := intake.OSFile(path)
	return &f
}

func runReport(cmd *cobra.Command, args []string) error {
	if outputFormat != "json" && outputFormat != "yaml" {
		return fmt.Errorf("unknown format %q (use json or yaml)", outputFormat)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	svc := report.NewService(attendance.New(cfg.AttendanceRules()), logger)

	var (
		res *report.Result
		err error
	)
	if eventsPath != "" || sessionsPath != "" || usersPath != "" {
		if len(args) > 0 {
			return fmt.Errorf("use either positional files or --events/--sessions/--users, not both")
		}
		var bundle intake.Bundle
		bundle, err = intake.NewBundle(pathFile(eventsPath), pathFile(sessionsPath), pathFile(usersPath))
		if err == nil {
			res, err = svc.GenerateBundle(ctx, bundle)
		}
	} else {
		files := make([]intake.File, 0, len(args))
		for _, p := range args {
			files = append(files, intake.OSFile(p))
		}
		res, err = svc.Generate(ctx, files)
	}
	if err != nil {
		return err
	}

	logger.Debug("Writing report", zap.String("format", outputFormat), zap.Bool("summary", summaryOnly))

	var out any = res
	if summaryOnly {
		out = res.Summary
	}
	return writeOutput(cmd.OutOrStdout(), outputFormat, out)
}

func writeOutput(w io.Writer, format string, v any) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	}
}
