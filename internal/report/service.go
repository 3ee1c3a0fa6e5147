// Package report runs the attendance pipeline: it reads the uploaded exports,
// parses them, and aggregates the rows into a report.
package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"teamhours-backend/internal/attendance"
	"teamhours-backend/internal/csvtable"
	"teamhours-backend/internal/intake"
)

// Result is a complete attendance report for one run.
type Result struct {
	RunID       string                             `json:"runId" yaml:"runId"`
	GeneratedAt time.Time                          `json:"generatedAt" yaml:"generatedAt"`
	Events      []attendance.EventAttendanceReport `json:"events" yaml:"events"`
	Summary     []attendance.UserTotal             `json:"summary" yaml:"summary"`
	Excluded    map[string]int                     `json:"excluded" yaml:"excluded"`
}

// FileError reports the rows of one input file that could not be parsed.
type FileError struct {
	Name string
	Err  error
}

func (e *FileError) Error() string { return fmt.Sprintf("%s: %v", e.Name, e.Err) }

func (e *FileError) Unwrap() error { return e.Err }

type Service struct {
	agg    *attendance.Aggregator
	logger *zap.Logger
	now    func() time.Time
}

func NewService(agg *attendance.Aggregator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{agg: agg, logger: logger, now: time.Now}
}

// Generate classifies files by name and builds the report.
func (s *Service) Generate(ctx context.Context, files []intake.File) (*Result, error) {
	bundle, err := intake.Classify(files)
	if err != nil {
		s.logger.Warn("Rejected attendance input", zap.Int("files", len(files)), zap.Error(err))
		return nil, err
	}
	return s.GenerateBundle(ctx, bundle)
}

// GenerateBundle builds the report from an already classified set of files.
// Any file that fails to parse aborts the run; no partial report is returned.
func (s *Service) GenerateBundle(ctx context.Context, b intake.Bundle) (*Result, error) {
	runID := uuid.NewString()
	log := s.logger.With(zap.String("run_id", runID))
	start := s.now()

	files := b.Files()
	tables, err := readTables(ctx, files)
	if err != nil {
		log.Warn("Attendance report failed", zap.Error(err))
		return nil, err
	}

	events := intake.DecodeEvents(tables[0])
	sessions := intake.DecodeSessions(tables[1])
	var users []attendance.UserLookupRow
	if len(tables) > 2 {
		users = intake.DecodeUsers(tables[2])
	}

	reports := s.agg.Aggregate(events, sessions, users)
	excluded := make(map[string]int)
	for reason, n := range s.agg.Excluded(events) {
		excluded[reason.String()] = n
	}

	log.Info("Attendance report generated",
		zap.Int("events", len(events)),
		zap.Int("sessions", len(sessions)),
		zap.Int("users", len(users)),
		zap.Int("reported_events", len(reports)),
		zap.Any("excluded", excluded),
		zap.Duration("elapsed", s.now().Sub(start)))

	return &Result{
		RunID:       runID,
		GeneratedAt: start.UTC(),
		Events:      reports,
		Summary:     attendance.Summarize(reports),
		Excluded:    excluded,
	}, nil
}

// readTables parses all files concurrently. Problems from every file are
// combined, in input order, into a single error.
func readTables(ctx context.Context, files []intake.File) ([]*csvtable.Table, error) {
	tables := make([]*csvtable.Table, len(files))
	fileErrs := make([]error, len(files))

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tables[i], fileErrs[i] = readTable(f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := multierr.Combine(fileErrs...); err != nil {
		return nil, err
	}
	return tables, nil
}

func readTable(f intake.File) (*csvtable.Table, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()

	t, err := csvtable.Parse(rc)
	switch {
	case errors.Is(err, csvtable.ErrEmpty):
		return &csvtable.Table{}, nil
	case err != nil:
		var pe *csvtable.ParseError
		if errors.As(err, &pe) {
			return nil, &FileError{Name: f.Name, Err: err}
		}
		return nil, fmt.Errorf("read %s: %w", f.Name, err)
	}
	return t, nil
}
