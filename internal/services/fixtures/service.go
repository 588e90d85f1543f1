package fixtures

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/TheMichaelB/vecfmt/internal/compare"
	"github.com/TheMichaelB/vecfmt/internal/config"
	"github.com/TheMichaelB/vecfmt/internal/events"
	"github.com/TheMichaelB/vecfmt/internal/models"
	"github.com/TheMichaelB/vecfmt/internal/storage"
	"github.com/TheMichaelB/vecfmt/internal/vectors"
)

// ErrNoReference means self check was requested but the reference file
// does not exist.
var ErrNoReference = errors.New("reference file not found")

// Service formats test vector fixtures and checks them against a reference.
type Service struct {
	store      storage.LineStore
	formatter  *vectors.Formatter
	comparator *compare.Comparator
	logger     *events.Logger
}

// Options selects files for one run. Empty paths fall back to config.
type Options struct {
	Input     string
	Output    string
	Reference string
	SelfCheck bool
}

// Result of a format run. Check is nil when self check was off or could
// not read its files.
type Result struct {
	Format *vectors.FormatResult `json:"format"`
	Check  *compare.Report       `json:"check,omitempty"`
}

// NewService creates a fixtures service.
func NewService(store storage.LineStore, cfg *config.FormatConfig, logger *events.Logger) *Service {
	return &Service{
		store:      store,
		formatter:  vectors.NewFormatter(store, cfg.EntriesPerRecord),
		comparator: compare.NewComparator(store),
		logger:     logger.WithField("service", "fixtures"),
	}
}

// SetEcho installs a hook that sees every formatted record.
func (s *Service) SetEcho(fn func(models.Record)) {
	s.formatter.SetEcho(fn)
}

// Format writes the normalized output and, with SelfCheck, compares it to
// the reference. A failed self check still returns the format result.
func (s *Service) Format(ctx context.Context, opts Options) (*Result, error) {
	ctx = events.WithLogger(ctx, s.logger)

	s.logger.WithFields(map[string]interface{}{
		"input":      opts.Input,
		"output":     opts.Output,
		"entries":    s.formatter.Entries(),
		"self_check": opts.SelfCheck,
	}).Debug("Formatting vectors")

	formatted, err := s.formatter.FormatFile(ctx, opts.Input, opts.Output)
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", opts.Input, err)
	}

	result := &Result{Format: formatted}
	if !opts.SelfCheck {
		return result, nil
	}

	exists, err := s.store.Exists(opts.Reference)
	if err != nil {
		return result, fmt.Errorf("self check: %w",
			&models.FileAccessError{Op: "stat", Path: opts.Reference, Err: err})
	}
	if !exists {
		s.logger.WithField("reference", opts.Reference).Warn("Reference missing, self check skipped")
		return result, fmt.Errorf("self check: %w: %w", ErrNoReference,
			&models.FileAccessError{Op: "open", Path: opts.Reference, Err: os.ErrNotExist})
	}

	report, err := s.comparator.CompareFiles(ctx, opts.Output, opts.Reference)
	if err != nil {
		return result, fmt.Errorf("self check: %w", err)
	}
	result.Check = report

	return result, nil
}

// Check compares output against reference.
func (s *Service) Check(ctx context.Context, output, reference string) (*compare.Report, error) {
	ctx = events.WithLogger(ctx, s.logger)

	report, err := s.comparator.CompareFiles(ctx, output, reference)
	if err != nil {
		return nil, fmt.Errorf("check: %w", err)
	}
	return report, nil
}
