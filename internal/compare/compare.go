// Package compare checks formatted vectors against a hand-edited reference.
package compare

import (
	"context"

	"github.com/TheMichaelB/vecfmt/internal/events"
	"github.com/TheMichaelB/vecfmt/internal/models"
	"github.com/TheMichaelB/vecfmt/internal/storage"
)

// Report holds per-line results. Err is a *models.ShortReferenceError when
// the reference ran out of lines; comparison stops there.
type Report struct {
	Output    string              `json:"output,omitempty"`
	Reference string              `json:"reference,omitempty"`
	Results   []models.LineResult `json:"results"`
	Err       error               `json:"-"`
}

// Successes counts equal lines.
func (r *Report) Successes() int {
	n := 0
	for _, res := range r.Results {
		if res.Equal {
			n++
		}
	}
	return n
}

// Mismatches returns the lines that differ.
func (r *Report) Mismatches() []models.LineResult {
	var out []models.LineResult
	for _, res := range r.Results {
		if !res.Equal {
			out = append(out, res)
		}
	}
	return out
}

// OK reports whether every output line matched.
func (r *Report) OK() bool {
	return r.Err == nil && len(r.Mismatches()) == 0
}

// Compare checks output against reference line by line, for every output
// line. Lines compare with their terminators.
func Compare(output, reference []string) *Report {
	report := &Report{Results: make([]models.LineResult, 0, len(output))}

	for i, got := range output {
		if i >= len(reference) {
			report.Err = &models.ShortReferenceError{Index: i, ReferenceLines: len(reference)}
			break
		}

		want := reference[i]
		res := models.LineResult{Index: i, Equal: got == want}
		if !res.Equal {
			res.Got = got
			res.Want = want
		}
		report.Results = append(report.Results, res)
	}

	return report
}

// Comparator compares files from a line store.
type Comparator struct {
	store storage.LineStore
}

// NewComparator creates a comparator.
func NewComparator(store storage.LineStore) *Comparator {
	return &Comparator{store: store}
}

// CompareFiles reads both files and compares them. A missing or unreadable
// file is returned as an error and no report is produced.
func (c *Comparator) CompareFiles(ctx context.Context, output, reference string) (*Report, error) {
	logger := events.FromContext(ctx).WithFields(map[string]interface{}{
		"output":    output,
		"reference": reference,
	})

	outLines, err := c.store.ReadLines(output)
	if err != nil {
		logger.WithError(err).Error("Cannot read output")
		return nil, err
	}

	refLines, err := c.store.ReadLines(reference)
	if err != nil {
		logger.WithError(err).Error("Cannot read reference")
		return nil, err
	}

	report := Compare(outLines, refLines)
	report.Output = output
	report.Reference = reference

	entry := logger.WithFields(map[string]interface{}{
		"lines":      len(report.Results),
		"successes":  report.Successes(),
		"mismatches": len(report.Mismatches()),
	})
	if report.Err != nil {
		entry.WithError(report.Err).Warn("Reference shorter than output")
	} else {
		entry.Info("Compared files")
	}

	return report, nil
}
