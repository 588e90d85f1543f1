package vectors

import (
	"context"
	"os"
	"strings"

	"github.com/TheMichaelB/vecfmt/internal/events"
	"github.com/TheMichaelB/vecfmt/internal/models"
	"github.com/TheMichaelB/vecfmt/internal/storage"
)

// DefaultEntries is the number of raw lines in one record group.
const DefaultEntries = 4

// Formatter groups raw lines into records and writes them out.
type Formatter struct {
	store   storage.LineStore
	entries int
	mode    os.FileMode
	echo    func(models.Record)
}

// FormatResult summarizes a FormatFile run.
type FormatResult struct {
	Input   string              `json:"input"`
	Output  string              `json:"output"`
	Records []models.Record     `json:"records"`
	Write   storage.WriteResult `json:"write"`
}

// NewFormatter creates a formatter. entries <= 0 selects DefaultEntries.
func NewFormatter(store storage.LineStore, entries int) *Formatter {
	if entries <= 0 {
		entries = DefaultEntries
	}
	return &Formatter{
		store:   store,
		entries: entries,
		mode:    0644,
	}
}

// Entries returns the record group size.
func (f *Formatter) Entries() int {
	return f.entries
}

// SetEcho installs a hook called with every record after it is written.
func (f *Formatter) SetEcho(fn func(models.Record)) {
	f.echo = fn
}

// Format validates the line count and normalizes every record group.
func (f *Formatter) Format(lines []string) ([]models.Record, error) {
	if len(lines)%f.entries != 0 {
		return nil, &models.RecordCountError{Lines: len(lines), Entries: f.entries}
	}

	records := make([]models.Record, 0, len(lines)/f.entries)
	for start := 0; start < len(lines); start += f.entries {
		end := start + f.entries
		records = append(records, models.Record{
			Index: len(records),
			Start: start,
			End:   end,
			Value: NormalizeRecord(lines[start:end]),
		})
	}

	return records, nil
}

// FormatFile reads input, formats it and replaces output with one record
// per line. A record count error truncates output to zero lines; a read or
// write error leaves it untouched.
func (f *Formatter) FormatFile(ctx context.Context, input, output string) (*FormatResult, error) {
	logger := events.FromContext(ctx).WithFields(map[string]interface{}{
		"input":  input,
		"output": output,
	})

	lines, err := f.store.ReadLines(input)
	if err != nil {
		logger.WithError(err).Error("Cannot read input")
		return nil, err
	}

	for i, line := range lines {
		if strings.ContainsRune(line, '=') && !strings.Contains(line, Separator) {
			logger.WithField("line", i+1).Warn("Field line has '=' without \" = \", dropping it")
		}
	}

	records, err := f.Format(lines)
	if err != nil {
		logger.WithError(err).Error("Cannot group input lines")
		if _, werr := f.store.WriteLines(output, nil, f.mode); werr != nil {
			logger.WithError(werr).Error("Cannot truncate output")
		}
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Line()
	}

	written, err := f.store.WriteLines(output, out, f.mode)
	if err != nil {
		logger.WithError(err).Error("Cannot write output")
		return nil, err
	}

	if f.echo != nil {
		for _, r := range records {
			f.echo(r)
		}
	}

	logger.WithFields(map[string]interface{}{
		"records": len(records),
		"digest":  written.Digest,
	}).Info("Formatted test vectors")

	return &FormatResult{
		Input:   input,
		Output:  output,
		Records: records,
		Write:   written,
	}, nil
}
