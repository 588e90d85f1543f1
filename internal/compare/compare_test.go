package compare_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheMichaelB/vecfmt/internal/compare"
	"github.com/TheMichaelB/vecfmt/internal/events"
	"github.com/TheMichaelB/vecfmt/internal/models"
	"github.com/TheMichaelB/vecfmt/internal/storage"
)

func TestCompareIdentical(t *testing.T) {
	lines := []string{"0011\n", "2233\n", "4455\n"}

	report := compare.Compare(lines, append([]string(nil), lines...))

	assert.Len(t, report.Results, 3)
	assert.Equal(t, 3, report.Successes())
	assert.Empty(t, report.Mismatches())
	assert.NoError(t, report.Err)
	assert.True(t, report.OK())
}

func TestCompareMismatch(t *testing.T) {
	tests := []struct {
		name string
		k    int
	}{
		{"first line", 0},
		{"middle line", 2},
		{"last line", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := []string{"a\n", "b\n", "c\n", "d\n", "e\n"}
			reference := append([]string(nil), output...)
			reference[tt.k] = "z\n"

			report := compare.Compare(output, reference)

			require.Len(t, report.Results, 5)
			assert.Equal(t, 4, report.Successes())
			mismatches := report.Mismatches()
			require.Len(t, mismatches, 1)
			assert.Equal(t, tt.k, mismatches[0].Index)
			assert.Equal(t, output[tt.k], mismatches[0].Got)
			assert.Equal(t, "z\n", mismatches[0].Want)
			assert.False(t, report.OK())
		})
	}
}

func TestCompareLineBreakIsPartOfLine(t *testing.T) {
	report := compare.Compare([]string{"0011\n", "2233\n"}, []string{"0011\n", "2233"})

	assert.Equal(t, 1, report.Successes())
	require.Len(t, report.Mismatches(), 1)
	assert.Equal(t, 1, report.Mismatches()[0].Index)
}

func TestCompareShortReference(t *testing.T) {
	report := compare.Compare([]string{"a\n", "b\n", "c\n"}, []string{"a\n"})

	assert.Len(t, report.Results, 1)
	require.Error(t, report.Err)
	assert.ErrorIs(t, report.Err, models.ErrShortReference)

	var short *models.ShortReferenceError
	require.ErrorAs(t, report.Err, &short)
	assert.Equal(t, 1, short.Index)
	assert.Equal(t, 1, short.ReferenceLines)
	assert.False(t, report.OK())
}

func TestCompareLongerReference(t *testing.T) {
	report := compare.Compare([]string{"a\n"}, []string{"a\n", "b\n"})

	assert.Len(t, report.Results, 1)
	assert.True(t, report.OK())
}

func TestCompareEmptyOutput(t *testing.T) {
	report := compare.Compare(nil, nil)
	assert.Empty(t, report.Results)
	assert.True(t, report.OK())
}

func TestCompareFilesMemory(t *testing.T) {
	store := storage.NewMemoryStore()
	store.Put("out", "0011\n2233\n")
	store.Put("ref", "0011\n2234\n")

	report, err := compare.NewComparator(store).CompareFiles(context.Background(), "out", "ref")
	require.NoError(t, err)

	assert.Equal(t, "out", report.Output)
	assert.Equal(t, "ref", report.Reference)
	assert.Equal(t, 1, report.Successes())
	assert.Len(t, report.Mismatches(), 1)
}

func TestCompareFilesMissing(t *testing.T) {
	store := storage.NewMemoryStore()
	store.Put("out", "0011\n")

	c := compare.NewComparator(store)

	_, err := c.CompareFiles(context.Background(), "out", "missing")
	assert.ErrorIs(t, err, models.ErrFileAccess)

	_, err = c.CompareFiles(context.Background(), "missing", "out")
	assert.ErrorIs(t, err, models.ErrFileAccess)
}

func TestCompareFilesDisk(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "formatted_text_vectors.txt")
	ref := filepath.Join(dir, "similarity_check.txt")
	require.NoError(t, os.WriteFile(out, []byte("0011\n2233\n"), 0644))
	require.NoError(t, os.WriteFile(ref, []byte("0011\n2233\n"), 0644))

	logger := events.NewTestLogger(events.ErrorLevel, "text", os.Stderr)
	report, err := compare.NewComparator(storage.NewLocalStore(logger)).CompareFiles(context.Background(), out, ref)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Successes())
	assert.True(t, report.OK())
}
