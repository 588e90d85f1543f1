package storage

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// LineStore reads and writes line oriented text files.
type LineStore interface {
	// ReadLines returns every line with its terminator kept.
	ReadLines(path string) ([]string, error)

	// WriteLines replaces the file at path with lines, all or nothing.
	WriteLines(path string, lines []string, mode os.FileMode) (WriteResult, error)

	// Exists checks if a file exists.
	Exists(path string) (bool, error)
}

// WriteResult describes a completed write.
type WriteResult struct {
	Path   string `json:"path"`
	Lines  int    `json:"lines"`
	Size   int64  `json:"size"`
	Digest string `json:"digest"` // hex BLAKE2b-256 of the written bytes
}

// SplitLines splits text after every '\n'. A final line without a
// terminator is kept as is, so joining the result restores the input.
func SplitLines(text string) []string {
	var lines []string
	for text != "" {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			lines = append(lines, text)
			break
		}
		lines = append(lines, text[:i+1])
		text = text[i+1:]
	}
	return lines
}

// Digest returns the hex BLAKE2b-256 sum of data.
func Digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// decodeText drops a leading byte order mark and converts UTF-16 to UTF-8.
// Copy-pasted vector dumps from Windows editors often carry one.
func decodeText(data []byte) (string, error) {
	decoder := unicode.BOMOverride(encoding.Nop.NewDecoder())
	out, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", fmt.Errorf("decode text: %w", err)
	}
	return string(out), nil
}
