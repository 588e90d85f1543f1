package models

import (
	"bytes"
)

// IsBinaryText reports whether content looks like binary data rather than
// copy-pasted text: a NUL byte or more than 30% control characters in the
// first 8KB.
func IsBinaryText(content []byte) bool {
	if len(content) == 0 {
		return false
	}

	checkLen := len(content)
	if checkLen > 8192 {
		checkLen = 8192
	}

	if bytes.IndexByte(content[:checkLen], 0) != -1 {
		return true
	}

	nonPrintable := 0
	for i := 0; i < checkLen; i++ {
		b := content[i]
		if b < 32 && b != '\t' && b != '\n' && b != '\r' {
			nonPrintable++
		}
	}

	return float64(nonPrintable)/float64(checkLen) > 0.3
}
