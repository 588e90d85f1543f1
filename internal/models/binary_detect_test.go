package models_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TheMichaelB/vecfmt/internal/models"
)

func TestIsBinaryText(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		want    bool
	}{
		{"empty", nil, false},
		{"vector dump", []byte("key = 80 00\niv = 00 00\r\n\tstream[0..63] = 38 EB\n"), false},
		{"null byte", []byte("key = 00\x00"), true},
		{"control characters", []byte{0x01, 0x02, 0x03, 'a'}, true},
		{"few control characters", append(bytes.Repeat([]byte("a"), 10), 0x01), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, models.IsBinaryText(tt.content))
		})
	}
}
