package cliutil

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{FormatText, false},
		{FormatJSON, false},
		{FormatYAML, false},
		{"xml", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)
			assert.Equal(t, tt.wantErr, err != nil)
		})
	}
}

func TestWriteStructured(t *testing.T) {
	data := map[string]any{"valid": false, "parameter": "limit"}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteStructured(&buf, data, FormatJSON))
		assert.JSONEq(t, `{"valid": false, "parameter": "limit"}`, buf.String())
		assert.Contains(t, buf.String(), "\n  ")
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteStructured(&buf, data, FormatYAML))
		assert.YAMLEq(t, "valid: false\nparameter: limit\n", buf.String())
	})

	t.Run("text is not structured", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Error(t, WriteStructured(&buf, data, FormatText))
		assert.Zero(t, buf.Len())
	})
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("simulated write error")
}

func TestWritef(t *testing.T) {
	var buf bytes.Buffer
	Writef(&buf, "%s: %d violation(s)", "limit", 2)
	assert.Equal(t, "limit: 2 violation(s)", buf.String())

	assert.NotPanics(t, func() { Writef(failingWriter{}, "lost") })
}
