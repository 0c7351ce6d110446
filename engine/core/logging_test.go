package core

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"", DebugLevel},
		{"debug", DebugLevel},
		{"INFO", InfoLevel},
		{" warn ", WarnLevel},
		{"warning", WarnLevel},
		{"error", ErrorLevel},
	}
	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLogLevel("verbose")
	require.Error(t, err)
}

func TestLogKeepsErrorTextVerbatim(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	SetLogLevel(DebugLevel)
	t.Cleanup(func() {
		SetLogOutput(nil)
	})

	tests := []struct {
		name string
		log  func(string, ...interface{})
		err  error
	}{
		{"error", LogError, errors.New("vertex data is 100% full")},
		{"warn", LogWarn, errors.New("field %d of %s")},
		{"info", LogInfo, errors.New("50%x done")},
	}
	for _, tt := range tests {
		buf.Reset()
		tt.log("%s", tt.err)
		require.Contains(t, buf.String(), tt.err.Error(), tt.name)
		require.NotContains(t, buf.String(), "%!", tt.name)
	}
}
