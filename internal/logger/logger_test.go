package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type logEntry map[string]any

func jsonOutput() *bool {
	v := false
	return &v
}

func TestLoggerInfoWithFields(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", HumanReadable: jsonOutput(), Writer: buf})
	require.NoError(t, err)

	log = log.WithFields(map[string]any{"pages": 16, "source": "wheel"})
	log.Info("book opened")

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "book opened", entry["message"])
	require.Equal(t, float64(16), entry["pages"])
	require.Equal(t, "wheel", entry["source"])
	require.Equal(t, "info", entry["level"])
}

func TestLoggerDebugRespectsLevel(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", HumanReadable: jsonOutput(), Writer: buf})
	require.NoError(t, err)

	log.Debug("this should not appear")
	require.Equal(t, "", strings.TrimSpace(buf.String()))
}

func TestLoggerErrorIncludesContext(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "debug", HumanReadable: jsonOutput(), Writer: buf})
	require.NoError(t, err)

	log.Error(errors.New("bookmark unreadable"), "restore failed")

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "restore failed", entry["message"])
	require.Equal(t, "bookmark unreadable", entry["error"])
	require.Equal(t, "error", entry["level"])
}

func TestLoggerRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Level: "loud", Writer: &bytes.Buffer{}})
	require.Error(t, err)
}

func TestZerologPassesThrough(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "debug", HumanReadable: jsonOutput(), Writer: buf})
	require.NoError(t, err)

	zl := log.Zerolog()
	zl.Debug().Str("component", "flipbook").Msg("settled")

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "flipbook", entry["component"])
}

func TestNilLoggerIsSafe(t *testing.T) {
	t.Parallel()

	var log *Logger
	require.NotPanics(t, func() {
		log.Info("ignored")
		log.Error(errors.New("x"), "ignored")
		_ = log.Zerolog()
	})
	require.False(t, IsTerminal(&bytes.Buffer{}))
}
