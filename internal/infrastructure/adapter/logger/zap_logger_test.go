package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amirhossein-jamali/atm-simulator/internal/domain/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZapLogger_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atm.log")

	l, err := NewZapLogger(Options{Level: "info", Format: "json", OutputPaths: []string{path}})
	require.NoError(t, err)

	l.Debug("hidden", nil)
	l.Info("Deposit completed", map[string]any{"account": "2001", "amount": "500.00"})
	require.NoError(t, l.Flush())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "Deposit completed", entry["message"])
	assert.Equal(t, "2001", entry["account"])
	assert.Equal(t, "500.00", entry["amount"])
}

func TestZapLogger_SetLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atm.log")

	l, err := NewZapLogger(Options{Level: "error", Format: "json", OutputPaths: []string{path}})
	require.NoError(t, err)
	assert.Equal(t, core.LogLevelError, l.GetLevel())

	l.Warn("suppressed", nil)
	l.SetLevel(core.LogLevelDebug)
	assert.Equal(t, core.LogLevelDebug, l.GetLevel())
	l.Debug("visible", nil)
	require.NoError(t, l.Flush())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "suppressed")
	assert.Contains(t, string(data), "visible")
}

func TestNoopLogger(t *testing.T) {
	l := NewNoopLogger()
	l.SetLevel(core.LogLevelWarn)
	assert.Equal(t, core.LogLevelWarn, l.GetLevel())
	l.Error("ignored", map[string]any{"k": "v"})
	assert.NoError(t, l.Flush())
}
