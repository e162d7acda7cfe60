package logging

import (
	"bytes"
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/itiky/game-console/config"
)

func Test_New(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := New(buf, "warn", "json")

	before := Counters()
	logger.Info("hidden")
	logger.Warn("shown", "op", "list_users")

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "shown", rec["msg"])
	require.Equal(t, "list_users", rec["op"])

	after := Counters()
	require.Equal(t, before["warn"]+1, after["warn"])
	require.Equal(t, before["info"], after["info"])
}

func Test_ParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelError, ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func Test_Setup_File(t *testing.T) {
	defaultLogger := slog.Default()
	defer func() {
		slog.SetDefault(defaultLogger)
		log.SetOutput(os.Stderr)
	}()

	filePath := filepath.Join(t.TempDir(), "console.log")
	logger := Setup(config.LogConfig{Level: "info", Format: "text", File: filePath, MaxSize: 1})
	logger.Info("console started", "listen", ":7351")
	log.Println("std bridge")

	data, err := os.ReadFile(filePath)
	require.NoError(t, err)
	require.Contains(t, string(data), "console started")
	require.Contains(t, string(data), "std bridge")
}
