package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/maxatome/go-testdeep/td"
)

func TestSetupLoggerJSON(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger, closeLog, err := SetupLogger(LogConfig{
		Level:   "info",
		Format:  "json",
		Outputs: []string{"stdout"},
	}, &stdout, &stderr)
	td.CmpNoError(t, err)
	defer closeLog()

	logger.Debug("hidden")
	logger.Info("shown")
	td.CmpNoError(t, logger.Sync())

	td.Cmp(t, stderr.Len(), 0)
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	td.CmpLen(t, lines, 1)

	var entry map[string]any
	td.CmpNoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	td.Cmp(t, entry, td.SuperMapOf(map[string]any{
		"level": "info",
		"msg":   "shown",
	}, nil))
}

func TestSetupLoggerOutputs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "multienc.log")

	var stdout, stderr bytes.Buffer
	logger, closeLog, err := SetupLogger(LogConfig{
		Level:      "debug",
		Format:     "console",
		Outputs:    []string{"stderr", path},
		MaxSizeMB:  1,
		MaxBackups: 2,
	}, &stdout, &stderr)
	td.CmpNoError(t, err)

	logger.Debug("to both")
	logger.Info("twice")
	td.CmpNoError(t, closeLog())

	td.Cmp(t, stdout.Len(), 0)
	td.Cmp(t, stderr.String(), td.Contains("to both"))

	b, err := os.ReadFile(path)
	td.CmpNoError(t, err, "the file sink creates its directory")
	td.Cmp(t, string(b), td.Contains("to both"))
	td.Cmp(t, strings.Count(string(b), "\n"), 2)
}

func TestSetupLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "multienc.log")
	c := LogConfig{Level: "info", Format: "json", Outputs: []string{path}}

	for _, msg := range []string{"first", "second"} {
		logger, closeLog, err := SetupLogger(c, nil, nil)
		td.CmpNoError(t, err)
		logger.Info(msg)
		td.CmpNoError(t, closeLog())
	}

	b, err := os.ReadFile(path)
	td.CmpNoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	td.CmpLen(t, lines, 2)
	td.Cmp(t, lines[0], td.Contains(`"msg":"first"`))
	td.Cmp(t, lines[1], td.Contains(`"msg":"second"`))
}

func TestFileSink(t *testing.T) {
	sink := fileSink("x/y.log", LogConfig{MaxSizeMB: 5, MaxBackups: 2})
	td.Cmp(t, sink.Filename, "x/y.log")
	td.Cmp(t, sink.MaxSize, 5)
	td.Cmp(t, sink.MaxBackups, 2)

	td.Cmp(t, fileSink("x/y.log", LogConfig{}).MaxSize, 1, "a zero size is raised to one megabyte")
}

func TestSetupLoggerErrors(t *testing.T) {
	_, _, err := SetupLogger(LogConfig{Level: "loud"}, nil, nil)
	td.CmpError(t, err)
}
