package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/sift/pkg/sift/config"
)

func TestConfigPathCmd(t *testing.T) {
	ta := newTestApp(t)

	require.NoError(t, ta.execute("config", "path"))
	assert.Equal(t, config.ConfigPath()+"\n", ta.out.String())
}

func TestConfigPathCmd_ExplicitFile(t *testing.T) {
	ta := newTestApp(t)

	require.NoError(t, ta.execute("config", "path", "--config", "/etc/sift.yaml"))
	assert.Equal(t, "/etc/sift.yaml\n", ta.out.String())
}

func TestConfigInitCmd(t *testing.T) {
	ta := newTestApp(t)

	require.NoError(t, ta.execute("config", "init"))
	assert.Equal(t, "Created default config file: "+config.ConfigPath()+"\n", ta.out.String())
	assert.FileExists(t, config.ConfigPath())

	ta.out.Reset()
	require.NoError(t, ta.execute("config", "init"))
	assert.Equal(t, "Config file already exists: "+config.ConfigPath()+"\n", ta.out.String())
}

func TestConfigShowCmd_Defaults(t *testing.T) {
	ta := newTestApp(t)

	require.NoError(t, ta.execute("config", "show"))

	got := ta.out.String()
	assert.Contains(t, got, "Config file: (using defaults, no file found)")
	assert.Contains(t, got, "output:               plain\n")
	assert.Contains(t, got, "charts.bins:          50\n")
	assert.Contains(t, got, "charts.enabled:       true\n")
	assert.Contains(t, got, "logging.path:         (disabled, e.g. ")
}

func TestConfigShowCmd_FromFile(t *testing.T) {
	ta := newTestApp(t)
	path := filepath.Join(t.TempDir(), "sift.yaml")
	content := "output: yaml\nlogging:\n  components:\n    scanner: debug\n    chart: error\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	require.NoError(t, ta.execute("config", "show", "--config", path, "--no-charts"))

	got := ta.out.String()
	assert.Contains(t, got, "Config file: "+path)
	assert.Contains(t, got, "output:               yaml\n")
	assert.Contains(t, got, "charts.enabled:       false\n")
	assert.Less(t,
		strings.Index(got, "logging.components.chart: error"),
		strings.Index(got, "logging.components.scanner: debug"),
	)
}
