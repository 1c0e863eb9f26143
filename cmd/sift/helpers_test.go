package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/sift/pkg/sift/analysis"
	"github.com/jamesainslie/sift/pkg/sift/chart"
	"github.com/jamesainslie/sift/pkg/sift/config"
)

// stubRenderer writes a short marker instead of an image.
type stubRenderer struct {
	calls []chart.Kind
}

func (s *stubRenderer) Histogram(w io.Writer, _ analysis.Histogram) error {
	return s.write(w, chart.KindHistogram)
}

func (s *stubRenderer) TypeDistribution(w io.Writer, _ analysis.PieData) error {
	return s.write(w, chart.KindTypeDistribution)
}

func (s *stubRenderer) CDF(w io.Writer, _ analysis.CDF) error {
	return s.write(w, chart.KindCDF)
}

func (s *stubRenderer) write(w io.Writer, k chart.Kind) error {
	s.calls = append(s.calls, k)
	_, err := io.WriteString(w, k.String())
	return err
}

// writeTree creates files relative to root with the given sizes.
func writeTree(t *testing.T, root string, files map[string]int) {
	t.Helper()
	for name, size := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), size), 0o644))
	}
}

// fixtureTree is the three file tree used across the cli tests.
func fixtureTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeTree(t, root, map[string]int{
		"a.txt":        100,
		"b.png":        2048,
		"c.unknownext": 0,
	})
	return root
}

type testApp struct {
	*app
	out      *bytes.Buffer
	errOut   *bytes.Buffer
	renderer *stubRenderer
}

// newTestApp returns an app wired to buffers, a stub renderer and an
// isolated config directory. Prompting is disabled.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	ta := &testApp{
		out:      &bytes.Buffer{},
		errOut:   &bytes.Buffer{},
		renderer: &stubRenderer{},
	}
	ta.app = &app{
		v:           viper.New(),
		stdin:       strings.NewReader(""),
		stdout:      ta.out,
		stderr:      ta.errOut,
		interactive: func() bool { return false },
		renderer:    func(*config.Config) chart.Renderer { return ta.renderer },
	}
	return ta
}

func (ta *testApp) execute(args ...string) error {
	cmd := newRootCmd(ta.app)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
