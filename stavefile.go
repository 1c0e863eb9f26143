//go:build stave

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
)

// Default target when running `stave` with no arguments.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]interface{}{
	"b": Build,
	"t": Test,
	"l": Lint,
	"s": Smoke,
	"c": Clean,
}

const (
	binaryName = "sift"
	mainPkg    = "./cmd/sift"
	binDir     = "bin"
)

// All runs the complete build pipeline.
func All() error {
	st.Deps(Lint, Test)
	st.Deps(Smoke)
	return nil
}

// Build compiles the sift binary.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating bin directory: %w", err)
	}
	return sh.RunV("go", "build", "-ldflags", buildLdflags(), "-o", binaryPath(), mainPkg)
}

// Test runs all tests with race detection and coverage.
func Test() error {
	return sh.RunV("go", "test", "-race", "-cover", "./...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// smokeFiles is the fixture tree analyzed by Smoke.
var smokeFiles = map[string]int{
	"a.txt":          100,
	"b.png":          2048,
	"c.unknownext":   0,
	"nested/d.go":    4096,
	"nested/e.mp4":   1 << 20,
	"nested/.hidden": 12,
}

// Smoke builds sift, analyzes a fixture tree and checks the report, the
// side report and the three charts.
func Smoke() error {
	st.Deps(Build)

	work, err := os.MkdirTemp("", "sift-smoke-")
	if err != nil {
		return fmt.Errorf("creating smoke directory: %w", err)
	}
	defer os.RemoveAll(work)

	root := filepath.Join(work, "tree")
	for name, size := range smokeFiles {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
			return err
		}
	}

	out := filepath.Join(work, "out")
	report, err := sh.Output(binaryPath(), "--out-dir", out, root)
	if err != nil {
		return fmt.Errorf("running sift: %w", err)
	}
	if st.Verbose() {
		fmt.Println(report)
	}

	want := fmt.Sprintf("Total number of files: %d", len(smokeFiles))
	if !strings.Contains(report, want) {
		return fmt.Errorf("report is missing %q", want)
	}
	for _, name := range []string{
		"other_category_analysis.txt",
		"file_size_histogram.png",
		"file_type_distribution.png",
		"file_size_cdf.png",
	} {
		info, err := os.Stat(filepath.Join(out, name))
		if err != nil {
			return fmt.Errorf("expected output %s: %w", name, err)
		}
		if info.Size() == 0 {
			return fmt.Errorf("output %s is empty", name)
		}
	}
	return nil
}

// Clean removes build artifacts.
func Clean() error {
	if st.Verbose() {
		fmt.Printf("Removing %s/\n", binDir)
	}
	return sh.Rm(binDir + "/")
}

func binaryPath() string {
	path := filepath.Join(binDir, binaryName)
	if runtime.GOOS == "windows" {
		path += ".exe"
	}
	return path
}

// buildLdflags returns ldflags for version injection.
func buildLdflags() string {
	version := "dev"
	commit := "unknown"
	date := time.Now().Format(time.RFC3339)

	if v, err := sh.Output("git", "describe", "--tags", "--always"); err == nil && v != "" {
		version = strings.TrimSpace(v)
	}

	if c, err := sh.Output("git", "rev-parse", "--short", "HEAD"); err == nil && c != "" {
		commit = strings.TrimSpace(c)
	}

	pkg := "main"
	return fmt.Sprintf(
		"-X %s.version=%s -X %s.commit=%s -X %s.date=%s",
		pkg, version, pkg, commit, pkg, date,
	)
}
