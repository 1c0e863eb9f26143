package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/charlievieth/fastwalk"

	"github.com/jamesainslie/sift/pkg/sift/analysis"
	"github.com/jamesainslie/sift/pkg/sift/logging"
	"github.com/jamesainslie/sift/pkg/sift/types"
)

var logger = logging.Get("scanner")

// Sentinel errors for root validation.
var (
	// ErrRootNotFound indicates the scan root does not exist.
	ErrRootNotFound = errors.New("path does not exist")

	// ErrNotDirectory indicates the scan root is not a directory.
	ErrNotDirectory = errors.New("path is not a directory")
)

// progressInterval throttles OnProgress callbacks.
const progressInterval = 50 * time.Millisecond

// Scanner walks a directory tree and records every file it finds.
type Scanner struct {
	opts Options

	root  string
	state *analysis.State

	dirsScanned  int64
	dirsSkipped  int64
	currentPath  string
	lastProgress time.Time
}

// New creates a new Scanner with the given options.
func New(opts Options) *Scanner {
	_ = opts.Validate()
	return &Scanner{opts: opts}
}

// Scan walks the root and returns the frozen summary of everything found.
// It blocks until the walk completes or ctx is cancelled.
func (s *Scanner) Scan(ctx context.Context) (*analysis.Summary, error) {
	root, err := ValidateRoot(s.opts.Root)
	if err != nil {
		return nil, err
	}
	s.root = root
	s.state = analysis.NewState(root)
	s.currentPath = root

	logger.Info("scan started", "root", root, "run", s.state.RunID())
	s.reportProgressForce()

	conf := fastwalk.Config{
		Follow:     false,
		NumWorkers: 1,
	}

	walkErr := fastwalk.Walk(&conf, root, s.walkCallback(ctx))
	if walkErr != nil {
		if errors.Is(walkErr, context.Canceled) || errors.Is(walkErr, context.DeadlineExceeded) {
			return nil, fmt.Errorf("scan cancelled: %w", walkErr)
		}
		return nil, fmt.Errorf("scanning %s: %w", root, walkErr)
	}

	s.reportProgressForce()
	summary := s.state.Summary()
	logger.Info("scan finished",
		"files", summary.TotalFiles,
		"bytes", summary.TotalBytes,
		"dirs", s.dirsScanned,
		"skipped_files", summary.Skipped,
		"skipped_dirs", s.dirsSkipped,
		"elapsed", summary.Elapsed,
	)
	return summary, nil
}

// ValidateRoot resolves root to an absolute path and verifies it is an
// existing directory.
func ValidateRoot(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving path %s: %w", root, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrRootNotFound, abs)
		}
		return "", fmt.Errorf("checking path %s: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, abs)
	}
	return abs, nil
}

func (s *Scanner) walkCallback(ctx context.Context) fs.WalkDirFunc {
	return func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			return s.handleWalkError(path, d, err)
		}

		switch {
		case d.IsDir():
			s.dirsScanned++
			s.currentPath = path
			s.reportProgress()
			return nil
		case d.Type().IsRegular():
			return s.processFile(path, d.Info)
		case d.Type()&fs.ModeSymlink != 0:
			return s.processSymlink(path)
		default:
			// devices, sockets and pipes are not files for our purposes
			return nil
		}
	}
}

// handleWalkError decides how a traversal error affects the walk. The
// walker reports a failed directory listing after visiting the directory,
// so returning nil drops just that subtree. A failure on the root is fatal.
func (s *Scanner) handleWalkError(path string, d fs.DirEntry, err error) error {
	if path == s.root {
		return err
	}
	isDir := d != nil && d.IsDir()
	if isDir || isSkippable(err) {
		s.dirsSkipped++
		logger.Debug("skipping unreadable entry", "path", path, "error", err)
		return nil
	}
	return err
}

// processSymlink counts a link to a regular file as that file. Links to
// directories are not descended; dangling links are treated as vanished.
func (s *Scanner) processSymlink(path string) error {
	return s.processFile(path, func() (fs.FileInfo, error) {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.Mode().IsRegular() {
			return nil, errNotRegular
		}
		return info, nil
	})
}

var errNotRegular = errors.New("not a regular file")

func (s *Scanner) processFile(path string, stat func() (fs.FileInfo, error)) error {
	info, err := stat()
	if err != nil {
		if errors.Is(err, errNotRegular) {
			return nil
		}
		if isSkippable(err) {
			s.state.Skip()
			logger.Debug("skipping file", "path", path, "error", err)
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}

	s.state.Record(info.Size(), types.SplitExt(path))
	s.reportProgress()
	return nil
}

// isSkippable reports whether err means the entry vanished or cannot be read.
func isSkippable(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission)
}

func (s *Scanner) reportProgress() {
	if s.opts.OnProgress == nil {
		return
	}
	now := time.Now()
	if now.Sub(s.lastProgress) < progressInterval {
		return
	}
	s.lastProgress = now
	s.sendProgress()
}

func (s *Scanner) reportProgressForce() {
	if s.opts.OnProgress == nil {
		return
	}
	s.lastProgress = time.Now()
	s.sendProgress()
}

func (s *Scanner) sendProgress() {
	s.opts.OnProgress(types.ScanProgress{
		DirsScanned:  s.dirsScanned,
		FilesScanned: int64(s.state.Files()),
		BytesScanned: s.state.Bytes(),
		CurrentPath:  s.currentPath,
	})
}
