// Package source reads program and state files from a jailed directory.
package source

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrPathEscape   = errors.New("source: path escape violation")
	ErrFileTooLarge = errors.New("source: file size limit exceeded")
)

// Sandbox confines reads to Root and caps them at MaxBytes.
type Sandbox struct {
	Root     string
	MaxBytes int64

	// realRoot is Root with symlinks evaluated; empty when Root did not
	// exist at construction.
	realRoot string
}

func NewSandbox(root string, maxBytes int64) (*Sandbox, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(err, "source: resolving root %q", root)
	}
	s := &Sandbox{
		Root:     absRoot,
		MaxBytes: maxBytes,
	}
	if real, err := filepath.EvalSymlinks(absRoot); err == nil {
		s.realRoot = real
	}
	return s, nil
}

// Resolve maps path to an absolute path inside Root. Relative paths are
// taken from Root; absolute ones must already lie beneath it. Symlinks
// are followed and their targets must lie beneath Root as well.
func (s *Sandbox) Resolve(path string) (string, error) {
	var clean string
	if filepath.IsAbs(path) {
		clean = filepath.Clean(path)
	} else {
		clean = filepath.Join(s.Root, path)
	}

	if !within(clean, s.Root) {
		return "", errors.Wrapf(ErrPathEscape, "%q is outside %s", path, s.Root)
	}

	real, err := filepath.EvalSymlinks(clean)
	if err != nil {
		// Missing files surface as not-exist errors on open.
		return clean, nil
	}
	root := s.realRoot
	if root == "" {
		root = s.Root
	}
	if !within(real, root) {
		return "", errors.Wrapf(ErrPathEscape, "%q links to %s, outside %s", path, real, s.Root)
	}
	return real, nil
}

func within(path, root string) bool {
	return path == root || strings.HasPrefix(path, root+string(filepath.Separator))
}

// ReadFile returns the contents of path.
func (s *Sandbox) ReadFile(path string) ([]byte, error) {
	clean, err := s.Resolve(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(clean)
	if err != nil {
		return nil, errors.Wrap(err, "source: opening")
	}
	defer f.Close()

	// Read one byte past the cap so an oversize file is detected without
	// trusting Stat on special files.
	data, err := io.ReadAll(io.LimitReader(f, s.MaxBytes+1))
	if err != nil {
		return nil, errors.Wrapf(err, "source: reading %s", clean)
	}
	if int64(len(data)) > s.MaxBytes {
		return nil, errors.Wrapf(ErrFileTooLarge, "%s exceeds %d bytes", clean, s.MaxBytes)
	}
	return data, nil
}
