package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"shootdesk/internal/services"
)

// Storage receives delivery payloads keyed by relative path and reports
// where each one landed. Remote backends (gallery upload, object storage)
// implement this interface outside this module.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader) (string, error)
}

// LocalDirectory stores payloads as files under a root directory.
type LocalDirectory struct {
	root      string
	overwrite bool
}

// NewLocalDirectory creates a directory-backed storage rooted at root.
func NewLocalDirectory(root string, overwrite bool) *LocalDirectory {
	return &LocalDirectory{root: root, overwrite: overwrite}
}

// Put writes the payload to <root>/<key>, creating parent directories as
// needed. An existing file is a conflict unless overwriting is enabled.
func (l *LocalDirectory) Put(ctx context.Context, key string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key = strings.TrimSpace(key)
	if key == "" || strings.Contains(key, "..") || filepath.IsAbs(key) {
		return "", services.Wrap(services.ErrValidation, "export", "store payload",
			fmt.Sprintf("storage key %q must be a relative path without traversal", key), nil)
	}

	target := filepath.Join(l.root, filepath.FromSlash(key))
	if !l.overwrite {
		if _, err := os.Stat(target); err == nil {
			return "", services.Wrap(services.ErrConflict, "export", "store payload",
				fmt.Sprintf("%s already exists", target), nil)
		}
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".shootdesk-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("write payload %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("close payload %s: %w", key, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("finalize payload %s: %w", key, err)
	}
	return target, nil
}
