// Package file provides a medium that keeps one file per key inside a
// directory. Writes go through a temporary file and a rename so a reader
// never observes a half-written value.
package file

import (
	"context"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/agentstation/storefront/pkg/constants"
	"github.com/agentstation/storefront/pkg/errors"
)

const extension = ".json"

// Medium stores values under a root directory.
type Medium struct {
	mu  sync.Mutex
	dir string
}

// New creates dir if needed and returns a medium rooted there.
func New(dir string) (*Medium, error) {
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", dir, err)
	}
	return &Medium{dir: dir}, nil
}

// Dir returns the root directory.
func (m *Medium) Dir() string {
	return m.dir
}

// path maps a key onto a file name that is safe on every platform.
func (m *Medium) path(key string) string {
	return filepath.Join(m.dir, url.QueryEscape(key)+extension)
}

// Get implements storage.Reader.
func (m *Medium) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(m.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.WrapIO("read", key, err)
	}
	return string(data), true, nil
}

// Set implements storage.Writer.
func (m *Medium) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tmp, err := os.CreateTemp(m.dir, ".tmp-*")
	if err != nil {
		return errors.WrapIO("create", m.dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // already renamed on success

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close() //nolint:errcheck,gosec // write error takes precedence
		return errors.WrapIO("write", key, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapIO("close", key, err)
	}
	if err := os.Chmod(tmpName, constants.FilePermissions); err != nil {
		return errors.WrapIO("chmod", key, err)
	}
	if err := os.Rename(tmpName, m.path(key)); err != nil {
		return errors.WrapIO("rename", key, err)
	}
	return nil
}

// Delete implements storage.Writer.
func (m *Medium) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	err := os.Remove(m.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.WrapIO("delete", key, err)
	}
	return nil
}

// Close implements storage.Medium.
func (m *Medium) Close() error {
	return nil
}
