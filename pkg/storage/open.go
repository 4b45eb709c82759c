package storage

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/storefront/pkg/errors"
	"github.com/agentstation/storefront/pkg/storage/file"
	"github.com/agentstation/storefront/pkg/storage/memory"
	"github.com/agentstation/storefront/pkg/storage/redis"
	"github.com/agentstation/storefront/pkg/storage/sqlite"
)

// Compile-time checks that every medium satisfies the interfaces.
var (
	_ Medium = (*memory.Medium)(nil)
	_ Medium = (*file.Medium)(nil)
	_ Medium = (*redis.Medium)(nil)
	_ Medium = (*sqlite.Medium)(nil)

	_ Pinger = (*redis.Medium)(nil)
	_ Pinger = (*sqlite.Medium)(nil)
)

// Supported URL schemes.
const (
	SchemeMemory = "memory"
	SchemeFile   = "file"
	SchemeRedis  = "redis"
	SchemeRediss = "rediss"
	SchemeSQLite = "sqlite"
)

// Open creates a medium from a URL:
//
//	memory://
//	file:///var/lib/storefront
//	redis://localhost:6379/0
//	sqlite:///var/lib/storefront/store.db
//
// A bare path without a scheme opens a file medium.
func Open(ctx context.Context, rawURL string) (Medium, error) {
	if strings.TrimSpace(rawURL) == "" {
		return memory.New(), nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.NewConfigError("storage", fmt.Sprintf("invalid storage URL %q", rawURL), err)
	}

	switch u.Scheme {
	case SchemeMemory:
		return memory.New(), nil
	case "", SchemeFile:
		dir, err := localPath(u)
		if err != nil {
			return nil, err
		}
		return file.New(dir)
	case SchemeRedis, SchemeRediss:
		return redis.Open(ctx, rawURL)
	case SchemeSQLite:
		path, err := localPath(u)
		if err != nil {
			return nil, err
		}
		return sqlite.Open(ctx, path)
	default:
		return nil, errors.NewConfigError("storage", fmt.Sprintf("unsupported storage scheme %q", u.Scheme), nil)
	}
}

// localPath resolves the filesystem path of a file: or sqlite: URL and
// expands a leading ~.
func localPath(u *url.URL) (string, error) {
	path := u.Path
	if u.Host != "" && u.Host != "localhost" {
		// sqlite://relative/dir.db parses "relative" as the host
		path = filepath.Join(u.Host, u.Path)
	}
	if u.Opaque != "" {
		path = u.Opaque
	}
	if path == "" {
		return "", errors.NewConfigError("storage", fmt.Sprintf("storage URL %q has no path", u.String()), nil)
	}
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.NewConfigError("storage", "cannot resolve home directory", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path, nil
}
