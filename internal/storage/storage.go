package storage

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/moodcast/internal/storage/postgres"
	"github.com/julianstephens/moodcast/internal/storage/sqlite"
)

// Open picks a backend for a --config value: PostgreSQL for a connection
// string, SQLite for anything else. Connection strings given this way must
// not embed a password.
func Open(config string) (Provider, error) {
	if postgres.IsConnString(config) {
		if HasEmbeddedCredentials(config) {
			return nil, postgres.ErrEmbeddedCredentials
		}
		return postgres.New(config), nil
	}
	path, err := ExpandPath(config)
	if err != nil {
		return nil, err
	}
	return sqlite.NewStore(path), nil
}

// OpenTrusted opens a PostgreSQL connection string read from the keyring or
// the environment, where embedded credentials are allowed.
func OpenTrusted(connStr string) Provider {
	return postgres.New(connStr)
}

// IsPostgres reports whether p is backed by PostgreSQL.
func IsPostgres(p Provider) bool {
	_, ok := p.(*postgres.Store)
	return ok
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string
// carries a password.
func HasEmbeddedCredentials(connStr string) bool {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			return false
		}
		_, set := u.User.Password()
		return set
	}
	for _, part := range strings.Fields(connStr) {
		key, _, ok := strings.Cut(part, "=")
		if ok && strings.EqualFold(strings.TrimSpace(key), "password") {
			return true
		}
	}
	return false
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
