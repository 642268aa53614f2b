package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/streakline/internal/constants"
	"github.com/julianstephens/streakline/internal/keyring"
	"github.com/julianstephens/streakline/internal/storage"
	"github.com/julianstephens/streakline/internal/storage/postgres"
	"github.com/julianstephens/streakline/internal/storage/sqlite"
)

// OpenStore picks a storage backend for target, which is a SQLite path,
// a PostgreSQL connection string, or "keyring".
//
// Connection strings given directly must not carry a password. The keyring
// copy may, since it never shows up in shell history or process listings.
func OpenStore(target string) (storage.Provider, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		target = constants.DefaultConfigPath
	}

	if target == constants.KeyringConfigValue {
		connStr, err := keyring.New().ConnectionString()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, fmt.Errorf("no connection string in keyring, run '%s keyring set' first: %w", constants.AppName, err)
			}
			return nil, err
		}
		return postgres.New(connStr), nil
	}

	if keyring.IsPostgres(target) {
		if _, err := postgres.ValidateConnString(target); err != nil {
			return nil, err
		}
		return postgres.New(target), nil
	}

	path, err := ExpandHome(target)
	if err != nil {
		return nil, err
	}
	return sqlite.NewStore(path), nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
