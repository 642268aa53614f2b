// Package keyring keeps the PostgreSQL connection string in the OS keyring so
// that passwords never appear on the command line or in config files.
package keyring

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/streakline/internal/constants"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
	// ErrNotPostgres is returned when storing something that is not a PostgreSQL connection string.
	ErrNotPostgres = errors.New("keyring only stores PostgreSQL connection strings")
)

// Vault reads and writes one secret under a keyring service/user pair.
type Vault struct {
	service string
	user    string
}

// New returns the vault used by the CLI.
func New() *Vault {
	return &Vault{service: constants.AppName, user: constants.DefaultKeyringUser}
}

// ConnectionString returns the stored connection string or ErrNotFound.
func (v *Vault) ConnectionString() (string, error) {
	connStr, err := keyring.Get(v.service, v.user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

// SetConnectionString stores a PostgreSQL URL or key=value DSN. Unlike --db,
// the stored value may include a password.
func (v *Vault) SetConnectionString(connStr string) error {
	connStr = strings.TrimSpace(connStr)
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	if !IsPostgres(connStr) {
		return ErrNotPostgres
	}
	if err := keyring.Set(v.service, v.user, connStr); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// DeleteConnectionString removes the database connection string from the OS keyring.
func (v *Vault) DeleteConnectionString() error {
	err := keyring.Delete(v.service, v.user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// Available is a best-effort check that the OS keyring can be read.
func (v *Vault) Available() bool {
	_, err := keyring.Get(v.service, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}

// IsPostgres reports whether s looks like a PostgreSQL URL or DSN.
func IsPostgres(s string) bool {
	if strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://") {
		return true
	}
	for _, field := range strings.Fields(s) {
		key, _, ok := strings.Cut(field, "=")
		if ok && (strings.EqualFold(key, "host") || strings.EqualFold(key, "dbname")) {
			return true
		}
	}
	return false
}

// Redact masks the password in a connection string for display.
func Redact(connStr string) string {
	if u, err := url.Parse(connStr); err == nil && u.Scheme != "" {
		return u.Redacted()
	}
	fields := strings.Fields(connStr)
	for i, field := range fields {
		if key, _, ok := strings.Cut(field, "="); ok && strings.EqualFold(key, "password") {
			fields[i] = key + "=xxxxx"
		}
	}
	return strings.Join(fields, " ")
}
