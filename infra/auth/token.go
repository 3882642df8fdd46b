package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoToken means the user never logged in (or logged out). Callers treat it
// as anonymous, read-only mode rather than a failure.
var ErrNoToken = errors.New("no access token")

// TokenProvider supplies an access token for API authentication.
type TokenProvider interface {
	AccessToken() (string, error)
}

// StaticToken is a TokenProvider for a token held in memory.
type StaticToken string

// AccessToken returns the token, or ErrNoToken when it is empty.
func (s StaticToken) AccessToken() (string, error) {
	if strings.TrimSpace(string(s)) == "" {
		return "", ErrNoToken
	}
	return strings.TrimSpace(string(s)), nil
}

// FileTokenProvider reads a bearer token from a file on disk.
type FileTokenProvider struct {
	path string
}

// NewFileTokenProvider creates a TokenProvider that reads from the given file path.
func NewFileTokenProvider(path string) *FileTokenProvider {
	return &FileTokenProvider{path: path}
}

// Path returns the token file location.
func (f *FileTokenProvider) Path() string { return f.path }

// AccessToken reads and returns the token, trimming whitespace. A missing or
// empty file yields ErrNoToken.
func (f *FileTokenProvider) AccessToken() (string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("reading token from %s: %w", f.path, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("token file %s is empty: %w", f.path, ErrNoToken)
	}

	return token, nil
}

// Save writes the token with owner-only permissions.
func (f *FileTokenProvider) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("refusing to save empty token: %w", ErrNoToken)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("creating token dir: %w", err)
	}
	return os.WriteFile(f.path, []byte(token), 0o600)
}

// Clear removes the token file. Clearing twice is not an error.
func (f *FileTokenProvider) Clear() error {
	err := os.Remove(f.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing token: %w", err)
	}
	return nil
}
