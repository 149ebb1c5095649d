package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoSession is returned when no session token has been saved.
var ErrNoSession = errors.New("not logged in")

// TokenStore keeps the session token between CLI invocations.
type TokenStore struct {
	Path   string
	Secret string
}

// Save writes the token, readable by the owner only.
func (ts TokenStore) Save(token string) error {
	if dir := filepath.Dir(ts.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	return os.WriteFile(ts.Path, []byte(token+"\n"), 0o600)
}

// Load reads and validates the saved token.
func (ts TokenStore) Load() (*Session, error) {
	b, err := os.ReadFile(ts.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	tok := strings.TrimSpace(string(b))
	if tok == "" {
		return nil, ErrNoSession
	}
	s, err := ParseToken(tok, ts.Secret)
	if err != nil {
		return nil, fmt.Errorf("saved session rejected, login again: %w", err)
	}
	return s, nil
}

// Clear removes the saved token. A missing file is not an error.
func (ts TokenStore) Clear() error {
	err := os.Remove(ts.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
