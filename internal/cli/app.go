// Package cli is the command-line front end of the inventory tracker.
package cli

import (
	"context"
	"database/sql"
	"errors"
	"io"

	"inventoryTracker/internal/auth"
	"inventoryTracker/internal/config"
	"inventoryTracker/internal/db"
	"inventoryTracker/internal/inventory"
	"inventoryTracker/internal/logger"
	"inventoryTracker/repository"
)

// App carries what every command needs. The database is opened on first use.
type App struct {
	Config *config.Config
	Prompt Prompter

	db      *sql.DB
	dbPath  string
	service *inventory.Service

	// interactive is set while the shell runs; login and logout then act on
	// the in-memory session instead of the token file.
	interactive bool
	session     *auth.Session
}

func NewApp(cfg *config.Config) *App {
	return &App{Config: cfg}
}

func (a *App) tokens() auth.TokenStore {
	return auth.TokenStore{Path: a.Config.Auth.SessionFile, Secret: a.Config.Auth.Secret}
}

func (a *App) open() error {
	path := a.Config.Database.Path
	if a.db != nil && a.dbPath == path {
		return nil
	}
	if err := a.Close(); err != nil {
		return err
	}
	hasher, err := auth.NewHasher(a.Config.Auth.PasswordScheme)
	if err != nil {
		return err
	}
	d, err := db.Open(path)
	if err != nil {
		return &repository.StorageError{Op: "open database", Err: err}
	}
	logger.Debugf("opened database %s", path)
	a.db = d
	a.dbPath = path
	a.service = inventory.NewService(repository.NewUserRepository(d, hasher), repository.NewProductRepository(d))
	return nil
}

// Close releases the database, if open.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db, a.service = nil, nil
	return err
}

// currentSession returns the shell session or the one saved by `login`.
func (a *App) currentSession(ctx context.Context) (*auth.Session, error) {
	var sess *auth.Session
	if a.interactive {
		sess = a.session
	} else {
		s, err := a.tokens().Load()
		if errors.Is(err, auth.ErrNoSession) {
			return nil, inventory.ErrNoSession
		}
		if err != nil {
			return nil, err
		}
		sess = s
	}
	if sess == nil {
		return nil, inventory.ErrNoSession
	}
	return a.service.Resume(ctx, sess)
}

func (a *App) startSession(sess *auth.Session) error {
	if a.interactive {
		a.session = sess
		return nil
	}
	tok, err := auth.IssueToken(sess, a.Config.Auth.Secret, a.Config.Auth.SessionTTL)
	if err != nil {
		return err
	}
	return a.tokens().Save(tok)
}

func (a *App) endSession() error {
	if a.interactive {
		a.session = nil
		return nil
	}
	return a.tokens().Clear()
}

// Prompter asks the user for input.
type Prompter interface {
	Line(prompt string) (string, error)
	Secret(prompt string) (string, error)
}

// noPrompt is used when input cannot be requested.
type noPrompt struct{}

func (noPrompt) Line(string) (string, error)   { return "", io.EOF }
func (noPrompt) Secret(string) (string, error) { return "", io.EOF }

func (a *App) prompter() Prompter {
	if a.Prompt == nil {
		return noPrompt{}
	}
	return a.Prompt
}
