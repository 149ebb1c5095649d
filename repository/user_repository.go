package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"

	"inventoryTracker/internal/auth"
	"inventoryTracker/models"
)

type UserRepository struct {
	db     *sql.DB
	hasher auth.PasswordHasher
}

// NewUserRepository compares passwords with hasher; nil means verbatim storage.
func NewUserRepository(db *sql.DB, hasher auth.PasswordHasher) *UserRepository {
	if hasher == nil {
		hasher = auth.PlainHasher{}
	}
	return &UserRepository{db: db, hasher: hasher}
}

// Register creates a user. It returns false, without error, when the username is taken.
func (r *UserRepository) Register(ctx context.Context, username, password string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return false, invalid("username", "required")
	}
	if password == "" {
		return false, invalid("password", "required")
	}
	stored, err := r.hasher.Hash(password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return false, invalid("password", "must be at most 72 bytes")
	}
	if err != nil {
		return false, &StorageError{Op: "register user", Err: err}
	}

	err = withTx(ctx, r.db, "register user", func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO users (username, password) VALUES (?, ?)`, username, stored)
		if isUniqueViolation(err) {
			return errDuplicateUser
		}
		return err
	})
	if errors.Is(err, errDuplicateUser) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Authenticate returns the user whose credentials match, or nil when there is no match.
func (r *UserRepository) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, nil
	}
	u, err := r.GetByUsername(ctx, username)
	if err != nil || u == nil {
		return nil, err
	}
	if !r.hasher.Verify(u.Password, password) {
		return nil, nil
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, "get user", `SELECT id, username, password FROM users WHERE id = ?`, id)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, "get user", `SELECT id, username, password FROM users WHERE username = ?`, strings.TrimSpace(username))
}

func (r *UserRepository) getOne(ctx context.Context, op, query string, arg any) (*models.User, error) {
	var u *models.User
	err := withTx(ctx, r.db, op, func(tx *sql.Tx) error {
		var found models.User
		err := tx.QueryRowContext(ctx, query, arg).Scan(&found.ID, &found.Username, &found.Password)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		u = &found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Delete removes a user together with all of their products.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return invalid("user_id", "required")
	}
	return withTx(ctx, r.db, "delete user", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
