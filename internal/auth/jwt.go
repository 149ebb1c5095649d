package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Session is the authenticated caller. It is created by login and passed
// explicitly into every inventory call.
type Session struct {
	UserID   int64
	Username string
}

type sessionClaims struct {
	UserID int64  `json:"uid"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token carrying the session. ttl <= 0 means no expiry.
func IssueToken(s *Session, secret string, ttl time.Duration) (string, error) {
	if s == nil || s.UserID == 0 || s.Username == "" {
		return "", errors.New("incomplete session")
	}
	if secret == "" {
		return "", errors.New("jwt secret is empty")
	}
	now := time.Now()
	c := sessionClaims{
		UserID: s.UserID,
		Name:   s.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		c.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
}

// ParseToken validates a token produced by IssueToken and returns its session.
func ParseToken(tokenStr string, secret string) (*Session, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	tok, err := jwt.ParseWithClaims(tokenStr, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return nil, err
	}
	c, _ := tok.Claims.(*sessionClaims)
	if c == nil || c.UserID == 0 || c.Name == "" {
		return nil, errors.New("invalid claims")
	}
	return &Session{UserID: c.UserID, Username: c.Name}, nil
}
