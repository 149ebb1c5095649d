package inventory

import (
	"context"
	"errors"

	"inventoryTracker/internal/auth"
	"inventoryTracker/internal/logger"
	"inventoryTracker/models"
	"inventoryTracker/repository"
)

var (
	// ErrInvalidCredentials is returned by Login when no user matches.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrNoSession is returned when an inventory call is made without a session.
	ErrNoSession = errors.New("no user logged in")
)

// Service is the session-scoped entry point used by the CLI.
type Service struct {
	Users    repository.UserRepositoryI
	Products repository.ProductRepositoryI
}

func NewService(users repository.UserRepositoryI, products repository.ProductRepositoryI) *Service {
	return &Service{Users: users, Products: products}
}

// Register creates an account. It returns false when the username is taken.
func (s *Service) Register(ctx context.Context, username, password string) (bool, error) {
	ok, err := s.Users.Register(ctx, username, password)
	if err != nil {
		logger.Errorf("register %q: %v", username, err)
		return false, err
	}
	if ok {
		logger.Infof("registered user %q", username)
	} else {
		logger.Debugf("register %q: username taken", username)
	}
	return ok, nil
}

// Login checks credentials and opens a session.
func (s *Service) Login(ctx context.Context, username, password string) (*auth.Session, error) {
	u, err := s.Users.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if u == nil {
		logger.Noticef("failed login for %q", username)
		return nil, ErrInvalidCredentials
	}
	logger.Infof("user %q logged in", u.Username)
	return &auth.Session{UserID: u.ID, Username: u.Username}, nil
}

// Resume checks that a restored session still refers to an existing user.
func (s *Service) Resume(ctx context.Context, sess *auth.Session) (*auth.Session, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	u, err := s.Users.GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil || u.Username != sess.Username {
		return nil, ErrNoSession
	}
	return sess, nil
}

func (s *Service) Add(ctx context.Context, sess *auth.Session, name string, quantity int64, price float64) (*models.Product, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	p, err := s.Products.Add(ctx, sess.UserID, name, quantity, price)
	if err != nil {
		return nil, err
	}
	logger.Infof("user %d added product %d (%s)", sess.UserID, p.Number, p.Name)
	return p, nil
}

func (s *Service) List(ctx context.Context, sess *auth.Session) ([]models.Product, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	return s.Products.List(ctx, sess.UserID)
}

func (s *Service) Get(ctx context.Context, sess *auth.Session, number int64) (*models.Product, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	return s.Products.Get(ctx, sess.UserID, number)
}

func (s *Service) Update(ctx context.Context, sess *auth.Session, number int64, name string, quantity int64, price float64) error {
	if err := requireSession(sess); err != nil {
		return err
	}
	if err := s.Products.Update(ctx, sess.UserID, number, name, quantity, price); err != nil {
		return err
	}
	logger.Infof("user %d updated product %d", sess.UserID, number)
	return nil
}

func (s *Service) Delete(ctx context.Context, sess *auth.Session, number int64) error {
	if err := requireSession(sess); err != nil {
		return err
	}
	if err := s.Products.Delete(ctx, sess.UserID, number); err != nil {
		return err
	}
	logger.Infof("user %d deleted product %d", sess.UserID, number)
	return nil
}

func (s *Service) Summary(ctx context.Context, sess *auth.Session) (*models.Summary, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	return s.Products.Summary(ctx, sess.UserID)
}

func requireSession(sess *auth.Session) error {
	if sess == nil || sess.UserID <= 0 {
		return ErrNoSession
	}
	return nil
}
