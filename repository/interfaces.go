package repository

import (
	"context"

	"inventoryTracker/models"
)

// UserRepositoryI defines operations on User entities.
type UserRepositoryI interface {
	Register(ctx context.Context, username, password string) (bool, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

// ProductRepositoryI defines operations on a user's inventory.
type ProductRepositoryI interface {
	Add(ctx context.Context, userID int64, name string, quantity int64, price float64) (*models.Product, error)
	List(ctx context.Context, userID int64) ([]models.Product, error)
	Get(ctx context.Context, userID, number int64) (*models.Product, error)
	Update(ctx context.Context, userID, number int64, name string, quantity int64, price float64) error
	Delete(ctx context.Context, userID, number int64) error
	Summary(ctx context.Context, userID int64) (*models.Summary, error)
}

var (
	_ UserRepositoryI    = (*UserRepository)(nil)
	_ ProductRepositoryI = (*ProductRepository)(nil)
)
