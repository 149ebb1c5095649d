package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"

	"inventoryTracker/models"
)

// ProductRepository stores inventory records. Callers address a record by
// its owner and per-user product number, never by the global id.
type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, user_id, product_no, product_name, quantity, price`

// Add inserts a product and assigns it the next product number for userID.
// Numbers are never reissued, even when the highest one was deleted.
func (r *ProductRepository) Add(ctx context.Context, userID int64, name string, quantity int64, price float64) (*models.Product, error) {
	if userID <= 0 {
		return nil, invalid("user_id", "required")
	}
	name, err := validateFields(name, quantity, price)
	if err != nil {
		return nil, err
	}

	p := &models.Product{UserID: userID, Name: name, Quantity: quantity, Price: price}
	err = withTx(ctx, r.db, "add product", func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `SELECT MAX(
			COALESCE((SELECT last_no FROM product_counters WHERE user_id = ?), 0),
			COALESCE((SELECT MAX(product_no) FROM inventory WHERE user_id = ?), 0)
		) + 1`, userID, userID).Scan(&p.Number)
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `INSERT INTO inventory (user_id, product_name, quantity, price, product_no) VALUES (?, ?, ?, ?, ?)`,
			userID, name, quantity, price, p.Number)
		if err != nil {
			return err
		}
		if p.ID, err = res.LastInsertId(); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `INSERT INTO product_counters (user_id, last_no) VALUES (?, ?)
			ON CONFLICT(user_id) DO UPDATE SET last_no = excluded.last_no`, userID, p.Number)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// List returns the user's products, highest product number first.
func (r *ProductRepository) List(ctx context.Context, userID int64) ([]models.Product, error) {
	if userID <= 0 {
		return nil, invalid("user_id", "required")
	}
	out := []models.Product{}
	err := withTx(ctx, r.db, "list products", func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `SELECT `+productColumns+` FROM inventory WHERE user_id = ? ORDER BY product_no DESC, id DESC`, userID)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			p, err := scanProduct(rows)
			if err != nil {
				return err
			}
			out = append(out, p)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one product. A missing product yields ErrNotFound.
func (r *ProductRepository) Get(ctx context.Context, userID, number int64) (*models.Product, error) {
	if err := validateKey(userID, number); err != nil {
		return nil, err
	}
	var p models.Product
	err := withTx(ctx, r.db, "get product", func(tx *sql.Tx) error {
		var err error
		p, err = scanProduct(tx.QueryRowContext(ctx, `SELECT `+productColumns+` FROM inventory WHERE user_id = ? AND product_no = ?`, userID, number))
		if errors.Is(err, sql.ErrNoRows) {
			return productNotFound(number)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update overwrites name, quantity and price. Owner and numbers never change.
func (r *ProductRepository) Update(ctx context.Context, userID, number int64, name string, quantity int64, price float64) error {
	if err := validateKey(userID, number); err != nil {
		return err
	}
	name, err := validateFields(name, quantity, price)
	if err != nil {
		return err
	}
	return withTx(ctx, r.db, "update product", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE inventory SET product_name = ?, quantity = ?, price = ? WHERE user_id = ? AND product_no = ?`,
			name, quantity, price, userID, number)
		if err != nil {
			return err
		}
		return expectOneRow(res, number)
	})
}

// Delete removes a product. Its number stays retired.
func (r *ProductRepository) Delete(ctx context.Context, userID, number int64) error {
	if err := validateKey(userID, number); err != nil {
		return err
	}
	return withTx(ctx, r.db, "delete product", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM inventory WHERE user_id = ? AND product_no = ?`, userID, number)
		if err != nil {
			return err
		}
		return expectOneRow(res, number)
	})
}

// Summary totals the user's inventory.
func (r *ProductRepository) Summary(ctx context.Context, userID int64) (*models.Summary, error) {
	if userID <= 0 {
		return nil, invalid("user_id", "required")
	}
	var s models.Summary
	err := withTx(ctx, r.db, "summarize products", func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(SUM(quantity), 0), COALESCE(SUM(quantity * price), 0.0)
			FROM inventory WHERE user_id = ?`, userID).Scan(&s.Products, &s.TotalQuantity, &s.TotalValue)
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func validateKey(userID, number int64) error {
	if userID <= 0 {
		return invalid("user_id", "required")
	}
	if number <= 0 {
		return invalid("product_no", "required")
	}
	return nil
}

// validateFields enforces the storage-level rules and returns the trimmed name.
// Zero quantity and zero price are allowed here.
func validateFields(name string, quantity int64, price float64) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalid("product_name", "required")
	}
	if quantity < 0 {
		return "", invalid("quantity", "cannot be negative")
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return "", invalid("price", "must be a finite number")
	}
	if price < 0 {
		return "", invalid("price", "cannot be negative")
	}
	return name, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanProduct reads productColumns. A row the numbering never reached lists
// with Number 0.
func scanProduct(row rowScanner) (models.Product, error) {
	var (
		p  models.Product
		no sql.NullInt64
	)
	if err := row.Scan(&p.ID, &p.UserID, &no, &p.Name, &p.Quantity, &p.Price); err != nil {
		return models.Product{}, err
	}
	p.Number = no.Int64
	return p, nil
}

func expectOneRow(res sql.Result, number int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return productNotFound(number)
	}
	return nil
}

func productNotFound(number int64) error {
	return fmt.Errorf("product %d: %w", number, ErrNotFound)
}
