package models

import "strconv"

// Product is one inventory record owned by a user.
// Number is the per-user product_no shown to and used by callers; ID is internal.
type Product struct {
	ID       int64   `db:"id" json:"-"`
	UserID   int64   `db:"user_id" json:"-"`
	Number   int64   `db:"product_no" json:"product_no"`
	Name     string  `db:"product_name" json:"name"`
	Quantity int64   `db:"quantity" json:"quantity"`
	Price    float64 `db:"price" json:"price"`
}

// PriceString renders the price with two decimals.
func (p Product) PriceString() string {
	return strconv.FormatFloat(p.Price, 'f', 2, 64)
}

// Value is quantity times price.
func (p Product) Value() float64 {
	return float64(p.Quantity) * p.Price
}

// Summary aggregates a user's inventory.
type Summary struct {
	Products      int     `json:"products"`
	TotalQuantity int64   `json:"total_quantity"`
	TotalValue    float64 `json:"total_value"`
}
