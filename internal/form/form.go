// Package form validates raw user input the way the inventory screens do.
// Its rules are stricter than the storage layer: quantities and prices must
// be positive here while the database also accepts zero.
package form

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

const (
	MinUsernameLen = 3
	MinPasswordLen = 4
)

// FieldError is a user-facing input problem.
type FieldError struct {
	Field string
	Msg   string
}

func (e *FieldError) Error() string { return e.Msg }

// IsFieldError reports whether err came from this package.
func IsFieldError(err error) bool {
	var fe *FieldError
	return errors.As(err, &fe)
}

// Credentials is a submitted login or registration form.
type Credentials struct {
	Username string
	Password string
	Confirm  string
}

// ValidateLogin checks that both fields are present and returns the trimmed username.
func ValidateLogin(c Credentials) (string, error) {
	username := strings.TrimSpace(c.Username)
	if username == "" || c.Password == "" {
		return "", &FieldError{Field: "credentials", Msg: "Please enter both username and password."}
	}
	return username, nil
}

// ValidateRegistration applies the account rules and returns the trimmed username.
func ValidateRegistration(c Credentials) (string, error) {
	username := strings.TrimSpace(c.Username)
	if username == "" || c.Password == "" || c.Confirm == "" {
		return "", &FieldError{Field: "credentials", Msg: "Please fill all fields."}
	}
	if len([]rune(username)) < MinUsernameLen {
		return "", &FieldError{Field: "username", Msg: "Username must be at least 3 characters long."}
	}
	if len([]rune(c.Password)) < MinPasswordLen {
		return "", &FieldError{Field: "password", Msg: "Password must be at least 4 characters long."}
	}
	if c.Password != c.Confirm {
		return "", &FieldError{Field: "confirm", Msg: "Passwords do not match."}
	}
	return username, nil
}

// Product is a submitted product form, as typed.
type Product struct {
	Name     string
	Quantity string
	Price    string
}

// Parsed is a validated product form.
type Parsed struct {
	Name     string
	Quantity int64
	Price    float64
}

// ParseProduct validates the product form.
func ParseProduct(p Product) (Parsed, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return Parsed{}, &FieldError{Field: "name", Msg: "Product name cannot be empty."}
	}
	qty, err := strconv.ParseInt(strings.TrimSpace(p.Quantity), 10, 64)
	if err != nil || qty <= 0 {
		return Parsed{}, &FieldError{Field: "quantity", Msg: "Please enter a valid quantity (greater than 0)."}
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(p.Price), 64)
	if err != nil || price <= 0 || math.IsInf(price, 0) || math.IsNaN(price) {
		return Parsed{}, &FieldError{Field: "price", Msg: "Please enter a valid price (greater than 0)."}
	}
	return Parsed{Name: name, Quantity: qty, Price: price}, nil
}

// ParseNumber parses a product number typed by the user.
func ParseNumber(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return 0, &FieldError{Field: "product_no", Msg: "Please select a product."}
	}
	return n, nil
}
