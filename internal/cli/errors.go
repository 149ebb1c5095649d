package cli

import (
	"errors"
	"fmt"

	"inventoryTracker/internal/form"
	"inventoryTracker/internal/inventory"
	"inventoryTracker/repository"
)

var errUsernameTaken = errors.New("username already exists")

// Describe turns any command error into the message shown to the user.
func Describe(err error) string {
	var (
		fe *form.FieldError
		ve *repository.ValidationError
		se *repository.StorageError
	)
	switch {
	case errors.As(err, &fe):
		return "Input Error: " + fe.Msg
	case errors.As(err, &ve):
		return "Input Error: " + ve.Error()
	case errors.Is(err, repository.ErrNotFound):
		return "That product no longer exists. Refresh the list with `inventory list`."
	case errors.Is(err, errUsernameTaken):
		return "Registration Error: Username already exists. Please choose a different username."
	case errors.Is(err, inventory.ErrInvalidCredentials):
		return "Login Error: Invalid username or password."
	case errors.Is(err, inventory.ErrNoSession):
		return "No user logged in. Please login again."
	case errors.As(err, &se):
		return fmt.Sprintf("Database Error: failed to %s: %v", se.Op, se.Err)
	default:
		return "Error: " + err.Error()
	}
}
