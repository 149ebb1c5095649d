package models

// User represents an account owning an inventory.
// It maps to the `users` table in SQLite.
type User struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	Password string `db:"password" json:"-"`
}
