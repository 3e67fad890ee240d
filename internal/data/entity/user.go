package entity

type User struct {
	Base
	Username string `db:"username"`
	Email    string `db:"email"`
	// PasswordHash is never returned to clients in plaintext form.
	PasswordHash string `db:"password"`
}
