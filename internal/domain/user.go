package domain

// User is an account that can sign in and file complaints.
type User struct {
	ID           int64
	Name         string
	Email        string
	Username     string
	PasswordHash string
	Role         string
}
