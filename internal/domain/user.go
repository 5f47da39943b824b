package domain

import "time"

// User is the stored credential record for an account holder.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity returns the public view of the user.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email}
}

// Identity is an authenticated caller as seen outside the credential store.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
