package entities

import "time"

// Identity is the signed-in user as asserted by the identity provider
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// UserProfile holds the editable profile keyed by the identity id
type UserProfile struct {
	ID        string    `json:"id" db:"id"`
	FullName  string    `json:"full_name" db:"full_name"`
	Phone     string    `json:"phone" db:"phone"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ProfileUpdate is the editable subset of a profile
type ProfileUpdate struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
}
