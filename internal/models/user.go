package models

import "time"

// Roles stored on the user document. The stored role is the single
// authoritative source for authorization decisions.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a portal account (patient family or administrator).
type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	FirstName    string    `bson:"firstName" json:"firstName"`
	LastName     string    `bson:"lastName" json:"lastName"`
	Role         string    `bson:"role" json:"role"`
	PhoneNumber  string    `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	DateOfBirth  string    `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	Address      string    `bson:"address,omitempty" json:"address,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsAdmin reports whether the stored role grants administrator access.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
