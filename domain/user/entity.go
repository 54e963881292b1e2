package user

import (
	"time"
)

// Role controls what a user may mutate beyond their own records.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole maps a client-supplied role string to a Role. Anything other
// than "admin" becomes RoleUser; registration may request admin but never
// an arbitrary role.
func ParseRole(s string) Role {
	if s == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleUser
}

// User represents a registered account.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Public returns a copy of the user safe to serialize outward.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}

// Claims is the verified identity recovered from a bearer token. It is the
// only identity shape handlers and the ownership gate ever see.
type Claims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
}
