package model

import "golang.org/x/crypto/bcrypt"

// Role is an authority granted to an authenticated user.
type Role string

// RoleUser is the single role every user receives.
const RoleUser Role = "USER"

// AuthUser is the read-only principal handed to the authentication layer.
// The email doubles as the username.
type AuthUser struct {
	username    string
	password    string
	authorities []Role
}

// NewAuthUser builds the principal for u: email as username, stored hash as password, RoleUser only.
func NewAuthUser(u User) AuthUser {
	return AuthUser{
		username:    u.Email,
		password:    u.Password,
		authorities: []Role{RoleUser},
	}
}

func (a AuthUser) Username() string { return a.username }

// Password returns the stored hash, never the raw password.
func (a AuthUser) Password() string { return a.password }

func (a AuthUser) Authorities() []Role {
	out := make([]Role, len(a.authorities))
	copy(out, a.authorities)
	return out
}

// CheckPassword compares a raw password against the stored hash.
func (a AuthUser) CheckPassword(raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.password), []byte(raw)) == nil
}
