package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims are the claims minted by the identity provider. The Subject of
// the registered claims doubles as the UID but mobile clients historically
// send it in a dedicated field too.
type UserClaims struct {
	jwt.RegisteredClaims
	UID   string `json:"uid"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UserID returns the stable user id, falling back to the token subject.
func (c *UserClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.Subject
}
