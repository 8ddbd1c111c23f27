package auth

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

// Claims represents the identity claims transmitted via a JWT.
// They are derived from an Identity once at issuance and never refreshed
// from the store afterwards; a role change only takes effect on re-login.
type Claims struct {
	jwt.StandardClaims
	Name   string `json:"name,omitempty"`
	Role   string `json:"role,omitempty"`
	Age    int    `json:"age,omitempty"`
	Gender string `json:"gender,omitempty"`
}

func (c Claims) UserID() string {
	return c.Subject
}

func (c Claims) IsAdmin() bool {
	return c.Role == "ADMIN"
}

// ExpiresIn reports the remaining lifetime of the claims.
func (c Claims) ExpiresIn() time.Duration {
	return time.Until(time.Unix(c.ExpiresAt, 0))
}
