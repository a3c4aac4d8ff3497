package auth

import "github.com/golang-jwt/jwt/v5"

// AccessTokenPayload carries the identity stamped into an access token.
type AccessTokenPayload struct {
	UserID  string
	Name    string
	Email   string
	IsAdmin bool
}

// AccessTokenClaims is the JWT claim set minted at login.
type AccessTokenClaims struct {
	UserID  string `json:"uid"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	IsAdmin bool   `json:"admin,omitempty"`
	jwt.RegisteredClaims
}
