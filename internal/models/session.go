package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the JWT payload carried by the admin session cookie.
type SessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// RoleAdmin is the only role the single-tutor deployment knows about.
const RoleAdmin = "admin"
