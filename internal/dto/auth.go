package dto

import "github.com/golang-jwt/jwt/v5"

// AuthMetadata carries the provider's public metadata claims. Subjects is
// the student's chosen subject list used for datesheet canonicalization.
type AuthMetadata struct {
	Subjects []string `json:"subjects,omitempty"`
}

// AuthClaims is the validated bearer token payload. Subject (RegisteredClaims
// "sub") is the stable identity key.
type AuthClaims struct {
	Metadata AuthMetadata `json:"metadata,omitempty"`
	jwt.RegisteredClaims
}
