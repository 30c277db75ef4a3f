package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/renewbay/renewbay-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	Email string
	Role  enums.Role
	JTI   string
}

// AccessTokenClaims represents the typed JWT issued to clients. The
// {email, role} pair is the identity the workflow engines accept as an
// opaque principal.
type AccessTokenClaims struct {
	Email string     `json:"email"`
	Role  enums.Role `json:"role"`
	jwt.RegisteredClaims
}
