package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/golang-jwt/jwt/v5"
)

// userIDLocal is the fiber.Locals key holding the resolved viewer ID.
const userIDLocal = "userID"

// TokenVerifier validates HS256 bearer tokens issued by the identity
// service. Token issuance lives outside this backend; we only verify.
type TokenVerifier struct {
	secret []byte
}

func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// Verify parses and validates a bearer token and returns the user ID
// from its subject claim.
func (v *TokenVerifier) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return v.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}

// bearerToken extracts the credential from the Authorization header.
func bearerToken(c fiber.Ctx) string {
	auth := c.Get(fiber.HeaderAuthorization)
	if len(auth) > 7 && strings.EqualFold(auth[:7], "Bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}

// RequireAuth rejects requests without a valid bearer token and stores
// the resolved user ID in Locals for downstream handlers.
func RequireAuth(v *TokenVerifier) fiber.Handler {
	return func(c fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		}

		userID, err := v.Verify(token)
		if err != nil {
			return ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
		}

		c.Locals(userIDLocal, userID)
		return c.Next()
	}
}

// OptionalViewer resolves a viewer identity when a valid bearer token
// is present. A missing, malformed or expired token is not an error on
// public endpoints: the request proceeds unpersonalized. The identity
// is resolved once here, never re-verified per item downstream.
func OptionalViewer(v *TokenVerifier) fiber.Handler {
	return func(c fiber.Ctx) error {
		if token := bearerToken(c); token != "" {
			if userID, err := v.Verify(token); err == nil {
				c.Locals(userIDLocal, userID)
			}
		}
		return c.Next()
	}
}

// UserID returns the viewer ID resolved by RequireAuth/OptionalViewer,
// or "" when the request is anonymous.
func UserID(c fiber.Ctx) string {
	if uid, ok := c.Locals(userIDLocal).(string); ok {
		return uid
	}
	return ""
}
