package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"teamhub/utils"
)

// TokenVerifier validates bearer tokens
type TokenVerifier interface {
	Verify(token string) (*utils.Claims, error)
}

// Identity is the authenticated caller attached to each protected request
type Identity struct {
	UserID uint
	Email  string
}

type identityKey struct{}

const localsUserID = "userID"

// WithIdentity returns a copy of ctx carrying id
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the caller stored by Protected
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// UserID returns the authenticated user id of the request
func UserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(localsUserID).(uint)
	return id, ok && id != 0
}

// Protected rejects requests without a valid bearer token before any handler runs.
// It authenticates only; ownership checks belong to the handlers.
func Protected(tokens TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization required",
			})
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		token = strings.TrimSpace(token)
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization format",
			})
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals(localsUserID, claims.UserID)
		c.SetUserContext(WithIdentity(c.UserContext(), Identity{
			UserID: claims.UserID,
			Email:  claims.Email,
		}))

		return c.Next()
	}
}
