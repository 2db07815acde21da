// Package middleware provides authentication, logging, rate limiting and
// tracing middleware for the application.
package middleware

import (
	"context"
	"strings"

	"jobboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	localUserID = "userID"
	localUser   = "user"
)

// IdentityResolver maps a bearer token to the account it was issued for.
type IdentityResolver func(ctx context.Context, token string) (*models.User, error)

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// Authenticate rejects requests without a valid bearer token and stores the
// resolved user in locals and in the request context.
func Authenticate(resolve IdentityResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := BearerToken(c)
		if !ok {
			return unauthorized(c, "Not authenticated")
		}

		user, err := resolve(c.UserContext(), token)
		if err != nil || user == nil {
			return unauthorized(c, "Could not validate credentials")
		}

		SetCurrentUser(c, user)
		return c.Next()
	}
}

// RoleRequired rejects authenticated users whose role is not in roles with 403.
// Must be placed after Authenticate.
func RoleRequired(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return unauthorized(c, "Not authenticated")
		}
		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Not enough permissions"))
	}
}

// SetCurrentUser records user as the caller of this request.
func SetCurrentUser(c *fiber.Ctx, user *models.User) {
	c.Locals(localUserID, user.ID)
	c.Locals(localUser, user)
	ctx := context.WithValue(c.UserContext(), UserIDKey, user.ID)
	c.SetUserContext(ctx)
}

// CurrentUser returns the user stored by Authenticate.
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(localUser).(*models.User)
	return user, ok && user != nil
}

func unauthorized(c *fiber.Ctx, message string) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return models.RespondWithError(c, fiber.StatusUnauthorized,
		models.NewUnauthorizedError(message))
}
