package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Saeed-Mujawar/contact-management-apis/internal/auth/service"
	autherror "github.com/Saeed-Mujawar/contact-management-apis/internal/errors"
)

const (
	bearerPrefix   = "Bearer "
	localsUserKey  = "user"
	localsTokenKey = "token"
)

// RequireAuth gates protected routes. Order matters: the denylist is
// consulted before signature verification, so a revoked token never passes
// no matter how valid its signature still is. On success the identity
// claim and the raw token are attached to the request for downstream
// handlers.
func RequireAuth(tokens service.TokenGenerator, denylist *service.Denylist) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			return autherror.Unauthorized(autherror.ErrMissingToken)
		}

		token := strings.TrimPrefix(authHeader, bearerPrefix)

		if denylist.Contains(token) {
			return autherror.Unauthorized(autherror.ErrTokenRevoked)
		}

		claims, err := tokens.VerifyAccessToken(token)
		if err != nil {
			return autherror.Unauthorized(err)
		}

		c.Locals(localsUserKey, claims)
		c.Locals(localsTokenKey, token)

		return c.Next()
	}
}

// ClaimsFromCtx returns the identity claim RequireAuth attached. Handlers
// must scope every data operation by it and never trust ids from the body.
func ClaimsFromCtx(c *fiber.Ctx) *service.JWTCustomClaims {
	claims, _ := c.Locals(localsUserKey).(*service.JWTCustomClaims)
	return claims
}

// TokenFromCtx returns the raw bearer token RequireAuth validated.
func TokenFromCtx(c *fiber.Ctx) string {
	token, _ := c.Locals(localsTokenKey).(string)
	return token
}
