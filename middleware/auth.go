package middleware

import (
	"booking-frontend/api"
	"booking-frontend/config"
	"booking-frontend/errors"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"
)

const IdentityKey = "identity"

// Authorize requires the backend-issued access token in the auth cookie.
func Authorize(cfg config.AuthConfig) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(cfg.SigningKey),
		ErrorHandler: jwtError,
		ContextKey:   IdentityKey,
		TokenLookup:  "cookie:" + cfg.CookieName,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return errors.RaisePermissionsError(c, "please sign in to see your bookings")
	}
	return errors.RaisePermissionsError(c, "Invalid or expired JWT")
}

// Credentials hands the verified token on to the API client.
func Credentials(c *fiber.Ctx) api.Credentials {
	token, ok := c.Locals(IdentityKey).(*jwt.Token)
	if !ok {
		return api.Credentials{}
	}
	return api.Credentials{Token: token.Raw}
}
