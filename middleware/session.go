package middleware

import (
	"booking-frontend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const ViewSessionKey = "view_session"

// ViewSession tags the browser with an id that keys its in-memory views.
func ViewSession(cfg config.ViewsConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := c.Cookies(cfg.SessionCookie)
		if _, err := uuid.Parse(session); err != nil {
			session = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:        cfg.SessionCookie,
				Value:       session,
				Path:        "/",
				HTTPOnly:    true,
				SameSite:    fiber.CookieSameSiteLaxMode,
				SessionOnly: true,
			})
		}
		c.Locals(ViewSessionKey, session)
		return c.Next()
	}
}

// SessionID keys the view store. The browser session is scoped to the access
// token, so a different sign-in on the same browser starts with no views.
func SessionID(c *fiber.Ctx) string {
	session, _ := c.Locals(ViewSessionKey).(string)
	return session + ":" + identity(c)
}

func identity(c *fiber.Ctx) string {
	token := Credentials(c).Token
	if token == "" {
		return "anonymous"
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(token)).String()
}
