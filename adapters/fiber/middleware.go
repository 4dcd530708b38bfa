package fiber

import (
	"github.com/gofiber/fiber/v3"
	"github.com/lborres/tasuku/core"
)

// requireAuth resolves the Authorization header into a session and stores
// it in the request context for downstream handlers.
func (a *Adapter) requireAuth(c fiber.Ctx) error {
	session, err := a.guard.Authenticate(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Locals("session", session)
	return c.Next()
}

// sessionFromCtx returns the session requireAuth stored for this request.
func sessionFromCtx(c fiber.Ctx) *core.Session {
	session, _ := c.Locals("session").(*core.Session)
	return session
}
