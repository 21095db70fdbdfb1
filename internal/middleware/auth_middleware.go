package middleware

import (
	"strings"

	"coursecraft/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	// UserIDKey is the fiber locals key carrying the authenticated user id.
	UserIDKey = "userID"
)

// Protected requires a valid access token and stores the authenticated
// user id in the request locals.
func Protected(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorEnvelope{
				Status:  "error",
				Message: "Authorization header is missing",
			})
		}

		if !strings.HasPrefix(authHeader, BearerSchema) {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorEnvelope{
				Status:  "error",
				Message: "Authorization scheme is not Bearer",
			})
		}

		tokenString := strings.TrimPrefix(authHeader, BearerSchema)
		claims, err := authService.ValidateJWT(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorEnvelope{
				Status:  "error",
				Message: "Invalid or expired token",
			})
		}

		c.Locals(UserIDKey, claims.UserID)
		return c.Next()
	}
}
