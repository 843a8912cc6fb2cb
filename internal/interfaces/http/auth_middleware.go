package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/valve-catalog/internal/application/dto"
	"github.com/jhoicas/valve-catalog/pkg/jwt"
)

// LocalSubject key de c.Locals con el sujeto autenticado.
const LocalSubject = "subject"

// OptionalAuth valida el Bearer Token si viene y carga el sujeto en c.Locals.
// Un token ausente o inválido deja la petición como anónima; la decisión es de RequireAuth.
func OptionalAuth(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if jwtSecret == "" {
			return c.Next()
		}
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return c.Next()
		}
		claims, err := jwt.Parse(jwtSecret, token)
		if err == nil && claims.Subject != "" {
			c.Locals(LocalSubject, claims.Subject)
		}
		return c.Next()
	}
}

// RequireAuth exige un sujeto autenticado cuando enabled es true.
func RequireAuth(enabled bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !enabled || IsAuthenticated(c) {
			return c.Next()
		}
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "se requiere un token válido"})
	}
}

// IsAuthenticated indica si la petición trae un sujeto válido.
func IsAuthenticated(c *fiber.Ctx) bool {
	return GetSubject(c) != ""
}

// GetSubject devuelve el sujeto del contexto (después de OptionalAuth).
func GetSubject(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalSubject).(string)
	return s
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	tok := strings.TrimSpace(parts[1])
	return tok, tok != ""
}
