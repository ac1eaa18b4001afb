package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	"run-tracker/config"
	"run-tracker/logger"
)

// GatewayAuth admits only requests forwarded by the API gateway, which sends
// cfg.GatewayToken as "Bearer <token>" or bare in Authorization. With no
// token configured every request passes.
func GatewayAuth(cfg *config.Config) fiber.Handler {
	expected := []byte(cfg.GatewayToken)
	if len(expected) == 0 {
		logger.Warn.Printf("⚠️ [GATEWAY] GATEWAY_TOKEN unset, accepting unauthenticated traffic (env=%s)", cfg.Env)
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	return func(c *fiber.Ctx) error {
		presented := gatewayToken(c)
		if presented == "" {
			return rejectGateway(c, "gateway token missing")
		}
		if subtle.ConstantTimeCompare([]byte(presented), expected) != 1 {
			return rejectGateway(c, "gateway token invalid")
		}
		return c.Next()
	}
}

func gatewayToken(c *fiber.Ctx) string {
	raw := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if scheme, token, ok := strings.Cut(raw, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return raw
}

func rejectGateway(c *fiber.Ctx, reason string) error {
	logger.Warn.Printf("🚫 [GATEWAY] %s: %s %s", reason, c.Method(), c.Path())
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": reason})
}
