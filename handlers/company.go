// handlers/company.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"run-tracker/config"
)

func SetupCompanyRoutes(app fiber.Router, details config.CompanyDetails) {
	app.Get("/company_details", func(c *fiber.Ctx) error {
		return c.JSON(details)
	})
}
