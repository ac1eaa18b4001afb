// handlers/run_routes.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"run-tracker/middleware"
	"run-tracker/models"
	"run-tracker/services"
	"run-tracker/store"
)

type createRunRequest struct {
	AthleteID uint    `json:"athlete"`
	Comment   *string `json:"comment"`
}

func SetupRunRoutes(app fiber.Router, runService *services.RunService) {
	app.Get("/runs", func(c *fiber.Ctx) error {
		athleteID, err := queryUint(c, "athlete")
		if err != nil {
			return respondError(c, err)
		}
		limit, err := queryInt(c, "limit")
		if err != nil {
			return respondError(c, err)
		}
		offset, err := queryInt(c, "offset")
		if err != nil {
			return respondError(c, err)
		}

		runs, err := runService.List(c.UserContext(), store.RunFilter{
			Status:    models.RunStatus(c.Query("status")),
			AthleteID: athleteID,
			Order:     c.Query("ordering"),
			Limit:     limit,
			Offset:    offset,
		})
		if err != nil {
			return respondError(c, err)
		}

		out := make([]runView, len(runs))
		for i, r := range runs {
			out[i] = newRunView(r)
		}
		return c.JSON(out)
	})

	app.Post("/runs", func(c *fiber.Ctx) error {
		var req createRunRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "body", "invalid request body")
		}
		// Fall back to the caller forwarded by the gateway
		if req.AthleteID == 0 {
			if id, ok := middleware.AthleteID(c); ok {
				req.AthleteID = id
			}
		}

		run, err := runService.Create(c.UserContext(), req.AthleteID, req.Comment)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(newRunView(*run))
	})

	app.Get("/runs/:id", func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		run, err := runService.Get(c.UserContext(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(newRunView(*run))
	})

	app.Delete("/runs/:id", func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		if err := runService.Delete(c.UserContext(), id); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	app.Post("/runs/:id/start", func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		run, err := runService.Start(c.UserContext(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"status": run.Status})
	})

	app.Post("/runs/:id/stop", func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		run, err := runService.Finish(c.UserContext(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(newRunView(*run))
	})
}
