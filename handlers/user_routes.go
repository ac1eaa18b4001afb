// handlers/user_routes.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"run-tracker/services"
	"run-tracker/store"
)

type athleteInfoRequest struct {
	Goals  *string `json:"goals"`
	Weight *int    `json:"weight"`
}

type subscribeRequest struct {
	AthleteID uint `json:"athlete"`
}

func SetupUserRoutes(app fiber.Router, athleteService *services.AthleteService) {
	app.Get("/users", func(c *fiber.Ctx) error {
		userType := c.Query("type")
		if userType != "" && userType != "coach" && userType != "athlete" {
			return badRequest(c, "type", "must be coach or athlete")
		}
		limit, err := queryInt(c, "limit")
		if err != nil {
			return respondError(c, err)
		}
		offset, err := queryInt(c, "offset")
		if err != nil {
			return respondError(c, err)
		}

		athletes, err := athleteService.List(c.UserContext(), store.AthleteFilter{
			Type:   userType,
			Search: c.Query("search"),
			Order:  c.Query("ordering"),
			Limit:  limit,
			Offset: offset,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(athletes)
	})

	app.Get("/users/:id", func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		detail, err := athleteService.Detail(c.UserContext(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(detail)
	})

	app.Get("/athlete_info/:id", func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		info, err := athleteService.Info(c.UserContext(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(info)
	})

	app.Put("/athlete_info/:id", func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		var req athleteInfoRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "body", "invalid request body")
		}
		info, err := athleteService.UpdateInfo(c.UserContext(), id, req.Goals, req.Weight)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(info)
	})

	app.Post("/subscribe_to_coach/:id", func(c *fiber.Ctx) error {
		coachID, err := paramID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		var req subscribeRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "body", "invalid request body")
		}
		if err := athleteService.SubscribeToCoach(c.UserContext(), coachID, req.AthleteID); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Подписка на тренера оформлена"})
	})
}
