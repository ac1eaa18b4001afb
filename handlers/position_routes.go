// handlers/position_routes.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"run-tracker/services"
)

type createPositionRequest struct {
	RunID     uint     `json:"run"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	DateTime  *string  `json:"date_time"`
}

func (r createPositionRequest) input() (services.PositionInput, error) {
	verr := &services.ValidationError{}
	if r.RunID == 0 {
		verr.Add("run", "run is required")
	}
	if r.Latitude == nil {
		verr.Add("latitude", "latitude is required")
	}
	if r.Longitude == nil {
		verr.Add("longitude", "longitude is required")
	}
	in := services.PositionInput{RunID: r.RunID}
	if r.DateTime != nil {
		t, err := parseTimestamp(*r.DateTime)
		if err != nil {
			verr.Add("date_time", err.Error())
		}
		in.DateTime = t
	}
	if len(verr.Fields) > 0 {
		return in, verr
	}
	in.Latitude, in.Longitude = *r.Latitude, *r.Longitude
	return in, nil
}

func SetupPositionRoutes(app fiber.Router, positionService *services.PositionService) {
	app.Post("/positions", func(c *fiber.Ctx) error {
		var req createPositionRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "body", "invalid request body")
		}
		in, err := req.input()
		if err != nil {
			return respondError(c, err)
		}

		pos, err := positionService.Ingest(c.UserContext(), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(newPositionView(*pos))
	})

	app.Get("/positions", func(c *fiber.Ctx) error {
		runID, err := queryUint(c, "run")
		if err != nil {
			return respondError(c, err)
		}
		if runID == 0 {
			return badRequest(c, "run", "run is required")
		}

		positions, err := positionService.List(c.UserContext(), runID)
		if err != nil {
			return respondError(c, err)
		}
		out := make([]positionView, len(positions))
		for i, p := range positions {
			out[i] = newPositionView(p)
		}
		return c.JSON(out)
	})
}
