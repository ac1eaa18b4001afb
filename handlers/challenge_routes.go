// handlers/challenge_routes.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"run-tracker/services"
)

type challengeView struct {
	ID        uint   `json:"id"`
	AthleteID uint   `json:"athlete"`
	FullName  string `json:"full_name"`
	Code      string `json:"code"`
	CreatedAt string `json:"created_at"`
}

func SetupChallengeRoutes(app fiber.Router, challengeService *services.ChallengeService) {
	app.Get("/challenges", func(c *fiber.Ctx) error {
		athleteID, err := queryUint(c, "athlete")
		if err != nil {
			return respondError(c, err)
		}
		challenges, err := challengeService.List(c.UserContext(), athleteID)
		if err != nil {
			return respondError(c, err)
		}

		out := make([]challengeView, len(challenges))
		for i, ch := range challenges {
			out[i] = challengeView{
				ID:        ch.ID,
				AthleteID: ch.AthleteID,
				FullName:  ch.FullName,
				Code:      ch.Code,
				CreatedAt: formatTimestamp(ch.CreatedAt),
			}
		}
		return c.JSON(out)
	})
}
