// handlers/item_routes.go
package handlers

import (
	"context"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"run-tracker/logger"
	"run-tracker/services"
	"run-tracker/utils"
)

// PictureUploader stores an uploaded picture and returns its public URL.
type PictureUploader interface {
	UploadPicture(ctx context.Context, fileHeader *multipart.FileHeader) (string, error)
}

type createItemRequest struct {
	Name      string   `json:"name"`
	UID       string   `json:"uid"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Picture   string   `json:"picture"`
	Value     *int     `json:"value"`
}

func (r createItemRequest) input() (services.ItemInput, error) {
	verr := &services.ValidationError{}
	if r.Latitude == nil {
		verr.Add("latitude", "latitude is required")
	}
	if r.Longitude == nil {
		verr.Add("longitude", "longitude is required")
	}
	if len(verr.Fields) > 0 {
		return services.ItemInput{}, verr
	}
	return services.ItemInput{
		Name:      strings.TrimSpace(r.Name),
		UID:       strings.TrimSpace(r.UID),
		Latitude:  *r.Latitude,
		Longitude: *r.Longitude,
		Picture:   r.Picture,
		Value:     r.Value,
	}, nil
}

// parseItemForm reads a multipart catalogue entry. Numeric fields that fail
// to parse are reported per field.
func parseItemForm(c *fiber.Ctx) (createItemRequest, error) {
	req := createItemRequest{
		Name:    c.FormValue("name"),
		UID:     c.FormValue("uid"),
		Picture: c.FormValue("picture"),
	}
	verr := &services.ValidationError{}
	floatField := func(name string) *float64 {
		raw := c.FormValue(name)
		if raw == "" {
			return nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			verr.Add(name, "must be a number")
			return nil
		}
		return &v
	}
	req.Latitude = floatField("latitude")
	req.Longitude = floatField("longitude")
	if raw := c.FormValue("value"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			verr.Add("value", "must be an integer")
		} else {
			req.Value = &v
		}
	}
	if len(verr.Fields) > 0 {
		return req, verr
	}
	return req, nil
}

func SetupItemRoutes(app fiber.Router, artifactService *services.ArtifactService, uploader PictureUploader) {
	app.Get("/collectible_item", func(c *fiber.Ctx) error {
		items, err := artifactService.ListItems(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(items)
	})

	app.Get("/collectible_item/:id", func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		item, err := artifactService.GetItem(c.UserContext(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(item)
	})

	app.Post("/collectible_item", func(c *fiber.Ctx) error {
		var req createItemRequest
		isMultipart := strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm)

		if isMultipart {
			var err error
			if req, err = parseItemForm(c); err != nil {
				return respondError(c, err)
			}
			if fileHeader, err := c.FormFile("picture_file"); err == nil {
				if uploader == nil {
					return badRequest(c, "picture_file", "picture uploads are not configured")
				}
				if fileHeader.Size > utils.MaxPictureSize {
					return badRequest(c, "picture_file", "picture exceeds the 5MB limit")
				}
				if !utils.IsPicture(fileHeader) {
					return badRequest(c, "picture_file", "unsupported picture format")
				}
				url, err := uploader.UploadPicture(c.UserContext(), fileHeader)
				if err != nil {
					logger.Error.Printf("❌ [ITEM] picture upload failed: %v", err)
					return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
						"error": "failed to upload picture",
						"cause": err.Error(),
					})
				}
				req.Picture = url
			}
		} else if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "body", "invalid request body")
		}

		in, err := req.input()
		if err != nil {
			return respondError(c, err)
		}
		item, err := artifactService.CreateItem(c.UserContext(), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	})
}
