package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"yelpcamp/internal/models"
	"yelpcamp/internal/services"
	"yelpcamp/internal/validation"
)

// listingInput is the HTML form shape. Numbers arrive as text so that a blank
// field reads as missing rather than as a decode failure.
type listingInput struct {
	Title        string   `form:"title"`
	Price        string   `form:"price"`
	Location     string   `form:"location"`
	Description  string   `form:"description"`
	DeleteImages []string `form:"deleteImages"`
}

type reviewInput struct {
	Rating string `form:"rating"`
	Body   string `form:"body"`
}

func isJSON(c *fiber.Ctx) bool {
	return strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEApplicationJSON)
}

func parseListingForm(c *fiber.Ctx) (models.ListingForm, error) {
	var form models.ListingForm
	if isJSON(c) {
		if err := c.BodyParser(&form); err != nil {
			return form, services.Validation("Invalid request body")
		}
	} else {
		var in listingInput
		if err := c.BodyParser(&in); err != nil {
			return form, services.Validation("Invalid request body")
		}
		price, err := optionalFloat("price", in.Price)
		if err != nil {
			return form, err
		}
		form = models.ListingForm{
			Title:        in.Title,
			Price:        price,
			Location:     in.Location,
			Description:  in.Description,
			DeleteImages: in.DeleteImages,
		}
	}
	form.Normalize()
	if err := validation.Struct(form); err != nil {
		return form, err
	}
	return form, nil
}

func parseReviewForm(c *fiber.Ctx) (models.ReviewForm, error) {
	var form models.ReviewForm
	if isJSON(c) {
		if err := c.BodyParser(&form); err != nil {
			return form, services.Validation("Invalid request body")
		}
	} else {
		var in reviewInput
		if err := c.BodyParser(&in); err != nil {
			return form, services.Validation("Invalid request body")
		}
		rating, err := optionalInt("rating", in.Rating)
		if err != nil {
			return form, err
		}
		form = models.ReviewForm{Rating: rating, Body: in.Body}
	}
	form.Normalize()
	if err := validation.Struct(form); err != nil {
		return form, err
	}
	return form, nil
}

func optionalFloat(field, s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, services.Validation(`"` + field + `" must be a number`)
	}
	return &v, nil
}

func optionalInt(field, s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, services.Validation(`"` + field + `" must be a number`)
	}
	return &v, nil
}

type normalizer interface {
	Normalize()
}

// parseBody decodes a JSON or form body into v, trims it and validates it.
func parseBody(c *fiber.Ctx, v any) error {
	if err := c.BodyParser(v); err != nil {
		return services.Validation("Invalid request body")
	}
	if n, ok := v.(normalizer); ok {
		n.Normalize()
	}
	return validation.Struct(v)
}
