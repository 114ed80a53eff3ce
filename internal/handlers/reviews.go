package handlers

import (
	"github.com/gofiber/fiber/v2"

	"yelpcamp/internal/services"
	"yelpcamp/internal/sessions"
)

func ReviewCreate(sm *sessions.Manager, reviews *services.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		form, err := parseReviewForm(c)
		if err != nil {
			return err
		}
		if _, err := reviews.Create(c.Context(), id, currentUserID(c), form); err != nil {
			return err
		}
		return redirectWith(c, sm, sessions.FlashSuccess, "Created new review!", "/campgrounds/"+id)
	}
}

func ReviewDelete(sm *sessions.Manager, reviews *services.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if err := reviews.Delete(c.Context(), id, c.Params("reviewId")); err != nil {
			return err
		}
		return redirectWith(c, sm, sessions.FlashSuccess, "Successfully deleted review", "/campgrounds/"+id)
	}
}
