package handlers

import (
	"github.com/gofiber/fiber/v2"

	"yelpcamp/internal/models"
	"yelpcamp/internal/services"
	"yelpcamp/internal/store"
)

// APIRegister creates an account and returns a token pair.
func APIRegister(users *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.RegisterRequest
		if err := parseBody(c, &req); err != nil {
			return err
		}
		if _, err := users.Register(c.Context(), req); err != nil {
			return err
		}
		resp, err := users.Login(c.Context(), models.LoginRequest{Username: req.Username, Password: req.Password})
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(resp)
	}
}

func APILogin(users *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.LoginRequest
		if err := parseBody(c, &req); err != nil {
			return err
		}
		resp, err := users.Login(c.Context(), req)
		if err != nil {
			return err
		}
		return c.JSON(resp)
	}
}

func APIRefresh(users *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			RefreshToken string `json:"refresh_token" form:"refresh_token" validate:"required"`
		}
		if err := parseBody(c, &body); err != nil {
			return err
		}
		resp, err := users.Refresh(c.Context(), body.RefreshToken)
		if err != nil {
			return err
		}
		return c.JSON(resp)
	}
}

func APIListCampgrounds(listings *services.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		all, err := listings.List(c.Context())
		if err != nil {
			return err
		}
		return c.JSON(all)
	}
}

// APICampgroundsGeoJSON serves the cluster map feature collection.
func APICampgroundsGeoJSON(listings *services.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		all, err := listings.List(c.Context())
		if err != nil {
			return err
		}
		return c.JSON(models.ListingsFeatureCollection(all))
	}
}

func APIGetCampground(listings *services.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		detail, err := listings.Get(c.Context(), c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"campground":     detail,
			"average_rating": detail.AverageRating(),
		})
	}
}

// APICreateCampground accepts JSON, or multipart when images are attached.
func APICreateCampground(listings *services.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := parseListingForm(c)
		if err != nil {
			return err
		}
		uploads, err := uploadsFrom(c)
		if err != nil {
			return err
		}
		l, err := listings.Create(c.Context(), currentUserID(c), form, uploads)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(l)
	}
}

func APIUpdateCampground(listings *services.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := parseListingForm(c)
		if err != nil {
			return err
		}
		uploads, err := uploadsFrom(c)
		if err != nil {
			return err
		}
		l, err := listings.Update(c.Context(), c.Params("id"), form, uploads)
		if err != nil {
			return err
		}
		return c.JSON(l)
	}
}

func APIDeleteCampground(listings *services.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := listings.Delete(c.Context(), c.Params("id")); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func APICreateReview(reviews *services.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := parseReviewForm(c)
		if err != nil {
			return err
		}
		r, err := reviews.Create(c.Context(), c.Params("id"), currentUserID(c), form)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(r)
	}
}

func APIDeleteReview(reviews *services.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := reviews.Delete(c.Context(), c.Params("id"), c.Params("reviewId")); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// Health reports whether the store is reachable.
func Health(s store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := s.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
