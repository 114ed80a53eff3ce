package handlers

import (
	"github.com/gofiber/fiber/v2"

	"yelpcamp/internal/models"
	"yelpcamp/internal/services"
	"yelpcamp/internal/sessions"
)

// Home renders the landing page.
func Home(sm *sessions.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return render(c, sm, "home", fiber.Map{"title": "YelpCamp"})
	}
}

// CampgroundIndex lists every campground with the cluster map data.
func CampgroundIndex(sm *sessions.Manager, listings *services.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		all, err := listings.List(c.Context())
		if err != nil {
			return err
		}
		return render(c, sm, "campgrounds/index", fiber.Map{
			"title":       "All Campgrounds",
			"campgrounds": all,
			"geojson":     models.ListingsFeatureCollection(all),
		})
	}
}

func CampgroundNew(sm *sessions.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return render(c, sm, "campgrounds/new", fiber.Map{"title": "New Campground"})
	}
}

// CampgroundCreate stores a new campground authored by the signed-in user.
func CampgroundCreate(sm *sessions.Manager, listings *services.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(localFormPath, "/campgrounds/new")
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
		return redirectWith(c, sm, sessions.FlashSuccess, "Successfully made a new campground!", "/campgrounds/"+l.ID)
	}
}

// CampgroundShow renders one campground with its reviews.
func CampgroundShow(sm *sessions.Manager, listings *services.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		detail, err := listings.Get(c.Context(), c.Params("id"))
		if err != nil {
			return err
		}
		return render(c, sm, "campgrounds/show", fiber.Map{
			"title":      detail.Title,
			"campground": detail,
		})
	}
}

func CampgroundEdit(sm *sessions.Manager, listings *services.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		detail, err := listings.Get(c.Context(), c.Params("id"))
		if err != nil {
			return err
		}
		return render(c, sm, "campgrounds/edit", fiber.Map{
			"title":      "Edit Campground",
			"campground": detail,
		})
	}
}

func CampgroundUpdate(sm *sessions.Manager, listings *services.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		c.Locals(localFormPath, "/campgrounds/"+id+"/edit")
		form, err := parseListingForm(c)
		if err != nil {
			return err
		}
		uploads, err := uploadsFrom(c)
		if err != nil {
			return err
		}
		l, err := listings.Update(c.Context(), id, form, uploads)
		if err != nil {
			return err
		}
		return redirectWith(c, sm, sessions.FlashSuccess, "Successfully updated campground!", "/campgrounds/"+l.ID)
	}
}

func CampgroundDelete(sm *sessions.Manager, listings *services.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := listings.Delete(c.Context(), c.Params("id")); err != nil {
			return err
		}
		return redirectWith(c, sm, sessions.FlashSuccess, "Successfully deleted campground", "/campgrounds")
	}
}
