package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"yelpcamp/internal/models"
	"yelpcamp/internal/services"
	"yelpcamp/internal/sessions"
)

const (
	localUserID      = "user_id"
	localCurrentUser = "current_user"
	localFormPath    = "form_path"
)

const msgLoginRequired = "You must be signed in first!"

// MethodOverride lets HTML forms send PUT, PATCH and DELETE as
// POST ?_method=VERB. It must be registered before any route.
func MethodOverride() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodPost {
			switch m := strings.ToUpper(c.Query("_method")); m {
			case fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
				c.Method(m)
			}
		}
		return c.Next()
	}
}

// LoadCurrentUser resolves the session's user into locals. A session bound to
// a user that no longer exists is ended.
func LoadCurrentUser(sm *sessions.Manager, users *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := sm.CurrentUserID(c)
		if err != nil {
			return err
		}
		if id == "" {
			return c.Next()
		}
		user, err := users.Get(c.Context(), id)
		switch {
		case err == nil:
			c.Locals(localUserID, user.ID)
			c.Locals(localCurrentUser, user)
		case services.KindOf(err) == services.KindNotFound:
			if err := sm.End(c); err != nil {
				return err
			}
		default:
			return err
		}
		return c.Next()
	}
}

func currentUserID(c *fiber.Ctx) string {
	id, _ := c.Locals(localUserID).(string)
	return id
}

func currentUser(c *fiber.Ctx) *models.User {
	u, _ := c.Locals(localCurrentUser).(*models.User)
	return u
}

// RequireLogin redirects anonymous visitors to /login, remembering where they
// were headed when it was a page view.
func RequireLogin(sm *sessions.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if currentUserID(c) != "" {
			return c.Next()
		}
		if c.Method() == fiber.MethodGet {
			if err := sm.SetReturnTo(c, c.OriginalURL()); err != nil {
				return err
			}
		}
		if err := sm.Flash(c, sessions.FlashError, msgLoginRequired); err != nil {
			return err
		}
		return c.Redirect("/login")
	}
}

// RequireListingAuthor lets the request through only for the author of listing :id.
func RequireListingAuthor(authz *services.Authorizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := authz.AuthorizeListingMutation(c.Context(), currentUserID(c), c.Params("id")); err != nil {
			return err
		}
		return c.Next()
	}
}

// RequireReviewAuthor lets the request through only for the author of review :reviewId on listing :id.
func RequireReviewAuthor(authz *services.Authorizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := authz.AuthorizeReviewMutation(c.Context(), currentUserID(c), c.Params("id"), c.Params("reviewId"))
		if err != nil {
			return err
		}
		return c.Next()
	}
}
