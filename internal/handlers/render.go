package handlers

import (
	"github.com/gofiber/fiber/v2"

	"yelpcamp/internal/sessions"
)

const layout = "layouts/boilerplate"

// render executes a page inside the site layout with the signed-in user and
// any pending flash messages. Rendering consumes the flashes.
func render(c *fiber.Ctx, sm *sessions.Manager, name string, data fiber.Map) error {
	flashes, err := sm.Flashes(c)
	if err != nil {
		return err
	}
	if data == nil {
		data = fiber.Map{}
	}
	data["currentUser"] = currentUser(c)
	data["success"] = flashes.Success
	data["error"] = flashes.Error
	return c.Render(name, data, layout)
}

func renderError(c *fiber.Ctx, sm *sessions.Manager, status int, msg string) error {
	c.Status(status)
	err := render(c, sm, "error", fiber.Map{"title": "Error", "status": status, "message": msg})
	if err != nil {
		return c.Status(status).SendString(msg)
	}
	return nil
}

// redirectWith flashes msg under kind and redirects to location.
func redirectWith(c *fiber.Ctx, sm *sessions.Manager, kind, msg, location string) error {
	if err := sm.Flash(c, kind, msg); err != nil {
		return err
	}
	return c.Redirect(location)
}
