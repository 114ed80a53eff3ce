package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"yelpcamp/internal/services"
	"yelpcamp/internal/sessions"
	"yelpcamp/internal/utils"
	"yelpcamp/internal/validation"
)

const msgPageNotFound = "Page Not Found"

// statusOf maps a service error kind to its HTTP status.
func statusOf(kind services.Kind) int {
	switch kind {
	case services.KindValidation:
		return fiber.StatusBadRequest
	case services.KindNotFound:
		return fiber.StatusNotFound
	case services.KindPermission:
		return fiber.StatusForbidden
	case services.KindExternal:
		return fiber.StatusBadGateway
	case services.KindAuthentication:
		return fiber.StatusUnauthorized
	case services.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// classify turns validation and framework errors into service errors.
func classify(err error) error {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return services.Validation(verr.Error())
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch fe.Code {
		case fiber.StatusNotFound:
			return services.NotFound(msgPageNotFound)
		case fiber.StatusUnauthorized:
			return services.Authentication(fe.Message)
		case fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge, fiber.StatusUnprocessableEntity:
			return services.Validation(fe.Message)
		}
	}
	return err
}

func isAPI(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), "/api/") || c.Path() == "/api"
}

// ErrorHandler renders failures as JSON under /api and as pages or
// flash-and-redirect responses everywhere else.
func ErrorHandler(sm *sessions.Manager) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		err = classify(err)
		kind := services.KindOf(err)
		if kind == services.KindInternal || kind == services.KindExternal {
			utils.LogError(err, c.Method()+" "+c.Path())
		}
		if isAPI(c) {
			return c.Status(statusOf(kind)).JSON(fiber.Map{"error": services.PublicMessage(err)})
		}
		return htmlError(c, sm, kind, err)
	}
}

func htmlError(c *fiber.Ctx, sm *sessions.Manager, kind services.Kind, err error) error {
	msg := services.PublicMessage(err)
	redirect := ""
	switch kind {
	case services.KindNotFound:
		if msg == services.MsgListingNotFound {
			redirect = "/campgrounds"
		}
	case services.KindPermission:
		redirect = "/campgrounds"
		if id := c.Params("id"); id != "" {
			redirect += "/" + id
		}
	case services.KindExternal:
		redirect, _ = c.Locals(localFormPath).(string)
		if redirect == "" {
			redirect = "/campgrounds"
		}
	case services.KindAuthentication:
		redirect = "/login"
	case services.KindConflict:
		redirect = "/register"
	}

	if redirect != "" {
		if ferr := sm.Flash(c, sessions.FlashError, msg); ferr != nil {
			utils.LogError(ferr, "flash error")
		}
		return c.Redirect(redirect)
	}
	return renderError(c, sm, statusOf(kind), msg)
}

// NotFound is the catch-all for unmatched routes.
func NotFound() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, msgPageNotFound)
	}
}
