package handlers

import (
	"github.com/gofiber/fiber/v2"

	"yelpcamp/internal/models"
	"yelpcamp/internal/services"
	"yelpcamp/internal/sessions"
)

func RegisterForm(sm *sessions.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return render(c, sm, "users/register", fiber.Map{"title": "Register"})
	}
}

// Register creates an account and signs the new user in.
func Register(sm *sessions.Manager, users *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.RegisterRequest
		if err := parseBody(c, &req); err != nil {
			return err
		}
		user, err := users.Register(c.Context(), req)
		if err != nil {
			return err
		}
		if err := sm.Establish(c, user.ID); err != nil {
			return err
		}
		return redirectWith(c, sm, sessions.FlashSuccess, "Welcome to Yelp Camp!", "/campgrounds")
	}
}

func LoginForm(sm *sessions.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return render(c, sm, "users/login", fiber.Map{"title": "Login"})
	}
}

// Login signs the user in and returns them to the page that asked for it.
func Login(sm *sessions.Manager, users *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.LoginRequest
		if err := parseBody(c, &req); err != nil {
			return err
		}
		user, err := users.Authenticate(c.Context(), req)
		if err != nil {
			return err
		}
		returnTo, err := sm.PopReturnTo(c, "/campgrounds")
		if err != nil {
			return err
		}
		if err := sm.Establish(c, user.ID); err != nil {
			return err
		}
		return redirectWith(c, sm, sessions.FlashSuccess, "Welcome back!", returnTo)
	}
}

func Logout(sm *sessions.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := sm.End(c); err != nil {
			return err
		}
		return redirectWith(c, sm, sessions.FlashSuccess, "Goodbye!", "/campgrounds")
	}
}
