package handlers

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yelpcamp/internal/models"
	"yelpcamp/internal/services"
	"yelpcamp/internal/sessions"
	"yelpcamp/internal/validation"
)

func TestMethodOverride(t *testing.T) {
	app := fiber.New()
	app.Use(MethodOverride())
	app.Put("/thing", func(c *fiber.Ctx) error { return c.SendString("put") })
	app.Delete("/thing", func(c *fiber.Ctx) error { return c.SendString("delete") })
	app.Post("/thing", func(c *fiber.Ctx) error { return c.SendString("post") })
	app.Get("/thing", func(c *fiber.Ctx) error { return c.SendString("get") })

	cases := []struct {
		method, query, want string
	}{
		{http.MethodPost, "?_method=PUT", "put"},
		{http.MethodPost, "?_method=delete", "delete"},
		{http.MethodPost, "", "post"},
		{http.MethodPost, "?_method=TRACE", "post"},
		{http.MethodGet, "?_method=DELETE", "get"},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(tc.method, "/thing"+tc.query, nil))
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, tc.want, string(body), tc.method+tc.query)
	}
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, 400, statusOf(services.KindValidation))
	assert.Equal(t, 404, statusOf(services.KindNotFound))
	assert.Equal(t, 403, statusOf(services.KindPermission))
	assert.Equal(t, 502, statusOf(services.KindExternal))
	assert.Equal(t, 401, statusOf(services.KindAuthentication))
	assert.Equal(t, 409, statusOf(services.KindConflict))
	assert.Equal(t, 500, statusOf(services.KindInternal))
}

func TestClassify(t *testing.T) {
	err := classify(&validation.Error{Messages: []string{`"title" is required`}})
	assert.Equal(t, services.KindValidation, services.KindOf(err))
	assert.Equal(t, `"title" is required`, services.PublicMessage(err))

	err = classify(fiber.ErrNotFound)
	assert.Equal(t, services.KindNotFound, services.KindOf(err))
	assert.Equal(t, msgPageNotFound, services.PublicMessage(err))

	plain := errors.New("disk on fire")
	assert.Equal(t, plain, classify(plain))
}

func newAPIApp(routes func(app *fiber.App)) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(sessions.NewManager(nil, false))})
	routes(app)
	return app
}

func TestAPIErrorsAreJSON(t *testing.T) {
	app := newAPIApp(func(app *fiber.App) {
		app.Get("/api/forbidden", func(c *fiber.Ctx) error {
			return services.Permission(services.MsgPermissionDenied)
		})
		app.Get("/api/boom", func(c *fiber.Ctx) error {
			return errors.New("connection reset by peer")
		})
		app.Get("/api/geocode", func(c *fiber.Ctx) error {
			return services.External(services.MsgGeocodeFailed, errors.New("timeout"))
		})
	})

	cases := []struct {
		path   string
		status int
		body   string
	}{
		{"/api/forbidden", 403, `{"error":"You do not have permission to do that!"}`},
		{"/api/boom", 500, `{"error":"Oh No, Something Went Wrong!"}`},
		{"/api/geocode", 502, `{"error":"Could not geocode that location. Please try again and enter a valid location."}`},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.path, nil))
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, tc.status, resp.StatusCode, tc.path)
		assert.JSONEq(t, tc.body, string(body), tc.path)
	}
}

func TestHTMLErrorsRedirect(t *testing.T) {
	app := newAPIApp(func(app *fiber.App) {
		app.Get("/campgrounds/:id/edit", func(c *fiber.Ctx) error {
			return services.Permission(services.MsgPermissionDenied)
		})
		app.Post("/campgrounds", func(c *fiber.Ctx) error {
			c.Locals(localFormPath, "/campgrounds/new")
			return services.External(services.MsgGeocodeFailed, errors.New("no match"))
		})
		app.Post("/login", func(c *fiber.Ctx) error {
			return services.Authentication(services.MsgInvalidCredentials)
		})
		app.Post("/register", func(c *fiber.Ctx) error {
			return services.Conflict(services.MsgUsernameTaken)
		})
	})

	cases := []struct {
		method, path, location string
	}{
		{http.MethodGet, "/campgrounds/abc/edit", "/campgrounds/abc"},
		{http.MethodPost, "/campgrounds", "/campgrounds/new"},
		{http.MethodPost, "/login", "/login"},
		{http.MethodPost, "/register", "/register"},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(tc.method, tc.path, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusFound, resp.StatusCode, tc.path)
		assert.Equal(t, tc.location, resp.Header.Get("Location"), tc.path)
	}
}

func TestAuthMiddleware(t *testing.T) {
	tokens := services.NewTokens("test-secret")
	app := newAPIApp(func(app *fiber.App) {
		app.Get("/api/me", AuthMiddleware(tokens), func(c *fiber.Ctx) error {
			return c.SendString(currentUserID(c))
		})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/me", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token, err := tokens.Issue(&models.User{ID: "u-1", Username: "alice"})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "u-1", string(body))
}

func TestParseListingForm(t *testing.T) {
	var got struct {
		price *float64
		err   error
	}
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		form, err := parseListingForm(c)
		got.price, got.err = form.Price, err
		return nil
	})

	post := func(values url.Values) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
		req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
		_, err := app.Test(req)
		require.NoError(t, err)
	}
	valid := url.Values{
		"title":       {"Sunny Ridge"},
		"price":       {"12.5"},
		"location":    {"Boulder, Colorado"},
		"description": {"Shaded sites near the creek"},
	}

	post(valid)
	require.NoError(t, got.err)
	require.NotNil(t, got.price)
	assert.Equal(t, 12.5, *got.price)

	valid.Set("price", "cheap")
	post(valid)
	assert.Equal(t, services.KindValidation, services.KindOf(got.err))
	assert.Equal(t, `"price" must be a number`, services.PublicMessage(got.err))

	valid.Set("price", "")
	post(valid)
	var verr *validation.Error
	require.ErrorAs(t, got.err, &verr)
	assert.Contains(t, verr.Error(), `"price" is required`)

	valid.Set("price", "12.5")
	valid.Set("title", "  a  ")
	post(valid)
	require.ErrorAs(t, got.err, &verr)
	assert.Contains(t, verr.Error(), `"title" length must be at least 3 characters long`)

	valid.Set("title", "Sunny Ridge")
	valid.Set("location", "     ")
	post(valid)
	require.ErrorAs(t, got.err, &verr)
	assert.Contains(t, verr.Error(), `"location" is required`)
}
