package sessions

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(m *Manager) *fiber.App {
	app := fiber.New()
	app.Get("/login/:id", func(c *fiber.Ctx) error {
		return m.Establish(c, c.Params("id"))
	})
	app.Get("/welcome/:id", func(c *fiber.Ctx) error {
		if err := m.Establish(c, c.Params("id")); err != nil {
			return err
		}
		return m.Flash(c, FlashSuccess, "Welcome back!")
	})
	app.Get("/logout", func(c *fiber.Ctx) error {
		return m.End(c)
	})
	app.Get("/whoami", func(c *fiber.Ctx) error {
		state, err := m.State(c)
		if err != nil {
			return err
		}
		id, err := m.CurrentUserID(c)
		if err != nil {
			return err
		}
		return c.SendString(state.String() + ":" + id)
	})
	app.Get("/flash", func(c *fiber.Ctx) error {
		if err := m.Flash(c, FlashSuccess, "Welcome back!"); err != nil {
			return err
		}
		return m.Flash(c, FlashError, "Oops")
	})
	app.Get("/flashes", func(c *fiber.Ctx) error {
		f, err := m.Flashes(c)
		if err != nil {
			return err
		}
		return c.SendString(strings.Join(f.Success, "|") + ";" + strings.Join(f.Error, "|"))
	})
	app.Get("/remember", func(c *fiber.Ctx) error {
		return m.SetReturnTo(c, c.Query("to"))
	})
	app.Get("/return", func(c *fiber.Ctx) error {
		url, err := m.PopReturnTo(c, "/campgrounds")
		if err != nil {
			return err
		}
		return c.SendString(url)
	})
	return app
}

// client replays the session cookie across requests.
type client struct {
	t      *testing.T
	app    *fiber.App
	cookie string
}

func (cl *client) get(path string) (string, string) {
	cl.t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cl.cookie != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: cl.cookie})
	}
	resp, err := cl.app.Test(req)
	require.NoError(cl.t, err)
	defer resp.Body.Close()
	require.Equal(cl.t, http.StatusOK, resp.StatusCode)

	for _, ck := range resp.Cookies() {
		if ck.Name == CookieName {
			cl.cookie = ck.Value
		}
	}
	body, err := io.ReadAll(resp.Body)
	require.NoError(cl.t, err)
	return string(body), cl.cookie
}

func TestEstablishRotatesSessionID(t *testing.T) {
	cl := &client{t: t, app: newTestApp(NewManager(nil, false))}

	_, before := cl.get("/remember?to=/campgrounds/new")
	require.NotEmpty(t, before)

	body, _ := cl.get("/whoami")
	assert.Equal(t, "anonymous:", body)

	_, after := cl.get("/login/u1")
	assert.NotEqual(t, before, after)

	body, _ = cl.get("/whoami")
	assert.Equal(t, "authenticated:u1", body)

	body, _ = cl.get("/return")
	assert.Equal(t, "/campgrounds/new", body)
}

func TestWritesAfterEstablishKeepTheNewSession(t *testing.T) {
	cl := &client{t: t, app: newTestApp(NewManager(nil, false))}
	cl.get("/remember?to=/campgrounds")

	cl.get("/welcome/u2")
	body, _ := cl.get("/whoami")
	assert.Equal(t, "authenticated:u2", body)

	body, _ = cl.get("/flashes")
	assert.Equal(t, "Welcome back!;", body)
}

func TestEndReturnsToAnonymous(t *testing.T) {
	cl := &client{t: t, app: newTestApp(NewManager(nil, false))}
	cl.get("/login/u1")
	cl.get("/logout")

	body, _ := cl.get("/whoami")
	assert.Equal(t, "anonymous:", body)
}

func TestFlashesAreReadOnce(t *testing.T) {
	cl := &client{t: t, app: newTestApp(NewManager(nil, false))}
	cl.get("/flash")

	body, _ := cl.get("/flashes")
	assert.Equal(t, "Welcome back!;Oops", body)

	body, _ = cl.get("/flashes")
	assert.Equal(t, ";", body)
}

func TestPopReturnToDefaultsAndRejectsOffsite(t *testing.T) {
	cl := &client{t: t, app: newTestApp(NewManager(nil, false))}

	body, _ := cl.get("/return")
	assert.Equal(t, "/campgrounds", body)

	cl.get("/remember?to=//evil.example")
	body, _ = cl.get("/return")
	assert.Equal(t, "/campgrounds", body)
}

func TestCookieKey(t *testing.T) {
	key := CookieKey("thisshouldbeabettersecret")
	assert.Len(t, key, 44)
	assert.Equal(t, key, CookieKey("thisshouldbeabettersecret"))
	assert.NotEqual(t, key, CookieKey("other"))
}
