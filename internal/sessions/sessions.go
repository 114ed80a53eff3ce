// Package sessions binds browser sessions to users and carries flash messages
// and the post-login redirect between requests.
package sessions

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	CookieName = "session"
	Expiration = 7 * 24 * time.Hour

	keyUserID   = "user_id"
	keyReturnTo = "return_to"
	keyFlash    = "flash_"

	flashSep = "\x1f"
)

type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flashes are the messages queued for the next rendered page.
type Flashes struct {
	Success []string
	Error   []string
}

type Manager struct {
	store *session.Store
}

// NewManager creates a Manager. A nil storage keeps sessions in process memory.
func NewManager(storage fiber.Storage, secureCookie bool) *Manager {
	return &Manager{store: session.New(session.Config{
		Storage:        storage,
		Expiration:     Expiration,
		KeyLookup:      "cookie:" + CookieName,
		CookieHTTPOnly: true,
		CookieSecure:   secureCookie,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
	})}
}

// CookieKey derives the encryptcookie key from the session secret.
func CookieKey(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return base64.StdEncoding.EncodeToString(sum[:])
}

func (m *Manager) update(c *fiber.Ctx, fn func(sess *session.Session) error) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if err := fn(sess); err != nil {
		return err
	}
	id := sess.ID()
	if err := sess.Save(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	// Later lookups in this request must see the id just saved, which may
	// differ from the one the browser sent after a regeneration.
	c.Request().Header.SetCookie(CookieName, id)
	return nil
}

func (m *Manager) get(c *fiber.Ctx, key string) (string, error) {
	sess, err := m.store.Get(c)
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}
	v, _ := sess.Get(key).(string)
	return v, nil
}

// CurrentUserID returns the bound user id, or "" for an anonymous session.
func (m *Manager) CurrentUserID(c *fiber.Ctx) (string, error) {
	return m.get(c, keyUserID)
}

func (m *Manager) State(c *fiber.Ctx) (State, error) {
	id, err := m.CurrentUserID(c)
	if err != nil || id == "" {
		return Anonymous, err
	}
	return Authenticated, nil
}

// Establish binds the session to userID under a fresh session id.
func (m *Manager) Establish(c *fiber.Ctx, userID string) error {
	return m.update(c, func(sess *session.Session) error {
		if err := sess.Regenerate(); err != nil {
			return fmt.Errorf("regenerate session: %w", err)
		}
		sess.Set(keyUserID, userID)
		return nil
	})
}

// End unbinds the user. The session id is rotated and other values survive.
func (m *Manager) End(c *fiber.Ctx) error {
	return m.update(c, func(sess *session.Session) error {
		sess.Delete(keyUserID)
		if err := sess.Regenerate(); err != nil {
			return fmt.Errorf("regenerate session: %w", err)
		}
		return nil
	})
}

// Flash queues msg under kind (FlashSuccess or FlashError).
func (m *Manager) Flash(c *fiber.Ctx, kind, msg string) error {
	return m.update(c, func(sess *session.Session) error {
		key := keyFlash + kind
		if prev, _ := sess.Get(key).(string); prev != "" {
			msg = prev + flashSep + msg
		}
		sess.Set(key, msg)
		return nil
	})
}

// Flashes returns and clears the queued messages.
func (m *Manager) Flashes(c *fiber.Ctx) (Flashes, error) {
	var f Flashes
	err := m.update(c, func(sess *session.Session) error {
		f.Success = pop(sess, keyFlash+FlashSuccess)
		f.Error = pop(sess, keyFlash+FlashError)
		return nil
	})
	return f, err
}

func pop(sess *session.Session, key string) []string {
	v, _ := sess.Get(key).(string)
	if v == "" {
		return nil
	}
	sess.Delete(key)
	return strings.Split(v, flashSep)
}

// SetReturnTo remembers where to send the user after signing in.
func (m *Manager) SetReturnTo(c *fiber.Ctx, url string) error {
	return m.update(c, func(sess *session.Session) error {
		sess.Set(keyReturnTo, url)
		return nil
	})
}

// PopReturnTo returns and clears the remembered url, defaulting to fallback.
func (m *Manager) PopReturnTo(c *fiber.Ctx, fallback string) (string, error) {
	url := fallback
	err := m.update(c, func(sess *session.Session) error {
		if v, _ := sess.Get(keyReturnTo).(string); isLocalPath(v) {
			url = v
		}
		sess.Delete(keyReturnTo)
		return nil
	})
	return url, err
}

// isLocalPath rejects absolute and scheme-relative urls so the redirect stays on this site.
func isLocalPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") && !strings.HasPrefix(p, "/\\")
}
