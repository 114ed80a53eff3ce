package handlers

import (
	"context"
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"yelpcamp/internal/images"
)

// ImageOpener streams stored images by id.
type ImageOpener interface {
	Open(ctx context.Context, id string) (io.ReadCloser, string, error)
}

// ServeImage streams an image kept in the database-backed host.
func ServeImage(opener ImageOpener) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rc, contentType, err := opener.Open(c.Context(), c.Params("id"))
		if err != nil {
			if errors.Is(err, images.ErrNotFound) {
				return fiber.ErrNotFound
			}
			return err
		}
		c.Set(fiber.HeaderContentType, contentType)
		c.Set(fiber.HeaderCacheControl, "public, max-age=31536000, immutable")
		return c.SendStream(rc)
	}
}
