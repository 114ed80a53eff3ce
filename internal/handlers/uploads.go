package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"yelpcamp/internal/images"
)

const uploadField = "image"

// uploadsFrom collects the files posted under the image field. Requests that
// are not multipart carry no uploads. Browsers send an empty part when no
// file was chosen; those are skipped.
func uploadsFrom(c *fiber.Ctx) ([]images.Upload, error) {
	if !strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid multipart form")
	}
	var uploads []images.Upload
	for _, fh := range form.File[uploadField] {
		if fh.Filename == "" && fh.Size == 0 {
			continue
		}
		uploads = append(uploads, images.FromFileHeader(fh))
	}
	return uploads, nil
}
