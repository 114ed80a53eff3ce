// Package images uploads listing photos to a durable host and destroys them on request.
package images

import (
	"context"
	"errors"
	"io"
	"mime/multipart"

	"yelpcamp/internal/models"
	"yelpcamp/internal/validation"
)

// Folder groups uploads at hosts that support folders.
const Folder = "YelpCamp"

var ErrNotFound = errors.New("images: not found")

// Upload is one file received from a client.
type Upload struct {
	Name        string
	ContentType string
	Open        func() (io.ReadCloser, error)
}

// FromFileHeader wraps a multipart file part.
func FromFileHeader(fh *multipart.FileHeader) Upload {
	return Upload{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// Store is an image host. Upload returns the public URL and the identifier Destroy takes.
type Store interface {
	Upload(ctx context.Context, u Upload) (models.Image, error)
	Destroy(ctx context.Context, filename string) error
}

// Check rejects uploads that are not jpeg, jpg or png.
func Check(uploads []Upload) error {
	for _, u := range uploads {
		if err := validation.Image(u.Name); err != nil {
			return err
		}
	}
	return nil
}
