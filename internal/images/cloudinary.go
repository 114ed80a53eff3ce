package images

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"yelpcamp/internal/models"
	"yelpcamp/internal/validation"
)

// Cloudinary uploads to the YelpCamp folder of a Cloudinary account.
type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinary(cloudName, apiKey, apiSecret string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("configure cloudinary: %w", err)
	}
	return &Cloudinary{cld: cld}, nil
}

func (c *Cloudinary) Upload(ctx context.Context, u Upload) (models.Image, error) {
	if err := validation.Image(u.Name); err != nil {
		return models.Image{}, err
	}
	src, err := u.Open()
	if err != nil {
		return models.Image{}, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	res, err := c.cld.Upload.Upload(ctx, src, uploader.UploadParams{Folder: Folder})
	if err != nil {
		return models.Image{}, fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return models.Image{}, fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	if res.SecureURL == "" || res.PublicID == "" {
		return models.Image{}, errors.New("cloudinary upload: empty response")
	}
	return models.Image{URL: res.SecureURL, Filename: res.PublicID}, nil
}

// Destroy deletes the asset by public id. "not found" is a no-op.
func (c *Cloudinary) Destroy(ctx context.Context, filename string) error {
	res, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: filename})
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy: %s", res.Error.Message)
	}
	if res.Result != "ok" && res.Result != "not found" {
		return fmt.Errorf("cloudinary destroy: unexpected result %q", res.Result)
	}
	return nil
}
