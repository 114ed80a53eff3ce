package images

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"yelpcamp/internal/models"
	"yelpcamp/internal/validation"
)

// Disk keeps uploads in a local directory served at /uploads.
type Disk struct {
	dir     string
	baseURL string
}

func NewDisk(dir, baseURL string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Disk{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (d *Disk) Dir() string { return d.dir }

func (d *Disk) Upload(ctx context.Context, u Upload) (models.Image, error) {
	if err := validation.Image(u.Name); err != nil {
		return models.Image{}, err
	}
	src, err := u.Open()
	if err != nil {
		return models.Image{}, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	filename := uuid.New().String() + strings.ToLower(filepath.Ext(u.Name))
	destPath := filepath.Join(d.dir, filename)
	dst, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return models.Image{}, fmt.Errorf("failed to save file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(destPath)
		return models.Image{}, fmt.Errorf("failed to save file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(destPath)
		return models.Image{}, fmt.Errorf("failed to save file: %w", err)
	}

	return models.Image{URL: d.baseURL + "/uploads/" + filename, Filename: filename}, nil
}

// Destroy removes the file. Unknown filenames are a no-op.
func (d *Disk) Destroy(ctx context.Context, filename string) error {
	err := os.Remove(filepath.Join(d.dir, filepath.Base(filename)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}
