package images

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"yelpcamp/internal/models"
	"yelpcamp/internal/validation"
)

// GridFS keeps uploads in a MongoDB GridFS bucket served at /images/:id.
type GridFS struct {
	bucket  *gridfs.Bucket
	baseURL string
}

// Connect dials MongoDB and pings the primary.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("unable to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("unable to ping mongo: %w", err)
	}
	return client, nil
}

func NewGridFS(db *mongo.Database, baseURL string) (*GridFS, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(strings.ToLower(Folder)))
	if err != nil {
		return nil, fmt.Errorf("open gridfs bucket: %w", err)
	}
	return &GridFS{bucket: bucket, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (g *GridFS) Upload(ctx context.Context, u Upload) (models.Image, error) {
	if err := validation.Image(u.Name); err != nil {
		return models.Image{}, err
	}
	src, err := u.Open()
	if err != nil {
		return models.Image{}, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	stream, err := g.bucket.OpenUploadStream(filepath.Base(u.Name))
	if err != nil {
		return models.Image{}, fmt.Errorf("open gridfs upload: %w", err)
	}
	if _, err := io.Copy(stream, src); err != nil {
		stream.Abort()
		return models.Image{}, fmt.Errorf("write gridfs upload: %w", err)
	}
	if err := stream.Close(); err != nil {
		return models.Image{}, fmt.Errorf("close gridfs upload: %w", err)
	}

	id := stream.FileID.(primitive.ObjectID).Hex()
	return models.Image{URL: g.baseURL + "/images/" + id, Filename: id}, nil
}

// Destroy deletes the file and its chunks. Unknown ids are a no-op.
func (g *GridFS) Destroy(ctx context.Context, filename string) error {
	id, err := primitive.ObjectIDFromHex(filename)
	if err != nil {
		return nil
	}
	if err := g.bucket.Delete(id); err != nil && !errors.Is(err, gridfs.ErrFileNotFound) {
		return fmt.Errorf("delete gridfs file: %w", err)
	}
	return nil
}

// Open streams a stored file with its content type.
func (g *GridFS) Open(ctx context.Context, filename string) (io.ReadCloser, string, error) {
	id, err := primitive.ObjectIDFromHex(filename)
	if err != nil {
		return nil, "", ErrNotFound
	}
	stream, err := g.bucket.OpenDownloadStream(id)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("open gridfs download: %w", err)
	}
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(stream.GetFile().Name)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return stream, contentType, nil
}
