package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"yelpcamp/internal/models"
	"yelpcamp/internal/store"
)

const listingColumns = `id, title, price, description, location, place_name, geometry_type, longitude, latitude,
	images, author_id, review_ids, created_at, updated_at`

func scanListing(row scanner) (*models.Listing, error) {
	var (
		l        models.Listing
		lng, lat float64
	)
	err := row.Scan(&l.ID, &l.Title, &l.Price, &l.Description, &l.Location, &l.PlaceName,
		&l.Geometry.Type, &lng, &lat, &l.Images, &l.AuthorID, &l.ReviewIDs,
		&l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	l.Geometry.Coordinates = [2]float64{lng, lat}
	if l.Images == nil {
		l.Images = []models.Image{}
	}
	if l.ReviewIDs == nil {
		l.ReviewIDs = []string{}
	}
	return &l, nil
}

func imagesJSON(images []models.Image) (string, error) {
	if images == nil {
		images = []models.Image{}
	}
	b, err := json.Marshal(images)
	if err != nil {
		return "", fmt.Errorf("encode images: %w", err)
	}
	return string(b), nil
}

func (q *queries) ListListings(ctx context.Context) ([]models.Listing, error) {
	rows, err := q.db.Query(ctx, `SELECT `+listingColumns+` FROM listings ORDER BY created_at DESC`)
	if err != nil {
		return nil, translate("postgres.ListListings", err)
	}
	defer rows.Close()

	listings := []models.Listing{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, translate("postgres.ListListings", err)
		}
		listings = append(listings, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, translate("postgres.ListListings", err)
	}
	return listings, nil
}

func (q *queries) GetListing(ctx context.Context, id string) (*models.Listing, error) {
	l, err := scanListing(q.db.QueryRow(ctx, `SELECT `+listingColumns+` FROM listings WHERE id = $1`, id))
	if err != nil {
		return nil, translate("postgres.GetListing", err)
	}
	return l, nil
}

func (q *queries) InsertListing(ctx context.Context, l *models.Listing) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	l.CreatedAt, l.UpdatedAt = now, now
	if l.Geometry.Type == "" {
		l.Geometry.Type = "Point"
	}
	if l.ReviewIDs == nil {
		l.ReviewIDs = []string{}
	}
	images, err := imagesJSON(l.Images)
	if err != nil {
		return fmt.Errorf("postgres.InsertListing: %w", err)
	}

	_, err = q.db.Exec(ctx, `
		INSERT INTO listings (id, title, price, description, location, place_name, geometry_type, longitude, latitude,
			images, author_id, review_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $14, $6, $7, $8, $9::jsonb, $10, $11, $12, $13)`,
		l.ID, l.Title, l.Price, l.Description, l.Location, l.Geometry.Type,
		l.Geometry.Longitude(), l.Geometry.Latitude(), images, l.AuthorID, l.ReviewIDs,
		l.CreatedAt, l.UpdatedAt, l.PlaceName)
	if err != nil {
		return translate("postgres.InsertListing", err)
	}
	return nil
}

func (q *queries) UpdateListing(ctx context.Context, l *models.Listing) error {
	images, err := imagesJSON(l.Images)
	if err != nil {
		return fmt.Errorf("postgres.UpdateListing: %w", err)
	}
	l.UpdatedAt = time.Now().UTC()

	tag, err := q.db.Exec(ctx, `
		UPDATE listings SET
			title         = $2,
			price         = $3,
			description   = $4,
			location      = $5,
			geometry_type = $6,
			longitude     = $7,
			latitude      = $8,
			images        = $9::jsonb,
			updated_at    = $10,
			place_name    = $11
		WHERE id = $1`,
		l.ID, l.Title, l.Price, l.Description, l.Location, l.Geometry.Type,
		l.Geometry.Longitude(), l.Geometry.Latitude(), images, l.UpdatedAt, l.PlaceName)
	if err != nil {
		return translate("postgres.UpdateListing", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("postgres.UpdateListing: %w", store.ErrNotFound)
	}
	return nil
}

func (q *queries) DeleteListing(ctx context.Context, id string) (*models.Listing, error) {
	l, err := scanListing(q.db.QueryRow(ctx, `DELETE FROM listings WHERE id = $1 RETURNING `+listingColumns, id))
	if err != nil {
		return nil, translate("postgres.DeleteListing", err)
	}
	return l, nil
}

func (q *queries) AppendReviewRef(ctx context.Context, listingID, reviewID string) error {
	tag, err := q.db.Exec(ctx, `
		UPDATE listings
		SET review_ids = array_append(array_remove(review_ids, $2::text), $2::text), updated_at = now()
		WHERE id = $1`, listingID, reviewID)
	if err != nil {
		return translate("postgres.AppendReviewRef", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("postgres.AppendReviewRef: %w", store.ErrNotFound)
	}
	return nil
}

func (q *queries) RemoveReviewRef(ctx context.Context, listingID, reviewID string) error {
	_, err := q.db.Exec(ctx, `
		UPDATE listings
		SET review_ids = array_remove(review_ids, $2::text), updated_at = now()
		WHERE id = $1`, listingID, reviewID)
	if err != nil {
		return translate("postgres.RemoveReviewRef", err)
	}
	return nil
}

func (q *queries) DeleteAllListings(ctx context.Context) (int64, error) {
	tag, err := q.db.Exec(ctx, `DELETE FROM listings`)
	if err != nil {
		return 0, translate("postgres.DeleteAllListings", err)
	}
	return tag.RowsAffected(), nil
}
