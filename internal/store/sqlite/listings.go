package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"yelpcamp/internal/models"
	"yelpcamp/internal/store"
)

type listingRow struct {
	ID           string  `db:"id"`
	Title        string  `db:"title"`
	Price        float64 `db:"price"`
	Description  string  `db:"description"`
	Location     string  `db:"location"`
	PlaceName    string  `db:"place_name"`
	GeometryType string  `db:"geometry_type"`
	Longitude    float64 `db:"longitude"`
	Latitude     float64 `db:"latitude"`
	Images       string  `db:"images"`
	AuthorID     string  `db:"author_id"`
	ReviewIDs    string  `db:"review_ids"`
	CreatedAt    string  `db:"created_at"`
	UpdatedAt    string  `db:"updated_at"`
}

func (r listingRow) model() (*models.Listing, error) {
	l := &models.Listing{
		ID:          r.ID,
		Title:       r.Title,
		Price:       r.Price,
		Description: r.Description,
		Location:    r.Location,
		PlaceName:   r.PlaceName,
		Geometry:    models.Geometry{Type: r.GeometryType, Coordinates: [2]float64{r.Longitude, r.Latitude}},
		AuthorID:    r.AuthorID,
		CreatedAt:   parseTime(r.CreatedAt),
		UpdatedAt:   parseTime(r.UpdatedAt),
	}
	if err := json.Unmarshal([]byte(r.Images), &l.Images); err != nil {
		return nil, fmt.Errorf("decode images of %s: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(r.ReviewIDs), &l.ReviewIDs); err != nil {
		return nil, fmt.Errorf("decode review ids of %s: %w", r.ID, err)
	}
	if l.Images == nil {
		l.Images = []models.Image{}
	}
	if l.ReviewIDs == nil {
		l.ReviewIDs = []string{}
	}
	return l, nil
}

func encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

const listingColumns = `id, title, price, description, location, place_name, geometry_type, longitude, latitude,
	images, author_id, review_ids, created_at, updated_at`

func (q *queries) ListListings(ctx context.Context) ([]models.Listing, error) {
	var rows []listingRow
	if err := q.db.SelectContext(ctx, &rows, `SELECT `+listingColumns+` FROM listings ORDER BY created_at DESC`); err != nil {
		return nil, translate("sqlite.ListListings", err)
	}
	listings := make([]models.Listing, 0, len(rows))
	for _, r := range rows {
		l, err := r.model()
		if err != nil {
			return nil, fmt.Errorf("sqlite.ListListings: %w", err)
		}
		listings = append(listings, *l)
	}
	return listings, nil
}

func (q *queries) GetListing(ctx context.Context, id string) (*models.Listing, error) {
	var row listingRow
	if err := q.db.GetContext(ctx, &row, `SELECT `+listingColumns+` FROM listings WHERE id = ?`, id); err != nil {
		return nil, translate("sqlite.GetListing", err)
	}
	l, err := row.model()
	if err != nil {
		return nil, fmt.Errorf("sqlite.GetListing: %w", err)
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
	if l.Images == nil {
		l.Images = []models.Image{}
	}
	if l.ReviewIDs == nil {
		l.ReviewIDs = []string{}
	}
	images, err := encodeJSON(l.Images)
	if err != nil {
		return fmt.Errorf("sqlite.InsertListing: encode images: %w", err)
	}
	reviewIDs, err := encodeJSON(l.ReviewIDs)
	if err != nil {
		return fmt.Errorf("sqlite.InsertListing: encode review ids: %w", err)
	}

	_, err = q.db.ExecContext(ctx, `
		INSERT INTO listings (id, title, price, description, location, place_name, geometry_type, longitude, latitude,
			images, author_id, review_ids, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.Title, l.Price, l.Description, l.Location, l.PlaceName, l.Geometry.Type,
		l.Geometry.Longitude(), l.Geometry.Latitude(), images, l.AuthorID, reviewIDs,
		formatTime(l.CreatedAt), formatTime(l.UpdatedAt))
	if err != nil {
		return translate("sqlite.InsertListing", err)
	}
	return nil
}

func (q *queries) UpdateListing(ctx context.Context, l *models.Listing) error {
	if l.Images == nil {
		l.Images = []models.Image{}
	}
	images, err := encodeJSON(l.Images)
	if err != nil {
		return fmt.Errorf("sqlite.UpdateListing: encode images: %w", err)
	}
	l.UpdatedAt = time.Now().UTC()

	res, err := q.db.ExecContext(ctx, `
		UPDATE listings SET
			title = ?, price = ?, description = ?, location = ?, place_name = ?,
			geometry_type = ?, longitude = ?, latitude = ?,
			images = ?, updated_at = ?
		WHERE id = ?`,
		l.Title, l.Price, l.Description, l.Location, l.PlaceName,
		l.Geometry.Type, l.Geometry.Longitude(), l.Geometry.Latitude(),
		images, formatTime(l.UpdatedAt), l.ID)
	if err != nil {
		return translate("sqlite.UpdateListing", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("sqlite.UpdateListing: %w", store.ErrNotFound)
	}
	return nil
}

func (q *queries) DeleteListing(ctx context.Context, id string) (*models.Listing, error) {
	l, err := q.GetListing(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("sqlite.DeleteListing: %w", err)
	}
	if _, err := q.db.ExecContext(ctx, `DELETE FROM listings WHERE id = ?`, id); err != nil {
		return nil, translate("sqlite.DeleteListing", err)
	}
	return l, nil
}

// setReviewIDs overwrites the reference set. Callers read it first; the single
// connection serialises the read-modify-write.
func (q *queries) setReviewIDs(ctx context.Context, listingID string, ids []string) error {
	encoded, err := encodeJSON(ids)
	if err != nil {
		return err
	}
	_, err = q.db.ExecContext(ctx, `UPDATE listings SET review_ids = ?, updated_at = ? WHERE id = ?`,
		encoded, formatTime(time.Now()), listingID)
	return err
}

func (q *queries) AppendReviewRef(ctx context.Context, listingID, reviewID string) error {
	l, err := q.GetListing(ctx, listingID)
	if err != nil {
		return fmt.Errorf("sqlite.AppendReviewRef: %w", err)
	}
	if l.HasReview(reviewID) {
		return nil
	}
	if err := q.setReviewIDs(ctx, listingID, append(l.ReviewIDs, reviewID)); err != nil {
		return translate("sqlite.AppendReviewRef", err)
	}
	return nil
}

func (q *queries) RemoveReviewRef(ctx context.Context, listingID, reviewID string) error {
	l, err := q.GetListing(ctx, listingID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("sqlite.RemoveReviewRef: %w", err)
	}
	kept := make([]string, 0, len(l.ReviewIDs))
	for _, id := range l.ReviewIDs {
		if id != reviewID {
			kept = append(kept, id)
		}
	}
	if len(kept) == len(l.ReviewIDs) {
		return nil
	}
	if err := q.setReviewIDs(ctx, listingID, kept); err != nil {
		return translate("sqlite.RemoveReviewRef", err)
	}
	return nil
}

func (q *queries) DeleteAllListings(ctx context.Context) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM listings`)
	if err != nil {
		return 0, translate("sqlite.DeleteAllListings", err)
	}
	return res.RowsAffected()
}
