package sqlite

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"yelpcamp/internal/models"
)

type reviewRow struct {
	ID        string `db:"id"`
	ListingID string `db:"listing_id"`
	Body      string `db:"body"`
	Rating    int    `db:"rating"`
	AuthorID  string `db:"author_id"`
	CreatedAt string `db:"created_at"`
}

func (r reviewRow) model() models.Review {
	return models.Review{
		ID:        r.ID,
		ListingID: r.ListingID,
		Body:      r.Body,
		Rating:    r.Rating,
		AuthorID:  r.AuthorID,
		CreatedAt: parseTime(r.CreatedAt),
	}
}

const reviewColumns = `id, listing_id, body, rating, author_id, created_at`

func (q *queries) InsertReview(ctx context.Context, r *models.Review) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	r.CreatedAt = time.Now().UTC()
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO reviews (id, listing_id, body, rating, author_id, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.ListingID, r.Body, r.Rating, r.AuthorID, formatTime(r.CreatedAt))
	if err != nil {
		return translate("sqlite.InsertReview", err)
	}
	return nil
}

func (q *queries) GetReview(ctx context.Context, id string) (*models.Review, error) {
	var row reviewRow
	if err := q.db.GetContext(ctx, &row, `SELECT `+reviewColumns+` FROM reviews WHERE id = ?`, id); err != nil {
		return nil, translate("sqlite.GetReview", err)
	}
	r := row.model()
	return &r, nil
}

func (q *queries) GetReviews(ctx context.Context, ids []string) ([]models.Review, error) {
	if len(ids) == 0 {
		return []models.Review{}, nil
	}
	query, args, err := sqlx.In(`SELECT `+reviewColumns+` FROM reviews WHERE id IN (?)`, ids)
	if err != nil {
		return nil, translate("sqlite.GetReviews", err)
	}
	var rows []reviewRow
	if err := q.db.SelectContext(ctx, &rows, q.db.Rebind(query), args...); err != nil {
		return nil, translate("sqlite.GetReviews", err)
	}

	byID := make(map[string]models.Review, len(rows))
	for _, r := range rows {
		byID[r.ID] = r.model()
	}
	reviews := make([]models.Review, 0, len(byID))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			reviews = append(reviews, r)
		}
	}
	return reviews, nil
}

func (q *queries) DeleteReview(ctx context.Context, id string) error {
	if _, err := q.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id); err != nil {
		return translate("sqlite.DeleteReview", err)
	}
	return nil
}

func (q *queries) DeleteReviews(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args, err := sqlx.In(`DELETE FROM reviews WHERE id IN (?)`, ids)
	if err != nil {
		return 0, translate("sqlite.DeleteReviews", err)
	}
	res, err := q.db.ExecContext(ctx, q.db.Rebind(query), args...)
	if err != nil {
		return 0, translate("sqlite.DeleteReviews", err)
	}
	return res.RowsAffected()
}

func (q *queries) DeleteOrphanReviews(ctx context.Context) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
		DELETE FROM reviews
		WHERE NOT EXISTS (SELECT 1 FROM listings l WHERE l.id = reviews.listing_id)`)
	if err != nil {
		return 0, translate("sqlite.DeleteOrphanReviews", err)
	}
	return res.RowsAffected()
}

func (q *queries) DeleteAllReviews(ctx context.Context) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM reviews`)
	if err != nil {
		return 0, translate("sqlite.DeleteAllReviews", err)
	}
	return res.RowsAffected()
}
