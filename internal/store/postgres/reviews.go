package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"yelpcamp/internal/models"
)

const reviewColumns = `id, listing_id, body, rating, author_id, created_at`

func scanReview(row scanner) (*models.Review, error) {
	var r models.Review
	if err := row.Scan(&r.ID, &r.ListingID, &r.Body, &r.Rating, &r.AuthorID, &r.CreatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

func (q *queries) InsertReview(ctx context.Context, r *models.Review) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	r.CreatedAt = time.Now().UTC()
	_, err := q.db.Exec(ctx,
		`INSERT INTO reviews (id, listing_id, body, rating, author_id, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		r.ID, r.ListingID, r.Body, r.Rating, r.AuthorID, r.CreatedAt)
	if err != nil {
		return translate("postgres.InsertReview", err)
	}
	return nil
}

func (q *queries) GetReview(ctx context.Context, id string) (*models.Review, error) {
	r, err := scanReview(q.db.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id))
	if err != nil {
		return nil, translate("postgres.GetReview", err)
	}
	return r, nil
}

func (q *queries) GetReviews(ctx context.Context, ids []string) ([]models.Review, error) {
	if len(ids) == 0 {
		return []models.Review{}, nil
	}
	rows, err := q.db.Query(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, translate("postgres.GetReviews", err)
	}
	defer rows.Close()

	byID := make(map[string]models.Review, len(ids))
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, translate("postgres.GetReviews", err)
		}
		byID[r.ID] = *r
	}
	if err := rows.Err(); err != nil {
		return nil, translate("postgres.GetReviews", err)
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
	if _, err := q.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id); err != nil {
		return translate("postgres.DeleteReview", err)
	}
	return nil
}

func (q *queries) DeleteReviews(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := q.db.Exec(ctx, `DELETE FROM reviews WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, translate("postgres.DeleteReviews", err)
	}
	return tag.RowsAffected(), nil
}

func (q *queries) DeleteOrphanReviews(ctx context.Context) (int64, error) {
	tag, err := q.db.Exec(ctx, `
		DELETE FROM reviews r
		WHERE NOT EXISTS (SELECT 1 FROM listings l WHERE l.id = r.listing_id)`)
	if err != nil {
		return 0, translate("postgres.DeleteOrphanReviews", err)
	}
	return tag.RowsAffected(), nil
}

func (q *queries) DeleteAllReviews(ctx context.Context) (int64, error) {
	tag, err := q.db.Exec(ctx, `DELETE FROM reviews`)
	if err != nil {
		return 0, translate("postgres.DeleteAllReviews", err)
	}
	return tag.RowsAffected(), nil
}
