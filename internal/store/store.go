// Package store defines the persistence contract shared by the postgres and
// sqlite backends.
//
// The storage engines do not enforce the listing/review reference set; the
// services layer keeps it consistent by bracketing related writes in InTx.
package store

import (
	"context"
	"errors"

	"yelpcamp/internal/models"
)

var (
	ErrNotFound  = errors.New("store: not found")
	ErrDuplicate = errors.New("store: duplicate key")
)

// Queries is the set of operations available both on the store and inside a transaction.
type Queries interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// GetUsers returns the users that exist among ids, keyed by id.
	GetUsers(ctx context.Context, ids []string) (map[string]*models.User, error)

	ListListings(ctx context.Context) ([]models.Listing, error)
	GetListing(ctx context.Context, id string) (*models.Listing, error)
	InsertListing(ctx context.Context, l *models.Listing) error
	// UpdateListing saves the editable fields, geometry and images. The review set is untouched.
	UpdateListing(ctx context.Context, l *models.Listing) error
	// DeleteListing removes the listing and returns it as it was stored.
	DeleteListing(ctx context.Context, id string) (*models.Listing, error)
	// AppendReviewRef adds reviewID to the listing's set exactly once.
	AppendReviewRef(ctx context.Context, listingID, reviewID string) error
	// RemoveReviewRef is a no-op when the listing or the reference is missing.
	RemoveReviewRef(ctx context.Context, listingID, reviewID string) error
	DeleteAllListings(ctx context.Context) (int64, error)

	InsertReview(ctx context.Context, r *models.Review) error
	GetReview(ctx context.Context, id string) (*models.Review, error)
	// GetReviews returns the reviews that exist among ids, in the order of ids.
	GetReviews(ctx context.Context, ids []string) ([]models.Review, error)
	// DeleteReview is a no-op when the review is missing.
	DeleteReview(ctx context.Context, id string) error
	DeleteReviews(ctx context.Context, ids []string) (int64, error)
	// DeleteOrphanReviews removes reviews whose listing no longer exists.
	DeleteOrphanReviews(ctx context.Context) (int64, error)
	DeleteAllReviews(ctx context.Context) (int64, error)
}

// Store is a Queries bound to a connection pool.
type Store interface {
	Queries
	// InTx runs fn in a transaction, committing when fn returns nil.
	InTx(ctx context.Context, fn func(q Queries) error) error
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
