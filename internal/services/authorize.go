package services

import (
	"context"
	"errors"

	"yelpcamp/internal/store"
)

// Authorizer decides whether a user may mutate a listing or review. It only reads.
type Authorizer struct {
	store store.Queries
}

func NewAuthorizer(s store.Queries) *Authorizer {
	return &Authorizer{store: s}
}

// AuthorizeListingMutation allows only the listing's author. A missing
// listing is denied the same way as a foreign one.
func (a *Authorizer) AuthorizeListingMutation(ctx context.Context, userID, listingID string) error {
	l, err := a.store.GetListing(ctx, listingID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Permission(MsgPermissionDenied)
		}
		return Internal(err)
	}
	if userID == "" || l.AuthorID != userID {
		return Permission(MsgPermissionDenied)
	}
	return nil
}

// AuthorizeReviewMutation allows only the review's author, and only through
// the listing the review belongs to.
func (a *Authorizer) AuthorizeReviewMutation(ctx context.Context, userID, listingID, reviewID string) error {
	r, err := a.store.GetReview(ctx, reviewID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Permission(MsgPermissionDenied)
		}
		return Internal(err)
	}
	if userID == "" || r.AuthorID != userID || r.ListingID != listingID {
		return Permission(MsgPermissionDenied)
	}
	return nil
}
