package services

import (
	"context"
	"errors"

	"yelpcamp/internal/models"
	"yelpcamp/internal/store"
)

type ReviewService struct {
	store store.Store
}

func NewReviewService(s store.Store) *ReviewService {
	return &ReviewService{store: s}
}

// Create stores the review and adds it to the listing's review set in one transaction.
func (s *ReviewService) Create(ctx context.Context, listingID, authorID string, form models.ReviewForm) (*models.Review, error) {
	if err := checkForm(&form); err != nil {
		return nil, err
	}
	review := &models.Review{
		ListingID: listingID,
		Body:      form.Body,
		Rating:    *form.Rating,
		AuthorID:  authorID,
	}
	err := s.store.InTx(ctx, func(q store.Queries) error {
		if _, err := q.GetListing(ctx, listingID); err != nil {
			return err
		}
		if err := q.InsertReview(ctx, review); err != nil {
			return err
		}
		return q.AppendReviewRef(ctx, listingID, review.ID)
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &Error{Kind: KindNotFound, Message: MsgListingNotFound, Err: err}
		}
		return nil, Internal(err)
	}
	return review, nil
}

// Delete drops the reference from the listing and the review itself. Either
// may already be gone.
func (s *ReviewService) Delete(ctx context.Context, listingID, reviewID string) error {
	err := s.store.InTx(ctx, func(q store.Queries) error {
		if err := q.RemoveReviewRef(ctx, listingID, reviewID); err != nil {
			return err
		}
		return q.DeleteReview(ctx, reviewID)
	})
	if err != nil {
		return Internal(err)
	}
	return nil
}
