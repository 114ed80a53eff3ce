// Package storetest holds behaviour checks run against every store backend.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yelpcamp/internal/models"
	"yelpcamp/internal/store"
)

// Run exercises s. Each subtest gets a freshly migrated, empty store from newStore.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Run("UserUniqueness", func(t *testing.T) { testUserUniqueness(t, newStore(t)) })
	t.Run("ListingRoundTrip", func(t *testing.T) { testListingRoundTrip(t, newStore(t)) })
	t.Run("ReviewRefs", func(t *testing.T) { testReviewRefs(t, newStore(t)) })
	t.Run("DeleteListing", func(t *testing.T) { testDeleteListing(t, newStore(t)) })
	t.Run("TxRollback", func(t *testing.T) { testTxRollback(t, newStore(t)) })
	t.Run("OrphanReviews", func(t *testing.T) { testOrphanReviews(t, newStore(t)) })
}

func seedUser(t *testing.T, s store.Store, username string) *models.User {
	t.Helper()
	u := &models.User{Email: username + "@example.com", Username: username, PasswordHash: "x"}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

func seedListing(t *testing.T, s store.Store, authorID string) *models.Listing {
	t.Helper()
	l := &models.Listing{
		Title:       "Sunny Ridge",
		Price:       25,
		Description: "Shaded sites near the creek",
		Location:    "Boulder, Colorado",
		PlaceName:   "Boulder, Colorado, United States",
		Geometry:    models.NewPoint(-105.27, 40.01),
		Images:      []models.Image{{URL: "https://img.example/upload/a.jpg", Filename: "YelpCamp/a"}},
		AuthorID:    authorID,
	}
	require.NoError(t, s.InsertListing(context.Background(), l))
	return l
}

func testUserUniqueness(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := seedUser(t, s, "camper")
	require.NotEmpty(t, u.ID)

	dup := &models.User{Email: "other@example.com", Username: "camper", PasswordHash: "x"}
	err := s.CreateUser(ctx, dup)
	assert.ErrorIs(t, err, store.ErrDuplicate)

	got, err := s.GetUserByUsername(ctx, "camper")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "camper@example.com", got.Email)

	_, err = s.GetUser(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	users, err := s.GetUsers(ctx, []string{u.ID, "missing"})
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, "camper", users[u.ID].Username)
}

func testListingRoundTrip(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := seedUser(t, s, "author")
	l := seedListing(t, s, u.ID)

	got, err := s.GetListing(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sunny Ridge", got.Title)
	assert.Equal(t, 25.0, got.Price)
	assert.Equal(t, "Boulder, Colorado, United States", got.PlaceName)
	assert.Equal(t, "Point", got.Geometry.Type)
	assert.InDelta(t, -105.27, got.Geometry.Longitude(), 1e-9)
	assert.InDelta(t, 40.01, got.Geometry.Latitude(), 1e-9)
	assert.Equal(t, l.Images, got.Images)
	assert.Empty(t, got.ReviewIDs)

	got.Title = "Shady Ridge"
	got.Images = []models.Image{}
	require.NoError(t, s.UpdateListing(ctx, got))

	again, err := s.GetListing(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shady Ridge", again.Title)
	assert.Empty(t, again.Images)

	err = s.UpdateListing(ctx, &models.Listing{ID: "missing", Geometry: models.NewPoint(0, 0)})
	assert.ErrorIs(t, err, store.ErrNotFound)

	all, err := s.ListListings(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func testReviewRefs(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := seedUser(t, s, "reviewer")
	l := seedListing(t, s, u.ID)

	r := &models.Review{ListingID: l.ID, Body: "Great spot", Rating: 5, AuthorID: u.ID}
	require.NoError(t, s.InsertReview(ctx, r))
	require.NoError(t, s.AppendReviewRef(ctx, l.ID, r.ID))
	require.NoError(t, s.AppendReviewRef(ctx, l.ID, r.ID))

	got, err := s.GetListing(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{r.ID}, got.ReviewIDs)

	err = s.AppendReviewRef(ctx, "missing", r.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	reviews, err := s.GetReviews(ctx, []string{"missing", r.ID})
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 5, reviews[0].Rating)

	require.NoError(t, s.RemoveReviewRef(ctx, l.ID, r.ID))
	require.NoError(t, s.RemoveReviewRef(ctx, "missing", r.ID))
	require.NoError(t, s.DeleteReview(ctx, r.ID))
	require.NoError(t, s.DeleteReview(ctx, r.ID))

	got, err = s.GetListing(ctx, l.ID)
	require.NoError(t, err)
	assert.Empty(t, got.ReviewIDs)

	_, err = s.GetReview(ctx, r.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testDeleteListing(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := seedUser(t, s, "owner")
	l := seedListing(t, s, u.ID)

	deleted, err := s.DeleteListing(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, l.ID, deleted.ID)
	assert.Equal(t, l.Images, deleted.Images)

	_, err = s.DeleteListing(ctx, l.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testTxRollback(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := seedUser(t, s, "txuser")
	l := seedListing(t, s, u.ID)

	boom := errors.New("boom")
	err := s.InTx(ctx, func(q store.Queries) error {
		r := &models.Review{ListingID: l.ID, Body: "Lovely", Rating: 4, AuthorID: u.ID}
		if err := q.InsertReview(ctx, r); err != nil {
			return err
		}
		if err := q.AppendReviewRef(ctx, l.ID, r.ID); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.GetListing(ctx, l.ID)
	require.NoError(t, err)
	assert.Empty(t, got.ReviewIDs)
	n, err := s.DeleteOrphanReviews(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	all, err := s.DeleteAllReviews(ctx)
	require.NoError(t, err)
	assert.Zero(t, all)
}

func testOrphanReviews(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := seedUser(t, s, "pruner")
	l := seedListing(t, s, u.ID)

	kept := &models.Review{ListingID: l.ID, Body: "Still here", Rating: 3, AuthorID: u.ID}
	orphan := &models.Review{ListingID: "gone", Body: "Left behind", Rating: 2, AuthorID: u.ID}
	require.NoError(t, s.InsertReview(ctx, kept))
	require.NoError(t, s.InsertReview(ctx, orphan))

	n, err := s.DeleteOrphanReviews(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = s.GetReview(ctx, kept.ID)
	assert.NoError(t, err)

	n, err = s.DeleteReviews(ctx, []string{kept.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = s.DeleteAllListings(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
