package services

import (
	"context"
	"errors"
	"fmt"

	"yelpcamp/internal/geocode"
	"yelpcamp/internal/images"
	"yelpcamp/internal/models"
	"yelpcamp/internal/store"
	"yelpcamp/internal/utils"
	"yelpcamp/internal/validation"
)

type ListingService struct {
	store    store.Store
	geocoder geocode.Geocoder
	images   images.Store
}

func NewListingService(s store.Store, g geocode.Geocoder, img images.Store) *ListingService {
	return &ListingService{store: s, geocoder: g, images: img}
}

// List returns every listing, newest first.
func (s *ListingService) List(ctx context.Context) ([]models.Listing, error) {
	listings, err := s.store.ListListings(ctx)
	if err != nil {
		return nil, Internal(err)
	}
	return listings, nil
}

// Get returns the listing with its author and reviews resolved. Dangling
// review references are skipped and missing authors are left nil.
func (s *ListingService) Get(ctx context.Context, id string) (*models.ListingDetail, error) {
	l, err := s.store.GetListing(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &Error{Kind: KindNotFound, Message: MsgListingNotFound, Err: err}
		}
		return nil, Internal(err)
	}

	reviews, err := s.store.GetReviews(ctx, l.ReviewIDs)
	if err != nil {
		return nil, Internal(err)
	}

	userIDs := make([]string, 0, len(reviews)+1)
	userIDs = append(userIDs, l.AuthorID)
	for _, r := range reviews {
		userIDs = append(userIDs, r.AuthorID)
	}
	users, err := s.store.GetUsers(ctx, userIDs)
	if err != nil {
		return nil, Internal(err)
	}

	detail := &models.ListingDetail{
		Listing: *l,
		Author:  users[l.AuthorID],
		Reviews: make([]models.ReviewDetail, 0, len(reviews)),
	}
	for _, r := range reviews {
		detail.Reviews = append(detail.Reviews, models.ReviewDetail{Review: r, Author: users[r.AuthorID]})
	}
	return detail, nil
}

func (s *ListingService) geocode(ctx context.Context, location string) (geocode.Result, error) {
	res, err := s.geocoder.Forward(ctx, location)
	if err != nil {
		return geocode.Result{}, External(MsgGeocodeFailed, err)
	}
	return res, nil
}

// upload stores every file or none: on failure the files already stored are destroyed.
func (s *ListingService) upload(ctx context.Context, uploads []images.Upload) ([]models.Image, error) {
	stored := make([]models.Image, 0, len(uploads))
	for _, u := range uploads {
		img, err := s.images.Upload(ctx, u)
		if err != nil {
			s.destroy(context.WithoutCancel(ctx), stored)
			var verr *validation.Error
			if errors.As(err, &verr) {
				return nil, Validation(verr.Error())
			}
			return nil, External(MsgImageUploadFailed, err)
		}
		stored = append(stored, img)
	}
	return stored, nil
}

// destroy removes images at the host, logging failures.
func (s *ListingService) destroy(ctx context.Context, imgs []models.Image) {
	for _, img := range imgs {
		if err := s.images.Destroy(ctx, img.Filename); err != nil {
			utils.LogError(err, "destroy image "+img.Filename)
		}
	}
}

func checkUploads(uploads []images.Upload) error {
	if err := images.Check(uploads); err != nil {
		return Validation(err.Error())
	}
	return nil
}

// Create geocodes the location, uploads the images and stores the listing.
// Nothing is persisted when the location cannot be geocoded.
func (s *ListingService) Create(ctx context.Context, authorID string, form models.ListingForm, uploads []images.Upload) (*models.Listing, error) {
	if err := checkForm(&form); err != nil {
		return nil, err
	}
	if err := checkUploads(uploads); err != nil {
		return nil, err
	}
	geo, err := s.geocode(ctx, form.Location)
	if err != nil {
		return nil, err
	}
	imgs, err := s.upload(ctx, uploads)
	if err != nil {
		return nil, err
	}

	l := &models.Listing{
		Title:       form.Title,
		Price:       *form.Price,
		Description: form.Description,
		Location:    form.Location,
		PlaceName:   geo.PlaceName,
		Geometry:    geo.Geometry,
		Images:      imgs,
		AuthorID:    authorID,
	}
	if err := s.store.InsertListing(ctx, l); err != nil {
		s.destroy(context.WithoutCancel(ctx), imgs)
		return nil, Internal(err)
	}
	return l, nil
}

// Update saves the edited fields, appends new uploads and removes the images
// named in form.DeleteImages. The location is geocoded again only when it changed.
// Removed images are destroyed at the host after the listing is saved.
func (s *ListingService) Update(ctx context.Context, id string, form models.ListingForm, uploads []images.Upload) (*models.Listing, error) {
	if err := checkForm(&form); err != nil {
		return nil, err
	}
	if err := checkUploads(uploads); err != nil {
		return nil, err
	}
	current, err := s.store.GetListing(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &Error{Kind: KindNotFound, Message: MsgListingNotFound, Err: err}
		}
		return nil, Internal(err)
	}

	location := form.Location
	var geo *geocode.Result
	if location != current.Location || current.PlaceName == "" {
		res, err := s.geocode(ctx, location)
		if err != nil {
			return nil, err
		}
		geo = &res
	}

	added, err := s.upload(ctx, uploads)
	if err != nil {
		return nil, err
	}

	var (
		updated *models.Listing
		removed []models.Image
	)
	err = s.store.InTx(ctx, func(q store.Queries) error {
		l, err := q.GetListing(ctx, id)
		if err != nil {
			return err
		}
		l.Title = form.Title
		l.Price = *form.Price
		l.Description = form.Description
		l.Location = location
		if geo != nil {
			l.Geometry = geo.Geometry
			l.PlaceName = geo.PlaceName
		}

		kept := l.WithoutImages(form.DeleteImages)
		removed = removedImages(l.Images, kept)
		l.Images = append(kept, added...)

		if err := q.UpdateListing(ctx, l); err != nil {
			return err
		}
		updated = l
		return nil
	})
	if err != nil {
		s.destroy(context.WithoutCancel(ctx), added)
		if errors.Is(err, store.ErrNotFound) {
			return nil, &Error{Kind: KindNotFound, Message: MsgListingNotFound, Err: err}
		}
		return nil, Internal(err)
	}

	s.destroy(ctx, removed)
	return updated, nil
}

func removedImages(before, kept []models.Image) []models.Image {
	keep := make(map[string]struct{}, len(kept))
	for _, img := range kept {
		keep[img.Filename] = struct{}{}
	}
	var removed []models.Image
	for _, img := range before {
		if _, ok := keep[img.Filename]; !ok {
			removed = append(removed, img)
		}
	}
	return removed
}

// Delete removes the listing and every review it references in one
// transaction, then destroys its images at the host.
func (s *ListingService) Delete(ctx context.Context, id string) error {
	var deleted *models.Listing
	err := s.store.InTx(ctx, func(q store.Queries) error {
		l, err := q.DeleteListing(ctx, id)
		if err != nil {
			return err
		}
		if _, err := q.DeleteReviews(ctx, l.ReviewIDs); err != nil {
			return fmt.Errorf("cascade reviews of %s: %w", id, err)
		}
		deleted = l
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &Error{Kind: KindNotFound, Message: MsgListingNotFound, Err: err}
		}
		return Internal(err)
	}

	s.destroy(ctx, deleted.Images)
	return nil
}

// PruneOrphans deletes reviews whose listing no longer exists.
func (s *ListingService) PruneOrphans(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteOrphanReviews(ctx)
	if err != nil {
		return 0, Internal(err)
	}
	return n, nil
}
