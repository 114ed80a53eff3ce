package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"yelpcamp/internal/db"
	"yelpcamp/internal/geocode"
	"yelpcamp/internal/images"
	"yelpcamp/internal/models"
	"yelpcamp/internal/store"
	"yelpcamp/internal/store/sqlite"
	"yelpcamp/internal/validation"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	ctx := context.Background()
	conn, err := db.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	s := sqlite.New(conn)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(ctx))
	return s
}

type fakeGeocoder struct {
	mu      sync.Mutex
	results map[string]geocode.Result
	calls   int
}

func newFakeGeocoder() *fakeGeocoder {
	return &fakeGeocoder{results: map[string]geocode.Result{
		"Boulder, Colorado": {Geometry: models.NewPoint(-105.2705, 40.015), PlaceName: "Boulder, Colorado, United States"},
		"Moab, Utah":        {Geometry: models.NewPoint(-109.5498, 38.5733), PlaceName: "Moab, Utah, United States"},
	}}
}

func (g *fakeGeocoder) Forward(ctx context.Context, query string) (geocode.Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if r, ok := g.results[query]; ok {
		return r, nil
	}
	return geocode.Result{}, geocode.ErrNoMatch
}

type fakeImages struct {
	mu        sync.Mutex
	n         int
	stored    map[string]models.Image
	destroyed []string
}

func newFakeImages() *fakeImages {
	return &fakeImages{stored: map[string]models.Image{}}
}

func (f *fakeImages) Upload(ctx context.Context, u images.Upload) (models.Image, error) {
	if err := validation.Image(u.Name); err != nil {
		return models.Image{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	name := fmt.Sprintf("YelpCamp/img%d", f.n)
	img := models.Image{URL: "https://res.cloudinary.com/demo/image/upload/" + name + ".jpg", Filename: name}
	f.stored[name] = img
	return img, nil
}

func (f *fakeImages) Destroy(ctx context.Context, filename string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.stored, filename)
	f.destroyed = append(f.destroyed, filename)
	return nil
}

func upload(name string) images.Upload {
	return images.Upload{
		Name: name,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader("bytes")), nil
		},
	}
}

type fixture struct {
	store    store.Store
	geocoder *fakeGeocoder
	images   *fakeImages
	users    *UserService
	listings *ListingService
	reviews  *ReviewService
	authz    *Authorizer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := newTestStore(t)
	g := newFakeGeocoder()
	img := newFakeImages()
	return &fixture{
		store:    s,
		geocoder: g,
		images:   img,
		users:    NewUserService(s, NewCredentials(bcrypt.MinCost), NewTokens("test-secret")),
		listings: NewListingService(s, g, img),
		reviews:  NewReviewService(s),
		authz:    NewAuthorizer(s),
	}
}

func (f *fixture) register(t *testing.T, username string) *models.User {
	t.Helper()
	u, err := f.users.Register(context.Background(), models.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "Sup3r$ecret",
	})
	require.NoError(t, err)
	return u
}

func price(p float64) *float64 { return &p }
func rating(r int) *int        { return &r }

func listingForm(title, location string) models.ListingForm {
	return models.ListingForm{
		Title:       title,
		Price:       price(25),
		Location:    location,
		Description: "Shaded sites near the creek",
	}
}

func (f *fixture) createListing(t *testing.T, authorID string, uploads ...images.Upload) *models.Listing {
	t.Helper()
	l, err := f.listings.Create(context.Background(), authorID, listingForm("Sunny Ridge", "Boulder, Colorado"), uploads)
	require.NoError(t, err)
	return l
}
