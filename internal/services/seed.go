package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"yelpcamp/internal/models"
	"yelpcamp/internal/store"
)

type seedCity struct {
	City, State string
	Lat, Lng    float64
}

var seedCities = []seedCity{
	{"New York", "New York", 40.7128, -74.0060},
	{"Los Angeles", "California", 34.0522, -118.2437},
	{"Chicago", "Illinois", 41.8781, -87.6298},
	{"Houston", "Texas", 29.7604, -95.3698},
	{"Phoenix", "Arizona", 33.4484, -112.0740},
	{"Philadelphia", "Pennsylvania", 39.9526, -75.1652},
	{"San Antonio", "Texas", 29.4241, -98.4936},
	{"San Diego", "California", 32.7157, -117.1611},
	{"Dallas", "Texas", 32.7767, -96.7970},
	{"Austin", "Texas", 30.2672, -97.7431},
	{"Jacksonville", "Florida", 30.3322, -81.6557},
	{"Columbus", "Ohio", 39.9612, -82.9988},
	{"Charlotte", "North Carolina", 35.2271, -80.8431},
	{"Indianapolis", "Indiana", 39.7684, -86.1581},
	{"Seattle", "Washington", 47.6062, -122.3321},
	{"Denver", "Colorado", 39.7392, -104.9903},
	{"Boulder", "Colorado", 40.0150, -105.2705},
	{"Nashville", "Tennessee", 36.1627, -86.7816},
	{"Portland", "Oregon", 45.5051, -122.6750},
	{"Las Vegas", "Nevada", 36.1699, -115.1398},
	{"Albuquerque", "New Mexico", 35.0844, -106.6504},
	{"Tucson", "Arizona", 32.2226, -110.9747},
	{"Salt Lake City", "Utah", 40.7608, -111.8910},
	{"Boise", "Idaho", 43.6150, -116.2023},
	{"Asheville", "North Carolina", 35.5951, -82.5515},
	{"Flagstaff", "Arizona", 35.1983, -111.6513},
	{"Bozeman", "Montana", 45.6770, -111.0429},
	{"Anchorage", "Alaska", 61.2181, -149.9003},
	{"Burlington", "Vermont", 44.4759, -73.2121},
	{"Duluth", "Minnesota", 46.7867, -92.1005},
}

var (
	seedDescriptors = []string{
		"Forest", "Ancient", "Petrified", "Roaring", "Cascade", "Tumbling", "Silent",
		"Redwood", "Bullfrog", "Maple", "Misty", "Elk", "Grizzly", "Ocean", "Sea", "Sky",
		"Dusty", "Diamond",
	}
	seedPlaces = []string{
		"Flats", "Village", "Canyon", "Pond", "Group Camp", "Horse Camp", "Ghost Town",
		"Camp", "Dispersed Camp", "Backcountry", "River", "Creek", "Creekside", "Bay",
		"Spring", "Bayshore", "Sands", "Mule Camp", "Hunting Camp", "Cliffs", "Hollow",
	}
	seedReviewPhrases = []string{
		"Beautiful views and quiet nights, would come back.",
		"Clean sites and friendly hosts.",
		"A bit crowded on weekends but worth it.",
		"Great hiking trails right from the campsite.",
		"Perfect spot for stargazing.",
		"Bring bug spray, the mosquitoes are serious.",
		"Loved waking up to the sound of the river.",
	}
)

// SeedResult summarises a seeding run.
type SeedResult struct {
	DeletedListings int64
	DeletedReviews  int64
	Listings        int
	Reviews         int
}

// Seeder replaces all listings and reviews with generated sample data.
type Seeder struct {
	store store.Store
	creds *Credentials
	rand  *rand.Rand
}

func NewSeeder(s store.Store, creds *Credentials, r *rand.Rand) *Seeder {
	if r == nil {
		r = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Seeder{store: s, creds: creds, rand: r}
}

func sample[T any](r *rand.Rand, items []T) T {
	return items[r.IntN(len(items))]
}

// Seed wipes listings and reviews and creates count listings, each with two or
// three reviews. Listings belong to the "seeder" user; reviews are spread over
// "seeder" and "camper". Both are created with password when missing.
func (s *Seeder) Seed(ctx context.Context, count int, password string) (*SeedResult, error) {
	if count < 0 {
		return nil, Validation("count must not be negative")
	}
	author, err := s.ensureUser(ctx, "seeder", password)
	if err != nil {
		return nil, err
	}
	reviewer, err := s.ensureUser(ctx, "camper", password)
	if err != nil {
		return nil, err
	}
	authors := []string{author.ID, reviewer.ID}

	res := &SeedResult{}
	err = s.store.InTx(ctx, func(q store.Queries) error {
		var err error
		if res.DeletedListings, err = q.DeleteAllListings(ctx); err != nil {
			return err
		}
		if res.DeletedReviews, err = q.DeleteAllReviews(ctx); err != nil {
			return err
		}

		for i := 0; i < count; i++ {
			l := s.listing(author.ID)
			if err := q.InsertListing(ctx, l); err != nil {
				return err
			}
			res.Listings++

			reviews := 2 + s.rand.IntN(2)
			for j := 0; j < reviews; j++ {
				r := &models.Review{
					ListingID: l.ID,
					Body:      sample(s.rand, seedReviewPhrases),
					Rating:    3 + s.rand.IntN(3),
					AuthorID:  sample(s.rand, authors),
				}
				if err := q.InsertReview(ctx, r); err != nil {
					return err
				}
				if err := q.AppendReviewRef(ctx, l.ID, r.ID); err != nil {
					return err
				}
				res.Reviews++
			}
		}
		return nil
	})
	if err != nil {
		return nil, Internal(fmt.Errorf("seed: %w", err))
	}
	return res, nil
}

func (s *Seeder) listing(authorID string) *models.Listing {
	city := sample(s.rand, seedCities)
	title := sample(s.rand, seedDescriptors) + " " + sample(s.rand, seedPlaces)
	location := city.City + ", " + city.State
	return &models.Listing{
		Title:       title,
		Price:       float64(10 + s.rand.IntN(40)),
		Description: fmt.Sprintf("Come explore %s! Nestled near %s, this campground offers a perfect escape.", title, location),
		Location:    location,
		PlaceName:   location,
		Geometry:    models.NewPoint(city.Lng, city.Lat),
		Images:      s.images(),
		AuthorID:    authorID,
	}
}

func (s *Seeder) images() []models.Image {
	n := 1 + s.rand.IntN(3)
	imgs := make([]models.Image, 0, n)
	for i := 0; i < n; i++ {
		imgs = append(imgs, models.Image{
			URL:      fmt.Sprintf("https://picsum.photos/800/600?random=%d", s.rand.IntN(5000)+i),
			Filename: fmt.Sprintf("PicsumImage/%d", s.rand.IntN(1000)),
		})
	}
	return imgs
}

func (s *Seeder) ensureUser(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.store.GetUserByUsername(ctx, username)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, Internal(err)
	}
	hash, err := s.creds.Hash(password)
	if err != nil {
		return nil, Internal(err)
	}
	u = &models.User{Username: username, Email: username + "@yelpcamp.local", PasswordHash: hash}
	if err := s.store.CreateUser(ctx, u); err != nil {
		return nil, Internal(err)
	}
	return u, nil
}
