package models

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// Listing is a campground record
type Listing struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	PlaceName   string    `json:"place_name"`
	Geometry    Geometry  `json:"geometry"`
	Images      []Image   `json:"images"`
	AuthorID    string    `json:"author_id"`
	ReviewIDs   []string  `json:"review_ids"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Geometry is a GeoJSON point. Coordinates are [longitude, latitude].
type Geometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// NewPoint builds a Point geometry from a longitude/latitude pair.
func NewPoint(lng, lat float64) Geometry {
	return Geometry{Type: "Point", Coordinates: [2]float64{lng, lat}}
}

func (g Geometry) Longitude() float64 { return g.Coordinates[0] }
func (g Geometry) Latitude() float64  { return g.Coordinates[1] }

// HasReview reports whether id is in the listing's review set.
func (l *Listing) HasReview(id string) bool {
	for _, rid := range l.ReviewIDs {
		if rid == id {
			return true
		}
	}
	return false
}

// Thumbnail returns the first image's thumbnail, or "" when the listing has no images.
func (l *Listing) Thumbnail() string {
	if len(l.Images) == 0 {
		return ""
	}
	return l.Images[0].Thumbnail()
}

// PopUpMarkup is the HTML shown in a map marker popup.
func (l *Listing) PopUpMarkup() string {
	desc := l.Description
	if r := []rune(desc); len(r) > 20 {
		desc = string(r[:20])
	}
	return fmt.Sprintf(`<strong><a href="/campgrounds/%s">%s</a></strong><p>%s...</p>`,
		html.EscapeString(l.ID), html.EscapeString(l.Title), html.EscapeString(desc))
}

// WithoutImages returns the listing images minus any whose filename is in filenames.
func (l *Listing) WithoutImages(filenames []string) []Image {
	drop := make(map[string]struct{}, len(filenames))
	for _, f := range filenames {
		drop[f] = struct{}{}
	}
	kept := make([]Image, 0, len(l.Images))
	for _, img := range l.Images {
		if _, ok := drop[img.Filename]; ok {
			continue
		}
		kept = append(kept, img)
	}
	return kept
}

// Image is a hosted image. Filename is the host's deletable identifier.
type Image struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// Thumbnail rewrites an image host delivery URL to a 200px wide variant.
// URLs without an "/upload/" segment are returned unchanged.
func (i Image) Thumbnail() string {
	return strings.Replace(i.URL, "/upload/", "/upload/w_200/", 1)
}

// ListingDetail is a listing with its author and reviews resolved.
type ListingDetail struct {
	Listing
	Author  *User          `json:"author,omitempty"`
	Reviews []ReviewDetail `json:"reviews"`
}

// AverageRating over the resolved reviews, 0 when there are none.
func (d *ListingDetail) AverageRating() float64 {
	reviews := make([]Review, 0, len(d.Reviews))
	for _, r := range d.Reviews {
		reviews = append(reviews, r.Review)
	}
	return AverageRating(reviews)
}

// ListingForm is the listing payload accepted from HTML forms and the JSON API.
type ListingForm struct {
	Title        string   `json:"title" form:"title" validate:"required,min=3,max=100"`
	Price        *float64 `json:"price" form:"price" validate:"required,gte=0"`
	Location     string   `json:"location" form:"location" validate:"required,min=3"`
	Description  string   `json:"description" form:"description" validate:"required,min=10"`
	DeleteImages []string `json:"deleteImages" form:"deleteImages"`
}

// Normalize trims the text fields so validation sees what will be stored.
func (f *ListingForm) Normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.Location = strings.TrimSpace(f.Location)
	f.Description = strings.TrimSpace(f.Description)
}
