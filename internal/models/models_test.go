package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageThumbnail(t *testing.T) {
	img := Image{URL: "https://res.cloudinary.com/demo/image/upload/v1/YelpCamp/abc.jpg"}
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/w_200/v1/YelpCamp/abc.jpg", img.Thumbnail())

	local := Image{URL: "/uploads/abc.jpg"}
	assert.Equal(t, "/uploads/abc.jpg", local.Thumbnail())
}

func TestListingThumbnailEmpty(t *testing.T) {
	var l Listing
	assert.Equal(t, "", l.Thumbnail())
}

func TestPopUpMarkupEscapesAndTruncates(t *testing.T) {
	l := Listing{ID: "abc", Title: "<Ridge>", Description: "A quiet place by the lake with pines"}
	markup := l.PopUpMarkup()
	assert.Contains(t, markup, `href="/campgrounds/abc"`)
	assert.Contains(t, markup, "&lt;Ridge&gt;")
	assert.Contains(t, markup, "<p>A quiet place by the...</p>")
}

func TestWithoutImages(t *testing.T) {
	l := Listing{Images: []Image{
		{URL: "u1", Filename: "a"},
		{URL: "u2", Filename: "b"},
		{URL: "u3", Filename: "c"},
	}}
	kept := l.WithoutImages([]string{"b", "missing"})
	assert.Equal(t, []Image{{URL: "u1", Filename: "a"}, {URL: "u3", Filename: "c"}}, kept)
}

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, AverageRating(nil))
	assert.Equal(t, 3.7, AverageRating([]Review{{Rating: 5}, {Rating: 4}, {Rating: 2}}))
}

func TestListingsFeatureCollection(t *testing.T) {
	fc := ListingsFeatureCollection([]Listing{
		{ID: "1", Title: "Sunny Ridge", Geometry: NewPoint(-105.2, 40.0)},
	})
	assert.Equal(t, "FeatureCollection", fc.Type)
	if assert.Len(t, fc.Features, 1) {
		f := fc.Features[0]
		assert.Equal(t, "Point", f.Geometry.Type)
		assert.Equal(t, -105.2, f.Geometry.Longitude())
		assert.Equal(t, 40.0, f.Geometry.Latitude())
		assert.Equal(t, "1", f.Properties.ID)
	}
}

func TestHasReview(t *testing.T) {
	l := Listing{ReviewIDs: []string{"r1", "r2"}}
	assert.True(t, l.HasReview("r2"))
	assert.False(t, l.HasReview("r3"))
}
