// Package geocode resolves free-text locations to coordinates.
package geocode

import (
	"context"
	"errors"

	"yelpcamp/internal/models"
)

// ErrNoMatch is returned when the geocoder knows no place for the query.
var ErrNoMatch = errors.New("geocode: no match")

// Result is the best match for a query.
type Result struct {
	Geometry  models.Geometry
	PlaceName string
}

// Geocoder performs forward geocoding.
type Geocoder interface {
	Forward(ctx context.Context, query string) (Result, error)
}
