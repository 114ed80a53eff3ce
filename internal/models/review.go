package models

import (
	"math"
	"strings"
	"time"
)

// Review is a user's review of a listing
type Review struct {
	ID        string    `json:"id"`
	ListingID string    `json:"listing_id"`
	Body      string    `json:"body"`
	Rating    int       `json:"rating"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewDetail is a review with its author resolved. Author is nil if the user no longer exists.
type ReviewDetail struct {
	Review
	Author *User `json:"author,omitempty"`
}

// ReviewForm is the review payload.
type ReviewForm struct {
	Rating *int   `json:"rating" form:"rating" validate:"required,min=1,max=5"`
	Body   string `json:"body" form:"body" validate:"required,min=5"`
}

func (f *ReviewForm) Normalize() {
	f.Body = strings.TrimSpace(f.Body)
}

// AverageRating rounds to one decimal place.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return math.Round(avg*10) / 10
}
