package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yelpcamp/internal/models"
)

func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }

func TestReviewRatingBounds(t *testing.T) {
	for _, rating := range []int{1, 2, 3, 4, 5} {
		form := models.ReviewForm{Rating: intPtr(rating), Body: "Lovely spot"}
		assert.NoError(t, Struct(&form), "rating %d", rating)
	}
	for _, rating := range []int{-1, 0, 6, 10} {
		form := models.ReviewForm{Rating: intPtr(rating), Body: "Lovely spot"}
		err := Struct(&form)
		require.Error(t, err, "rating %d", rating)
		assert.Contains(t, err.Error(), `"rating"`)
	}
}

func TestReviewMissingFields(t *testing.T) {
	err := Struct(&models.ReviewForm{})
	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, `"rating" is required, "body" is required`, verr.Error())
}

func TestListingForm(t *testing.T) {
	valid := models.ListingForm{
		Title:       "Sunny Ridge",
		Price:       floatPtr(0),
		Location:    "Boulder, Colorado",
		Description: "Shaded sites near the creek",
	}
	assert.NoError(t, Struct(&valid))

	bad := models.ListingForm{Title: "ab", Price: floatPtr(-1), Location: "CO", Description: "short"}
	err := Struct(&bad)
	require.Error(t, err)
	assert.Equal(t,
		`"title" length must be at least 3 characters long, "price" must be greater than or equal to 0, `+
			`"location" length must be at least 3 characters long, "description" length must be at least 10 characters long`,
		err.Error())

	noPrice := valid
	noPrice.Price = nil
	assert.EqualError(t, Struct(&noPrice), `"price" is required`)
}

func TestRegisterPassword(t *testing.T) {
	req := models.RegisterRequest{Username: "camper", Email: "camper@example.com", Password: "Sup3r$ecret"}
	assert.NoError(t, Struct(&req))

	for _, pw := range []string{"sup3r$ecret", "Super$ecret", "Sup3rSecret", "S3$a"} {
		req.Password = pw
		assert.Error(t, Struct(&req), pw)
	}

	req = models.RegisterRequest{Username: "ab", Email: "not-an-email", Password: "Sup3r$ecret"}
	err := Struct(&req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"username" length must be at least 3 characters long`)
	assert.Contains(t, err.Error(), `"email" must be a valid email`)
}

func TestLoginRequest(t *testing.T) {
	assert.EqualError(t, Struct(&models.LoginRequest{Username: "camper"}), `"password" is required`)
}

func TestImage(t *testing.T) {
	for _, name := range []string{"a.jpg", "b.JPEG", "c.png"} {
		assert.NoError(t, Image(name))
	}
	for _, name := range []string{"a.gif", "b", "c.png.exe"} {
		assert.Error(t, Image(name))
	}
}
