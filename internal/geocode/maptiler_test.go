package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapTilerForward(t *testing.T) {
	var gotPath, gotKey, gotLimit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotKey = r.URL.Query().Get("key")
		gotLimit = r.URL.Query().Get("limit")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"type":"FeatureCollection","features":[
			{"geometry":{"type":"Point","coordinates":[-105.2705,40.015]},"place_name":"Boulder, Colorado, United States"}
		]}`))
	}))
	defer srv.Close()

	g := NewMapTiler(srv.URL+"/", "test-key", time.Second)
	res, err := g.Forward(context.Background(), "Boulder, Colorado")
	require.NoError(t, err)

	assert.Equal(t, "/geocoding/Boulder%2C%20Colorado.json", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "1", gotLimit)
	assert.Equal(t, "Point", res.Geometry.Type)
	assert.Equal(t, -105.2705, res.Geometry.Longitude())
	assert.Equal(t, 40.015, res.Geometry.Latitude())
	assert.Equal(t, "Boulder, Colorado, United States", res.PlaceName)
}

func TestMapTilerNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"type":"FeatureCollection","features":[]}`))
	}))
	defer srv.Close()

	_, err := NewMapTiler(srv.URL, "k", time.Second).Forward(context.Background(), "Lonely Rock")
	assert.ErrorIs(t, err, ErrNoMatch)

	_, err = NewMapTiler(srv.URL, "k", time.Second).Forward(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestMapTilerStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewMapTiler(srv.URL, "bad", time.Second).Forward(context.Background(), "Boulder")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoMatch)
	assert.Contains(t, err.Error(), "403")
}
