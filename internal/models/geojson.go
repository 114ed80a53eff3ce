package models

// FeatureCollection is the GeoJSON document consumed by the cluster map.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string            `json:"type"`
	Geometry   Geometry          `json:"geometry"`
	Properties FeatureProperties `json:"properties"`
}

type FeatureProperties struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	PopUpMarkup string `json:"popUpMarkup"`
}

// ListingsFeatureCollection builds one point feature per listing.
func ListingsFeatureCollection(listings []Listing) FeatureCollection {
	fc := FeatureCollection{Type: "FeatureCollection", Features: make([]Feature, 0, len(listings))}
	for i := range listings {
		l := &listings[i]
		fc.Features = append(fc.Features, Feature{
			Type:     "Feature",
			Geometry: l.Geometry,
			Properties: FeatureProperties{
				ID:          l.ID,
				Title:       l.Title,
				PopUpMarkup: l.PopUpMarkup(),
			},
		})
	}
	return fc
}
