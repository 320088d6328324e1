// Package geocode resolves street addresses to coordinates for destination
// entry. It satisfies the navigator's DestinationResolver interface.
package geocode

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

// GoogleResolver geocodes addresses through the Google Maps Geocoding API.
type GoogleResolver struct {
	client *maps.Client
}

// NewGoogleResolver creates a resolver using the given API key.
func NewGoogleResolver(apiKey string) (*GoogleResolver, error) {
	c, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &GoogleResolver{client: c}, nil
}

// Resolve returns the coordinates of the first geocoding result for the
// address.
func (g *GoogleResolver) Resolve(ctx context.Context, address string) (lat, lon float64, err error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return 0, 0, err
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("no geocoding results for %q", address)
	}

	loc := results[0].Geometry.Location
	return loc.Lat, loc.Lng, nil
}
