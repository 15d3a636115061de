package places

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/genkit"
	"googlemaps.github.io/maps"

	"newsdesk/tools"
)

// Client resolves colloquial location names through Google Maps geocoding
type Client struct {
	MapsClient *maps.Client
}

// NewClient creates a new places client and registers its tools.
// Returns an error if the Maps SDK client cannot be initialized.
func NewClient(apiKey string, gk *genkit.Genkit, registry *tools.Registry) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("maps API key is required")
	}

	mc, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}

	c := &Client{MapsClient: mc}
	c.registerTools(gk, registry)
	return c, nil
}

// Place is a normalized location
type Place struct {
	Name    string  `json:"name"`    // canonical formatted address
	Country string  `json:"country"` // ISO country code when resolvable
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// Resolve geocodes a colloquial location name ("the bay area") into a
// canonical place usable in a region-scoped news query.
func (c *Client) Resolve(ctx context.Context, location string) (*Place, error) {
	if c.MapsClient == nil {
		return nil, fmt.Errorf("maps client not initialized")
	}
	if location == "" {
		return nil, fmt.Errorf("location is required")
	}

	results, err := c.MapsClient.Geocode(ctx, &maps.GeocodingRequest{Address: location})
	if err != nil {
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no match for location %q", location)
	}

	top := results[0]
	place := &Place{
		Name: top.FormattedAddress,
		Lat:  top.Geometry.Location.Lat,
		Lng:  top.Geometry.Location.Lng,
	}
	for _, comp := range top.AddressComponents {
		for _, t := range comp.Types {
			if t == "country" {
				place.Country = comp.ShortName
			}
		}
	}

	return place, nil
}
