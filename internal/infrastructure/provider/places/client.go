// Package places implements the live location provider against a Places-style
// text-search REST endpoint.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"courtside/internal/domain/catalog"
	"courtside/internal/errs"
	"courtside/internal/ports"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/place"

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

var _ ports.LocationProvider = (*Client)(nil)

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 60 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  strings.TrimSpace(apiKey),
		client: &http.Client{
			Timeout:   timeout,
			Transport: tr,
		},
	}
}

type textSearchResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Name             string `json:"name"`
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		Types  []string `json:"types"`
		Rating float64  `json:"rating"`
		Photos []struct {
			PhotoReference string `json:"photo_reference"`
		} `json:"photos"`
	} `json:"results"`
}

// SearchPlaces runs a text search like "tennis facility in Sha Tin Hong Kong"
// and maps the hits into the provider-neutral shape. Any failure is wrapped
// as ErrProviderUnavailable so the orchestrator can fall back.
func (c *Client) SearchPlaces(ctx context.Context, query ports.LocationQuery) ([]ports.PlaceHit, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: places api key not configured", ports.ErrProviderUnavailable)
	}

	q := url.Values{}
	q.Set("query", buildQueryText(query))
	q.Set("region", "hk")
	q.Set("key", c.apiKey)

	u := fmt.Sprintf("%s/textsearch/json?%s", c.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errs.Wrap(err, "build places request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrProviderUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: places status %d", ports.ErrProviderUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read places body: %v", ports.ErrProviderUnavailable, err)
	}

	var payload textSearchResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode places body: %v", ports.ErrProviderUnavailable, err)
	}
	if payload.Status != "OK" && payload.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("%w: places status %q", ports.ErrProviderUnavailable, payload.Status)
	}

	hits := make([]ports.PlaceHit, 0, len(payload.Results))
	for _, result := range payload.Results {
		hit := ports.PlaceHit{
			Name:         result.Name,
			Address:      result.FormattedAddress,
			CategoryTags: result.Types,
			Rating:       result.Rating,
		}
		if result.Geometry.Location.Lat != 0 || result.Geometry.Location.Lng != 0 {
			hit.Coordinates = &catalog.Coordinates{
				Latitude:  result.Geometry.Location.Lat,
				Longitude: result.Geometry.Location.Lng,
			}
		}
		if len(result.Photos) > 0 {
			hit.PhotoRef = result.Photos[0].PhotoReference
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

func buildQueryText(query ports.LocationQuery) string {
	var b strings.Builder
	if query.Sport != "" && query.Sport != catalog.SportOther {
		b.WriteString(strings.ReplaceAll(string(query.Sport), "_", " "))
		b.WriteString(" ")
	}
	b.WriteString("sports facility in ")
	if query.District != "" {
		b.WriteString(strings.ReplaceAll(string(query.District), "_", " "))
		b.WriteString(" ")
	}
	b.WriteString("Hong Kong")
	return b.String()
}
