// Package firms checks query points against the live wildfire perimeter feed
// published by the interagency fire mapping service (GeoJSON over HTTP).
package firms

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/couchcryptid/wildfire-risk-service/internal/observability"
)

// perimeterPenalty is the fixed score penalty added when the query point sits
// inside an active perimeter's bounding box. First match wins; overlapping
// perimeters do not accumulate.
const perimeterPenalty = 5.0

// Client fetches the perimeter feed once per check. It implements
// risk.ActiveFireChecker.
type Client struct {
	feedURL    string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a perimeter feed client. The timeout bounds the whole
// fetch; expiry is treated by callers like an unreachable feed.
func NewClient(feedURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		feedURL: feedURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// PenaltyForPoint fetches the active perimeter feed and returns the fixed
// penalty if (lat, lng) falls inside any feature's bounding box, 0 otherwise.
// Errors report feed problems; the caller degrades them to a zero penalty.
func (c *Client) PenaltyForPoint(ctx context.Context, lat, lng float64) (float64, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return 0, fmt.Errorf("create feed request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ActiveFireChecks.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("fetch active fire feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.ActiveFireChecks.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("active fire feed: status %d", resp.StatusCode)
	}

	var feed featureCollection
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		c.metrics.ActiveFireChecks.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("decode active fire feed: %w", err)
	}

	c.metrics.FeedDuration.Observe(time.Since(start).Seconds())

	for _, f := range feed.Features {
		box, ok := f.Geometry.boundingBox()
		if !ok {
			continue
		}
		if box.contains(lat, lng) {
			c.metrics.ActiveFireChecks.WithLabelValues("hit").Inc()
			c.logger.Info("point inside active fire perimeter", "lat", lat, "lng", lng)
			return perimeterPenalty, nil
		}
	}

	c.metrics.ActiveFireChecks.WithLabelValues("miss").Inc()
	return 0, nil
}

// Feed response types. The feed is a GeoJSON feature collection of Polygon
// and MultiPolygon perimeters in [longitude, latitude] coordinate order.

type featureCollection struct {
	Features []feature `json:"features"`
}

type feature struct {
	Geometry geometry `json:"geometry"`
}

type geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// boundingBox is the axis-aligned min/max envelope over a perimeter's
// vertices, a cheap containment approximation instead of true
// point-in-polygon geometry.
type boundingBox struct {
	minLat, maxLat float64
	minLng, maxLng float64
}

func (g geometry) boundingBox() (boundingBox, bool) {
	switch g.Type {
	case "Polygon":
		var rings [][][]float64
		if err := json.Unmarshal(g.Coordinates, &rings); err != nil {
			return boundingBox{}, false
		}
		return boxFromRings(rings)
	case "MultiPolygon":
		var polygons [][][][]float64
		if err := json.Unmarshal(g.Coordinates, &polygons); err != nil {
			return boundingBox{}, false
		}
		var all [][][]float64
		for _, rings := range polygons {
			all = append(all, rings...)
		}
		return boxFromRings(all)
	default:
		return boundingBox{}, false
	}
}

func boxFromRings(rings [][][]float64) (boundingBox, bool) {
	box := boundingBox{
		minLat: math.Inf(1), maxLat: math.Inf(-1),
		minLng: math.Inf(1), maxLng: math.Inf(-1),
	}
	found := false
	for _, ring := range rings {
		for _, coord := range ring {
			if len(coord) < 2 {
				continue
			}
			lng, lat := coord[0], coord[1]
			box.minLat = math.Min(box.minLat, lat)
			box.maxLat = math.Max(box.maxLat, lat)
			box.minLng = math.Min(box.minLng, lng)
			box.maxLng = math.Max(box.maxLng, lng)
			found = true
		}
	}
	return box, found
}

// contains uses inclusive bounds on all four edges.
func (b boundingBox) contains(lat, lng float64) bool {
	return lat >= b.minLat && lat <= b.maxLat &&
		lng >= b.minLng && lng <= b.maxLng
}
