package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/wildfire-risk-service/internal/observability"
	"github.com/couchcryptid/wildfire-risk-service/internal/risk"
	"github.com/couchcryptid/wildfire-risk-service/internal/store"
	"github.com/couchcryptid/wildfire-risk-service/internal/zones"
)

type stubBroadcaster struct {
	err       error
	published []zones.Observation
}

func (b *stubBroadcaster) Publish(_ context.Context, obs zones.Observation) error {
	if b.err != nil {
		return b.err
	}
	b.published = append(b.published, obs)
	return nil
}

type testFixture struct {
	server      *Server
	fireStore   *store.FireStore
	zoneStore   *zones.Store
	broadcaster *stubBroadcaster
}

func newFixture(t *testing.T) *testFixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	metrics := observability.NewMetricsForTesting()

	fireStore := store.NewFireStore(t.TempDir(), logger, metrics)
	assessor := risk.NewAssessor(fireStore, nil, logger, metrics)
	zoneStore := zones.NewStore(time.Hour, clockwork.NewRealClock(), metrics)
	broadcaster := &stubBroadcaster{}

	return &testFixture{
		server:      NewServer(":0", assessor, fireStore, zoneStore, broadcaster, logger, metrics),
		fireStore:   fireStore,
		zoneStore:   zoneStore,
		broadcaster: broadcaster,
	}
}

func (f *testFixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.server.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealthz(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decodeJSON(t, w)["status"])
}

func TestReadyz(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	f.fireStore.EnsureLoaded()
	w = f.do(t, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ready", decodeJSON(t, w)["status"])
}

func TestHandleClassify(t *testing.T) {
	f := newFixture(t)

	t.Run("classifies without a location", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/v1/classify", `{"temperature": 48}`)
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeJSON(t, w)
		assert.Equal(t, "very high", body["level"])
		assert.Contains(t, body["description"], "temperature risk: very high")
	})

	t.Run("air quality included", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/v1/classify", `{"temperature": 10, "airQuality": 250}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "very high", decodeJSON(t, w)["level"])
	})

	t.Run("temperature is required", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/v1/classify", `{"airQuality": 250}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/v1/classify", `{`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleAssess(t *testing.T) {
	t.Run("location is required", func(t *testing.T) {
		f := newFixture(t)
		w := f.do(t, http.MethodPost, "/api/v1/assess", `{"temperature": 30}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeJSON(t, w)["error"], "location is required")
	})

	t.Run("cool location assesses normal, no zone recorded", func(t *testing.T) {
		f := newFixture(t)
		w := f.do(t, http.MethodPost, "/api/v1/assess",
			`{"temperature": 10, "location": {"lat": 60.0, "lng": -125.0}}`)
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeJSON(t, w)
		assert.Equal(t, "normal", body["riskLevel"])
		assert.Contains(t, body["riskExplanation"], "Search radius")

		assert.Empty(t, f.zoneStore.Recent())
		assert.Empty(t, f.broadcaster.published)
	})

	t.Run("extreme assessment records and broadcasts a zone", func(t *testing.T) {
		f := newFixture(t)
		w := f.do(t, http.MethodPost, "/api/v1/assess",
			`{"temperature": 65, "location": {"lat": 60.0, "lng": -125.0}}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "extreme", decodeJSON(t, w)["riskLevel"])

		recent := f.zoneStore.Recent()
		require.Len(t, recent, 1)
		assert.Equal(t, "extreme", recent[0].RiskLevel)
		assert.Equal(t, 60.0, recent[0].Location.Lat)
		assert.False(t, recent[0].ObservedAt.IsZero())

		require.Len(t, f.broadcaster.published, 1)
		assert.Equal(t, recent[0], f.broadcaster.published[0])
	})

	t.Run("broadcast failure does not fail the request", func(t *testing.T) {
		f := newFixture(t)
		f.broadcaster.err = errors.New("broker down")

		w := f.do(t, http.MethodPost, "/api/v1/assess",
			`{"temperature": 65, "location": {"lat": 60.0, "lng": -125.0}}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, f.zoneStore.Recent(), 1)
	})
}

func TestHandleZones(t *testing.T) {
	f := newFixture(t)

	t.Run("empty store", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/api/v1/zones", "")
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeJSON(t, w)
		meta := body["meta"].(map[string]any)
		assert.Equal(t, float64(0), meta["count"])
	})

	t.Run("lists recorded observations", func(t *testing.T) {
		f.do(t, http.MethodPost, "/api/v1/assess",
			`{"temperature": 65, "location": {"lat": 55.0, "lng": -118.0}}`)

		w := f.do(t, http.MethodGet, "/api/v1/zones", "")
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeJSON(t, w)
		data := body["data"].([]any)
		require.Len(t, data, 1)

		obs := data[0].(map[string]any)
		assert.Equal(t, "extreme", obs["riskLevel"])
		assert.Equal(t, 65.0, obs["temperature"])
	})
}

func TestLevelAtLeastMedium(t *testing.T) {
	assert.False(t, levelAtLeastMedium("no risk"))
	assert.False(t, levelAtLeastMedium("low"))
	assert.True(t, levelAtLeastMedium("medium"))
	assert.True(t, levelAtLeastMedium("extreme"))
	assert.False(t, levelAtLeastMedium("bogus"))
}
