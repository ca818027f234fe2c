package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFireRecord(t *testing.T) {
	t.Run("complete entry", func(t *testing.T) {
		rec, ok := NormalizeFireRecord(RawFireRecord{
			FireID:       "FIRE-001",
			Year:         2021.0,
			Month:        7.0,
			Day:          14.0,
			Cause:        "LTG",
			AreaBurned:   812.5,
			Severity:     "High",
			Latitude:     58.2,
			Longitude:    -122.9,
			IncidentName: "Ridge Complex",
		})

		require.True(t, ok)
		assert.Equal(t, "FIRE-001", rec.FireID)
		assert.Equal(t, "2021-07-14", rec.Date)
		assert.Equal(t, CauseLightning, rec.Cause)
		assert.Equal(t, 812.5, rec.AreaBurned)
		assert.Equal(t, "high", rec.Severity)
		assert.Equal(t, 58.2, rec.Location.Latitude)
		assert.Equal(t, -122.9, rec.Location.Longitude)
		assert.Equal(t, "Ridge Complex", rec.IncidentName)
	})

	t.Run("missing latitude drops record", func(t *testing.T) {
		_, ok := NormalizeFireRecord(RawFireRecord{Longitude: -120.0})
		assert.False(t, ok)
	})

	t.Run("missing longitude drops record", func(t *testing.T) {
		_, ok := NormalizeFireRecord(RawFireRecord{Latitude: 50.0})
		assert.False(t, ok)
	})

	t.Run("non-numeric coordinates drop record", func(t *testing.T) {
		_, ok := NormalizeFireRecord(RawFireRecord{Latitude: "north", Longitude: -120.0})
		assert.False(t, ok)
	})

	t.Run("string-coded coordinates accepted", func(t *testing.T) {
		rec, ok := NormalizeFireRecord(RawFireRecord{Latitude: "49.25", Longitude: "-121.5"})
		require.True(t, ok)
		assert.Equal(t, 49.25, rec.Location.Latitude)
		assert.Equal(t, -121.5, rec.Location.Longitude)
	})

	t.Run("defaults for absent fields", func(t *testing.T) {
		rec, ok := NormalizeFireRecord(RawFireRecord{Latitude: 50.0, Longitude: -120.0})
		require.True(t, ok)
		assert.Equal(t, "unknown", rec.FireID)
		assert.Equal(t, "1970-01-01", rec.Date)
		assert.Equal(t, CauseUnknown, rec.Cause)
		assert.Equal(t, 0.0, rec.AreaBurned)
		assert.Equal(t, "low", rec.Severity)
		assert.Empty(t, rec.IncidentName)
	})

	t.Run("negative area clamps to zero", func(t *testing.T) {
		rec, ok := NormalizeFireRecord(RawFireRecord{Latitude: 50.0, Longitude: -120.0, AreaBurned: -35.0})
		require.True(t, ok)
		assert.Equal(t, 0.0, rec.AreaBurned)
	})
}

func TestResolveDate(t *testing.T) {
	base := RawFireRecord{Latitude: 50.0, Longitude: -120.0}

	tests := []struct {
		name     string
		mutate   func(*RawFireRecord)
		expected string
	}{
		{"year month day fields", func(r *RawFireRecord) { r.Year, r.Month, r.Day = 2019.0, 8.0, 3.0 }, "2019-08-03"},
		{"month zero falls back to 1", func(r *RawFireRecord) { r.Year, r.Month, r.Day = 2019.0, 0.0, 12.0 }, "2019-01-12"},
		{"month thirteen falls back to 1", func(r *RawFireRecord) { r.Year, r.Month, r.Day = 2019.0, 13.0, 12.0 }, "2019-01-12"},
		{"day out of range falls back to 1", func(r *RawFireRecord) { r.Year, r.Month, r.Day = 2019.0, 6.0, 45.0 }, "2019-06-01"},
		{"missing month and day default to 1", func(r *RawFireRecord) { r.Year = 2019.0 }, "2019-01-01"},
		{"date string used verbatim", func(r *RawFireRecord) { r.Date = "2020-11-30" }, "2020-11-30"},
		{"year fields win over date string", func(r *RawFireRecord) { r.Year, r.Date = 2018.0, "2020-11-30" }, "2018-01-01"},
		{"neither shape gets epoch sentinel", func(*RawFireRecord) {}, "1970-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := base
			tt.mutate(&raw)
			rec, ok := NormalizeFireRecord(raw)
			require.True(t, ok)
			assert.Equal(t, tt.expected, rec.Date)
		})
	}
}

func TestNormalizeCause(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		expected string
	}{
		{"MAN", "MAN", CauseHuman},
		{"person lowercase", "person", CauseHuman},
		{"H", "H", CauseHuman},
		{"LTG", "LTG", CauseLightning},
		{"lightning mixed case", "Lightning", CauseLightning},
		{"SPONTANEOUS", "SPONTANEOUS", CauseSpontaneous},
		{"spont lowercase", "spont", CauseSpontaneous},
		{"unrecognized passes through upper-cased", "Campfire", "CAMPFIRE"},
		{"missing", nil, CauseUnknown},
		{"non-string", 7.0, CauseUnknown},
		{"empty string", "", CauseUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeCause(tt.raw))
		})
	}
}

func TestNormalizeSeverity(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		expected string
	}{
		{"very low maps to low", "Very Low", "low"},
		{"extreme substring", "EXTREME burn severity", "extreme"},
		{"very high substring", "Very High", "very high"},
		{"plain high passes through", "High", "high"},
		{"plain medium passes through", "MEDIUM", "medium"},
		{"missing defaults to low", nil, "low"},
		{"non-string defaults to low", 2.0, "low"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeSeverity(tt.raw))
		})
	}
}

func TestRawFireRecordDecoding(t *testing.T) {
	// Mixed-type fields from a real-world-shaped entry, after the loader's
	// NaN substitution produced a null area.
	data := []byte(`{
		"fire_id": "AB-2020-114",
		"year": 2020, "month": 6, "day": 9,
		"cause": "ltg",
		"area_burned": null,
		"severity": "very high",
		"latitude": "56.7", "longitude": -117.2
	}`)

	var raw RawFireRecord
	require.NoError(t, json.Unmarshal(data, &raw))

	rec, ok := NormalizeFireRecord(raw)
	require.True(t, ok)
	assert.Equal(t, "AB-2020-114", rec.FireID)
	assert.Equal(t, "2020-06-09", rec.Date)
	assert.Equal(t, CauseLightning, rec.Cause)
	assert.Equal(t, 0.0, rec.AreaBurned)
	assert.Equal(t, "very high", rec.Severity)
	assert.Equal(t, 56.7, rec.Location.Latitude)
}
