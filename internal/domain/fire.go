package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Normalized cause values. Causes outside the known code tables pass through
// upper-cased.
const (
	CauseHuman       = "Human"
	CauseLightning   = "Lightning"
	CauseSpontaneous = "Spontaneous"
	CauseUnknown     = "Unknown"
)

// Sentinels used when a source entry lacks the field.
const (
	unknownFireID   = "unknown"
	epochDate       = "1970-01-01"
	defaultSeverity = "low"
)

// FireLocation is the recorded origin of a historical fire.
type FireLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// FireRecord is one normalized historical fire event. Records are constructed
// once at load time and treated as read-only afterwards.
type FireRecord struct {
	FireID       string       `json:"fire_id"`
	Date         string       `json:"date"` // ISO calendar date, YYYY-MM-DD
	Cause        string       `json:"cause"`
	AreaBurned   float64      `json:"area_burned"`
	Severity     string       `json:"severity"`
	Location     FireLocation `json:"location"`
	IncidentName string       `json:"incident_name,omitempty"`
}

// RawFireRecord mirrors one entry of a source dataset. The five source
// datasets disagree on field types (numbers as strings, missing fields,
// null from NaN substitution), so every field decodes as `any` and is
// coerced during normalization.
type RawFireRecord struct {
	FireID       any `json:"fire_id"`
	Year         any `json:"year"`
	Month        any `json:"month"`
	Day          any `json:"day"`
	Date         any `json:"date"`
	Cause        any `json:"cause"`
	AreaBurned   any `json:"area_burned"`
	Severity     any `json:"severity"`
	Latitude     any `json:"latitude"`
	Longitude    any `json:"longitude"`
	IncidentName any `json:"incident_name"`
}

// dateShape identifies which of the admissible raw date encodings an entry
// uses. Explicit resolution replaces the field probing the source data invites.
type dateShape int

const (
	dateByFields dateShape = iota // integer year/month/day columns
	dateByString                  // preformatted date string
	dateAbsent
)

func (r RawFireRecord) dateShape() dateShape {
	if _, ok := asInt(r.Year); ok {
		return dateByFields
	}
	if s, ok := asString(r.Date); ok && s != "" {
		return dateByString
	}
	return dateAbsent
}

// NormalizeFireRecord converts a raw dataset entry into a FireRecord.
// Entries without numeric coordinates are unusable for spatial scoring and
// are reported as ok=false so the loader can drop them.
func NormalizeFireRecord(raw RawFireRecord) (FireRecord, bool) {
	lat, latOK := asFloat(raw.Latitude)
	lng, lngOK := asFloat(raw.Longitude)
	if !latOK || !lngOK {
		return FireRecord{}, false
	}

	rec := FireRecord{
		FireID:   unknownFireID,
		Date:     resolveDate(raw),
		Cause:    normalizeCause(raw.Cause),
		Severity: normalizeSeverity(raw.Severity),
		Location: FireLocation{Latitude: lat, Longitude: lng},
	}
	if id, ok := asString(raw.FireID); ok && id != "" {
		rec.FireID = id
	}
	if area, ok := asFloat(raw.AreaBurned); ok && area > 0 {
		rec.AreaBurned = area
	}
	if name, ok := asString(raw.IncidentName); ok {
		rec.IncidentName = name
	}
	return rec, true
}

// resolveDate produces a YYYY-MM-DD date string. Explicit year/month/day
// fields win over a preformatted date string; month and day fall back to 1
// when out of range. Entries with neither shape get the epoch sentinel.
func resolveDate(raw RawFireRecord) string {
	switch raw.dateShape() {
	case dateByFields:
		year, _ := asInt(raw.Year)
		month := 1
		if m, ok := asInt(raw.Month); ok && m >= 1 && m <= 12 {
			month = m
		}
		day := 1
		if d, ok := asInt(raw.Day); ok && d >= 1 && d <= 31 {
			day = d
		}
		return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	case dateByString:
		s, _ := asString(raw.Date)
		return s
	default:
		return epochDate
	}
}

// causeCodes maps the short codes used by the source datasets to normalized
// cause values. Matching is case-insensitive.
var causeCodes = map[string]string{
	"MAN":         CauseHuman,
	"PERSON":      CauseHuman,
	"H":           CauseHuman,
	"LTG":         CauseLightning,
	"LIGHTNING":   CauseLightning,
	"SPONTANEOUS": CauseSpontaneous,
	"SPONT":       CauseSpontaneous,
}

func normalizeCause(v any) string {
	s, ok := asString(v)
	if !ok || strings.TrimSpace(s) == "" {
		return CauseUnknown
	}
	upper := strings.ToUpper(strings.TrimSpace(s))
	if cause, ok := causeCodes[upper]; ok {
		return cause
	}
	return upper
}

func normalizeSeverity(v any) string {
	s, ok := asString(v)
	if !ok || strings.TrimSpace(s) == "" {
		return defaultSeverity
	}
	lower := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.Contains(lower, "very low"):
		return "low"
	case strings.Contains(lower, "extreme"):
		return "extreme"
	case strings.Contains(lower, "very high"):
		return "very high"
	default:
		return lower
	}
}

// asFloat coerces JSON numbers and numeric strings to float64.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func asInt(v any) (int, bool) {
	f, ok := asFloat(v)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}
