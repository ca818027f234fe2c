package domain

import (
	"math"
	"sort"
	"strings"
	"time"
)

// CandidateFire pairs a historical record with its great-circle distance from
// the query point. Candidates are selected by the orchestrator within the
// working radius and capped at the nearest few.
type CandidateFire struct {
	Record     FireRecord
	DistanceKm float64
}

// TerrainUnknown is the only terrain classification currently produced.
// No terrain source is wired yet, so the grassland discount in severityValue
// never fires. TODO: derive terrain from a land-cover lookup once a dataset
// is chosen, which makes the discount reachable.
const TerrainUnknown = "unknown"

const hoursPerYear = 24 * 365.25

// ScoreHistorical computes the weighted wildfire risk score for a point:
// per-fire multiplicative factors summed across candidates, plus year-run and
// overlap penalties, a frequency score, and real-time condition bonuses.
func ScoreHistorical(env EnvironmentalData, candidates []CandidateFire, searchRadiusKm float64) float64 {
	now := clock.Now()

	total := 0.0
	for _, c := range candidates {
		total += fireScore(c, searchRadiusKm, now)
	}

	yearCounts := groupFireYears(candidates)
	total += consecutiveYearPenalty(yearCounts)
	total += overlapPenalty(yearCounts)
	total += math.Min(float64(len(candidates)), 5)
	total += realTimeBonus(env)

	return total
}

// fireScore is the product of the six per-fire factors.
func fireScore(c CandidateFire, searchRadiusKm float64, now time.Time) float64 {
	fireTime := fireDate(c.Record)
	yearsSince := now.Sub(fireTime).Hours() / hoursPerYear

	return severityValue(c.Record.Severity, TerrainUnknown, yearsSince) *
		areaFactor(c.Record.AreaBurned) *
		recencyFactor(yearsSince) *
		causeFactor(c.Record.Cause) *
		seasonalityFactor(c.Record, fireTime, now) *
		distanceFactor(c.DistanceKm, searchRadiusKm)
}

// fireDate parses the record's normalized date, falling back to the epoch so
// unparseable dates score like ancient fires.
func fireDate(rec FireRecord) time.Time {
	t, err := time.Parse("2006-01-02", rec.Date)
	if err != nil {
		return time.Unix(0, 0).UTC()
	}
	return t
}

func recencyFactor(yearsSince float64) float64 {
	switch {
	case yearsSince <= 2:
		return 1.0
	case yearsSince <= 5:
		return 0.8
	case yearsSince <= 10:
		return 0.5
	default:
		return 0.2
	}
}

func causeFactor(cause string) float64 {
	switch cause {
	case CauseLightning:
		return 1.2
	case CauseHuman:
		return 1.1
	case CauseSpontaneous:
		return 1.05
	default:
		return 1.0
	}
}

// seasonalityFactor compounds location and calendar boosts; the conditions
// are not mutually exclusive.
func seasonalityFactor(rec FireRecord, fireTime, now time.Time) float64 {
	f := 1.0
	if rec.Location.Latitude > 55 {
		f *= 1.05
	}
	if rec.Location.Longitude < -120 {
		f *= 1.02
	}
	if fireTime.Month() == now.Month() {
		f *= 1.15
	}
	if fireTime.Month() >= time.May && fireTime.Month() <= time.September {
		f *= 1.1
	}
	return f
}

// distanceFactor decays linearly from 1.0 at 10 km to 0.1 at the search
// radius. It never exceeds 1.0 and never drops below 0.1.
func distanceFactor(distKm, searchRadiusKm float64) float64 {
	if distKm <= 10 {
		return 1.0
	}
	if distKm >= searchRadiusKm {
		return 0.1
	}
	return 1.0 - 0.9*(distKm-10)/(searchRadiusKm-10)
}

// severityValue maps the normalized severity label to a base weight. Fires on
// grassland older than five years burn through regrown fuel and count half;
// terrain is always TerrainUnknown today, so the discount is inert.
func severityValue(severity, terrain string, yearsSince float64) float64 {
	var base float64
	switch {
	case strings.Contains(severity, "extreme"), strings.Contains(severity, "very high"):
		base = 3
	case strings.Contains(severity, "high"):
		base = 2
	case strings.Contains(severity, "medium"):
		base = 1
	default:
		base = 0
	}
	if terrain == "grassland" && yearsSince > 5 {
		base /= 2
	}
	return base
}

func areaFactor(areaBurned float64) float64 {
	if areaBurned > 500 {
		return 1.5
	}
	return 1.0
}

// groupFireYears counts candidate fires per calendar year. Penalties depend
// only on this grouping, never on candidate iteration order.
func groupFireYears(candidates []CandidateFire) map[int]int {
	counts := make(map[int]int, len(candidates))
	for _, c := range candidates {
		counts[fireDate(c.Record).Year()]++
	}
	return counts
}

// consecutiveYearPenalty scores runs of back-to-back fire years: 0.2 for a
// run of exactly two years, 0.5 for three, 1.0 for four or more, summed over
// all runs.
func consecutiveYearPenalty(yearCounts map[int]int) float64 {
	if len(yearCounts) == 0 {
		return 0
	}

	years := make([]int, 0, len(yearCounts))
	for y := range yearCounts {
		years = append(years, y)
	}
	sort.Ints(years)

	penalty := 0.0
	runLength := 1
	for i := 1; i <= len(years); i++ {
		if i < len(years) && years[i] == years[i-1]+1 {
			runLength++
			continue
		}
		penalty += runPenalty(runLength)
		runLength = 1
	}
	return penalty
}

func runPenalty(runLength int) float64 {
	switch {
	case runLength >= 4:
		return 1.0
	case runLength == 3:
		return 0.5
	case runLength == 2:
		return 0.2
	default:
		return 0
	}
}

// overlapPenalty adds 0.1 per extra fire in any year with more than one fire.
func overlapPenalty(yearCounts map[int]int) float64 {
	penalty := 0.0
	for _, count := range yearCounts {
		if count > 1 {
			penalty += 0.1 * float64(count-1)
		}
	}
	return penalty
}

// realTimeBonus adds condition bonuses independent of historical fires. Each
// reading contributes its highest matching bucket only.
func realTimeBonus(env EnvironmentalData) float64 {
	bonus := 0.0

	switch {
	case env.Temperature >= 60:
		bonus += 20
	case env.Temperature >= 45:
		bonus += 10
	case env.Temperature >= 35:
		bonus += 5
	case env.Temperature >= 25:
		bonus += 2
	}

	if env.AirQuality != nil {
		switch aqi := *env.AirQuality; {
		case aqi >= 300:
			bonus += 5
		case aqi >= 200:
			bonus += 3
		case aqi >= 150:
			bonus += 2
		case aqi >= 100:
			bonus += 1
		}
	}

	if env.DrynessIndex != nil {
		switch dryness := *env.DrynessIndex; {
		case dryness >= 90:
			bonus += 8
		case dryness >= 80:
			bonus += 5
		case dryness >= 60:
			bonus += 2
		}
	}

	if env.Humidity != nil {
		switch humidity := *env.Humidity; {
		case humidity < 10:
			bonus += 6
		case humidity < 20:
			bonus += 3
		case humidity < 30:
			bonus += 1
		}
	}

	if env.WindSpeed != nil {
		switch wind := *env.WindSpeed; {
		case wind > 60:
			bonus += 8
		case wind > 40:
			bonus += 4
		case wind > 25:
			bonus += 2
		}
	}

	if env.TimeOfDay != nil && *env.TimeOfDay >= 13 && *env.TimeOfDay <= 17 {
		bonus++
	}

	return bonus
}
