// Package risk orchestrates wildfire risk assessment: adaptive candidate
// selection over the historical record store, weighted scoring, the optional
// active-fire penalty, and the final danger-level decision.
package risk

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/couchcryptid/wildfire-risk-service/internal/domain"
	"github.com/couchcryptid/wildfire-risk-service/internal/observability"
	"github.com/couchcryptid/wildfire-risk-service/internal/store"
)

// ActiveFireChecker reports the score penalty for a point sitting inside a
// currently-burning perimeter. Implementations may perform network I/O; the
// assessor degrades any error to a zero penalty.
type ActiveFireChecker interface {
	PenaltyForPoint(ctx context.Context, lat, lng float64) (float64, error)
}

// Adaptive radius selection: dense historical regions tighten to a more
// locally relevant radius, sparse regions widen to find any signal at all.
const (
	probeRadiusKm = 50.0
	tightRadiusKm = 30.0
	wideRadiusKm  = 75.0

	denseThreshold  = 20
	sparseThreshold = 5

	maxCandidates = 15
)

// Assessor computes wildfire risk results. Each call is independent; the
// only shared state is the read-only record collection.
type Assessor struct {
	store   *store.FireStore
	checker ActiveFireChecker // nil disables the active-fire check
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewAssessor creates an Assessor. Pass a nil checker to disable the
// active-fire penalty.
func NewAssessor(s *store.FireStore, checker ActiveFireChecker, logger *slog.Logger, metrics *observability.Metrics) *Assessor {
	return &Assessor{store: s, checker: checker, logger: logger, metrics: metrics}
}

// Assess produces the wildfire risk result for the given environment and
// location. It never fails: every error path degrades to a less-informed
// assessment.
func (a *Assessor) Assess(ctx context.Context, env domain.EnvironmentalData) domain.WildfireRiskResult {
	start := time.Now()

	floor := domain.Classify(env)

	a.store.EnsureLoaded()
	records := a.store.Records()

	radius := a.workingRadius(records, env.Location)
	candidates := nearestCandidates(records, env.Location, radius)

	totalScore := domain.ScoreHistorical(env, candidates, radius)

	activeNote := ""
	if a.checker != nil {
		penalty, err := a.checker.PenaltyForPoint(ctx, env.Location.Lat, env.Location.Lng)
		switch {
		case err != nil:
			a.logger.Warn("active fire check failed, continuing without penalty", "error", err)
		case penalty > 0:
			totalScore += penalty
			activeNote = fmt.Sprintf("Active fire reported near this location (+%.0f penalty).", penalty)
		}
	}

	scoreLevel := levelForScore(totalScore)
	finalLevel := domain.MaxLevel(scoreLevel, floor.Level)

	a.metrics.AssessmentsTotal.WithLabelValues(finalLevel.String()).Inc()
	a.metrics.AssessmentDuration.Observe(time.Since(start).Seconds())
	a.logger.Info("risk assessed",
		"level", finalLevel.String(),
		"score", totalScore,
		"radius_km", radius,
		"candidates", len(candidates),
	)

	return domain.WildfireRiskResult{
		RiskLevel:       finalLevel.String(),
		RiskExplanation: buildExplanation(radius, len(candidates), floor, totalScore, scoreLevel, activeNote),
	}
}

// workingRadius probes a fixed radius and adapts: above the dense threshold
// it tightens, below the sparse threshold it widens.
func (a *Assessor) workingRadius(records []domain.FireRecord, loc domain.Coordinates) float64 {
	count := 0
	for _, rec := range records {
		if domain.HaversineKm(loc.Lat, loc.Lng, rec.Location.Latitude, rec.Location.Longitude) <= probeRadiusKm {
			count++
		}
	}

	switch {
	case count > denseThreshold:
		return tightRadiusKm
	case count < sparseThreshold:
		return wideRadiusKm
	default:
		return probeRadiusKm
	}
}

// nearestCandidates filters records to the working radius, sorts ascending by
// distance, and keeps at most maxCandidates.
func nearestCandidates(records []domain.FireRecord, loc domain.Coordinates, radiusKm float64) []domain.CandidateFire {
	candidates := make([]domain.CandidateFire, 0, maxCandidates)
	for _, rec := range records {
		dist := domain.HaversineKm(loc.Lat, loc.Lng, rec.Location.Latitude, rec.Location.Longitude)
		if dist <= radiusKm {
			candidates = append(candidates, domain.CandidateFire{Record: rec, DistanceKm: dist})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].DistanceKm < candidates[j].DistanceKm
	})

	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}
	return candidates
}

// levelForScore maps the total numeric score to a danger level.
func levelForScore(score float64) domain.DangerLevel {
	switch {
	case score >= 35:
		return domain.LevelExtreme
	case score >= 20:
		return domain.LevelVeryHigh
	case score >= 12:
		return domain.LevelHigh
	case score >= 6:
		return domain.LevelMedium
	case score >= 2:
		return domain.LevelLow
	default:
		return domain.LevelNoRisk
	}
}

func buildExplanation(radiusKm float64, candidateCount int, floor domain.DangerAssessment, score float64, scoreLevel domain.DangerLevel, activeNote string) string {
	lines := []string{
		fmt.Sprintf("Search radius: %.0f km, %d historical fires considered.", radiusKm, candidateCount),
		fmt.Sprintf("Environmental assessment: %s (%s).", floor.Level, floor.Description),
		fmt.Sprintf("Historical risk score: %.2f, level %s.", score, scoreLevel),
	}
	if activeNote != "" {
		lines = append(lines, activeNote)
	}
	return strings.Join(lines, "\n")
}
