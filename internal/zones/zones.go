// Package zones keeps recent danger-zone observations in memory. Nothing is
// persisted; a restart empties the store.
package zones

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/wildfire-risk-service/internal/domain"
	"github.com/couchcryptid/wildfire-risk-service/internal/observability"
)

// Observation records one elevated assessment at a location.
type Observation struct {
	Location    domain.Coordinates `json:"location"`
	RiskLevel   string             `json:"riskLevel"`
	Temperature float64            `json:"temperature"`
	ObservedAt  time.Time          `json:"observedAt"`
}

// Store holds observations newer than the TTL. Expired entries are pruned on
// every access rather than by a background sweeper.
type Store struct {
	ttl     time.Duration
	clock   clockwork.Clock
	metrics *observability.Metrics

	mu           sync.Mutex
	observations []Observation
}

// NewStore creates a Store with the given retention window.
func NewStore(ttl time.Duration, clock clockwork.Clock, metrics *observability.Metrics) *Store {
	return &Store{ttl: ttl, clock: clock, metrics: metrics}
}

// Add records an observation, stamping it with the current time, and returns
// the stamped copy.
func (s *Store) Add(obs Observation) Observation {
	s.mu.Lock()
	defer s.mu.Unlock()

	obs.ObservedAt = s.clock.Now().UTC()
	s.pruneLocked()
	s.observations = append(s.observations, obs)
	s.metrics.ZoneObservations.Set(float64(len(s.observations)))
	return obs
}

// Recent returns a copy of all unexpired observations, oldest first.
func (s *Store) Recent() []Observation {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked()
	out := make([]Observation, len(s.observations))
	copy(out, s.observations)
	return out
}

func (s *Store) pruneLocked() {
	cutoff := s.clock.Now().Add(-s.ttl)
	kept := s.observations[:0]
	for _, obs := range s.observations {
		if obs.ObservedAt.After(cutoff) {
			kept = append(kept, obs)
		}
	}
	s.observations = kept
	s.metrics.ZoneObservations.Set(float64(len(s.observations)))
}
