package domain

import "github.com/jonboulle/clockwork"

// clock is a package-level time source so tests can freeze time via SetClock.
// Recency and seasonality factors depend on "now"; production code uses the
// real clock and tests inject a fake for deterministic scores.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source used by scoring. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
