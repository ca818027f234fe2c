package domain

// DangerLevel is one of seven ordered severity tiers, from LevelNoRisk to
// LevelExtreme. The ordering is total: whenever two independently derived
// levels must be reconciled, the stronger one wins.
type DangerLevel int

const (
	LevelNoRisk DangerLevel = iota
	LevelNormal
	LevelLow
	LevelMedium
	LevelHigh
	LevelVeryHigh
	LevelExtreme
)

var levelNames = [...]string{
	LevelNoRisk:   "no risk",
	LevelNormal:   "normal",
	LevelLow:      "low",
	LevelMedium:   "medium",
	LevelHigh:     "high",
	LevelVeryHigh: "very high",
	LevelExtreme:  "extreme",
}

func (l DangerLevel) String() string {
	if l < LevelNoRisk || int(l) >= len(levelNames) {
		return "unknown"
	}
	return levelNames[l]
}

// ParseLevel maps a level name back to its DangerLevel.
func ParseLevel(s string) (DangerLevel, bool) {
	for i, name := range levelNames {
		if name == s {
			return DangerLevel(i), true
		}
	}
	return LevelNoRisk, false
}

// MaxLevel returns the stronger of two danger levels. Levels are never
// averaged; a weaker signal cannot mask a stronger one.
func MaxLevel(a, b DangerLevel) DangerLevel {
	if b > a {
		return b
	}
	return a
}
