// Package domain models wildfire danger assessment: historical fire record
// normalization, threshold classification, and the weighted risk scoring that
// combines them.
//
// # Historical data conventions
//
// Records come from five heterogeneous JSON datasets collected from regional
// fire registries. Field types are inconsistent across sources:
//
//	Dates:
//	  - Explicit integer year/month/day columns, OR
//	  - a preformatted date string, OR
//	  - nothing (epoch sentinel 1970-01-01 is substituted).
//	  Month and day outside their calendar ranges fall back to 1.
//
//	Causes (short codes, case-insensitive):
//	  MAN, PERSON, H        → Human
//	  LTG, LIGHTNING        → Lightning
//	  SPONTANEOUS, SPONT    → Spontaneous
//	  anything else         → passed through upper-cased
//	  missing or non-string → Unknown
//
//	Severity (lower-cased, substring match):
//	  "very low" → low, "extreme" → extreme, "very high" → very high,
//	  otherwise passed through; missing → low.
//
//	Coordinates:
//	  Records without numeric latitude/longitude cannot participate in
//	  spatial scoring and are dropped during normalization.
//
//	NaN:
//	  Some sources emit a bare NaN token where a number is unknown. The
//	  loader substitutes null before decoding.
//
// # Danger levels
//
// Seven ordered tiers: no risk < normal < low < medium < high < very high <
// extreme. Independently derived levels are reconciled by taking the stronger
// one, so extreme real-time readings can never be masked by a quiet fire
// history. See [MaxLevel].
//
// # Scoring
//
// Each candidate fire contributes the product of six factors (severity, area,
// recency, cause, seasonality, distance); see [ScoreHistorical]. Year-run and
// same-year-overlap penalties, a capped frequency score, and real-time
// condition bonuses are added once per scoring call.
package domain
