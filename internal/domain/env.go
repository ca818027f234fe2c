package domain

// Coordinates is a WGS-84 latitude/longitude pair in degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// EnvironmentalData carries the caller-supplied real-time readings for one
// assessment. Temperature and Location are required; everything else is
// optional and contributes nothing when absent. No range validation happens
// here; out-of-range values saturate the highest threshold bucket.
type EnvironmentalData struct {
	Temperature  float64     `json:"temperature"`  // °C
	AirQuality   *float64    `json:"airQuality"`   // AQI-like scalar
	WindSpeed    *float64    `json:"windSpeed"`    // km/h-like scalar
	Humidity     *float64    `json:"humidity"`     // 0-100
	DrynessIndex *float64    `json:"drynessIndex"` // 0-100
	TimeOfDay    *int        `json:"timeOfDay"`    // hour 0-23
	Location     Coordinates `json:"location"`
}

// DangerAssessment is the threshold classifier's verdict.
type DangerAssessment struct {
	Level       DangerLevel `json:"-"`
	Description string      `json:"description"`
}

// WildfireRiskResult is the orchestrated assessment returned to callers.
type WildfireRiskResult struct {
	RiskLevel       string `json:"riskLevel"`
	RiskExplanation string `json:"riskExplanation"`
}
