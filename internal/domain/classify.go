package domain

import "fmt"

// Classify maps raw temperature and air-quality readings to a coarse danger
// level using fixed breakpoints. It is a pure function of its input: no
// location, no historical data. The orchestrated assessment uses this verdict
// as a floor that the final level can never fall below.
func Classify(env EnvironmentalData) DangerAssessment {
	tempLevel := temperatureLevel(env.Temperature)
	level := tempLevel

	var aqLevel DangerLevel
	if env.AirQuality != nil {
		aqLevel = airQualityLevel(*env.AirQuality)
		level = MaxLevel(tempLevel, aqLevel)
	}

	if level == LevelNoRisk {
		return DangerAssessment{
			Level:       level,
			Description: "no significant environmental concerns detected",
		}
	}

	desc := fmt.Sprintf("temperature risk: %s", tempLevel)
	if env.AirQuality != nil {
		desc = fmt.Sprintf("%s; air quality risk: %s", desc, aqLevel)
	}
	return DangerAssessment{Level: level, Description: desc}
}

// temperatureLevel buckets a temperature in °C; the highest matching
// inclusive lower bound wins.
func temperatureLevel(temp float64) DangerLevel {
	switch {
	case temp >= 60:
		return LevelExtreme
	case temp >= 45:
		return LevelVeryHigh
	case temp >= 35:
		return LevelHigh
	case temp >= 25:
		return LevelMedium
	case temp >= 15:
		return LevelLow
	case temp >= 5:
		return LevelNormal
	default:
		return LevelNoRisk
	}
}

// airQualityLevel buckets an AQI-like reading. Unlike temperature, the floor
// for a present reading is "normal", never "no risk".
func airQualityLevel(aqi float64) DangerLevel {
	switch {
	case aqi >= 300:
		return LevelExtreme
	case aqi >= 200:
		return LevelVeryHigh
	case aqi >= 150:
		return LevelHigh
	case aqi >= 100:
		return LevelMedium
	case aqi >= 50:
		return LevelLow
	default:
		return LevelNormal
	}
}
