package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/couchcryptid/wildfire-risk-service/internal/domain"
)

// environmentalRequest is the request body for classify and assess. Optional
// readings stay nil when omitted so absent values contribute nothing.
type environmentalRequest struct {
	Temperature  *float64            `json:"temperature" binding:"required"`
	AirQuality   *float64            `json:"airQuality"`
	WindSpeed    *float64            `json:"windSpeed"`
	Humidity     *float64            `json:"humidity"`
	DrynessIndex *float64            `json:"drynessIndex"`
	TimeOfDay    *int                `json:"timeOfDay"`
	Location     *domain.Coordinates `json:"location"`
}

func (r environmentalRequest) toDomain() domain.EnvironmentalData {
	env := domain.EnvironmentalData{
		Temperature:  *r.Temperature,
		AirQuality:   r.AirQuality,
		WindSpeed:    r.WindSpeed,
		Humidity:     r.Humidity,
		DrynessIndex: r.DrynessIndex,
		TimeOfDay:    r.TimeOfDay,
	}
	if r.Location != nil {
		env.Location = *r.Location
	}
	return env
}

// handleClassify runs the threshold classifier alone; no location, no
// historical data, no network.
// POST /api/v1/classify
func (s *Server) handleClassify(c *gin.Context) {
	var req environmentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assessment := domain.Classify(req.toDomain())
	c.JSON(http.StatusOK, gin.H{
		"level":       assessment.Level.String(),
		"description": assessment.Description,
	})
}

// handleAssess runs the full risk assessment. A location is required; callers
// without one belong on /classify.
// POST /api/v1/assess
func (s *Server) handleAssess(c *gin.Context) {
	var req environmentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Location == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "location is required; use /api/v1/classify for location-free assessment"})
		return
	}

	env := req.toDomain()
	result := s.assessor.Assess(c.Request.Context(), env)

	if levelAtLeastMedium(result.RiskLevel) {
		s.recordObservation(c.Request.Context(), env, result.RiskLevel)
	}

	c.JSON(http.StatusOK, result)
}

// levelAtLeastMedium gates which assessments become danger-zone observations.
func levelAtLeastMedium(level string) bool {
	l, ok := domain.ParseLevel(level)
	return ok && l >= domain.LevelMedium
}
