package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/safecare-api/agent"
	"github.com/bitmark-inc/safecare-api/schema"
	"github.com/bitmark-inc/safecare-api/score"
)

func validVitals(v schema.Vitals) bool {
	if v.HeartRate == nil || v.OxygenLevel == nil {
		return false
	}
	if *v.HeartRate <= 0 || *v.OxygenLevel < 0 || *v.OxygenLevel > 100 {
		return false
	}
	if v.Age != nil && *v.Age < 0 {
		return false
	}
	if v.SleepHours != nil && (*v.SleepHours < 0 || *v.SleepHours > 24) {
		return false
	}
	return true
}

// healthInsights scores the submitted vitals. It always answers: when the
// model is missing or its answer is unusable the local estimate is returned
// with fallback set.
func (s *Server) healthInsights(c *gin.Context) {
	logger := log.WithField("api", "healthInsights")

	var vitals schema.Vitals
	if err := c.ShouldBindJSON(&vitals); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	if !validVitals(vitals) {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	fallback := func(reason string) {
		insights := score.FallbackInsights(vitals)
		insights.Error = reason
		insights.Timestamp = time.Now().UTC()
		c.JSON(http.StatusOK, insights)
	}

	if !s.chain.Configured() {
		fallback(agent.ErrNotConfigured.Error())
		return
	}

	result, err := s.chain.Generate(c.Request.Context(), agent.HealthInsightsPrompt(vitals))
	if err != nil {
		logger.WithError(err).Warn("generate health insights")
		fallback(errorUpstreamUnavailable.Error)
		return
	}

	insights, err := agent.ParseHealthInsights(result.Text)
	if err != nil {
		logger.WithError(err).WithField("model", result.Model).Warn("parse health insights")
		fallback("unparseable response from model")
		return
	}

	insights.Score = score.ComputeScore(insights.HealthVector)
	insights.OverallStatus = score.Status(insights.Score)
	insights.Timestamp = time.Now().UTC()

	c.JSON(http.StatusOK, insights)
}
