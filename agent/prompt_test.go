package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/safecare-api/schema"
)

func TestHealthInsightsPrompt(t *testing.T) {
	hr, o2, sleep := 72.0, 98.0, 6.5
	age := 41
	req := HealthInsightsPrompt(schema.Vitals{
		HeartRate:   &hr,
		OxygenLevel: &o2,
		Age:         &age,
		SleepHours:  &sleep,
		Conditions:  []string{"asthma"},
	})

	assert.True(t, req.JSON)
	assert.Contains(t, req.System, `"mental_health"`)
	assert.Contains(t, req.Prompt, "heart rate: 72 bpm")
	assert.Contains(t, req.Prompt, "blood oxygen: 98%")
	assert.Contains(t, req.Prompt, "age: 41")
	assert.Contains(t, req.Prompt, "sleep: 6.5 hours")
	assert.Contains(t, req.Prompt, "conditions: asthma")
	assert.NotContains(t, req.Prompt, "medications")
}

func TestParseHealthInsights(t *testing.T) {
	insights, err := ParseHealthInsights("```json\n" + `{
		"healthVector": {"cardiovascular": 0.9, "metabolic": 1.4, "sleep": -0.2},
		"riskFactors": ["short sleep"],
		"summary": "ok"
	}` + "\n```")

	assert.Nil(t, err)
	assert.Len(t, insights.HealthVector, 8)
	assert.Equal(t, 0.9, insights.HealthVector[schema.AxisCardiovascular])
	assert.Equal(t, 1.0, insights.HealthVector[schema.AxisMetabolic])
	assert.Equal(t, 0.0, insights.HealthVector[schema.AxisSleep])
	assert.Equal(t, schema.NeutralAxisValue, insights.HealthVector[schema.AxisStress])
	assert.Equal(t, []string{"short sleep"}, insights.RiskFactors)
	assert.Equal(t, []string{}, insights.Recommendations)
}

func TestParseHealthInsightsWithoutVector(t *testing.T) {
	_, err := ParseHealthInsights(`{"summary": "fine"}`)
	assert.Equal(t, ErrMissingHealthVector, err)
}

func TestParseLabExtraction(t *testing.T) {
	e, err := ParseLabExtraction(`{"results": [
		{"testName": "HbA1c", "value": "6.1", "unit": "%", "referenceRange": "4.0-5.6", "status": "High"},
		{"testName": "LDL", "value": "99", "unit": "mg/dL", "status": "borderline"}
	], "notes": "fasting"}`)

	assert.Nil(t, err)
	assert.Len(t, e.Results, 2)
	assert.Equal(t, schema.LabStatusHigh, e.Results[0].Status)
	assert.Equal(t, schema.LabStatusUnknown, e.Results[1].Status)
	assert.Equal(t, "fasting", e.Notes)
}

func TestParseLabExtractionNumericValue(t *testing.T) {
	e, err := ParseLabExtraction(`{"results": [
		{"testName": "Hemoglobin", "value": 13.5, "unit": "g/dL", "referenceRange": "12-16", "status": "normal"},
		{"testName": "Platelets", "value": 250, "unit": "10^3/uL", "status": "normal"},
		{"testName": "HbA1c", "value": "6.1", "unit": "%", "status": "high"},
		{"testName": "Culture", "value": null, "status": "abnormal"}
	]}`)

	assert.Nil(t, err)
	if assert.Len(t, e.Results, 4) {
		assert.Equal(t, "13.5", e.Results[0].Value)
		assert.Equal(t, "g/dL", e.Results[0].Unit)
		assert.Equal(t, "12-16", e.Results[0].ReferenceRange)
		assert.Equal(t, "250", e.Results[1].Value)
		assert.Equal(t, "6.1", e.Results[2].Value)
		assert.Equal(t, "", e.Results[3].Value)
		assert.Equal(t, schema.LabStatusAbnormal, e.Results[3].Status)
	}
}

func TestLabExtractionPrompt(t *testing.T) {
	req := LabExtractionPrompt("image/png", []byte{1, 2, 3})
	assert.Len(t, req.Attachments, 1)
	assert.Equal(t, "image/png", req.Attachments[0].MIMEType)
	assert.True(t, req.JSON)
}

func TestParseFacilities(t *testing.T) {
	candidates, err := ParseFacilities(`Here you go:
[
  {"name": "Mackay Memorial", "latitude": 25.0583, "longitude": 121.5223, "estimatedMinutes": 9, "hasCapability": true},
  {"name": "", "latitude": 25.0, "longitude": 121.5, "estimatedMinutes": 4},
  {"name": "Nowhere", "latitude": 125.0, "longitude": 121.5, "estimatedMinutes": 4}
]`)

	assert.Nil(t, err)
	assert.Len(t, candidates, 1)
	assert.Equal(t, "Mackay Memorial", candidates[0].Name)
	assert.Equal(t, 9.0, candidates[0].EstimatedMinutes)
	assert.True(t, candidates[0].HasCapability)

	_, err = ParseFacilities(`[]`)
	assert.Equal(t, ErrNoFacilities, err)
}
