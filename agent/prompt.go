package agent

import (
	"fmt"
	"strings"

	"github.com/bitmark-inc/safecare-api/schema"
)

var (
	ErrMissingHealthVector = fmt.Errorf("health vector missing from response")
	ErrNoFacilities        = fmt.Errorf("no facilities in response")
)

const healthInsightsInstruction = "You are a clinical data analyst. Score the user's " +
	"wellbeing on eight axes between 0 (very poor) and 1 (ideal). Reply with ONLY " +
	"a JSON object in this shape:\n" +
	`{"healthVector": {"cardiovascular": 0.0, "metabolic": 0.0, "respiratory": 0.0, ` +
	`"mental_health": 0.0, "sleep": 0.0, "activity": 0.0, "nutrition": 0.0, "stress": 0.0}, ` +
	`"riskFactors": ["..."], "recommendations": ["..."], "summary": "..."}`

// HealthInsightsPrompt builds the request asking a model to score vitals
func HealthInsightsPrompt(v schema.Vitals) Request {
	var b strings.Builder

	b.WriteString("Vitals:\n")
	if v.HeartRate != nil {
		fmt.Fprintf(&b, "- heart rate: %.0f bpm\n", *v.HeartRate)
	}
	if v.OxygenLevel != nil {
		fmt.Fprintf(&b, "- blood oxygen: %.0f%%\n", *v.OxygenLevel)
	}
	if v.Age != nil {
		fmt.Fprintf(&b, "- age: %d\n", *v.Age)
	}
	if v.Gender != "" {
		fmt.Fprintf(&b, "- gender: %s\n", v.Gender)
	}
	if v.ActivityLevel != "" {
		fmt.Fprintf(&b, "- activity level: %s\n", v.ActivityLevel)
	}
	if v.SleepHours != nil {
		fmt.Fprintf(&b, "- sleep: %.1f hours per night\n", *v.SleepHours)
	}
	if len(v.Medications) > 0 {
		fmt.Fprintf(&b, "- medications: %s\n", strings.Join(v.Medications, ", "))
	}
	if len(v.Conditions) > 0 {
		fmt.Fprintf(&b, "- conditions: %s\n", strings.Join(v.Conditions, ", "))
	}

	return Request{
		System: healthInsightsInstruction,
		Prompt: b.String(),
		JSON:   true,
	}
}

// ParseHealthInsights reads a model answer into insights. Score and status
// are left for the caller to derive from the vector.
func ParseHealthInsights(text string) (*schema.HealthInsights, error) {
	var answer struct {
		HealthVector    schema.HealthVector `json:"healthVector"`
		RiskFactors     []string            `json:"riskFactors"`
		Recommendations []string            `json:"recommendations"`
		Summary         string              `json:"summary"`
	}

	if err := DecodeJSON(text, &answer); err != nil {
		return nil, err
	}

	if len(answer.HealthVector) == 0 {
		return nil, ErrMissingHealthVector
	}

	insights := &schema.HealthInsights{
		HealthVector:    answer.HealthVector.Normalize(),
		RiskFactors:     answer.RiskFactors,
		Recommendations: answer.Recommendations,
		Summary:         answer.Summary,
	}
	if insights.RiskFactors == nil {
		insights.RiskFactors = []string{}
	}
	if insights.Recommendations == nil {
		insights.Recommendations = []string{}
	}

	return insights, nil
}

const labExtractionInstruction = "You read medical lab reports. Extract every test " +
	"result from the attached document. Reply with ONLY a JSON object in this shape:\n" +
	`{"results": [{"testName": "...", "value": "...", "unit": "...", ` +
	`"referenceRange": "...", "status": "normal|high|low|abnormal|unknown"}], "notes": "..."}` +
	"\nUse an empty results list when the document is not a lab report."

// LabExtractionPrompt builds the request for reading an uploaded document
func LabExtractionPrompt(mimeType string, data []byte) Request {
	return Request{
		System: labExtractionInstruction,
		Prompt: "Extract the lab results from this document.",
		Attachments: []Attachment{
			{MIMEType: mimeType, Data: data},
		},
		JSON: true,
	}
}

// ParseLabExtraction reads the extraction answer and normalizes statuses
func ParseLabExtraction(text string) (*schema.LabExtraction, error) {
	var e schema.LabExtraction
	if err := DecodeJSON(text, &e); err != nil {
		return nil, err
	}

	if e.Results == nil {
		e.Results = []schema.LabResult{}
	}
	for i := range e.Results {
		status := strings.ToLower(strings.TrimSpace(e.Results[i].Status))
		switch status {
		case schema.LabStatusNormal, schema.LabStatusHigh, schema.LabStatusLow, schema.LabStatusAbnormal:
		default:
			status = schema.LabStatusUnknown
		}
		e.Results[i].Status = status
	}

	return &e, nil
}

const facilityInstruction = "You help people find emergency care. List real " +
	"hospitals or emergency rooms close to the given coordinate. Reply with ONLY " +
	"a JSON array in this shape:\n" +
	`[{"name": "...", "address": "...", "latitude": 0.0, "longitude": 0.0, ` +
	`"estimatedMinutes": 0, "hasCapability": true}]` +
	"\nhasCapability tells whether the facility can treat the emergency type."

// FacilityPrompt builds the request asking a model for nearby facilities
func FacilityPrompt(origin schema.Location, emergencyType string) Request {
	if emergencyType == "" {
		emergencyType = "general"
	}

	return Request{
		System: facilityInstruction,
		Prompt: fmt.Sprintf("Location: %.6f, %.6f\nEmergency type: %s\nList up to 5 facilities.",
			origin.Latitude, origin.Longitude, emergencyType),
		JSON: true,
	}
}

// ParseFacilities reads the facility list answer. Entries with an invalid
// coordinate or a missing name are dropped.
func ParseFacilities(text string) ([]schema.FacilityCandidate, error) {
	var answer []struct {
		Name             string  `json:"name"`
		Address          string  `json:"address"`
		Latitude         float64 `json:"latitude"`
		Longitude        float64 `json:"longitude"`
		EstimatedMinutes float64 `json:"estimatedMinutes"`
		HasCapability    bool    `json:"hasCapability"`
	}

	if err := DecodeJSON(text, &answer); err != nil {
		return nil, err
	}

	candidates := make([]schema.FacilityCandidate, 0, len(answer))
	for _, a := range answer {
		loc := schema.Location{Latitude: a.Latitude, Longitude: a.Longitude}
		if a.Name == "" || !loc.Valid() || a.EstimatedMinutes < 0 {
			continue
		}
		candidates = append(candidates, schema.FacilityCandidate{
			Name:             a.Name,
			Address:          a.Address,
			Location:         loc,
			EstimatedMinutes: a.EstimatedMinutes,
			HasCapability:    a.HasCapability,
		})
	}

	if len(candidates) == 0 {
		return nil, ErrNoFacilities
	}

	return candidates, nil
}
