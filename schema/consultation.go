package schema

import (
	"bytes"
	"encoding/json"
	"time"
)

// ConsultationReceipt is the tamper evidence record handed back to the
// client for every completed consultation or document extraction
type ConsultationReceipt struct {
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	AgentType     string    `json:"agentType"`
	PromptSummary string    `json:"promptSummary"`
	ContentHash   string    `json:"contentHash"`
	Model         string    `json:"model"`
	Disclaimer    string    `json:"disclaimer"`
}

type Urgency string

const (
	UrgencyLow       Urgency = "low"
	UrgencyMedium    Urgency = "medium"
	UrgencyHigh      Urgency = "high"
	UrgencyEmergency Urgency = "emergency"
)

func (u Urgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyEmergency:
		return true
	}
	return false
}

// TriageDecision is the constrained output of the triage agent
type TriageDecision struct {
	AgentType string  `json:"agentType"`
	Urgency   Urgency `json:"urgency"`
	Reasoning string  `json:"reasoning"`
}

const (
	LabStatusNormal   = "normal"
	LabStatusHigh     = "high"
	LabStatusLow      = "low"
	LabStatusAbnormal = "abnormal"
	LabStatusUnknown  = "unknown"
)

type LabResult struct {
	TestName       string `json:"testName"`
	Value          string `json:"value"`
	Unit           string `json:"unit"`
	ReferenceRange string `json:"referenceRange"`
	Status         string `json:"status"`
}

// UnmarshalJSON accepts a numeric value as well as a string one. Numbers
// keep their literal text, so 13.50 stays "13.50".
func (r *LabResult) UnmarshalJSON(data []byte) error {
	type plain LabResult
	var raw struct {
		plain
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = LabResult(raw.plain)
	r.Value = ""

	value := bytes.TrimSpace(raw.Value)
	switch {
	case len(value) == 0 || bytes.Equal(value, []byte("null")):
	case value[0] == '"':
		return json.Unmarshal(value, &r.Value)
	default:
		var n json.Number
		if err := json.Unmarshal(value, &n); err != nil {
			return err
		}
		r.Value = n.String()
	}
	return nil
}

type LabExtraction struct {
	Results []LabResult `json:"results"`
	Notes   string      `json:"notes"`
}
