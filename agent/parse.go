package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bitmark-inc/safecare-api/schema"
)

var ErrNoJSON = fmt.Errorf("no json document found in response")

// StripCodeFence removes a surrounding markdown code fence such as ```json
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	// drop the info string, e.g. "json"
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(strings.TrimPrefix(s, "json"), "JSON")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")

	return strings.TrimSpace(s)
}

// DecodeJSON parses a model answer that is expected to be JSON. Markdown
// fences and prose around the document are tolerated. Decoding stops after
// the first complete value, so trailing text may contain anything.
func DecodeJSON(text string, out interface{}) error {
	s := StripCodeFence(text)

	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return ErrNoJSON
	}

	return json.NewDecoder(strings.NewReader(s[start:])).Decode(out)
}

// DefaultTriage is returned whenever a triage answer cannot be trusted
func DefaultTriage() schema.TriageDecision {
	return schema.TriageDecision{
		AgentType: string(General),
		Urgency:   schema.UrgencyMedium,
		Reasoning: "Unable to classify the request automatically; routed to the general assistant.",
	}
}

// ParseTriage reads the answer of the triage agent. It never fails: anything
// malformed yields DefaultTriage.
func ParseTriage(text string) schema.TriageDecision {
	var d schema.TriageDecision
	if err := DecodeJSON(text, &d); err != nil {
		log.WithError(err).Warn("unparsable triage answer")
		return DefaultTriage()
	}

	d.Urgency = schema.Urgency(strings.ToLower(strings.TrimSpace(string(d.Urgency))))
	if !d.Urgency.Valid() {
		log.WithField("urgency", d.Urgency).Warn("invalid triage urgency")
		return DefaultTriage()
	}

	t, ok := ParseAgentType(d.AgentType)
	if !ok || t == Triage {
		t = General
	}
	d.AgentType = string(t)

	return d
}
