package geo

import (
	"strings"
)

// capabilityKeywords maps an emergency type to words that identify a
// facility able to treat it
var capabilityKeywords = map[string][]string{
	"cardiac":   {"heart", "cardiac", "cardio", "cardiovascular"},
	"stroke":    {"stroke", "neuro", "brain"},
	"trauma":    {"trauma", "emergency", "er "},
	"burn":      {"burn"},
	"pediatric": {"child", "children", "pediatric", "paediatric", "kids"},
	"maternity": {"maternity", "women", "obstetric", "birth"},
	"mental":    {"psychiatric", "mental", "behavioral"},
}

// HasCapability decides whether a facility can treat an emergency type from
// its name and place types. General or unknown emergencies are served by
// any hospital.
func HasCapability(emergencyType, name string, types []string) bool {
	emergencyType = strings.ToLower(strings.TrimSpace(emergencyType))
	name = strings.ToLower(name) + " "

	keywords, ok := capabilityKeywords[emergencyType]
	if !ok {
		for _, t := range types {
			if t == "hospital" {
				return true
			}
		}
		return strings.Contains(name, "hospital")
	}

	for _, k := range keywords {
		if strings.Contains(name, k) {
			return true
		}
	}

	return false
}
