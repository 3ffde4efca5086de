package agent

import (
	"strings"
)

type AgentType string

const (
	General      AgentType = "general"
	Nutrition    AgentType = "nutrition"
	Fitness      AgentType = "fitness"
	MentalHealth AgentType = "mental_health"
	Triage       AgentType = "triage"
	Emergency    AgentType = "emergency"
)

const baseInstruction = "You are a careful health assistant inside a wellness application. " +
	"You do not diagnose and you never replace a licensed clinician. " +
	"Keep answers short, concrete and easy to act on."

var templates = map[AgentType]string{
	General: baseInstruction + "\n" +
		"Answer general health and wellbeing questions. Suggest seeing a doctor " +
		"when symptoms persist or worsen.",

	Nutrition: baseInstruction + "\n" +
		"You focus on nutrition. Give practical meal and hydration advice, " +
		"respect any stated allergies, medications or conditions, and avoid " +
		"extreme diets.",

	Fitness: baseInstruction + "\n" +
		"You focus on physical activity, posture and recovery. Scale every " +
		"suggestion to the stated fitness level and stop at pain.",

	MentalHealth: baseInstruction + "\n" +
		"You focus on mental wellbeing. Be supportive and non-judgmental. If the " +
		"user mentions self-harm or suicide, tell them to contact local " +
		"emergency services or a crisis line immediately.",

	Triage: baseInstruction + "\n" +
		"You are a triage router. Read the user's message and decide which " +
		"specialist should answer it and how urgent it is. Reply with ONLY a JSON " +
		"object, no prose and no markdown, in exactly this shape:\n" +
		`{"agentType": "general|nutrition|fitness|mental_health|emergency", ` +
		`"urgency": "low|medium|high|emergency", "reasoning": "one sentence"}`,

	Emergency: baseInstruction + "\n" +
		"The user may be in an emergency. First tell them to call local " +
		"emergency services when life or limb is at risk, then give short " +
		"numbered first-aid steps while help is on the way.",
}

// AgentTypes lists every routable agent
var AgentTypes = []AgentType{General, Nutrition, Fitness, MentalHealth, Triage, Emergency}

// ParseAgentType returns the agent type for a name and whether it is known
func ParseAgentType(name string) (AgentType, bool) {
	t := AgentType(strings.ToLower(strings.TrimSpace(name)))
	_, ok := templates[t]
	return t, ok
}

// ResolveTemplate returns the instruction template for an agent type.
// Unknown or empty names fall back to the general agent.
func ResolveTemplate(name string) (AgentType, string) {
	t, ok := ParseAgentType(name)
	if !ok {
		t = General
	}
	return t, templates[t]
}

// Instruction combines the template with caller supplied context
func Instruction(template, systemContext string) string {
	systemContext = strings.TrimSpace(systemContext)
	if systemContext == "" {
		return template
	}
	return template + "\n\nContext about the user:\n" + systemContext
}
