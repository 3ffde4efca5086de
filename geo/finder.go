package geo

import (
	"context"
	"fmt"
	"strings"

	"github.com/bitmark-inc/safecare-api/agent"
	"github.com/bitmark-inc/safecare-api/schema"
)

var (
	ErrFinderNotConfigured = fmt.Errorf("no facility finder configured")
)

const (
	SourcePlaces = "places"
	SourceAgent  = "agent"
)

// FacilityFinder - interface for looking up facilities around a location
type FacilityFinder interface {
	FindFacilities(ctx context.Context, origin schema.Location, emergencyType string) ([]schema.FacilityCandidate, error)
}

type MultipleFinderErrors struct {
	errors []error
}

func (e *MultipleFinderErrors) Error() string {
	errorStrings := make([]string, len(e.errors))
	for i, err := range e.errors {
		errorStrings[i] = fmt.Sprintf("#%d: %s", i, err.Error())
	}
	return strings.Join(errorStrings, "\n")
}

func NewMultipleFinderErrors(errors []error) *MultipleFinderErrors {
	return &MultipleFinderErrors{
		errors: errors,
	}
}

type MultipleFacilityFinder struct {
	finders []FacilityFinder
}

func NewMultipleFacilityFinder(finders ...FacilityFinder) *MultipleFacilityFinder {
	return &MultipleFacilityFinder{
		finders: finders,
	}
}

// Configured reports whether any finder is available
func (f *MultipleFacilityFinder) Configured() bool {
	return f != nil && len(f.finders) > 0
}

func (f *MultipleFacilityFinder) FindFacilities(ctx context.Context, origin schema.Location, emergencyType string) ([]schema.FacilityCandidate, error) {
	if !f.Configured() {
		return nil, ErrFinderNotConfigured
	}

	var errors []error
	for _, finder := range f.finders {
		result, err := finder.FindFacilities(ctx, origin, emergencyType)
		if err != nil {
			errors = append(errors, err)
		} else {
			return result, nil
		}
	}

	return nil, NewMultipleFinderErrors(errors)
}

// AgentFacilityFinder asks the language model for nearby facilities
type AgentFacilityFinder struct {
	chain *agent.Chain
}

func NewAgentFacilityFinder(chain *agent.Chain) *AgentFacilityFinder {
	return &AgentFacilityFinder{
		chain: chain,
	}
}

func (f *AgentFacilityFinder) FindFacilities(ctx context.Context, origin schema.Location, emergencyType string) ([]schema.FacilityCandidate, error) {
	result, err := f.chain.Generate(ctx, agent.FacilityPrompt(origin, emergencyType))
	if err != nil {
		return nil, err
	}

	candidates, err := agent.ParseFacilities(result.Text)
	if err != nil {
		return nil, err
	}

	for i := range candidates {
		candidates[i].Source = SourceAgent
	}

	return candidates, nil
}
