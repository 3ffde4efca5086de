package geo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"googlemaps.github.io/maps"

	"github.com/bitmark-inc/safecare-api/agent"
	"github.com/bitmark-inc/safecare-api/external/mocks"
	"github.com/bitmark-inc/safecare-api/schema"
)

type staticFinder struct {
	candidates []schema.FacilityCandidate
	err        error
	calls      int
}

func (f *staticFinder) FindFacilities(context.Context, schema.Location, string) ([]schema.FacilityCandidate, error) {
	f.calls++
	return f.candidates, f.err
}

func TestMultipleFacilityFinderFirstSuccess(t *testing.T) {
	failing := &staticFinder{err: fmt.Errorf("quota")}
	working := &staticFinder{candidates: []schema.FacilityCandidate{{Name: "A"}}}
	unused := &staticFinder{candidates: []schema.FacilityCandidate{{Name: "B"}}}

	result, err := NewMultipleFacilityFinder(failing, working, unused).
		FindFacilities(context.Background(), taipei101, "")

	assert.Nil(t, err)
	assert.Equal(t, "A", result[0].Name)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 0, unused.calls)
}

func TestMultipleFacilityFinderAllFail(t *testing.T) {
	_, err := NewMultipleFacilityFinder(
		&staticFinder{err: fmt.Errorf("a")},
		&staticFinder{err: fmt.Errorf("b")},
	).FindFacilities(context.Background(), taipei101, "")

	var multi *MultipleFinderErrors
	assert.True(t, errors.As(err, &multi))
	assert.Equal(t, "#0: a\n#1: b", err.Error())
}

func TestMultipleFacilityFinderNotConfigured(t *testing.T) {
	f := NewMultipleFacilityFinder()
	assert.False(t, f.Configured())

	_, err := f.FindFacilities(context.Background(), taipei101, "")
	assert.Equal(t, ErrFinderNotConfigured, err)
}

func TestAgentFacilityFinder(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	g := mocks.NewMockGenerator(ctl)
	g.EXPECT().Model().Return("model-a").AnyTimes()
	g.EXPECT().Generate(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req agent.Request) (string, error) {
			assert.Contains(t, req.Prompt, "Emergency type: cardiac")
			return "```json\n[{\"name\": \"Heart Center\", \"latitude\": 25.04, \"longitude\": 121.53, \"estimatedMinutes\": 12, \"hasCapability\": true}]\n```", nil
		}).Times(1)

	candidates, err := NewAgentFacilityFinder(agent.NewChain(g)).
		FindFacilities(context.Background(), taipei101, "cardiac")

	assert.Nil(t, err)
	assert.Len(t, candidates, 1)
	assert.Equal(t, SourceAgent, candidates[0].Source)
	assert.Equal(t, 12.0, candidates[0].EstimatedMinutes)
}

func TestHasCapability(t *testing.T) {
	assert.True(t, HasCapability("", "Some Clinic", []string{"hospital", "health"}))
	assert.True(t, HasCapability("general", "City General Hospital", nil))
	assert.False(t, HasCapability("general", "Corner Pharmacy", []string{"pharmacy"}))
	assert.True(t, HasCapability("Cardiac", "National Heart Institute", []string{"hospital"}))
	assert.False(t, HasCapability("cardiac", "Children's Hospital", []string{"hospital"}))
	assert.True(t, HasCapability("pediatric", "Children's Hospital", []string{"hospital"}))
}

func TestPlacesFacilityFinder(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.Contains(r.URL.Path, "nearbysearch"):
			assert.Equal(t, "hospital", r.URL.Query().Get("type"))
			_, _ = w.Write([]byte(`{"status": "OK", "results": [
				{"name": "Mackay Memorial Hospital", "vicinity": "Zhongshan", "types": ["hospital"],
				 "geometry": {"location": {"lat": 25.0583, "lng": 121.5223}}},
				{"name": "Taipei Heart Clinic", "vicinity": "Da'an", "types": ["doctor"],
				 "geometry": {"location": {"lat": 25.0330, "lng": 121.5430}}}
			]}`))
		case strings.Contains(r.URL.Path, "distancematrix"):
			_, _ = w.Write([]byte(`{"status": "OK", "rows": [{"elements": [
				{"status": "OK", "duration": {"value": 720, "text": "12 mins"}, "distance": {"value": 6000, "text": "6 km"}},
				{"status": "ZERO_RESULTS"}
			]}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	client, err := maps.NewClient(maps.WithAPIKey("test"), maps.WithBaseURL(ts.URL))
	assert.Nil(t, err)

	candidates, err := NewPlacesFacilityFinder(client, 0, 0).
		FindFacilities(context.Background(), taipei101, "cardiac")
	assert.Nil(t, err)
	if assert.Len(t, candidates, 2) {
		assert.Equal(t, "Mackay Memorial Hospital", candidates[0].Name)
		assert.Equal(t, 12.0, candidates[0].EstimatedMinutes)
		assert.False(t, candidates[0].HasCapability)
		assert.Equal(t, SourcePlaces, candidates[0].Source)

		// no driving duration: straight line estimate at 40 km/h
		expected := DistanceMeters(taipei101, candidates[1].Location) / fallbackSpeed
		assert.InDelta(t, expected, candidates[1].EstimatedMinutes, 1e-9)
		assert.True(t, candidates[1].HasCapability)
	}
}
