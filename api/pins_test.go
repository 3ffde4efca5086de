package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/safecare-api/api/mocks"
	"github.com/bitmark-inc/safecare-api/schema"
	"github.com/bitmark-inc/safecare-api/store"
)

func pinRouter(pins store.Pins) *gin.Engine {
	s := NewServer(pins, nil, nil, nil, nil)
	router := gin.New()
	router.GET("/community-pins", s.listPins)
	router.POST("/community-pins", s.createPin)
	router.DELETE("/community-pins", s.deletePin)
	router.POST("/community-pins/:pinID/upvote", s.upvotePin)
	router.DELETE("/community-pins/:pinID", s.deletePin)
	return router
}

func createTestPin(t *testing.T, router http.Handler, body map[string]interface{}) schema.HazardPin {
	w := performRequest(router, "POST", "/community-pins", body)
	assert.Equal(t, http.StatusCreated, w.Code, "wrong status code")

	var jResp struct {
		Result schema.HazardPin `json:"result"`
	}
	assert.Nil(t, json.Unmarshal(w.Body.Bytes(), &jResp), "wrong json unmarshal")
	return jResp.Result
}

func listTestPins(t *testing.T, router http.Handler, path string, header map[string]string) []schema.HazardPin {
	req := httptest.NewRequest("GET", path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var jResp struct {
		Pins []schema.HazardPin `json:"pins"`
	}
	assert.Nil(t, json.Unmarshal(w.Body.Bytes(), &jResp), "wrong json unmarshal")
	return jResp.Pins
}

func TestCommunityPins(t *testing.T) {
	router := pinRouter(store.NewMemoryPins())

	danger := createTestPin(t, router, map[string]interface{}{
		"location":    schema.Location{Latitude: 25.0330, Longitude: 121.5654},
		"type":        "danger",
		"category":    "crime",
		"description": strings.Repeat("x", schema.PinDescriptionLimit+20),
	})
	assert.NotEmpty(t, danger.ID)
	assert.Equal(t, schema.PinDanger, danger.Type)
	assert.Len(t, danger.Description, schema.PinDescriptionLimit)
	assert.Equal(t, int64(0), danger.Upvotes)

	safe := createTestPin(t, router, map[string]interface{}{
		"location": schema.Location{Latitude: 25.0478, Longitude: 121.5170},
		"type":     "safe",
	})
	assert.Equal(t, schema.CategoryOther, safe.Category)

	assert.Len(t, listTestPins(t, router, "/community-pins", nil), 2)

	pins := listTestPins(t, router, "/community-pins?type=danger", nil)
	if assert.Len(t, pins, 1) {
		assert.Equal(t, danger.ID, pins[0].ID)
	}

	// the two pins are about 5 km apart
	pins = listTestPins(t, router, "/community-pins?lat=25.0478&lng=121.5170&radius=1000", nil)
	if assert.Len(t, pins, 1) {
		assert.Equal(t, safe.ID, pins[0].ID)
	}
	pins = listTestPins(t, router, "/community-pins", map[string]string{"Geo-Position": "25.0330;121.5654"})
	assert.Len(t, pins, 2)

	w := performRequest(router, "POST", "/community-pins/"+danger.ID+"/upvote", nil)
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")
	var upvoted struct {
		Result schema.HazardPin `json:"result"`
	}
	assert.Nil(t, json.Unmarshal(w.Body.Bytes(), &upvoted), "wrong json unmarshal")
	assert.Equal(t, int64(1), upvoted.Result.Upvotes)

	w = performRequest(router, "DELETE", "/community-pins/"+danger.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")
	w = performRequest(router, "DELETE", "/community-pins?id="+safe.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	assert.Len(t, listTestPins(t, router, "/community-pins", nil), 0)
}

func TestCommunityPinsNotFound(t *testing.T) {
	router := pinRouter(store.NewMemoryPins())

	w := performRequest(router, "POST", "/community-pins/missing/upvote", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "wrong status code")
	assert.Equal(t, errorPinNotFound, decodeError(t, w))

	w = performRequest(router, "DELETE", "/community-pins/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "wrong status code")

	w = performRequest(router, "DELETE", "/community-pins", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, "wrong status code")
}

func TestCommunityPinsInvalidInput(t *testing.T) {
	router := pinRouter(store.NewMemoryPins())

	for _, body := range []map[string]interface{}{
		{"type": "danger"},
		{"location": schema.Location{Latitude: 10, Longitude: 200}, "type": "danger"},
		{"location": schema.Location{Latitude: 10, Longitude: 20}, "type": "scary"},
		{"location": schema.Location{Latitude: 10, Longitude: 20}, "type": "danger", "category": "ghosts"},
	} {
		w := performRequest(router, "POST", "/community-pins", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %v", body)
	}

	for _, path := range []string{
		"/community-pins?type=scary",
		"/community-pins?lat=abc&lng=1",
		"/community-pins?lat=1&lng=1&radius=-5",
	} {
		w := performRequest(router, "GET", path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "path %s", path)
	}
}

func TestCommunityPinsStoreError(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	p := mocks.NewMockPins(ctl)
	p.EXPECT().ListPins(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("connection reset")).Times(1)
	p.EXPECT().UpvotePin(gomock.Any(), "p1").Return(nil, fmt.Errorf("connection reset")).Times(1)

	router := pinRouter(p)

	w := performRequest(router, "GET", "/community-pins", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code, "wrong status code")

	w = performRequest(router, "POST", "/community-pins/p1/upvote", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code, "wrong status code")
	assert.Equal(t, errorInternalServer, decodeError(t, w))
}

func TestParseGeoPosition(t *testing.T) {
	lat, long, err := parseGeoPosition("25.0330;121.5654")
	assert.Nil(t, err)
	assert.Equal(t, 25.0330, lat)
	assert.Equal(t, 121.5654, long)

	_, _, err = parseGeoPosition("25.0330,121.5654")
	assert.NotNil(t, err)
}
