package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bitmark-inc/safecare-api/schema"
	"github.com/bitmark-inc/safecare-api/store"
)

// defaultPinRadius applies when a location is given without a radius
const defaultPinRadius = 10000.0

// listPins is the API to query community pins, optionally by type and
// around a location
func (s *Server) listPins(c *gin.Context) {
	var filter schema.PinFilter

	if t := c.Query("type"); t != "" {
		filter.Type = schema.PinType(strings.ToLower(t))
		if !filter.Type.Valid() {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
			return
		}
	}

	loc, err := requestLocation(c)
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	if loc != nil {
		filter.Near = loc
		filter.RadiusMeters = defaultPinRadius

		if r := c.Query("radius"); r != "" {
			radius, err := strconv.ParseFloat(r, 64)
			if err != nil || radius <= 0 {
				abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
				return
			}
			filter.RadiusMeters = radius
		}
	}

	pins, err := s.pins.ListPins(c.Request.Context(), filter)
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pins": pins,
	})
}

// createPin is the API to submit a new community pin
func (s *Server) createPin(c *gin.Context) {
	var params struct {
		Location    *schema.Location   `json:"location"`
		Type        schema.PinType     `json:"type"`
		Category    schema.PinCategory `json:"category"`
		Description string             `json:"description"`
	}

	if err := c.ShouldBindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	if params.Category == "" {
		params.Category = schema.CategoryOther
	}

	if params.Location == nil || !params.Location.Valid() ||
		!params.Type.Valid() || !params.Category.Valid() {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	pin, err := s.pins.AddPin(c.Request.Context(), schema.HazardPin{
		ID:          uuid.New().String(),
		Location:    *params.Location,
		Type:        params.Type,
		Category:    params.Category,
		Description: schema.TruncateDescription(strings.TrimSpace(params.Description)),
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"result": pin,
	})
}

// upvotePin is the API to confirm an existing pin
func (s *Server) upvotePin(c *gin.Context) {
	pin, err := s.pins.UpvotePin(c.Request.Context(), c.Param("pinID"))
	switch err {
	case nil:
	case store.ErrPinNotFound:
		abortWithEncoding(c, http.StatusNotFound, errorPinNotFound)
		return
	default:
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": pin,
	})
}

// deletePin is the API to remove a pin given by path or by the `id` query
func (s *Server) deletePin(c *gin.Context) {
	id := c.Param("pinID")
	if id == "" {
		id = c.Query("id")
	}
	if id == "" {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	switch err := s.pins.DeletePin(c.Request.Context(), id); err {
	case nil:
	case store.ErrPinNotFound:
		abortWithEncoding(c, http.StatusNotFound, errorPinNotFound)
		return
	default:
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": "OK"})
}
