package api

import (
	"context"
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/bitmark-inc/safecare-api/agent"
	"github.com/bitmark-inc/safecare-api/audit"
	"github.com/bitmark-inc/safecare-api/geo"
	"github.com/bitmark-inc/safecare-api/logmodule"
	"github.com/bitmark-inc/safecare-api/ratelimit"
	"github.com/bitmark-inc/safecare-api/store"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "gin")
}

// Server to run a http server instance
type Server struct {
	// Server instance
	server *http.Server

	// Stores
	pins store.Pins

	// Admission control per client
	limiter *ratelimit.Limiter

	// External services
	chain  *agent.Chain
	finder geo.FacilityFinder

	// receipts of consultations
	recorder *audit.Recorder
}

// NewServer new instance of server
func NewServer(
	pins store.Pins,
	limiter *ratelimit.Limiter,
	chain *agent.Chain,
	finder geo.FacilityFinder,
	recorder *audit.Recorder) *Server {
	if recorder == nil {
		recorder = audit.NewRecorder("")
	}

	return &Server{
		pins:     pins,
		limiter:  limiter,
		chain:    chain,
		finder:   finder,
		recorder: recorder,
	}
}

// Run to run the server
func (s *Server) Run(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.setupRouter(),
	}

	return s.server.ListenAndServe()
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         10 * time.Second,
	}))

	apiRoute := r.Group("/api")
	apiRoute.Use(logmodule.Ginrus("API"))
	apiRoute.Use(cors.New(corsConfig(viper.GetStringSlice("server.cors.origins"))))
	apiRoute.GET("/information", s.information)

	// api route other than `/information` will apply the following middleware
	apiRoute.Use(s.rateLimitMiddleware)

	apiRoute.POST("/chat", s.chat)
	apiRoute.POST("/health-insights", s.healthInsights)
	apiRoute.POST("/ocr", s.ocr)
	apiRoute.POST("/safe-route", s.safeRoute)

	pinRoute := apiRoute.Group("/community-pins")
	{
		pinRoute.GET("", s.listPins)
		pinRoute.POST("", s.createPin)
		pinRoute.DELETE("", s.deletePin)
		pinRoute.POST("/:pinID/upvote", s.upvotePin)
		pinRoute.DELETE("/:pinID", s.deletePin)
	}

	r.GET("/healthz", s.healthz)

	return r
}

func corsConfig(origins []string) cors.Config {
	config := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept-Language", "Geo-Position"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}

	return config
}

// Shutdown to shutdown the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// shouldInterupt sends error message and determine if it should interupt the current flow
func shouldInterupt(err error, c *gin.Context) bool {
	if err == nil {
		return false
	}

	log.Error(err)
	abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
	return true
}

func (s *Server) healthz(c *gin.Context) {
	// Ping db
	err := s.pins.Ping()
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"version": viper.GetString("server.version"),
	})
}

func (s *Server) information(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"information": map[string]interface{}{
			"server": map[string]interface{}{
				"version": viper.GetString("server.version"),
			},
			"features": map[string]interface{}{
				"llm":             s.chain.Configured(),
				"models":          s.chain.Models(),
				"facility_lookup": s.facilityLookupConfigured(),
				"rate_limit":      s.limiter != nil,
			},
			"agents": agent.AgentTypes,
		},
	})
}

func (s *Server) facilityLookupConfigured() bool {
	if f, ok := s.finder.(interface{ Configured() bool }); ok {
		return f.Configured()
	}
	return s.finder != nil
}

func responseWithEncoding(c *gin.Context, code int, obj ErrorResponse) {
	acceptEncoding := c.GetHeader("Accept-Encoding")
	switch acceptEncoding {
	default:
		c.JSON(code, obj)
	}
}

func abortWithEncoding(c *gin.Context, code int, obj ErrorResponse, errors ...error) {
	for _, err := range errors {
		c.Error(err)
	}
	responseWithEncoding(c, code, obj)
	c.Abort()
}
