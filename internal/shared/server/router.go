package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"docassist/internal/shared/config"
	"docassist/internal/shared/metrics"
	"docassist/internal/shared/server/middleware"
	"docassist/internal/shared/server/respond"
)

const (
	apiPrefix = "/api/v1"

	rateGroupDefault = "DEFAULT"
	rateGroupDetect  = "DETECT"
	rateGroupAnalyze = "ANALYZE"
)

// RouteRegistrar is implemented by every feature handler.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

type RouterDeps struct {
	Config         config.Config
	CatalogVersion string

	DocumentsHandler  RouteRegistrar
	AnalysesHandler   RouteRegistrar
	FeedbackHandler   RouteRegistrar
	IndustriesHandler RouteRegistrar
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(rateLimitConfig(deps.Config)),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group(apiPrefix)
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true, "catalogVersion": deps.CatalogVersion})
	})
	for _, h := range []RouteRegistrar{
		deps.IndustriesHandler,
		deps.DocumentsHandler,
		deps.AnalysesHandler,
		deps.FeedbackHandler,
	} {
		if h != nil {
			h.RegisterRoutes(api)
		}
	}

	return r
}

// rateLimitConfig gives detection and realtime stats twice the configured budget
// and full analyses the configured one. Reads share the default rule.
func rateLimitConfig(cfg config.Config) middleware.RateLimitConfig {
	base := middleware.RateLimitRule{Rate: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst}
	return middleware.RateLimitConfig{
		DefaultGroup: rateGroupDefault,
		GroupFor:     rateGroupFor,
		Rules: map[string]middleware.RateLimitRule{
			rateGroupDefault: {Rate: base.Rate * 4, Burst: base.Burst * 4},
			rateGroupDetect:  {Rate: base.Rate * 2, Burst: base.Burst * 2},
			rateGroupAnalyze: base,
		},
	}
}

func rateGroupFor(c *gin.Context) string {
	path := c.FullPath()
	if c.Request.Method != http.MethodPost {
		return rateGroupDefault
	}
	switch {
	case path == apiPrefix+"/industries/detect",
		path == apiPrefix+"/analyses/realtime":
		return rateGroupDetect
	case strings.HasPrefix(path, apiPrefix+"/analyses"),
		path == apiPrefix+"/documents",
		path == apiPrefix+"/documents/batch",
		strings.HasSuffix(path, "/analyze"):
		return rateGroupAnalyze
	default:
		return rateGroupDefault
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
