// Package httpapi serves boards, sprint series and stored runs over HTTP.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/alexanderramin/sprintburn/internal/service"
)

// Deps are the collaborators behind the routes. Runs and Metrics are
// optional; without Runs the run routes answer 404 and ?save is refused.
type Deps struct {
	Series  service.SeriesService
	Boards  service.BoardService
	Runs    service.RunService
	Metrics http.Handler
	Logger  zerolog.Logger
	// Now pins the clock of open sprints. Nil means wall time.
	Now     func() time.Time
}

func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(deps.Logger))

	h := &handlers{deps: deps}

	r.GET("/healthz", h.healthz)

	api := r.Group("/api")
	api.GET("/boards", h.listBoards)
	api.GET("/boards/:id/sprints", h.listSprints)
	api.GET("/sprints/:id/series", h.sprintSeries)
	api.GET("/runs", h.listRuns)
	api.GET("/runs/:id", h.getRun)

	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics))
	}
	return r
}

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("http")
	}
}
