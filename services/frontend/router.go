package main

import (
	"context"
	"embed"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/usecakework/monolog-viewer/lib/logformat"
	"github.com/usecakework/monolog-viewer/lib/logstore"
)

//go:embed static
var staticFS embed.FS

const (
	logsPath       = "/logs"
	stylesheetPath = "/static/admin.css"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// server holds the long-lived, stateless collaborators. A list table is built
// from them per request.
type server struct {
	store     logstore.Reader
	pinger    pinger
	formatter *logformat.Formatter
	limits    logstore.Limits
}

func newRouter(s *server, auth ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()

	// Recovery middleware recovers from any panics and writes a 500 if there was one.
	router.Use(gin.Recovery())
	router.Use(guidMiddleware())
	router.Use(metricsMiddleware())

	router.GET("/healthz", s.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.StaticFileFS(stylesheetPath, "static/admin.css", http.FS(staticFS))

	admin := router.Group("", auth...)
	{
		admin.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusFound, logsPath)
		})
		admin.GET(logsPath, s.handleLogsPage)
		admin.POST(logsPath, s.handleLogsPage)
		admin.GET("/api/logs", s.handleGetLogs)
	}

	return router
}
