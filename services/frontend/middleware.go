package main

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	adapter "github.com/gwatts/gin-adapter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"
	"github.com/usecakework/monolog-viewer/lib/config"
)

const tokenCookie = "monolog_token"

var httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "monolog_viewer_http_requests_total",
	Help: "Total number of HTTP requests processed",
}, []string{"route", "method", "status"})

// ScopeClaims contains the custom data we want from the token.
type ScopeClaims struct {
	Scope string `json:"scope"`
}

func (c *ScopeClaims) Validate(ctx context.Context) error {
	return nil
}

func (c *ScopeClaims) HasScope(scope string) bool {
	for _, s := range strings.Fields(c.Scope) {
		if s == scope {
			return true
		}
	}
	return false
}

func guidMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.New()
		c.Set("uuid", id)
		c.Header("X-Request-Id", id.String())
		entry := log.WithFields(log.Fields{"request": id.String(), "method": c.Request.Method, "path": c.Request.URL.Path})
		entry.Debug("Request started")
		c.Next()
		entry.WithField("status", c.Writer.Status()).Debug("Request finished")
	}
}

func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// authMiddleware returns the handlers guarding the admin routes. With AUTH_MODE
// none the host in front of the viewer is trusted to have checked access.
func authMiddleware(cfg *config.ServerConfig) ([]gin.HandlerFunc, error) {
	if cfg.AuthMode == config.AuthNone {
		log.Warn("Admin routes are not protected; AUTH_MODE is none")
		return nil, nil
	}

	keyFunc := func(ctx context.Context) (interface{}, error) {
		return []byte(cfg.AuthSecret), nil
	}
	algorithm := validator.HS256

	if cfg.AuthMode == config.AuthJWKS {
		issuerURL, err := url.Parse(cfg.AuthIssuer)
		if err != nil {
			return nil, err
		}
		provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)
		keyFunc = provider.KeyFunc
		algorithm = validator.RS256
	}

	jwtValidator, err := validator.New(keyFunc,
		algorithm,
		cfg.AuthIssuer,
		[]string{cfg.AuthAudience},
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &ScopeClaims{}
		}),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, err
	}

	jwtMiddleware := jwtmiddleware.New(jwtValidator.ValidateToken,
		jwtmiddleware.WithTokenExtractor(jwtmiddleware.MultiTokenExtractor(
			jwtmiddleware.AuthHeaderTokenExtractor,
			jwtmiddleware.CookieTokenExtractor(tokenCookie),
		)),
		jwtmiddleware.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			log.WithError(err).Debug("Rejected admin token")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"JWT is invalid."}`))
		}),
	)

	return []gin.HandlerFunc{adapter.Wrap(jwtMiddleware.CheckJWT), scopeMiddleware(cfg.AuthScope)}, nil
}

// scopeMiddleware checks that the validated token carries scope.
func scopeMiddleware(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := c.Request.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
		if !ok {
			c.AbortWithStatusJSON(
				http.StatusInternalServerError,
				map[string]string{"message": "Failed to get validated JWT claims."},
			)
			return
		}

		customClaims, ok := claims.CustomClaims.(*ScopeClaims)
		if !ok {
			c.AbortWithStatusJSON(
				http.StatusInternalServerError,
				map[string]string{"message": "Failed to cast custom JWT claims to specific type."},
			)
			return
		}

		if !customClaims.HasScope(scope) {
			log.WithField("subject", claims.RegisteredClaims.Subject).Info("Token is missing the admin scope")
			c.AbortWithStatusJSON(
				http.StatusForbidden,
				map[string]string{"message": "Insufficient scope"},
			)
			return
		}

		c.Next()
	}
}
