package middleware

import (
	"slices"
	"time"

	"github.com/erp/tradecore/internal/infrastructure/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS builds the cross-origin middleware from HTTP config.
// An empty origin list disables CORS headers entirely; "*" allows any origin
// without credentials.
func CORS(cfg config.HTTPConfig) gin.HandlerFunc {
	if len(cfg.CORSAllowOrigins) == 0 {
		return func(c *gin.Context) { c.Next() }
	}

	cc := cors.Config{
		AllowMethods:  cfg.CORSAllowMethods,
		AllowHeaders:  cfg.CORSAllowHeaders,
		ExposeHeaders: []string{RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(cc.AllowMethods) == 0 {
		cc.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	if len(cc.AllowHeaders) == 0 {
		cc.AllowHeaders = []string{"Origin", "Content-Type", "Accept", RequestIDHeader, IdempotencyKeyHeader}
	}

	if slices.Contains(cfg.CORSAllowOrigins, "*") {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = cfg.CORSAllowOrigins
		cc.AllowCredentials = true
	}
	return cors.New(cc)
}
