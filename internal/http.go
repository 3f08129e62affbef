package app

import (
	"log/slog"
	"net/http"
	"strings"

	"pantry-timeclock/internal/config"
	"pantry-timeclock/internal/routes"
	"pantry-timeclock/internal/timeclock"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"
)

// Printable one-page poster for a venue's clock QR code. Kept inline so the
// binary stays self-contained.
const posterTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Clock in at {{ .VenueName }}</title>
<style>
body { font-family: sans-serif; text-align: center; margin-top: 4em; }
img { width: 360px; height: 360px; }
.hint { color: #666; }
</style>
</head>
<body>
<h1>{{ .VenueName }}</h1>
<p>Scan to clock in or out</p>
<img src="{{ .ImageURL }}" alt="Clock QR code">
{{ if .Permanent }}
<p class="hint">This code is permanent. Keep it where staff can reach it.</p>
{{ else }}
<p class="hint">Valid until {{ .ExpiresAt.Format "Mon 2 Jan 15:04" }}</p>
{{ end }}
</body>
</html>`

func securityHeaders(c *gin.Context) {
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("X-Frame-Options", "DENY")

	// Disable caching
	c.Header("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
	c.Next()
}

// corsConfig builds the CORS policy for the SPA. An empty allowed_origins
// config means allow all, which is the development default.
func corsConfig() cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Authorization", "Content-Type"}

	if config.Cfg.AllowedOrigins == "" {
		corsCfg.AllowAllOrigins = true
		return corsCfg
	}

	var origins []string
	for origin := range strings.SplitSeq(config.Cfg.AllowedOrigins, ",") {
		if origin := strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	corsCfg.AllowOrigins = origins
	return corsCfg
}

func HTTPServer(svc *timeclock.Service) *gin.Engine {
	r := gin.Default()

	renderer := multitemplate.NewRenderer()
	renderer.AddFromString("poster", posterTemplate)
	r.HTMLRender = renderer

	r.Use(cors.New(corsConfig()))
	r.Use(securityHeaders)
	r.Use(routes.ErrorHandler())

	slog.Debug("CORS configured", "allowed_origins", config.Cfg.AllowedOrigins)

	r.GET("/config.json", func(c *gin.Context) {
		// Initial client config for the SPA
		var clientCfg = gin.H{
			"TokenMode":       config.Cfg.TokenMode,
			"TokenDefaultTTL": config.Cfg.TokenDefaultTTL,
		}

		c.JSON(http.StatusOK, clientCfg)
	})

	// Health routes
	rg := r.Group("/")
	routes.Health(rg)

	// Time tracking routes
	rg = r.Group("/time")
	routes.TimeRoutes(rg, svc)

	return r
}
