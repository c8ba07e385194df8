// Package web provides the HTTP server for familycanvas
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/familycanvas/familycanvas/internal/config"
)

// WebServer represents the web server
type WebServer struct {
	Router    *gin.Engine
	Config    *config.WebConfig
	StartTime time.Time // Track server start time for uptime calculations

	httpSrv *http.Server
}

// NewServer creates a new web server instance
func NewServer(webconfig *config.WebConfig) *WebServer {
	// Set Gin to release mode for production
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())

	// Configure Gin to trust reverse proxy headers
	// Set trusted proxies for common reverse proxy setups (nginx, etc.)
	router.SetTrustedProxies([]string{"127.0.0.1", "::1", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"})

	// Configure security headers based on SSL setup
	secureConfig := secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}

	// Only add SSL-specific headers if SSL is enabled on the application itself
	// (not when running behind a reverse proxy like nginx with SSL)
	if webconfig.SSL {
		secureConfig.SSLRedirect = true
		secureConfig.STSSeconds = 31536000
		secureConfig.STSIncludeSubdomains = true
	}

	server := &WebServer{
		Router: router,
		Config: webconfig,
	}

	router.Use(secure.New(secureConfig))
	router.Use(server.ReverseProxyMiddleware())
	router.Use(server.RequestIDMiddleware())
	router.Use(server.ApacheLogFormat())

	server.setupRoutes()
	return server
}

// setupRoutes configures all HTTP routes
func (s *WebServer) setupRoutes() {
	// Static mounts first (highest priority). Each directory is checked
	// once at construction; a missing directory means the route is never
	// registered and those paths fall through to the SPA handler.
	assetsDir := filepath.Join(s.Config.DistDir, "assets")
	if _, err := os.Stat(assetsDir); err == nil {
		s.Router.Static("/assets", assetsDir)
		log.Printf("[WEB]: Mounted /assets from %s", assetsDir)
	} else {
		log.Printf("[WEB]: No front-end assets at %s, /assets not mounted", assetsDir)
	}

	if _, err := os.Stat(s.Config.StaticDir); err == nil {
		s.Router.Static("/static", s.Config.StaticDir)
		log.Printf("[WEB]: Mounted /static from %s", s.Config.StaticDir)
	} else {
		log.Printf("[WEB]: No static directory at %s, /static not mounted", s.Config.StaticDir)
	}

	// Handle favicon from the front-end build if it exists
	faviconPath := filepath.Join(s.Config.DistDir, "favicon.ico")
	if _, err := os.Stat(faviconPath); err == nil {
		s.Router.StaticFile("/favicon.ico", faviconPath)
	}

	// API routes
	s.Router.GET("/api/health", s.getHealth)
	s.Router.GET("/api/prompt-template", s.getPromptTemplate)

	// Serve the front-end for all other routes so client-side routing
	// can take over in the browser.
	s.Router.NoRoute(s.serveApp)
}

// serveApp is the SPA fallback: any unmatched GET returns index.html
// verbatim, regardless of path.
func (s *WebServer) serveApp(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
		return
	}

	indexFile := filepath.Join(s.Config.DistDir, "index.html")
	if _, err := os.Stat(indexFile); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "App not built. Run 'npm run build' first."})
		return
	}
	c.File(indexFile)
}

// Start starts the web server with SSL support if configured. It blocks
// until the server stops; a graceful stop returns http.ErrServerClosed.
func (s *WebServer) Start() error {
	addr := ":" + strconv.Itoa(s.Config.ListenPort)
	s.StartTime = time.Now() // Set the start time for uptime calculations
	s.httpSrv = &http.Server{
		Addr:    addr,
		Handler: s.Router,
	}
	if s.Config.SSL {
		if s.Config.CertFile == "" || s.Config.KeyFile == "" {
			return errors.New("SSL enabled but cert_file or key_file not specified in config")
		}
		log.Printf("[WEB]: Starting HTTPS server on %s", addr)
		return s.httpSrv.ListenAndServeTLS(s.Config.CertFile, s.Config.KeyFile)
	}
	log.Printf("[WEB]: Starting HTTP server on %s", addr)
	return s.httpSrv.ListenAndServe()
}

// Shutdown stops the server without interrupting in-flight requests.
func (s *WebServer) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

const requestIDHeader = "X-Request-Id"

// RequestIDMiddleware tags every request with an X-Request-Id, honoring
// one supplied by an upstream proxy.
func (s *WebServer) RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)
		c.Request.Header.Set(requestIDHeader, requestID)
		c.Next()
	}
}

// ReverseProxyMiddleware handles X-Forwarded headers when running behind a reverse proxy
func (s *WebServer) ReverseProxyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Handle X-Forwarded-Proto to detect if the original request was HTTPS
		if proto := c.GetHeader("X-Forwarded-Proto"); proto == "https" {
			c.Request.URL.Scheme = "https"
		}

		// Handle X-Forwarded-For to get the real client IP
		if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
			// Take the first IP from the list (original client)
			ips := strings.Split(xff, ",")
			if len(ips) > 0 {
				clientIP := strings.TrimSpace(ips[0])
				c.Request.RemoteAddr = clientIP + ":0"
			}
		}

		// Handle X-Real-IP as an alternative
		if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
			c.Request.RemoteAddr = realIP + ":0"
		}

		// Handle X-Forwarded-Host to get the original host
		if host := c.GetHeader("X-Forwarded-Host"); host != "" {
			c.Request.Host = host
		}

		c.Next()
	}
}

func (s *WebServer) ApacheLogFormat() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf(`%s - - [%s] "%s %s %s" %d %d "%s" "%s"`+"\n",
			param.ClientIP,
			param.TimeStamp.Format("02/Jan/2006:15:04:05 -0700"),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.BodySize,
			param.Request.Referer(),
			param.Request.UserAgent(),
		)
	})
}
