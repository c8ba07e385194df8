// Web server for the familycanvas front-end
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/familycanvas/familycanvas/internal/config"
	"github.com/familycanvas/familycanvas/internal/prompts"
	"github.com/familycanvas/familycanvas/internal/web"
)

var (
	// command-line flags
	webport     int
	webssl      bool
	webcertFile string
	webkeyFile  string
	distDir     string
	staticDir   string
)

var appVersion = "-unset-"

func main() {
	config.AppVersion = appVersion

	flag.IntVar(&webport, "webport", 0, "Web server port (default: 8000)")
	flag.BoolVar(&webssl, "webssl", false, "Enable SSL")
	flag.StringVar(&webcertFile, "websslcert", "", "SSL certificate file (/path/to/fullchain.pem)")
	flag.StringVar(&webkeyFile, "websslkey", "", "SSL key file (/path/to/privkey.pem)")
	flag.StringVar(&distDir, "distdir", "", "Front-end build directory (default: ./dist)")
	flag.StringVar(&staticDir, "staticdir", "", "Static files directory (default: ./static)")
	flag.Parse()

	webConfig := config.NewDefaultConfig()
	log.Printf("Starting familycanvas web server (version: %s)", appVersion)

	// Override config with command-line flags if provided
	if webport > 0 {
		webConfig.ListenPort = webport
		log.Printf("[WEB]: Overriding listen port with command-line flag: %d", webConfig.ListenPort)
	}
	if webssl {
		webConfig.SSL = true
		log.Printf("[WEB]: SSL enabled via command-line flag")
	}
	if webcertFile != "" {
		webConfig.CertFile = webcertFile
	}
	if webkeyFile != "" {
		webConfig.KeyFile = webkeyFile
	}
	if distDir != "" {
		webConfig.DistDir = distDir
	}
	if staticDir != "" {
		webConfig.StaticDir = staticDir
	}

	if err := webConfig.Validate(); err != nil {
		log.Fatalf("[WEB]: Invalid configuration: %v", err)
	}

	// Validate the configured prompt template before accepting any
	// traffic. A broken template is a deployment error; fail fast.
	tpl, err := prompts.Load(webConfig.TemplatesDir(), webConfig.TemplateName)
	if err != nil {
		if available, listErr := prompts.ListAvailable(webConfig.TemplatesDir()); listErr == nil {
			log.Printf("[WEB]: Available templates in %s: %s", webConfig.TemplatesDir(), strings.Join(available, ", "))
		}
		log.Fatalf("[WEB]: Prompt template validation failed: %v", err)
	}
	log.Printf("[WEB]: Validated prompt template %q (optional placeholders: %v)", tpl.Name, tpl.OptionalTokens())

	protocol := "http"
	if webConfig.SSL {
		protocol = "https"
	}
	log.Printf("[WEB]: Starting familycanvas web server on %s://localhost:%d", protocol, webConfig.ListenPort)

	server := web.NewServer(webConfig)

	// Set up cross-platform signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt) // Cross-platform (Ctrl+C on both Windows and Linux)

	// Start web server in goroutine to make it non-blocking
	webServerErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			webServerErrChan <- err
		}
	}()

	log.Printf("[WEB]: Server started successfully. Press Ctrl+C to gracefully shutdown...")

	// Wait for either shutdown signal or server error
	select {
	case <-sigChan:
		log.Printf("[WEB]: Received shutdown signal, initiating graceful shutdown...")
	case err := <-webServerErrChan:
		log.Fatalf("[WEB]: Failed to start web server: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[WEB]: Graceful shutdown failed: %v", err)
	}
	log.Printf("[WEB]: Shutdown complete")
}
