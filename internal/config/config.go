// Package config provides configuration management for familycanvas.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

var AppVersion = "-unset-" // will be set at build time

const (
	// DefaultListenPort matches the port the front-end dev proxy expects.
	DefaultListenPort = 8000

	// DefaultTemplateName is the prompt template served when
	// PROMPT_TEMPLATE_NAME is not set.
	DefaultTemplateName = "gpt_template1.txt"

	// DefaultDistDir holds the pre-built front-end bundle.
	DefaultDistDir = "./dist"

	// DefaultStaticDir holds icons and other auxiliary static files,
	// including the templates/ subdirectory.
	DefaultStaticDir = "./static"
)

// WebConfig holds web server configuration
type WebConfig struct {
	ListenPort   int    `json:"listen_port"`
	SSL          bool   `json:"ssl"`
	CertFile     string `json:"cert_file,omitempty"`
	KeyFile      string `json:"key_file,omitempty"`
	DistDir      string `json:"dist_dir"`
	StaticDir    string `json:"static_dir"`
	TemplateName string `json:"template_name"`
}

// NewDefaultConfig returns a WebConfig populated with defaults and
// environment overrides. A .env file in the working directory is loaded
// first if present; a missing file is not an error.
func NewDefaultConfig() *WebConfig {
	_ = godotenv.Load()

	cfg := &WebConfig{
		ListenPort:   DefaultListenPort,
		DistDir:      DefaultDistDir,
		StaticDir:    DefaultStaticDir,
		TemplateName: DefaultTemplateName,
	}
	if name := os.Getenv("PROMPT_TEMPLATE_NAME"); name != "" {
		cfg.TemplateName = name
	}
	return cfg
}

// TemplatesDir returns the directory prompt templates are read from.
func (c *WebConfig) TemplatesDir() string {
	return c.StaticDir + "/templates"
}

// Validate checks the parts of the configuration that would otherwise
// only fail once the server is already accepting traffic.
func (c *WebConfig) Validate() error {
	if c.ListenPort < 1024 || c.ListenPort > 65535 {
		return fmt.Errorf("invalid port number: %d (must be between 1024 and 65535)", c.ListenPort)
	}
	if c.SSL && (c.CertFile == "" || c.KeyFile == "") {
		return fmt.Errorf("SSL enabled but cert_file or key_file not specified in config")
	}
	return nil
}
