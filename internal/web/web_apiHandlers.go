// Package web provides the HTTP server for familycanvas
package web

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/familycanvas/familycanvas/internal/prompts"
)

// getHealth is the liveness probe for "/api/health". It reports ok
// regardless of filesystem state.
func (s *WebServer) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// getPromptTemplate serves the configured prompt template for
// "/api/prompt-template". The template is read fresh from disk on every
// request so operators can edit it without a restart.
func (s *WebServer) getPromptTemplate(c *gin.Context) {
	tpl, err := prompts.Load(s.Config.TemplatesDir(), s.Config.TemplateName)
	if err != nil {
		switch {
		case errors.Is(err, prompts.ErrUnsafeName):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, fs.ErrNotExist):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, prompts.ErrMissingPlaceholder):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"template_name":            tpl.Name,
		"template_content":         tpl.Content,
		"has_required_placeholder": true,
	})
}
