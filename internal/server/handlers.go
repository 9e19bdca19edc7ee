package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"leadgate/internal/lead"
)

// handleSubmit accepts a form-encoded or JSON submission. Validation
// failures are 400 before any sink runs; total sink failure is 500;
// everything else is a 200 describing which sinks succeeded.
func (s *Server) handleSubmit(c *gin.Context) {
	var f lead.Form
	if err := c.ShouldBind(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	res, err := s.intake.Submit(c.Request.Context(), f)

	var verr *lead.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to store the lead",
			"details": res.Results,
		})
	case res.Fallback:
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "Lead saved in emergency mode",
			"fallback": true,
		})
	default:
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": successMessage(res.Results),
			"details": res.Results,
		})
	}
}

func (s *Server) handleTestIntegrations(c *gin.Context) {
	results := s.intake.TestIntegrations(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Integration test completed",
		"results":   results,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleLeads(c *gin.Context) {
	leads, err := s.intake.Leads(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read stored leads"})
		return
	}
	if len(leads) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"leads":   []lead.Record{},
			"count":   0,
			"message": "No leads stored yet",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"leads":   leads,
		"count":   len(leads),
		"message": fmt.Sprintf("%d lead(s) stored locally", len(leads)),
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// successMessage mirrors the client-facing summary: which channels took
// the lead, in a fixed display order.
func successMessage(results map[string]bool) string {
	var parts []string
	if results["googleSheets"] {
		parts = append(parts, "Google Sheets")
	}
	if results["telegram"] {
		parts = append(parts, "Telegram notification")
	}
	if results["localBackup"] {
		parts = append(parts, "local backup")
	}
	msg := "Lead registered successfully!"
	if len(parts) > 0 {
		msg += " (" + strings.Join(parts, ", ") + ")"
	}
	return msg
}
