package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/group-planner-go/pkg/models"
)

// ValidateInput checks a planning request without running the search
func (h *Handler) ValidateInput(c *gin.Context) {
	var req models.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": err.Error()})
		return
	}

	p, err := h.prepare(&req)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}

	answered := make(map[string]bool, len(req.Responses))
	for _, r := range req.Responses {
		answered[r.UserID] = true
	}
	var warnings []string
	for _, person := range p.Catalog.People() {
		if !answered[person] {
			warnings = append(warnings, fmt.Sprintf("%s has no availability response and counts as unavailable", person))
		}
	}
	if len(p.Slots) == 0 {
		warnings = append(warnings, "the period has no slots")
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":    true,
		"warnings": warnings,
		"stats": gin.H{
			"activity_count": p.Catalog.Len(),
			"response_count": len(req.Responses),
			"slot_count":     len(p.Slots),
			"people":         len(p.Catalog.People()),
		},
	})
}
