package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/arnavshah/group-planner-go/pkg/database"
	"github.com/arnavshah/group-planner-go/pkg/models"
)

// CreateChoice records the plan a group approved for a period
func (h *Handler) CreateChoice(c *gin.Context) {
	apiKey, ok := currentKey(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "API Key context missing"})
		return
	}

	var req models.ChoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Period == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "period is required"})
		return
	}
	if req.Plan.IsEmpty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "plan must contain at least one session"})
		return
	}

	choice := database.PlanChoice{
		ID:     uuid.NewString(),
		KeyID:  apiKey.ID,
		Period: req.Period,
		Rank:   req.Rank,
		Plan:   req.Plan,
	}
	if err := h.DB.Create(&choice).Error; err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not record choice"})
		return
	}
	c.JSON(http.StatusCreated, choice)
}

// ListChoices returns the latest choices recorded with the caller's key
func (h *Handler) ListChoices(c *gin.Context) {
	apiKey, ok := currentKey(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "API Key context missing"})
		return
	}

	query := h.DB.Where("key_id = ?", apiKey.ID)
	if period := c.Query("period"); period != "" {
		query = query.Where("period = ?", period)
	}
	var choices []database.PlanChoice
	if err := query.Order("created_at desc").Limit(50).Find(&choices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch choices"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"choices": choices})
}
