package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arnavshah/group-planner-go/pkg/export"
	"github.com/arnavshah/group-planner-go/pkg/metrics"
	"github.com/arnavshah/group-planner-go/pkg/models"
	"github.com/arnavshah/group-planner-go/pkg/planner"
	"github.com/arnavshah/group-planner-go/pkg/slots"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var (
	errPlanningTimeout = errors.New("planning did not finish in time")
	errPlannerBusy     = errors.New("too many planning requests in progress, retry later")
)

// planResult is the ranked outcome of one planning request
type planResult struct {
	catalog *models.Catalog
	slots   []time.Time
	ranked  []models.Plan
}

// prepare validates the request and builds the planner for its period
func (h *Handler) prepare(req *models.PlanRequest) (*planner.Planner, error) {
	catalog, err := models.NewCatalog(req.Activities)
	if err != nil {
		return nil, err
	}

	periodSlots, err := slots.Resolve(req.Slots, req.SlotRules)
	if err != nil {
		return nil, err
	}

	p, err := planner.NewPlanner(catalog, periodSlots, req.Responses)
	if err != nil {
		return nil, err
	}
	if len(p.Slots) > h.Planner.MaxSlots {
		return nil, &models.ValidationError{
			Kind:   models.ErrInvalidSlot,
			Field:  "slots",
			Reason: fmt.Sprintf("%d slots exceed the limit of %d", len(p.Slots), h.Planner.MaxSlots),
		}
	}
	return p, nil
}

// runPlanner runs the engine under the configured timeout. The engine cannot be
// interrupted, so on timeout its goroutine finishes in the background and the
// result is discarded. The goroutine holds a run slot until it returns; when
// none is free the request is refused.
func (h *Handler) runPlanner(ctx context.Context, req *models.PlanRequest) (*planResult, error) {
	p, err := h.prepare(req)
	if err != nil {
		h.Metrics.ObserveFailure(metrics.OutcomeInvalid)
		return nil, err
	}

	if !h.runs.TryAcquire(1) {
		h.Metrics.ObserveFailure(metrics.OutcomeBusy)
		return nil, errPlannerBusy
	}

	ctx, cancel := context.WithTimeout(ctx, h.Planner.Timeout)
	defer cancel()

	done := make(chan *planResult, 1)
	go func() {
		defer h.runs.Release(1)
		start := time.Now()
		candidates := p.GeneratePlans()
		ranked := planner.Rank(p.FilterOptimal(candidates))
		elapsed := time.Since(start)

		h.Metrics.ObservePlanning(elapsed, len(candidates), len(ranked))
		h.Log.Info("planned period",
			zap.Int("slots", len(p.Slots)),
			zap.Int("activities", p.Catalog.Len()),
			zap.Int("candidates", len(candidates)),
			zap.Int("ranked", len(ranked)),
			zap.Duration("elapsed", elapsed),
		)
		done <- &planResult{catalog: p.Catalog, slots: p.Slots, ranked: ranked}
	}()

	select {
	case res := <-done:
		return res, nil
	case <-ctx.Done():
		h.Metrics.ObserveFailure(metrics.OutcomeTimeout)
		return nil, errPlanningTimeout
	}
}

// window turns the requested slice of the ranking into response entries
func (h *Handler) window(res *planResult, offset, limit int) []models.RankedPlan {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = h.Planner.PageSize
	}
	plans := planner.Window(res.ranked, offset, limit)
	out := make([]models.RankedPlan, len(plans))
	for i, plan := range plans {
		out[i] = models.RankedPlan{
			Rank:    offset + i + 1,
			Score:   planner.ScorePlan(plan),
			Summary: planner.Summarize(plan, res.catalog),
			Plan:    plan,
		}
	}
	return out
}

func (h *Handler) planError(c *gin.Context, err error) {
	switch {
	case models.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, errPlanningTimeout), errors.Is(err, errPlannerBusy):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Planning failed"})
	}
}

// PlanJSON handles the JSON-based planning request
func (h *Handler) PlanJSON(c *gin.Context) {
	var req models.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.runPlanner(c.Request.Context(), &req)
	if err != nil {
		h.planError(c, err)
		return
	}
	h.RecordUsage(c, len(res.slots), len(res.ranked))

	offset := req.Offset
	if offset < 0 {
		offset = 0
	}
	c.JSON(http.StatusOK, models.PlanResponse{
		Total:  len(res.ranked),
		Offset: offset,
		Slots:  res.slots,
		Plans:  h.window(res, offset, req.Limit),
	})
}

// PlanXLSX handles a planning request and answers with a spreadsheet of the window
func (h *Handler) PlanXLSX(c *gin.Context) {
	var req models.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.runPlanner(c.Request.Context(), &req)
	if err != nil {
		h.planError(c, err)
		return
	}
	h.RecordUsage(c, len(res.slots), len(res.ranked))

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, h.window(res, req.Offset, req.Limit)); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not render spreadsheet"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="plans.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
