package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studyplan-api/internal/dto"
	"github.com/noah-isme/studyplan-api/internal/service"
	appErrors "github.com/noah-isme/studyplan-api/pkg/errors"
	"github.com/noah-isme/studyplan-api/pkg/response"
)

// PlannerHandler exposes the plan generation endpoints.
type PlannerHandler struct {
	planner *service.PlannerService
	exports *service.ExportService
}

// NewPlannerHandler constructs handler.
func NewPlannerHandler(planner *service.PlannerService, exports *service.ExportService) *PlannerHandler {
	return &PlannerHandler{planner: planner, exports: exports}
}

// AllocateMinutes godoc
// @Summary Split a minute budget across courses
// @Tags Plans
// @Accept json
// @Produce json
// @Param payload body dto.AllocateMinutesRequest true "Allocation payload"
// @Success 200 {object} response.Envelope
// @Router /plans/minutes [post]
func (h *PlannerHandler) AllocateMinutes(c *gin.Context) {
	var req dto.AllocateMinutesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	plan, err := h.planner.AllocateMinutes(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, plan)
}

// AssignBlocks godoc
// @Summary Assign courses to evening study blocks
// @Tags Plans
// @Accept json
// @Produce json
// @Param payload body dto.AssignBlocksRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Router /plans/blocks [post]
func (h *PlannerHandler) AssignBlocks(c *gin.Context) {
	var req dto.AssignBlocksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	plan, err := h.planner.AssignBlocks(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, plan)
}

// GetPlan godoc
// @Summary Fetch a stored block plan
// @Tags Plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} response.Envelope
// @Router /plans/blocks/{id} [get]
func (h *PlannerHandler) GetPlan(c *gin.Context) {
	plan, err := h.planner.Plan(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.BlockPlanResponse{PlanID: plan.ID, Blocks: plan.Blocks})
}

// ExportPlan godoc
// @Summary Download a block plan as CSV or PDF
// @Tags Plans
// @Produce octet-stream
// @Param id path string true "Plan ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Router /plans/blocks/{id}/export [get]
func (h *PlannerHandler) ExportPlan(c *gin.Context) {
	plan, err := h.planner.Plan(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.exports.RenderBlockPlan(plan, c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+result.Filename)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
