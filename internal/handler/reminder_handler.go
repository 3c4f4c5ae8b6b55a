package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studyplan-api/internal/dto"
	"github.com/noah-isme/studyplan-api/internal/service"
	appErrors "github.com/noah-isme/studyplan-api/pkg/errors"
	"github.com/noah-isme/studyplan-api/pkg/response"
)

// ReminderHandler controls the reminder scheduler.
type ReminderHandler struct {
	planner   *service.PlannerService
	reminders *service.ReminderService
}

// NewReminderHandler constructs handler.
func NewReminderHandler(planner *service.PlannerService, reminders *service.ReminderService) *ReminderHandler {
	return &ReminderHandler{planner: planner, reminders: reminders}
}

// Start godoc
// @Summary Arm reminders for a stored block plan
// @Tags Reminders
// @Accept json
// @Produce json
// @Param payload body dto.StartRemindersRequest true "Plan reference"
// @Success 200 {object} response.Envelope
// @Router /reminders [post]
func (h *ReminderHandler) Start(c *gin.Context) {
	var req dto.StartRemindersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	plan, err := h.planner.Plan(req.PlanID)
	if err != nil {
		response.Error(c, err)
		return
	}
	armed := h.reminders.Arm(plan)
	response.JSON(c, http.StatusOK, dto.StartRemindersResponse{Armed: armed})
}

// List godoc
// @Summary List armed reminders
// @Tags Reminders
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reminders [get]
func (h *ReminderHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.reminders.List())
}

// Clear godoc
// @Summary Disarm all reminders
// @Tags Reminders
// @Produce json
// @Success 204
// @Router /reminders [delete]
func (h *ReminderHandler) Clear(c *gin.Context) {
	h.reminders.Clear()
	response.NoContent(c)
}
