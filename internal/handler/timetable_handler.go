package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studyplan-api/internal/dto"
	"github.com/noah-isme/studyplan-api/internal/service"
	appErrors "github.com/noah-isme/studyplan-api/pkg/errors"
	"github.com/noah-isme/studyplan-api/pkg/response"
)

// TimetableHandler manages the stored timetable and its course view.
type TimetableHandler struct {
	courses *service.CourseService
}

// NewTimetableHandler constructs handler.
func NewTimetableHandler(svc *service.CourseService) *TimetableHandler {
	return &TimetableHandler{courses: svc}
}

// Save godoc
// @Summary Replace the stored timetable
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.SaveTimetableRequest true "Timetable rows"
// @Success 204
// @Router /timetable [put]
func (h *TimetableHandler) Save(c *gin.Context) {
	var req dto.SaveTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.courses.SaveTimetable(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Get godoc
// @Summary List the stored timetable rows
// @Tags Timetable
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /timetable [get]
func (h *TimetableHandler) Get(c *gin.Context) {
	rows, err := h.courses.LoadTimetable(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows)
}

// Download godoc
// @Summary Download the timetable as CSV
// @Tags Timetable
// @Produce octet-stream
// @Success 200 {file} binary
// @Router /timetable/export [get]
func (h *TimetableHandler) Download(c *gin.Context) {
	c.Header("Content-Disposition", "attachment; filename=timetable.csv")
	c.File(h.courses.TimetablePath())
}

// Courses godoc
// @Summary List the aggregated per-course records
// @Tags Timetable
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *TimetableHandler) Courses(c *gin.Context) {
	courses, err := h.courses.Courses(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses)
}
