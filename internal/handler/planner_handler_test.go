package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/studyplan-api/internal/models"
	"github.com/noah-isme/studyplan-api/internal/service"
)

type coursesStub struct {
	courses []models.Course
}

func (s coursesStub) Courses(ctx context.Context) ([]models.Course, error) {
	return s.courses, nil
}

func newPlannerRouter(courses ...models.Course) *gin.Engine {
	gin.SetMode(gin.TestMode)
	planner := service.NewPlannerService(coursesStub{courses: courses}, service.PlannerConfig{}, nil, nil, nil)
	exports := service.NewExportService(nil, nil)
	h := NewPlannerHandler(planner, exports)

	r := gin.New()
	r.POST("/plans/minutes", h.AllocateMinutes)
	r.POST("/plans/blocks", h.AssignBlocks)
	r.GET("/plans/blocks/:id", h.GetPlan)
	r.GET("/plans/blocks/:id/export", h.ExportPlan)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)
	return rec
}

func TestPlannerHandlerAllocateMinutes(t *testing.T) {
	r := newPlannerRouter(
		models.Course{Name: "calculus", Credits: 3, Category: models.CategoryElective},
		models.Course{Name: "pottery", Credits: 1, Category: models.CategoryElective},
	)

	rec := doJSON(r, http.MethodPost, "/plans/minutes", `{"totalMinutes":120,"today":"2026-03-02"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data struct {
			TotalMinutes float64 `json:"totalMinutes"`
			Allocation   []struct {
				Course  string  `json:"course"`
				Minutes float64 `json:"minutes"`
			} `json:"allocation"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Allocation, 2)
	assert.Equal(t, "calculus", envelope.Data.Allocation[0].Course)
	assert.InDelta(t, 120, envelope.Data.Allocation[0].Minutes, 1e-6)
}

func TestPlannerHandlerAllocateMinutesBadJSON(t *testing.T) {
	r := newPlannerRouter(models.Course{Name: "calculus", Credits: 3, Category: models.CategoryElective})

	rec := doJSON(r, http.MethodPost, "/plans/minutes", `{"totalMinutes":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlannerHandlerAllocateMinutesInfeasible(t *testing.T) {
	r := newPlannerRouter(
		models.Course{Name: "a", Credits: 1, Category: models.CategoryElective},
		models.Course{Name: "b", Credits: 1, Category: models.CategoryElective},
	)

	rec := doJSON(r, http.MethodPost, "/plans/minutes", `{"totalMinutes":60,"minPerCourse":60}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPlannerHandlerBlockPlanLifecycle(t *testing.T) {
	r := newPlannerRouter(models.Course{Name: "calculus", Credits: 3, Category: models.CategoryElective})

	rec := doJSON(r, http.MethodPost, "/plans/blocks", `{"startTime":"19:00","endTime":"20:00","blockMinutes":30,"today":"2026-03-02"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var envelope struct {
		Data struct {
			PlanID string `json:"planId"`
			Blocks []struct {
				Course string `json:"course"`
			} `json:"blocks"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.PlanID)
	require.Len(t, envelope.Data.Blocks, 2)

	rec = doJSON(r, http.MethodGet, "/plans/blocks/"+envelope.Data.PlanID, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(r, http.MethodGet, "/plans/blocks/"+envelope.Data.PlanID+"/export?format=csv", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "calculus")
}

func TestPlannerHandlerGetPlanNotFound(t *testing.T) {
	r := newPlannerRouter(models.Course{Name: "calculus", Credits: 3, Category: models.CategoryElective})

	rec := doJSON(r, http.MethodGet, "/plans/blocks/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
