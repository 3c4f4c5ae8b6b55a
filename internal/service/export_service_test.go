package service

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/studyplan-api/internal/models"
	appErrors "github.com/noah-isme/studyplan-api/pkg/errors"
	"github.com/noah-isme/studyplan-api/pkg/storage"
)

func newExportServiceForTest(t *testing.T) (*ExportService, *storage.LocalStorage) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return NewExportService(store, nil), store
}

func exportTestPlan() *models.BlockPlan {
	start := time.Date(2026, 3, 2, 19, 0, 0, 0, time.UTC)
	return &models.BlockPlan{
		ID: "plan-1",
		Blocks: []models.AssignedBlock{
			{Start: start, End: start.Add(30 * time.Minute), Course: "Linear Algebra"},
			{Start: start.Add(30 * time.Minute), End: start.Add(time.Hour), Course: "Ceramics"},
		},
	}
}

func TestExportServiceRendersCSV(t *testing.T) {
	svc, store := newExportServiceForTest(t)

	result, err := svc.RenderBlockPlan(exportTestPlan(), "csv")
	require.NoError(t, err)
	require.Equal(t, "text/csv", result.ContentType)
	require.Equal(t, "study_schedule_plan-1.csv", result.Filename)

	body := string(result.Data)
	require.Contains(t, body, "start,end,course")
	require.Contains(t, body, "19:00,19:30,Linear Algebra")
	require.Contains(t, body, "19:30,20:00,Ceramics")

	info, err := os.Stat(store.Path("exports/" + result.Filename))
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestExportServiceRendersPDF(t *testing.T) {
	svc, store := newExportServiceForTest(t)

	result, err := svc.RenderBlockPlan(exportTestPlan(), "pdf")
	require.NoError(t, err)
	require.Equal(t, "application/pdf", result.ContentType)
	require.Equal(t, "study_schedule_plan-1.pdf", result.Filename)
	require.Greater(t, len(result.Data), 4)
	require.Equal(t, "%PDF", string(result.Data[:4]))

	require.True(t, store.Exists("exports/"+result.Filename))
}

func TestExportServiceDefaultsToCSV(t *testing.T) {
	svc, _ := newExportServiceForTest(t)

	result, err := svc.RenderBlockPlan(exportTestPlan(), "")
	require.NoError(t, err)
	require.Equal(t, "text/csv", result.ContentType)
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc, _ := newExportServiceForTest(t)

	_, err := svc.RenderBlockPlan(exportTestPlan(), "xlsx")
	require.ErrorIs(t, err, appErrors.ErrValidation)
}
