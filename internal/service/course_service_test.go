package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/studyplan-api/internal/dto"
	"github.com/noah-isme/studyplan-api/internal/models"
	appErrors "github.com/noah-isme/studyplan-api/pkg/errors"
)

type memTimetableStore struct {
	rows []models.TimetableRow
}

func (m *memTimetableStore) Load() ([]models.TimetableRow, error) { return m.rows, nil }

func (m *memTimetableStore) Save(rows []models.TimetableRow) error {
	m.rows = rows
	return nil
}

func (m *memTimetableStore) Path() string { return "/tmp/courses.csv" }

func newCourseServiceForTest(rows ...models.TimetableRow) (*CourseService, *memTimetableStore) {
	store := &memTimetableStore{rows: rows}
	return NewCourseService(store, nil, nil), store
}

func TestCourseServiceSaveTimetable(t *testing.T) {
	svc, store := newCourseServiceForTest()

	err := svc.SaveTimetable(context.Background(), dto.SaveTimetableRequest{
		Rows: []dto.TimetableRowPayload{
			{Day: "Mon", Period: "1", CourseName: "Linear Algebra", Credit: 2, Type: "required", Sweet: 4, Cool: 6},
			{Day: "Tue", Period: "3", CourseName: "Ceramics", Credit: 1, Type: "elective", Sweet: 9, Cool: 2},
		},
	})
	require.NoError(t, err)
	require.Len(t, store.rows, 2)
	require.Equal(t, "Linear Algebra", store.rows[0].CourseName)

	rows, err := svc.LoadTimetable(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
}

func TestCourseServiceSaveTimetableRequiresCourseName(t *testing.T) {
	svc, _ := newCourseServiceForTest()

	err := svc.SaveTimetable(context.Background(), dto.SaveTimetableRequest{
		Rows: []dto.TimetableRowPayload{{Day: "Mon", Period: "1"}},
	})
	require.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestCourseServiceCoursesAggregation(t *testing.T) {
	svc, _ := newCourseServiceForTest(
		// Two slots of the same course; the first row carries the ratings.
		models.TimetableRow{Day: "Mon", Period: "1", CourseName: "Linear Algebra", Credit: 2, Type: "required", Sweet: 3, Cool: 5},
		models.TimetableRow{Day: "Wed", Period: "2", CourseName: "Linear Algebra", Credit: 99, Type: "lab", Sweet: 10, Cool: 10},
		// Missing credit defaults to 1, missing type to elective.
		models.TimetableRow{Day: "Tue", Period: "4", CourseName: "Ceramics"},
		// Blank names are skipped.
		models.TimetableRow{Day: "Fri", Period: "5", CourseName: "   "},
	)

	courses, err := svc.Courses(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 2)

	algebra := courses[0]
	require.Equal(t, "Linear Algebra", algebra.Name)
	require.Equal(t, 2.0, algebra.Credits)
	require.Equal(t, models.CategoryRequired, algebra.Category)
	// ((11 - 3) + 5) / 2
	require.InDelta(t, 6.5, algebra.Difficulty, 1e-9)

	ceramics := courses[1]
	require.Equal(t, "Ceramics", ceramics.Name)
	require.Equal(t, 1.0, ceramics.Credits)
	require.Equal(t, models.CategoryElective, ceramics.Category)
	// ((11 - 0) + 0) / 2
	require.InDelta(t, 5.5, ceramics.Difficulty, 1e-9)
}
