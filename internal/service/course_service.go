package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/studyplan-api/internal/dto"
	"github.com/noah-isme/studyplan-api/internal/models"
	appErrors "github.com/noah-isme/studyplan-api/pkg/errors"
)

type timetableStore interface {
	Load() ([]models.TimetableRow, error)
	Save([]models.TimetableRow) error
	Path() string
}

// CourseService manages the stored timetable and its aggregation into
// per-course records for the planner.
type CourseService struct {
	store     timetableStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService wires the timetable store.
func NewCourseService(store timetableStore, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{store: store, validator: validate, logger: logger}
}

// SaveTimetable replaces the stored timetable with the submitted rows.
func (s *CourseService) SaveTimetable(ctx context.Context, req dto.SaveTimetableRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timetable payload")
	}

	rows := make([]models.TimetableRow, 0, len(req.Rows))
	for _, r := range req.Rows {
		rows = append(rows, models.TimetableRow{
			Day:        r.Day,
			Period:     r.Period,
			CourseName: r.CourseName,
			Credit:     r.Credit,
			Type:       r.Type,
			Sweet:      r.Sweet,
			Cool:       r.Cool,
			ExamDate:   r.ExamDate,
		})
	}
	if err := s.store.Save(rows); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist timetable")
	}
	s.logger.Sugar().Infow("timetable saved", "rows", len(rows))
	return nil
}

// LoadTimetable returns the raw stored rows.
func (s *CourseService) LoadTimetable(ctx context.Context) ([]models.TimetableRow, error) {
	rows, err := s.store.Load()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable")
	}
	return rows, nil
}

// Courses aggregates the slot-per-row timetable into one record per
// course. The first row of a name wins; later rows of the same course only
// mark additional weekly slots. Difficulty derives from the sweet/cool
// sub-ratings as ((11 − sweet) + cool) / 2.
func (s *CourseService) Courses(ctx context.Context) ([]models.Course, error) {
	rows, err := s.LoadTimetable(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(rows))
	courses := make([]models.Course, 0, len(rows))
	for _, r := range rows {
		name := strings.TrimSpace(r.CourseName)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		credits := r.Credit
		if credits <= 0 {
			credits = 1
		}
		category := strings.TrimSpace(r.Type)
		if category == "" {
			category = models.CategoryElective
		}
		courses = append(courses, models.Course{
			Name:       name,
			Credits:    credits,
			Difficulty: ((11 - r.Sweet) + r.Cool) / 2,
			Category:   category,
			ExamDate:   strings.TrimSpace(r.ExamDate),
		})
	}
	return courses, nil
}

// TimetablePath exposes the CSV location for file downloads.
func (s *CourseService) TimetablePath() string {
	return s.store.Path()
}
