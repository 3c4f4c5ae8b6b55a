package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/studyplan-api/internal/dto"
	"github.com/noah-isme/studyplan-api/internal/models"
	"github.com/noah-isme/studyplan-api/internal/optimizer"
	appErrors "github.com/noah-isme/studyplan-api/pkg/errors"
)

type courseSource interface {
	Courses(ctx context.Context) ([]models.Course, error)
}

type solveObserver interface {
	ObserveSolve(kind, outcome string, duration time.Duration)
}

// PlannerConfig governs plan generation defaults and plan retention.
type PlannerConfig struct {
	Weights             optimizer.WeightParams
	DefaultBlockMinutes int
	DefaultRoundTo      int
	PlanTTL             time.Duration
}

// PlannerService validates requests, loads the course snapshot and runs
// the planning engine. Generated block plans are retained in a TTL store
// so exports and reminders can reference them by ID.
type PlannerService struct {
	courses   courseSource
	cfg       PlannerConfig
	validator *validator.Validate
	logger    *zap.Logger
	metrics   solveObserver
	store     *planStore
	now       func() time.Time
}

// NewPlannerService wires planner dependencies. Metrics may be nil.
func NewPlannerService(courses courseSource, cfg PlannerConfig, validate *validator.Validate, logger *zap.Logger, metrics solveObserver) *PlannerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultBlockMinutes <= 0 {
		cfg.DefaultBlockMinutes = optimizer.DefaultBlockMinutes
	}
	if cfg.DefaultRoundTo < 0 {
		cfg.DefaultRoundTo = 0
	}
	if cfg.PlanTTL <= 0 {
		cfg.PlanTTL = 30 * time.Minute
	}
	if cfg.Weights.CategoryCoefs == nil {
		cfg.Weights = optimizer.DefaultWeightParams()
	}
	return &PlannerService{
		courses:   courses,
		cfg:       cfg,
		validator: validate,
		logger:    logger,
		metrics:   metrics,
		store:     newPlanStore(cfg.PlanTTL),
		now:       time.Now,
	}
}

func (s *PlannerService) observeSolve(kind string, started time.Time, err error) {
	if s.metrics == nil {
		return
	}
	outcome := "ok"
	switch {
	case errors.Is(err, appErrors.ErrInfeasible):
		outcome = "infeasible"
	case err != nil:
		outcome = "error"
	}
	s.metrics.ObserveSolve(kind, outcome, time.Since(started))
}

// AllocateMinutes runs the continuous budget split over the stored courses.
func (s *PlannerService) AllocateMinutes(ctx context.Context, req dto.AllocateMinutesRequest) (*dto.MinutePlanResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid minute allocation payload")
	}

	today, err := s.resolveToday(req.Today)
	if err != nil {
		return nil, err
	}
	courses, err := s.courses.Courses(ctx)
	if err != nil {
		return nil, err
	}

	roundTo := req.RoundTo
	if roundTo == 0 {
		roundTo = s.cfg.DefaultRoundTo
	}
	started := s.now()
	rows, err := optimizer.AllocateMinutes(courses, optimizer.MinuteRequest{
		TotalMinutes: req.TotalMinutes,
		MinPerCourse: req.MinPerCourse,
		MaxPerCourse: req.MaxPerCourse,
		RoundTo:      roundTo,
		Today:        today,
	}, s.cfg.Weights)
	s.observeSolve("minutes", started, err)
	if err != nil {
		return nil, err
	}

	var rounded float64
	for _, row := range rows {
		rounded += row.Minutes
	}
	s.logger.Sugar().Infow("minute plan generated", "courses", len(rows), "budget", req.TotalMinutes, "rounded_total", rounded)
	return &dto.MinutePlanResponse{
		TotalMinutes: req.TotalMinutes,
		RoundedTotal: rounded,
		Allocation:   rows,
	}, nil
}

// AssignBlocks generates and stores a block plan for the given window.
func (s *PlannerService) AssignBlocks(ctx context.Context, req dto.AssignBlocksRequest) (*dto.BlockPlanResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid block assignment payload")
	}

	today, err := s.resolveToday(req.Today)
	if err != nil {
		return nil, err
	}
	windowStart, err := combineClock(today, req.StartTime)
	if err != nil {
		return nil, err
	}
	windowEnd, err := combineClock(today, req.EndTime)
	if err != nil {
		return nil, err
	}

	blockMinutes := req.BlockMinutes
	if blockMinutes == 0 {
		blockMinutes = s.cfg.DefaultBlockMinutes
	}
	blocks, err := optimizer.MakeBlocks(windowStart, windowEnd, blockMinutes)
	if err != nil {
		return nil, err
	}

	courses, err := s.courses.Courses(ctx)
	if err != nil {
		return nil, err
	}
	started := s.now()
	assigned, err := optimizer.AssignBlocks(courses, blocks, optimizer.AssignRequest{
		MinBlocksPerCourse: req.MinBlocksPerCourse,
		MaxBlocksPerCourse: req.MaxBlocksPerCourse,
		Today:              today,
	}, s.cfg.Weights)
	s.observeSolve("blocks", started, err)
	if err != nil {
		return nil, err
	}

	plan := models.BlockPlan{
		ID:        uuid.NewString(),
		Blocks:    assigned,
		CreatedAt: s.now().UTC(),
	}
	s.store.Save(plan)

	s.logger.Sugar().Infow("block plan generated", "plan_id", plan.ID, "blocks", len(blocks), "assigned", len(assigned))
	return &dto.BlockPlanResponse{PlanID: plan.ID, Blocks: assigned}, nil
}

// Plan returns a stored block plan or NotFound once it expired.
func (s *PlannerService) Plan(planID string) (*models.BlockPlan, error) {
	if planID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "plan id is required")
	}
	plan, ok := s.store.Get(planID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "plan not found or expired")
	}
	return &plan, nil
}

func (s *PlannerService) resolveToday(raw string) (time.Time, error) {
	if raw == "" {
		return s.now(), nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "today must use the 2006-01-02 layout")
	}
	return t, nil
}

func combineClock(day time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "times must use the HH:MM layout")
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}

// --- Plan cache ---

type planStore struct {
	ttl   time.Duration
	mu    sync.RWMutex
	items map[string]models.BlockPlan
}

func newPlanStore(ttl time.Duration) *planStore {
	return &planStore{
		ttl:   ttl,
		items: make(map[string]models.BlockPlan),
	}
}

func (s *planStore) Save(plan models.BlockPlan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[plan.ID] = plan
}

func (s *planStore) Get(id string) (models.BlockPlan, bool) {
	s.mu.RLock()
	plan, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return models.BlockPlan{}, false
	}
	if time.Since(plan.CreatedAt) > s.ttl {
		s.Delete(id)
		return models.BlockPlan{}, false
	}
	return plan, true
}

func (s *planStore) Delete(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}
