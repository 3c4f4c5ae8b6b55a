package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/studyplan-api/internal/models"
	"github.com/noah-isme/studyplan-api/pkg/jobs"
)

// Notifier delivers a due-reminder event to the user-facing channel.
type Notifier interface {
	Notify(ctx context.Context, event models.ReminderEvent) error
}

// LogNotifier is the default notifier; it writes reminders to the log.
type LogNotifier struct {
	Logger *zap.Logger
}

// Notify implements Notifier.
func (n LogNotifier) Notify(ctx context.Context, event models.ReminderEvent) error {
	logger := n.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Sugar().Infow("reminder due", "reminder_id", event.ReminderID, "title", event.Title, "course", event.Course, "due_at", event.DueAt)
	return nil
}

// ReminderConfig tunes the scheduler loop and its delivery queue.
type ReminderConfig struct {
	PollInterval time.Duration
	Snooze       time.Duration
	Workers      int
}

// ReminderService owns the armed reminder set and a polling loop that
// dispatches due reminders onto a worker queue. Arming a plan replaces the
// previous set; there is no shared task list outside this service.
type ReminderService struct {
	cfg    ReminderConfig
	logger *zap.Logger
	queue  *jobs.Queue[models.ReminderEvent]
	clock  func() time.Time

	mu    sync.Mutex
	tasks map[string]*models.Reminder

	runMu   sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	started bool
}

// NewReminderService builds the scheduler around the given notifier.
func NewReminderService(notifier Notifier, cfg ReminderConfig, logger *zap.Logger) *ReminderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = LogNotifier{Logger: logger}
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 10 * time.Second
	}
	if cfg.Snooze <= 0 {
		cfg.Snooze = 10 * time.Minute
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	queue := jobs.New("reminders", func(ctx context.Context, event models.ReminderEvent) error {
		return notifier.Notify(ctx, event)
	}, jobs.Config{
		Workers:    cfg.Workers,
		MaxRetries: 1,
		RetryDelay: cfg.Snooze,
		Logger:     logger,
	})

	return &ReminderService{
		cfg:    cfg,
		logger: logger,
		queue:  queue,
		clock:  time.Now,
		tasks:  make(map[string]*models.Reminder),
	}
}

// Start launches the queue workers and the polling loop.
func (s *ReminderService) Start(ctx context.Context) {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	if s.started {
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.queue.Start(runCtx)
	go s.loop(runCtx)
	s.started = true
	s.logger.Sugar().Infow("reminder scheduler started", "poll_interval", s.cfg.PollInterval)
}

// Stop halts the polling loop and drains the queue workers.
func (s *ReminderService) Stop() {
	s.runMu.Lock()
	if !s.started {
		s.runMu.Unlock()
		return
	}
	s.cancel()
	done := s.done
	s.started = false
	s.runMu.Unlock()
	<-done
	s.queue.Stop()
	s.logger.Sugar().Infow("reminder scheduler stopped")
}

// Arm replaces the armed set with one reminder per assigned block of the
// plan. Blocks whose start already passed are pushed to the next day, so
// an evening plan armed late still reminds tomorrow.
func (s *ReminderService) Arm(plan *models.BlockPlan) int {
	now := s.clock()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = make(map[string]*models.Reminder, len(plan.Blocks))
	for _, block := range plan.Blocks {
		due := block.Start
		if !due.After(now) {
			due = due.Add(24 * time.Hour)
		}
		r := &models.Reminder{
			ID:      uuid.NewString(),
			Title:   "Study: " + block.Course,
			Course:  block.Course,
			DueAt:   due,
			Snooze:  s.cfg.Snooze,
			State:   models.ReminderPending,
			ArmedAt: now,
			PlanID:  plan.ID,
		}
		s.tasks[r.ID] = r
	}
	return len(s.tasks)
}

// List returns the armed reminders ordered by due time.
func (s *ReminderService) List() []models.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Reminder, 0, len(s.tasks))
	for _, r := range s.tasks {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueAt.Equal(out[j].DueAt) {
			return out[i].DueAt.Before(out[j].DueAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Clear disarms every reminder.
func (s *ReminderService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = make(map[string]*models.Reminder)
}

func (s *ReminderService) loop(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.dispatchDue()
		}
	}
}

func (s *ReminderService) dispatchDue() {
	now := s.clock()
	due := make([]models.ReminderEvent, 0)

	s.mu.Lock()
	for _, r := range s.tasks {
		if r.State != models.ReminderPending || now.Before(r.DueAt) {
			continue
		}
		fired := now
		r.State = models.ReminderFired
		r.FiredAt = &fired
		due = append(due, models.ReminderEvent{
			ReminderID: r.ID,
			Title:      r.Title,
			Course:     r.Course,
			DueAt:      r.DueAt,
		})
	}
	s.mu.Unlock()

	for _, event := range due {
		if err := s.queue.Dispatch(event); err != nil {
			s.logger.Sugar().Warnw("failed to dispatch reminder", "reminder_id", event.ReminderID, "error", err)
		}
	}
}
