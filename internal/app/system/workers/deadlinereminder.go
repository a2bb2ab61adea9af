// internal/app/system/workers/deadlinereminder.go
package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	deadlinestore "github.com/capstonehub/capstonehub/internal/app/store/deadlines"
	"github.com/capstonehub/capstonehub/internal/app/store/notify"
	studentstore "github.com/capstonehub/capstonehub/internal/app/store/students"
	supervisorstore "github.com/capstonehub/capstonehub/internal/app/store/supervisors"
	"github.com/capstonehub/capstonehub/internal/domain/models"
)

// DeadlineReminder is a background worker that nudges students and
// supervisors when a deliverable deadline falls inside the reminder
// window. Each (kind, due) pair is reminded once per process run.
type DeadlineReminder struct {
	deadlines   *deadlinestore.Store
	students    *studentstore.Store
	supervisors *supervisorstore.Store
	log         *zap.Logger
	interval    time.Duration
	window      time.Duration

	mu       sync.Mutex
	reminded map[string]time.Time // kind -> due already announced

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewDeadlineReminder creates a new deadline reminder worker.
//
// Parameters:
//   - interval: how often to scan (e.g., 1 hour)
//   - window: how far ahead a deadline triggers a reminder (e.g., 48 hours)
func NewDeadlineReminder(
	deadlines *deadlinestore.Store,
	students *studentstore.Store,
	supervisors *supervisorstore.Store,
	logger *zap.Logger,
	interval, window time.Duration,
) *DeadlineReminder {
	return &DeadlineReminder{
		deadlines:   deadlines,
		students:    students,
		supervisors: supervisors,
		log:         logger,
		interval:    interval,
		window:      window,
		reminded:    make(map[string]time.Time),
		stopCh:      make(chan struct{}),
	}
}

// Start begins the background scan loop.
func (w *DeadlineReminder) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("deadline reminder worker started",
		zap.Duration("interval", w.interval),
		zap.Duration("window", w.window))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *DeadlineReminder) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("deadline reminder worker stopped")
}

func (w *DeadlineReminder) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.scan()
		}
	}
}

func (w *DeadlineReminder) scan() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	due, err := w.deadlines.ListDueWithin(ctx, w.window)
	if err != nil {
		w.log.Error("failed to scan deadlines", zap.Error(err))
		return
	}

	for _, d := range due {
		if w.alreadyReminded(d) {
			continue
		}
		if err := w.remind(ctx, d); err != nil {
			w.log.Error("failed to send deadline reminder",
				zap.String("kind", d.Kind),
				zap.Error(err))
			continue
		}
		w.markReminded(d)
		w.log.Info("deadline reminder sent",
			zap.String("kind", d.Kind),
			zap.Time("due", d.Due))
	}
}

func (w *DeadlineReminder) remind(ctx context.Context, d models.Deadline) error {
	msg := fmt.Sprintf("The %s deadline is approaching: due %s.",
		d.Kind, d.Due.Format("Mon, 02 Jan 2006 15:04 MST"))
	n := notify.New(models.NotifyReminder, msg)

	studentIDs, err := w.allStudentIDs(ctx)
	if err != nil {
		return err
	}
	if err := w.students.PushNotification(ctx, studentIDs, n); err != nil {
		return err
	}

	supervisorIDs, err := w.allSupervisorIDs(ctx)
	if err != nil {
		return err
	}
	return w.supervisors.PushNotification(ctx, supervisorIDs, n)
}

func (w *DeadlineReminder) allStudentIDs(ctx context.Context) ([]primitive.ObjectID, error) {
	students, err := w.students.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(students))
	for _, s := range students {
		ids = append(ids, s.ID)
	}
	return ids, nil
}

func (w *DeadlineReminder) allSupervisorIDs(ctx context.Context) ([]primitive.ObjectID, error) {
	supervisors, err := w.supervisors.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(supervisors))
	for _, s := range supervisors {
		ids = append(ids, s.ID)
	}
	return ids, nil
}

func (w *DeadlineReminder) alreadyReminded(d models.Deadline) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	due, ok := w.reminded[d.Kind]
	return ok && due.Equal(d.Due)
}

func (w *DeadlineReminder) markReminded(d models.Deadline) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reminded[d.Kind] = d.Due
}
