package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ubuygold/folioapi/internal/config"

	"github.com/robfig/cron/v3"
)

// UsagePruner deletes usage logs older than a cutoff.
type UsagePruner interface {
	DeleteUsageLogsBefore(cutoff time.Time) (int64, error)
}

type Scheduler struct {
	store         UsagePruner
	c             *cron.Cron
	spec          string
	retentionDays int
	logger        *slog.Logger
	now           func() time.Time
}

func NewScheduler(store UsagePruner, cfg *config.Config, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		store:         store,
		c:             cron.New(),
		spec:          cfg.Scheduler.UsagePruneSpec,
		retentionDays: cfg.Usage.RetentionDays,
		logger:        logger.With("component", "scheduler"),
		now:           time.Now,
	}
}

// Start registers the usage retention job and starts the cron runner.
// A negative retention disables pruning and Start does nothing.
func (s *Scheduler) Start() error {
	if s.retentionDays < 0 {
		s.logger.Info("Usage log pruning disabled", "retention_days", s.retentionDays)
		return nil
	}
	_, err := s.c.AddFunc(s.spec, func() {
		s.logger.Info("Running job: pruning old usage logs", "retention_days", s.retentionDays)
		if _, err := s.PruneUsage(); err != nil {
			s.logger.Error("Error pruning usage logs", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("error scheduling usage prune job %q: %w", s.spec, err)
	}
	s.c.Start()
	return nil
}

// PruneUsage deletes usage logs older than the retention window and reports how many went.
func (s *Scheduler) PruneUsage() (int64, error) {
	if s.retentionDays < 0 {
		return 0, nil
	}
	cutoff := s.now().AddDate(0, 0, -s.retentionDays)
	removed, err := s.store.DeleteUsageLogsBefore(cutoff)
	if err != nil {
		return 0, err
	}
	s.logger.Info("Pruned usage logs", "removed", removed, "cutoff", cutoff)
	return removed, nil
}

// Stop halts the runner and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.c.Stop().Done()
}
