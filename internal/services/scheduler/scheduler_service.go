package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/domus/internal/common"
	"github.com/ternarybob/domus/internal/interfaces"
	"github.com/ternarybob/domus/internal/models"
)

// Service runs periodic maintenance jobs. Its one job today is the stale
// request reaper: a process restart strands requests in processing, and the
// reaper marks them failed once they age past the configured threshold so
// clients aren't left polling a request that will never finish.
type Service struct {
	storage interfaces.AnalysisStorage
	events  interfaces.EventService
	config  *common.SchedulerConfig
	cron    *cron.Cron
	logger  arbor.ILogger
	running bool
}

// NewService creates a scheduler service
func NewService(storage interfaces.AnalysisStorage, events interfaces.EventService, config *common.SchedulerConfig, logger arbor.ILogger) *Service {
	return &Service{
		storage: storage,
		events:  events,
		config:  config,
		cron:    cron.New(),
		logger:  logger,
	}
}

// Start registers the reaper job and starts the cron loop.
func (s *Service) Start() error {
	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	schedule := s.config.ReapSchedule
	if schedule == "" {
		schedule = "*/5 * * * *"
	}

	if _, err := s.cron.AddFunc(schedule, s.reapStaleRequests); err != nil {
		return fmt.Errorf("failed to register reaper job: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info().
		Str("schedule", schedule).
		Str("stale_after", s.config.StaleAfter).
		Msg("Scheduler started")

	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Service) Stop() {
	if !s.running {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false
	s.logger.Info().Msg("Scheduler stopped")
}

// reapStaleRequests marks processing requests older than the threshold as
// failed. Reports already persisted for them remain readable.
func (s *Service) reapStaleRequests() {
	ctx := context.Background()
	staleAfter := s.config.StaleAfterDuration()
	cutoff := time.Now().Add(-staleAfter)

	requests, err := s.storage.GetRequestsByStatus(ctx, models.RequestStatusProcessing)
	if err != nil {
		s.logger.Error().Err(err).Msg("Reaper failed to list processing requests")
		return
	}

	reaped := 0
	for _, request := range requests {
		if request.CreatedAt.After(cutoff) {
			continue
		}

		message := fmt.Sprintf("interrupted: request exceeded %s in processing", staleAfter)
		if err := s.storage.UpdateRequestStatus(ctx, request.ID, models.RequestStatusFailed, message); err != nil {
			s.logger.Error().
				Err(err).
				Str("request_id", request.ID).
				Msg("Reaper failed to mark request failed")
			continue
		}
		reaped++

		if s.events != nil {
			request.Status = models.RequestStatusFailed
			request.ErrorMessage = message
			if err := s.events.Publish(ctx, interfaces.Event{Type: interfaces.EventRequestFailed, Payload: request}); err != nil {
				s.logger.Warn().Err(err).Str("request_id", request.ID).Msg("Failed to publish reap event")
			}
		}
	}

	if reaped > 0 {
		s.logger.Info().
			Int("reaped", reaped).
			Dur("stale_after", staleAfter).
			Msg("Reaped stale analysis requests")
	}
}
