package tasks

import (
	"context"
	"sync"
	"time"

	"martylabs/internal/config"
	"martylabs/internal/models/db_models"
	"martylabs/internal/models/request_models"
	"martylabs/internal/repositories"
	"martylabs/internal/services"

	"go.uber.org/zap"
)

// StaleGenerationSweeper marks generations stuck in processing as failed.
// The external workflow engine may still be running them; this only stops
// the record (and the user's credits) from hanging forever when a callback
// never arrives.
type StaleGenerationSweeper struct {
	genRepo repositories.IGenerationRepository
	genSvc  services.GenerationServiceInterface
	timeout time.Duration
	logger  *zap.Logger

	done chan struct{}
	wg   sync.WaitGroup
}

func NewStaleGenerationSweeper(
	genRepo repositories.IGenerationRepository,
	genSvc services.GenerationServiceInterface,
	cfg *config.Config,
	logger *zap.Logger,
) *StaleGenerationSweeper {
	return &StaleGenerationSweeper{
		genRepo: genRepo,
		genSvc:  genSvc,
		timeout: cfg.StuckGenerationTimeout,
		logger:  logger,
		done:    make(chan struct{}),
	}
}

func (s *StaleGenerationSweeper) Start() {
	s.wg.Add(1)
	go s.runPeriodically()
}

func (s *StaleGenerationSweeper) Stop() {
	close(s.done)
	s.wg.Wait()
}

func (s *StaleGenerationSweeper) runPeriodically() {
	defer s.wg.Done()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.done:
			return
		}
	}
}

func (s *StaleGenerationSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	stuck, err := s.genRepo.ListStuckProcessing(ctx, s.timeout)
	if err != nil {
		s.logger.Error("stale generation sweep failed", zap.Error(err))
		return
	}

	for _, gen := range stuck {
		msg := "Generation timed out waiting for workflow callback"
		_, err := s.genSvc.UpdateStatus(ctx, request_models.UpdateGenerationStatusRequest{
			ID:           gen.ID,
			Status:       string(db_models.GenFailed),
			ErrorMessage: &msg,
		})
		if err != nil {
			s.logger.Error("failed to sweep stuck generation",
				zap.String("generation_id", gen.ID.String()), zap.Error(err))
			continue
		}
		s.logger.Warn("stuck generation marked failed",
			zap.String("generation_id", gen.ID.String()),
			zap.String("user_id", gen.UserID))
	}
}
