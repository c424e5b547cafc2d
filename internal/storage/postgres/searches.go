package postgres

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"job-scout/internal/models"
)

func (s *Store) GetActiveSearches(ctx context.Context) ([]*models.JobSearch, error) {
	var searches []*models.JobSearch

	_, err := s.sess.
		Select("*").
		From("job_searches").
		Where("is_active = ?", true).
		OrderBy("created_at").
		LoadContext(ctx, &searches)

	if err != nil {
		s.logger.Error("failed to get active searches", zap.Error(err))
		return nil, fmt.Errorf("get active searches: %w", err)
	}

	s.logger.Debug("active searches loaded", zap.Int("count", len(searches)))

	return searches, nil
}

func (s *Store) StampLastRun(ctx context.Context, searchIDs []string, at time.Time) error {
	if len(searchIDs) == 0 {
		return nil
	}

	_, err := s.sess.
		Update("job_searches").
		Set("last_run_at", at).
		Where("id IN ?", searchIDs).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to stamp last run",
			zap.Int("search_count", len(searchIDs)),
			zap.Error(err),
		)
		return fmt.Errorf("stamp last run: %w", err)
	}

	s.logger.Info("searches stamped",
		zap.Int("count", len(searchIDs)),
		zap.Time("last_run_at", at),
	)

	return nil
}
