package postgres

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"job-scout/internal/models"
)

// GetJobsForUser loads every job record owned by the user, with the company's
// cultural match rate joined in so the status resolver can read it without a
// second round trip.
func (s *Store) GetJobsForUser(ctx context.Context, userID string) ([]*models.Job, error) {
	query := `
		SELECT j.*, c.cultural_match_rate
		FROM jobs j
		LEFT JOIN companies c ON c.id = j.company_id
		WHERE j.user_id = ?
	`

	var jobs []*models.Job

	_, err := s.sess.
		SelectBySql(query, userID).
		LoadContext(ctx, &jobs)

	if err != nil {
		s.logger.Error("failed to get jobs for user",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get jobs for user: %w", err)
	}

	s.logger.Debug("jobs loaded",
		zap.String("user_id", userID),
		zap.Int("count", len(jobs)),
	)

	return jobs, nil
}

func (s *Store) InsertJob(ctx context.Context, job *models.Job) error {
	now := time.Now()

	_, err := s.sess.
		InsertInto("jobs").
		Columns(
			"id", "user_id", "company_id", "job_title", "posting_url",
			"company", "company_page", "status", "prioritisation_score",
			"experience_match_rate", "experience_match_insights",
			"job_match_rate", "job_match_insights", "job_description",
			"job_description_full", "tailored_covering_letter",
			"salary_expectation", "is_live", "created_at", "updated_at",
		).
		Values(
			job.ID, job.UserID, job.CompanyID, job.JobTitle, job.PostingURL,
			job.Company, job.CompanyPage, job.Status, job.PrioritisationScore,
			job.ExperienceMatchRate, job.ExperienceMatchInsights,
			job.JobMatchRate, job.JobMatchInsights, job.JobDescription,
			job.JobDescriptionFull, job.TailoredCoveringLetter,
			job.SalaryExpectation, job.IsLive, now, now,
		).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to insert job",
			zap.String("user_id", job.UserID),
			zap.String("job_title", job.JobTitle),
			zap.Error(err),
		)
		return fmt.Errorf("insert job: %w", err)
	}

	s.logger.Info("job inserted",
		zap.String("job_id", job.ID),
		zap.String("user_id", job.UserID),
		zap.String("status", string(job.Status)),
	)

	return nil
}

// UpdateJobStatus mutates only the record's status. The pipeline never
// touches any other field of an existing job.
func (s *Store) UpdateJobStatus(ctx context.Context, jobID string, status models.Status) error {
	_, err := s.sess.
		Update("jobs").
		Set("status", status).
		Set("updated_at", time.Now()).
		Where("id = ?", jobID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to update job status",
			zap.String("job_id", jobID),
			zap.String("status", string(status)),
			zap.Error(err),
		)
		return fmt.Errorf("update job status: %w", err)
	}

	s.logger.Info("job status updated",
		zap.String("job_id", jobID),
		zap.String("status", string(status)),
	)

	return nil
}
