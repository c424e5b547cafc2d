package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"

	"job-scout/internal/models"
)

// GetCompanyByName looks a company up by exact (user, name). Returns nil when
// no such company exists.
func (s *Store) GetCompanyByName(ctx context.Context, userID, name string) (*models.Company, error) {
	var company models.Company

	err := s.sess.
		Select("*").
		From("companies").
		Where("user_id = ? AND name = ?", userID, name).
		LoadOneContext(ctx, &company)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		s.logger.Error("failed to get company",
			zap.String("user_id", userID),
			zap.String("name", name),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get company by name: %w", err)
	}

	return &company, nil
}

func (s *Store) CreateCompany(ctx context.Context, company *models.Company) error {
	now := time.Now()

	_, err := s.sess.
		InsertInto("companies").
		Columns("id", "user_id", "name", "company_page", "created_at", "updated_at").
		Values(company.ID, company.UserID, company.Name, company.CompanyPage, now, now).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to create company",
			zap.String("user_id", company.UserID),
			zap.String("name", company.Name),
			zap.Error(err),
		)
		return fmt.Errorf("create company: %w", err)
	}

	s.logger.Info("company created",
		zap.String("company_id", company.ID),
		zap.String("user_id", company.UserID),
		zap.String("name", company.Name),
	)

	return nil
}
