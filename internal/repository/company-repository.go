package repository

import (
	"context"

	"tupyme/internal/backend"
	"tupyme/internal/domain"

	"go.uber.org/zap"
)

// CompanyRepository wraps the backend company endpoints
type CompanyRepository struct {
	api    *backend.Client
	logger *zap.Logger
}

func NewCompanyRepository(api *backend.Client, logger *zap.Logger) *CompanyRepository {
	return &CompanyRepository{
		api:    api,
		logger: logger,
	}
}

// CreateCompany registers the company profile for a user
func (r *CompanyRepository) CreateCompany(ctx context.Context, req domain.CreateCompanyRequest) (*domain.Company, error) {
	company, err := r.api.CreateCompany(ctx, req)
	if err != nil {
		r.logger.Warn("Failed to create company", zap.Int64("user_id", req.UserID), zap.Error(err))
		return nil, err
	}

	r.logger.Info("Company created", zap.Int64("company_id", company.ID), zap.Int64("user_id", company.UserID))
	return company, nil
}

// GetCompanyByUser fetches the company attached to a user account
func (r *CompanyRepository) GetCompanyByUser(ctx context.Context, userID int64) (*domain.Company, error) {
	company, err := r.api.GetCompanyByUser(ctx, userID)
	if err != nil {
		r.logger.Warn("Failed to fetch company", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	return company, nil
}
