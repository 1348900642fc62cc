package repository

import (
	"context"

	"tupyme/internal/backend"
	"tupyme/internal/domain"

	"go.uber.org/zap"
)

// PlanRepository wraps the backend plan catalog endpoint
type PlanRepository struct {
	api    *backend.Client
	logger *zap.Logger
}

func NewPlanRepository(api *backend.Client, logger *zap.Logger) *PlanRepository {
	return &PlanRepository{
		api:    api,
		logger: logger,
	}
}

// GetActivePlans fetches the plan catalog, keeping only active plans
func (r *PlanRepository) GetActivePlans(ctx context.Context) ([]domain.Plan, error) {
	plans, err := r.api.GetPlans(ctx)
	if err != nil {
		r.logger.Warn("Failed to fetch plans", zap.Error(err))
		return nil, err
	}

	active := make([]domain.Plan, 0, len(plans))
	for _, plan := range plans {
		if plan.Active {
			active = append(active, plan)
		}
	}

	return active, nil
}
