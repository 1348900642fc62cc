package repository

import (
	"context"
	"fmt"

	"tupyme/internal/backend"
	"tupyme/internal/domain"
	"tupyme/internal/prefs"

	"go.uber.org/zap"
)

// UserRepository wraps the backend user endpoints and keeps the local
// session preferences in sync with login state.
type UserRepository struct {
	api    *backend.Client
	prefs  *prefs.Store
	logger *zap.Logger
}

func NewUserRepository(api *backend.Client, prefsStore *prefs.Store, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		api:    api,
		prefs:  prefsStore,
		logger: logger,
	}
}

// Login authenticates against the backend and persists the session
func (r *UserRepository) Login(ctx context.Context, req domain.LoginRequest) (*domain.User, error) {
	user, err := r.api.Login(ctx, req)
	if err != nil {
		r.logger.Warn("Login failed", zap.String("email", req.Email), zap.Error(err))
		return nil, err
	}

	if err := r.prefs.SaveSession(user.ID, user.Email); err != nil {
		// The backend accepted the login; a failed preference write only
		// costs session restore on next launch.
		r.logger.Error("Failed to persist session", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	r.logger.Info("User logged in", zap.Int64("user_id", user.ID))
	return user, nil
}

// Register creates the account and persists the session
func (r *UserRepository) Register(ctx context.Context, req domain.RegisterUserRequest) (*domain.User, error) {
	user, err := r.api.Register(ctx, req)
	if err != nil {
		r.logger.Warn("Registration failed", zap.String("email", req.Email), zap.Error(err))
		return nil, err
	}

	if err := r.prefs.SaveSession(user.ID, user.Email); err != nil {
		r.logger.Error("Failed to persist session", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	r.logger.Info("User registered", zap.Int64("user_id", user.ID))
	return user, nil
}

// Logout clears the persisted session
func (r *UserRepository) Logout() error {
	if err := r.prefs.ClearSession(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	r.logger.Info("User logged out")
	return nil
}

// GetUserByEmail fetches a profile from the backend
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := r.api.GetUserByEmail(ctx, email)
	if err != nil {
		r.logger.Warn("Failed to fetch user", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	return user, nil
}

// Session loads the persisted login state
func (r *UserRepository) Session() (*domain.Session, error) {
	return r.prefs.Session()
}
