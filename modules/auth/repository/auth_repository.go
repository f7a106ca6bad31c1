package repository

import (
	"context"
	"database/sql"
	"event-booking-api/core/database"
	"event-booking-api/core/logger"
	"event-booking-api/modules/auth/entity"
	"time"
)

// AuthRepository handles user and OAuth-state database operations
type AuthRepository struct {
	DB database.Database
}

func NewAuthRepository(db database.Database) *AuthRepository {
	return &AuthRepository{DB: db}
}

// AuthRepositoryInterface defines the contract for authentication
// repository operations. GetUserByEmail returns (nil, nil) when no user
// exists with that email.
type AuthRepositoryInterface interface {
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	CreateUser(ctx context.Context, user *entity.User) (*entity.User, error)

	SaveOAuthState(ctx context.Context, state string, expiresAt time.Time) error
	GetOAuthState(ctx context.Context, state string) (*entity.OAuthState, error)
	DeleteOAuthState(ctx context.Context, state string) error
	CleanupExpiredOAuthStates(ctx context.Context) error
}

const userColumns = `id, email, username, password, is_admin, is_active, created_at, updated_at`

func (r *AuthRepository) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user entity.User
	err := r.DB.GetContext(ctx, &user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AuthRepository:GetUserByEmail:Error:", err)
		return nil, err
	}

	return &user, nil
}

func (r *AuthRepository) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `
		INSERT INTO users (email, username, password, is_admin, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	var created entity.User
	err := r.DB.GetContext(ctx, &created, query,
		user.Email, user.Username, user.Password, user.IsAdmin, user.IsActive)
	if err != nil {
		logger.Error("AuthRepository:CreateUser:Error:", err)
		return nil, err
	}

	return &created, nil
}

func (r *AuthRepository) SaveOAuthState(ctx context.Context, state string, expiresAt time.Time) error {
	query := `INSERT INTO oauth_states (state, expires_at) VALUES ($1, $2)`
	err := r.DB.ExecContext(ctx, query, state, expiresAt)
	if err != nil {
		logger.Error("AuthRepository:SaveOAuthState:Error", "error", err, "state", state)
		return err
	}
	return nil
}

func (r *AuthRepository) GetOAuthState(ctx context.Context, state string) (*entity.OAuthState, error) {
	query := `SELECT state, expires_at FROM oauth_states WHERE state = $1`

	var result entity.OAuthState
	err := r.DB.GetContext(ctx, &result, query, state)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AuthRepository:GetOAuthState:Error", "error", err, "state", state)
		return nil, err
	}

	return &result, nil
}

func (r *AuthRepository) DeleteOAuthState(ctx context.Context, state string) error {
	err := r.DB.ExecContext(ctx, `DELETE FROM oauth_states WHERE state = $1`, state)
	if err != nil {
		logger.Error("AuthRepository:DeleteOAuthState:Error", "error", err, "state", state)
		return err
	}
	return nil
}

func (r *AuthRepository) CleanupExpiredOAuthStates(ctx context.Context) error {
	err := r.DB.ExecContext(ctx, `DELETE FROM oauth_states WHERE expires_at < NOW()`)
	if err != nil {
		logger.Error("AuthRepository:CleanupExpiredOAuthStates:Error", "error", err)
		return err
	}
	return nil
}
