package service

import (
	"context"
	"encoding/json"
	"event-booking-api/core/cache"
	"event-booking-api/core/config"
	"event-booking-api/core/constants"
	"event-booking-api/core/errors"
	"event-booking-api/core/logger"
	"event-booking-api/core/utils"
	"event-booking-api/modules/auth/dto"
	"event-booking-api/modules/auth/entity"
	"event-booking-api/modules/auth/repository"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// AuthServiceInterface is the authentication collaborator: it turns
// credentials into users and bearer tokens into nothing more than the
// claims the middleware hands downstream.
type AuthServiceInterface interface {
	Register(ctx context.Context, requestData *dto.RegisterRequest) (*dto.RegisterResponse, *errors.AppError)
	Login(ctx context.Context, requestData *dto.LoginRequest) (*dto.LoginResponse, *errors.AppError)
	Logout(ctx context.Context, token string) *errors.AppError
	RefreshToken(ctx context.Context, token string) (*dto.RefreshTokenResponse, *errors.AppError)
	GetUserByEmail(ctx context.Context, email string) (*dto.UserResponse, *errors.AppError)
	SeedAdminUser(ctx context.Context, email, password string) error
	GetGoogleAuthURL(ctx context.Context) (string, *errors.AppError)
	HandleGoogleCallback(ctx context.Context, code string, state string) (*dto.LoginResponse, *errors.AppError)
}

type AuthService struct {
	repo  repository.AuthRepositoryInterface
	cache cache.Cache
}

func NewAuthService(repo repository.AuthRepositoryInterface, cache cache.Cache) *AuthService {
	return &AuthService{repo: repo, cache: cache}
}

func toUserResponse(user *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	}
}

func (service *AuthService) Register(ctx context.Context, requestData *dto.RegisterRequest) (*dto.RegisterResponse, *errors.AppError) {
	existing, err := service.repo.GetUserByEmail(ctx, requestData.Email)
	if err != nil {
		logger.Error("AuthService:Register:GetUserByEmail:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to check existing user", err)
	}
	if existing != nil {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "user with email already exists", nil)
	}

	hashedPassword, err := utils.HashPassword(requestData.Password)
	if err != nil {
		logger.Error("AuthService:Register:HashPassword:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to hash password", err)
	}

	userEntity := &entity.User{
		Email:    requestData.Email,
		Username: requestData.Username,
		Password: hashedPassword,
		IsAdmin:  false,
		IsActive: true,
	}

	createdUser, err := service.repo.CreateUser(ctx, userEntity)
	if err != nil {
		logger.Error("AuthService:Register:CreateUser:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create user", err)
	}

	accessToken, refreshToken, appErr := service.issueTokens(createdUser)
	if appErr != nil {
		return nil, appErr
	}

	return &dto.RegisterResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         toUserResponse(createdUser),
	}, nil
}

// Login authenticates a user by email and password. Failed attempts are
// counted in redis; too many in a row block the account for a while.
func (service *AuthService) Login(ctx context.Context, requestData *dto.LoginRequest) (*dto.LoginResponse, *errors.AppError) {
	loginKey := fmt.Sprintf("login:%s", requestData.Email)

	blocked, err := service.cache.IsLoginBlocked(ctx, loginKey)
	if err != nil {
		logger.Error("AuthService:Login:IsLoginBlocked:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get login attempt", err)
	}
	if blocked {
		if errExpire := service.cache.Expire(ctx, loginKey, constants.BlockDuration); errExpire != nil {
			logger.Error("AuthService:Login:Expire:Error:", errExpire)
		}
		return nil, errors.NewAppError(errors.ErrUnauthorized, "too many failed attempts, account is locked for 15 minutes", nil)
	}

	user, err := service.repo.GetUserByEmail(ctx, requestData.Email)
	if err != nil {
		logger.Error("AuthService:Login:GetUserByEmail:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get user", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid email or password", nil)
	}

	if !user.IsActive {
		service.recordFailedAttempt(ctx, loginKey)
		return nil, errors.NewAppError(errors.ErrUnauthorized, "user not active", nil)
	}

	if !utils.ComparePassword(user.Password, requestData.Password) {
		service.recordFailedAttempt(ctx, loginKey)
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid email or password", nil)
	}

	accessToken, refreshToken, appErr := service.issueTokens(user)
	if appErr != nil {
		return nil, appErr
	}

	if errDel := service.cache.Del(ctx, loginKey); errDel != nil {
		logger.Error("AuthService:Login:Del:Error:", errDel)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         toUserResponse(user),
	}, nil
}

func (service *AuthService) recordFailedAttempt(ctx context.Context, loginKey string) {
	if err := service.cache.IncrementLoginAttempt(ctx, loginKey); err != nil {
		logger.Error("AuthService:Login:IncrementLoginAttempt:Error:", err)
	}
}

func (service *AuthService) Logout(ctx context.Context, token string) *errors.AppError {
	err := service.cache.AddToTokenBlacklist(ctx, token)
	if err != nil {
		logger.Error("AuthService:Logout:AddToBlacklist:Error:", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to add token to blacklist", err)
	}
	return nil
}

func (service *AuthService) RefreshToken(ctx context.Context, token string) (*dto.RefreshTokenResponse, *errors.AppError) {
	blacklisted, err := service.cache.IsTokenBlacklisted(ctx, token)
	if err != nil {
		logger.Error("AuthService:RefreshToken:IsTokenBlacklisted:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to check token blacklist", err)
	}
	if blacklisted {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "token is blacklisted", nil)
	}

	claims, err := utils.ValidateAndParseToken(token)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid token", nil)
	}
	if claims.Scope != constants.ScopeTokenRefresh {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "refresh token required", nil)
	}

	user, err := service.repo.GetUserByEmail(ctx, claims.Email)
	if err != nil || user == nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "user not found", nil)
	}

	// Rotate: the used refresh token is blacklisted
	if errBlacklist := service.cache.AddToTokenBlacklist(ctx, token); errBlacklist != nil {
		logger.Error("AuthService:RefreshToken:AddToBlacklist:Error:", errBlacklist)
	}

	accessToken, refreshToken, appErr := service.issueTokens(user)
	if appErr != nil {
		return nil, appErr
	}

	return &dto.RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (service *AuthService) GetUserByEmail(ctx context.Context, email string) (*dto.UserResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultTimeout)
	defer cancel()

	user, err := service.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get user by email", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "user not found", nil)
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// SeedAdminUser creates the administrator account on startup when it does
// not exist yet. Called from module Init with the configured credentials.
func (service *AuthService) SeedAdminUser(ctx context.Context, email, password string) error {
	existing, err := service.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = service.repo.CreateUser(ctx, &entity.User{
		Email:    email,
		Username: "admin",
		Password: hashedPassword,
		IsAdmin:  true,
		IsActive: true,
	})
	if err != nil {
		return err
	}

	logger.Info("AuthService:SeedAdminUser:Created", "email", email)
	return nil
}

func (service *AuthService) issueTokens(user *entity.User) (string, string, *errors.AppError) {
	accessToken, err := utils.GenerateToken(user.ID, user.Email, user.Username, user.IsAdmin, constants.ScopeTokenAccess)
	if err != nil {
		return "", "", errors.NewAppError(errors.ErrInternalServer, "failed to generate access token", err)
	}

	refreshToken, err := utils.GenerateToken(user.ID, user.Email, user.Username, user.IsAdmin, constants.ScopeTokenRefresh)
	if err != nil {
		return "", "", errors.NewAppError(errors.ErrInternalServer, "failed to generate refresh token", err)
	}

	return accessToken, refreshToken, nil
}

// ===================== Google sign-in =====================

type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

func googleOAuthConfig(cfg *config.Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.GoogleAPI.ClientID,
		ClientSecret: cfg.GoogleAPI.ClientSecret,
		RedirectURL:  cfg.GoogleAPI.RedirectURI,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

func (service *AuthService) GetGoogleAuthURL(ctx context.Context) (string, *errors.AppError) {
	cfg, ok := config.GetSafe()
	if !ok {
		return "", errors.NewAppError(errors.ErrInternalServer, "config not initialized", nil)
	}
	if cfg.GoogleAPI.ClientID == "" || cfg.GoogleAPI.ClientSecret == "" || cfg.GoogleAPI.RedirectURI == "" {
		return "", errors.NewAppError(errors.ErrInternalServer, "Google OAuth configuration is missing", nil)
	}

	// Abandoned sign-in attempts leave expired states behind; sweep them
	// whenever a new flow starts.
	if err := service.repo.CleanupExpiredOAuthStates(ctx); err != nil {
		logger.Warn("AuthService:GetGoogleAuthURL:CleanupExpiredOAuthStates:Error", "error", err)
	}

	// State token for CSRF protection, one-time use with a short expiry
	state := utils.GenerateRandomString(32)
	expiresAt := time.Now().Add(constants.OAuthStateTTL)
	if err := service.repo.SaveOAuthState(ctx, state, expiresAt); err != nil {
		logger.Error("AuthService:GetGoogleAuthURL:SaveOAuthState:Error", "error", err, "state", state)
		return "", errors.NewAppError(errors.ErrInternalServer, "failed to store state token", err)
	}

	return googleOAuthConfig(cfg).AuthCodeURL(state), nil
}

func (service *AuthService) HandleGoogleCallback(ctx context.Context, code string, state string) (*dto.LoginResponse, *errors.AppError) {
	oauthState, err := service.repo.GetOAuthState(ctx, state)
	if err != nil {
		logger.Error("AuthService:HandleGoogleCallback:GetOAuthState:Error", "error", err, "state", state)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to validate state token", err)
	}
	if oauthState == nil || time.Now().After(oauthState.ExpiresAt) {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid or expired state token", nil)
	}

	if err := service.repo.DeleteOAuthState(ctx, state); err != nil {
		logger.Error("AuthService:HandleGoogleCallback:DeleteOAuthState:Error", "error", err, "state", state)
		// Continue even if delete fails
	}

	cfg, ok := config.GetSafe()
	if !ok {
		return nil, errors.NewAppError(errors.ErrInternalServer, "config not initialized", nil)
	}

	token, err := googleOAuthConfig(cfg).Exchange(ctx, code)
	if err != nil {
		logger.Error("AuthService:HandleGoogleCallback:Exchange:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to exchange token", err)
	}

	userInfo, err := service.getGoogleUserInfo(ctx, token.AccessToken)
	if err != nil {
		logger.Error("AuthService:HandleGoogleCallback:GetGoogleUserInfo:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get user info", err)
	}

	user, err := service.repo.GetUserByEmail(ctx, userInfo.Email)
	if err != nil {
		logger.Error("AuthService:HandleGoogleCallback:GetUserByEmail:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get user", err)
	}

	if user == nil {
		// First Google sign-in: provision an account with a random password
		hashedPassword, _ := utils.HashPassword(utils.GenerateRandomString(32))
		created, errCreate := service.repo.CreateUser(ctx, &entity.User{
			Email:    userInfo.Email,
			Username: userInfo.Name,
			Password: hashedPassword,
			IsAdmin:  false,
			IsActive: true,
		})
		if errCreate != nil {
			logger.Error("AuthService:HandleGoogleCallback:CreateUser:Error:", errCreate)
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create user", errCreate)
		}
		user = created
	}

	accessToken, refreshToken, appErr := service.issueTokens(user)
	if appErr != nil {
		return nil, appErr
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         toUserResponse(user),
	}, nil
}

func (service *AuthService) getGoogleUserInfo(ctx context.Context, accessToken string) (*googleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://www.googleapis.com/oauth2/v2/userinfo", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("userinfo request failed: %s: %s", resp.Status, string(body))
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}
