package authsvc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kittiBank/order-manage-web/internal/dal/interfaces/itokenrepo"
	"github.com/kittiBank/order-manage-web/internal/dal/interfaces/iuserrepo"
	"github.com/kittiBank/order-manage-web/internal/service/models/user"
)

// DefaultAccessTTL is the access token lifetime when none is configured.
const DefaultAccessTTL = time.Hour

// DefaultRefreshTTL is the refresh token lifetime when none is configured.
const DefaultRefreshTTL = 30 * 24 * time.Hour

const minPasswordLength = 8

// AuthService owns registration, login, token refresh and logout.
type AuthService struct {
	userRepo   iuserrepo.IUserRepository
	tokenRepo  itokenrepo.ITokenRepository
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// option is a function that configures the AuthService.
type option func(*AuthService)

// MustNewAuthService creates a new AuthService.
func MustNewAuthService(opts ...option) *AuthService {
	s := &AuthService{
		accessTTL:  DefaultAccessTTL,
		refreshTTL: DefaultRefreshTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.userRepo == nil || s.tokenRepo == nil {
		panic("authsvc: user and token repositories are required")
	}
	if len(s.secret) == 0 {
		panic("authsvc: signing secret is required")
	}

	return s
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithUserRepository(repo iuserrepo.IUserRepository) option {
	return func(s *AuthService) {
		s.userRepo = repo
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithTokenRepository(repo itokenrepo.ITokenRepository) option {
	return func(s *AuthService) {
		s.tokenRepo = repo
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithSecret(secret []byte) option {
	return func(s *AuthService) {
		s.secret = secret
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithAccessTTL(ttl time.Duration) option {
	return func(s *AuthService) {
		s.accessTTL = ttl
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithRefreshTTL(ttl time.Duration) option {
	return func(s *AuthService) {
		s.refreshTTL = ttl
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithClock(now func() time.Time) option {
	return func(s *AuthService) {
		s.now = now
	}
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// LoginResult carries everything the login endpoint returns.
type LoginResult struct {
	User         *user.User
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// Register creates a new account. The role defaults to CUSTOMER.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*user.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)

	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", user.ErrInvalidInput)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", user.ErrInvalidInput)
	}
	if len(req.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", user.ErrInvalidInput, minPasswordLength)
	}

	role := user.RoleCustomer
	if req.Role != "" {
		parsed, err := user.ParseRole(req.Role)
		if err != nil {
			return nil, err
		}
		role = parsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	u := user.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Insert(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailExists) {
			return nil, user.ErrEmailExists
		}

		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	return &u, nil
}

// Login verifies credentials and issues an access/refresh token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, user.ErrInvalidCredentials
		}

		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	accessToken, err := s.issueAccessToken(u)
	if err != nil {
		return nil, err
	}

	refreshToken := itokenrepo.RefreshToken{
		Token:     uuid.NewString(),
		UserID:    u.ID,
		ExpiresAt: s.now().Add(s.refreshTTL),
		CreatedAt: s.now(),
	}
	if err := s.tokenRepo.Insert(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return &LoginResult{
		User:         u,
		AccessToken:  accessToken,
		RefreshToken: refreshToken.Token,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// refresh token itself stays valid; its expiry is extended.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	record, err := s.tokenRepo.Get(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, itokenrepo.ErrNotFound) {
			return "", ErrInvalidToken
		}

		return "", fmt.Errorf("failed to look up refresh token: %w", err)
	}

	if s.now().After(record.ExpiresAt) {
		return "", ErrInvalidToken
	}

	u, err := s.userRepo.GetByID(ctx, record.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", ErrInvalidToken
		}

		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	accessToken, err := s.issueAccessToken(u)
	if err != nil {
		return "", err
	}

	if err := s.tokenRepo.Touch(ctx, refreshToken, s.now().Add(s.refreshTTL)); err != nil {
		return "", fmt.Errorf("failed to extend refresh token: %w", err)
	}

	return accessToken, nil
}

// Logout revokes all refresh tokens of the user. Idempotent.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := s.tokenRepo.RevokeByUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}

	return nil
}

// Profile returns the account behind an authenticated request.
func (s *AuthService) Profile(ctx context.Context, userID string) (*user.User, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return u, nil
}
