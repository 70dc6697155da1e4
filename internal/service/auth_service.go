package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"skillpath_backend/internal/config"
	"skillpath_backend/internal/model"
	"skillpath_backend/internal/util"
	"skillpath_backend/pkg/logger"
)

const minPasswordLength = 6

var (
	ErrPasswordTooShort = fmt.Errorf("Password must be at least %d characters", minPasswordLength)
	ErrNoUpdates        = errors.New("No updates provided")
)

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateLastLogin(ctx context.Context, id uint, at time.Time) error
	UpdateProfile(ctx context.Context, id uint, fields map[string]any) error
}

type AuthService struct {
	Users    UserStore
	Denylist *TokenDenylist
	Cfg      *config.Config
	now      func() time.Time
}

func NewAuthService(users UserStore, denylist *TokenDenylist, cfg *config.Config) *AuthService {
	return &AuthService{Users: users, Denylist: denylist, Cfg: cfg, now: time.Now}
}

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
}

type AuthResult struct {
	Token     string      `json:"access_token"`
	TokenType string      `json:"token_type"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      *model.User `json:"user"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if len(in.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	email := normalizeEmail(in.Email)
	exists, err := s.Users.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, util.ErrEmailRegistered
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := &model.User{
		Name:      strings.TrimSpace(in.FullName),
		Email:     email,
		Password:  string(hashed),
		LastLogin: &now,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrEmailRegistered
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	logger.Log.Info("User registered", zap.Uint("user_id", user.ID))
	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.Users.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	now := s.now()
	if err := s.Users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		logger.Log.Warn("Failed to record last login", zap.Uint("user_id", user.ID), zap.Error(err))
	} else {
		user.LastLogin = &now
	}

	return s.issue(user)
}

func (s *AuthService) issue(user *model.User) (*AuthResult, error) {
	token, claims, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.Expiry())
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		Token:     token,
		TokenType: "bearer",
		ExpiresAt: claims.ExpiresAt.Time,
		User:      user,
	}, nil
}

// Logout revokes the presented token for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, claims *util.Claims) error {
	return s.Denylist.Revoke(ctx, claims.TokenID(), claims.Remaining(s.now()))
}

// Authenticate verifies a bearer token and that it has not been revoked.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*util.Claims, error) {
	claims, err := util.ParseJWT(token, s.Cfg.JWT.Secret)
	if err != nil {
		return nil, err
	}
	revoked, err := s.Denylist.IsRevoked(ctx, claims.TokenID())
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, util.ErrTokenRevoked
	}
	return claims, nil
}

func (s *AuthService) Me(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

// ProfileUpdate carries the profile documents a user may replace. Absent or
// null fields are left as they are.
type ProfileUpdate struct {
	ResumeData       json.RawMessage `json:"resume_data,omitempty" swaggertype:"object"`
	TargetJobs       json.RawMessage `json:"target_jobs,omitempty" swaggertype:"array,object"`
	LearningProgress json.RawMessage `json:"learning_progress,omitempty" swaggertype:"object"`
}

func (p ProfileUpdate) fields() map[string]any {
	fields := map[string]any{}
	for column, doc := range map[string]json.RawMessage{
		"resume_data":       p.ResumeData,
		"target_jobs":       p.TargetJobs,
		"learning_progress": p.LearningProgress,
	} {
		if len(doc) > 0 && string(doc) != "null" {
			fields[column] = model.RawJSON(doc)
		}
	}
	return fields
}

// UpdateProfile replaces the profile documents present in body and returns
// the updated user.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, body []byte) (*model.User, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrNoUpdates
	}
	if err := validateBody(profileSchema, body); err != nil {
		return nil, err
	}
	var in ProfileUpdate
	if err := json.Unmarshal(body, &in); err != nil {
		return nil, &ValidationError{Details: []string{err.Error()}}
	}

	fields := in.fields()
	if len(fields) == 0 {
		return nil, ErrNoUpdates
	}
	if _, err := s.Me(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.Users.UpdateProfile(ctx, userID, fields); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	logger.Log.Info("Profile updated", zap.Uint("user_id", userID), zap.Int("fields", len(fields)))
	return s.Me(ctx, userID)
}
