package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/auth"
	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/config"
	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/domain"
	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/repository"
)

type UserService struct {
	users      *repository.Users
	sessions   *repository.Sessions
	sessionTTL time.Duration
}

func NewUserService(db repository.DB, cfg *config.Config) *UserService {
	return &UserService{
		users:      repository.NewUsers(db),
		sessions:   repository.NewSessions(db),
		sessionTTL: time.Duration(cfg.SessionTTLHours) * time.Hour,
	}
}

func (s *UserService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(password) < config.MinPasswordLen {
		return nil, fmt.Errorf("password must be at least %d characters", config.MinPasswordLen)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return s.users.Create(ctx, strings.TrimSpace(name), email, hash, domain.RoleUser)
}

// Login verifies credentials and mints a session token. The raw token
// goes straight back to the caller; only its fingerprint is persisted.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, fingerprint, err := auth.NewSessionToken()
	if err != nil {
		return nil, "", err
	}
	if _, err := s.sessions.Create(ctx, user.ID, fingerprint, time.Now().Add(s.sessionTTL)); err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *UserService) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, auth.Fingerprint(token))
}

// Resolve maps a presented bearer token to its user. Expired, revoked
// and unknown tokens all come back as ErrSessionNotFound so the gate
// treats them identically to an absent claim.
func (s *UserService) Resolve(ctx context.Context, token string) (*domain.User, error) {
	sess, err := s.sessions.GetByFingerprint(ctx, auth.Fingerprint(token))
	if err != nil {
		return nil, err
	}
	if sess.Expired(time.Now()) {
		return nil, domain.ErrSessionNotFound
	}
	return s.users.GetByID(ctx, sess.UserID)
}

func (s *UserService) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	return s.users.List(ctx, limit, offset)
}

// CleanupSessions removes expired session rows. Run periodically from
// main.
func (s *UserService) CleanupSessions(ctx context.Context) {
	n, err := s.sessions.DeleteExpired(ctx)
	if err != nil {
		slog.Error("session cleanup failed", "error", err)
		return
	}
	if n > 0 {
		slog.Debug("expired sessions removed", "count", n)
	}
}

// EnsureSuperAdmin bootstraps the configured platform admin account.
// No-op when the email is unset or the account already exists.
func (s *UserService) EnsureSuperAdmin(ctx context.Context, cfg *config.Config) error {
	if cfg.SuperAdminEmail == "" || cfg.SuperAdminPassword == "" {
		return nil
	}
	_, err := s.users.GetByEmail(ctx, strings.ToLower(cfg.SuperAdminEmail))
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	hash, err := auth.HashPassword(cfg.SuperAdminPassword)
	if err != nil {
		return err
	}
	_, err = s.users.Create(ctx, cfg.SuperAdminName, strings.ToLower(cfg.SuperAdminEmail), hash, domain.RoleSuperAdmin)
	if err != nil {
		return fmt.Errorf("bootstrap super admin: %w", err)
	}
	slog.Info("super admin account created", "email", cfg.SuperAdminEmail)
	return nil
}
