// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/angelamos/sook/internal/core"
	"github.com/angelamos/sook/internal/mail"
	"github.com/angelamos/sook/internal/middleware"
	"github.com/angelamos/sook/internal/user"
)

type Service struct {
	users       user.Repository
	mailer      mail.Mailer
	mailTimeout time.Duration
	google      *GoogleClient
	logger      *slog.Logger
}

func NewService(
	users user.Repository,
	mailer mail.Mailer,
	mailTimeout time.Duration,
	google *GoogleClient,
	logger *slog.Logger,
) *Service {
	return &Service{
		users:       users,
		mailer:      mailer,
		mailTimeout: mailTimeout,
		google:      google,
		logger:      logger,
	}
}

// Signup creates the account, issues the first session token and sends
// a welcome email. Email failure never rolls the account back; it comes
// back as a warning on the response.
func (s *Service) Signup(
	ctx context.Context,
	req SignupRequest,
) (*SessionResponse, error) {
	if err := core.CheckPasswordPolicy(req.Password); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf(
			"signup: email already registered: %w",
			core.ErrDuplicateKey,
		)
	}

	salt, err := core.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	token, err := core.GenerateSessionToken()
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	u := &user.User{
		ID:         uuid.New().String(),
		Email:      email,
		Username:   req.Username,
		Newsletter: req.Newsletter,
		Hash:       core.HashPassword(req.Password, salt),
		Salt:       salt,
		Token:      &token,
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	resp := &SessionResponse{
		UserID:  u.ID,
		Token:   token,
		Account: user.AccountOf(u),
	}

	if warning := s.sendWelcome(ctx, u); warning != "" {
		resp.Warning = warning
	}

	return resp, nil
}

// Login verifies the password and rotates the session token, which
// invalidates any session issued before this call.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*SessionResponse, error) {
	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return nil, err
	}

	if !u.CanPasswordLogin() {
		return nil, fmt.Errorf(
			"login: account has no password: %w",
			core.ErrUnauthorized,
		)
	}

	if !core.VerifyPassword(req.Password, u.Salt, u.Hash) {
		return nil, fmt.Errorf(
			"login: wrong password: %w",
			core.ErrUnauthorized,
		)
	}

	return s.issueSession(ctx, u)
}

// VerifyToken resolves a bearer token to the identity that owns it.
// A rotated or unknown token resolves to nothing.
func (s *Service) VerifyToken(
	ctx context.Context,
	token string,
) (*middleware.Identity, error) {
	u, err := s.users.GetByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", core.ErrUnauthorized)
	}

	return &middleware.Identity{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
	}, nil
}

// issueSession rotates the stored token and builds the session payload.
func (s *Service) issueSession(
	ctx context.Context,
	u *user.User,
) (*SessionResponse, error) {
	token, err := core.GenerateSessionToken()
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}

	if err := s.users.UpdateToken(ctx, u.ID, token); err != nil {
		return nil, err
	}
	u.Token = &token

	return &SessionResponse{
		UserID:  u.ID,
		Token:   token,
		Account: user.AccountOf(u),
	}, nil
}

func (s *Service) sendWelcome(ctx context.Context, u *user.User) string {
	if s.mailer == nil {
		return ""
	}

	mailCtx, cancel := context.WithTimeout(
		context.WithoutCancel(ctx),
		s.mailTimeout,
	)
	defer cancel()

	msg := mail.WelcomeMessage(u.Email, u.Username)
	if err := s.mailer.Send(mailCtx, msg); err != nil {
		s.logger.Warn("welcome email failed",
			"user_id", u.ID,
			"error", err,
		)
		return "account created but the welcome email could not be sent"
	}

	return ""
}

func isNotFound(err error) bool {
	return errors.Is(err, core.ErrNotFound)
}

var _ middleware.TokenVerifier = (*Service)(nil)
