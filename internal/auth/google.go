// AngelaMos | 2026
// google.go

package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/angelamos/sook/internal/config"
	"github.com/angelamos/sook/internal/core"
	"github.com/angelamos/sook/internal/user"
)

const defaultUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleClient exchanges an authorization code for the Google profile
// behind it. The userinfo URL is a field so tests can point it at a
// local server.
type GoogleClient struct {
	oauth       *oauth2.Config
	userInfoURL string
}

// NewGoogleClient returns nil when Google login is not configured,
// which disables the flow.
func NewGoogleClient(cfg config.GoogleConfig) *GoogleClient {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil
	}
	return &GoogleClient{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		userInfoURL: defaultUserInfoURL,
	}
}

type googleProfile struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (g *GoogleClient) profileForCode(
	ctx context.Context,
	code string,
) (*googleProfile, error) {
	token, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf(
			"google exchange: %w: %w",
			core.ErrUnauthorized,
			err,
		)
	}

	resp, err := g.oauth.Client(ctx, token).Get(g.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("google userinfo: %w: %w", core.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"google userinfo: status %d: %w",
			resp.StatusCode,
			core.ErrUpstream,
		)
	}

	var profile googleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("google userinfo: %w: %w", core.ErrUpstream, err)
	}

	if profile.Email == "" {
		return nil, fmt.Errorf(
			"google userinfo: profile has no email: %w",
			core.ErrUpstream,
		)
	}

	return &profile, nil
}

// GoogleLogin signs a user in with a Google authorization code,
// creating the account on first sight. Accounts created this way have
// no password; the session token works the same as for password logins.
func (s *Service) GoogleLogin(
	ctx context.Context,
	code string,
) (*SessionResponse, error) {
	if s.google == nil {
		return nil, fmt.Errorf(
			"google login is not configured: %w",
			core.ErrUpstream,
		)
	}

	profile, err := s.google.profileForCode(ctx, code)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(profile.Email)

	u, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return s.issueSession(ctx, u)
	}
	if !isNotFound(err) {
		return nil, err
	}

	token, err := core.GenerateSessionToken()
	if err != nil {
		return nil, fmt.Errorf("google login: %w", err)
	}

	username := profile.Name
	if username == "" {
		username, _, _ = strings.Cut(email, "@")
	}

	u = &user.User{
		ID:       uuid.New().String(),
		Email:    email,
		Username: username,
		Token:    &token,
	}
	if profile.Picture != "" {
		u.Avatar = &profile.Picture
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
