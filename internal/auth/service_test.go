// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/sook/internal/core"
	"github.com/angelamos/sook/internal/mail"
	"github.com/angelamos/sook/internal/user"
)

type fakeUserRepo struct {
	users map[string]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*user.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	for _, existing := range f.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
	}
	clone := *u
	f.users[u.ID] = &clone
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*user.User, error) {
	if u, ok := f.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
}

func (f *fakeUserRepo) GetByToken(_ context.Context, token string) (*user.User, error) {
	for _, u := range f.users {
		if u.Token != nil && *u.Token == token {
			clone := *u
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("get user by token: %w", core.ErrNotFound)
}

func (f *fakeUserRepo) UpdateToken(_ context.Context, id, token string) error {
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("update token: %w", core.ErrNotFound)
	}
	u.Token = &token
	return nil
}

func (f *fakeUserRepo) UpdateAccount(_ context.Context, u *user.User) error {
	stored, ok := f.users[u.ID]
	if !ok {
		return fmt.Errorf("update account: %w", core.ErrNotFound)
	}
	clone := *u
	clone.Hash = stored.Hash
	clone.Salt = stored.Salt
	clone.Token = stored.Token
	f.users[u.ID] = &clone
	return nil
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(context.Background(), email)
	if err == nil {
		return true, nil
	}
	return false, nil
}

type fakeMailer struct {
	sent []mail.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func newTestService(repo user.Repository, mailer mail.Mailer) *Service {
	return NewService(
		repo,
		mailer,
		time.Second,
		nil,
		slog.New(slog.DiscardHandler),
	)
}

func validSignup() SignupRequest {
	return SignupRequest{
		Username:        "amel",
		Email:           "Amel@Example.fr",
		Password:        "Sup3r$ecret",
		ConfirmPassword: "Sup3r$ecret",
		Newsletter:      true,
	}
}

func TestSignup(t *testing.T) {
	t.Run("creates the account and issues a working token", func(t *testing.T) {
		repo := newFakeUserRepo()
		mailer := &fakeMailer{}
		svc := newTestService(repo, mailer)

		session, err := svc.Signup(context.Background(), validSignup())
		require.NoError(t, err)

		assert.NotEmpty(t, session.UserID)
		assert.Len(t, session.Token, core.TokenLength)
		assert.Equal(t, "amel", session.Account.Username)
		assert.Empty(t, session.Warning)

		identity, err := svc.VerifyToken(context.Background(), session.Token)
		require.NoError(t, err)
		assert.Equal(t, session.UserID, identity.ID)

		// email is normalized to lowercase on storage
		assert.Equal(t, "amel@example.fr", identity.Email)

		require.Len(t, mailer.sent, 1)
		assert.Equal(t, "amel@example.fr", mailer.sent[0].To)
	})

	t.Run("stores a salted sha256 hash, never the password", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newTestService(repo, &fakeMailer{})

		session, err := svc.Signup(context.Background(), validSignup())
		require.NoError(t, err)

		stored, err := repo.GetByID(context.Background(), session.UserID)
		require.NoError(t, err)

		assert.Len(t, stored.Salt, core.SaltLength)
		assert.NotContains(t, stored.Hash, "Sup3r$ecret")
		assert.Equal(
			t,
			core.HashPassword("Sup3r$ecret", stored.Salt),
			stored.Hash,
		)
	})

	t.Run("rejects a weak password without creating a user", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newTestService(repo, &fakeMailer{})

		req := validSignup()
		req.Password = "alllowercase"
		req.ConfirmPassword = "alllowercase"

		_, err := svc.Signup(context.Background(), req)
		assert.ErrorIs(t, err, core.ErrInvalidInput)
		assert.Empty(t, repo.users)
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newTestService(repo, &fakeMailer{})

		_, err := svc.Signup(context.Background(), validSignup())
		require.NoError(t, err)

		_, err = svc.Signup(context.Background(), validSignup())
		assert.ErrorIs(t, err, core.ErrDuplicateKey)
	})

	t.Run("keeps the account when the welcome mail fails", func(t *testing.T) {
		repo := newFakeUserRepo()
		mailer := &fakeMailer{err: errors.New("resend down")}
		svc := newTestService(repo, mailer)

		session, err := svc.Signup(context.Background(), validSignup())
		require.NoError(t, err)

		assert.NotEmpty(t, session.Warning)
		assert.Len(t, repo.users, 1)

		_, err = svc.VerifyToken(context.Background(), session.Token)
		assert.NoError(t, err)
	})
}

func TestLogin(t *testing.T) {
	signedUp := func(t *testing.T) (*Service, *fakeUserRepo, *SessionResponse) {
		t.Helper()
		repo := newFakeUserRepo()
		svc := newTestService(repo, &fakeMailer{})
		session, err := svc.Signup(context.Background(), validSignup())
		require.NoError(t, err)
		return svc, repo, session
	}

	t.Run("returns a fresh token on success", func(t *testing.T) {
		svc, _, signup := signedUp(t)

		login, err := svc.Login(context.Background(), LoginRequest{
			Email:    "amel@example.fr",
			Password: "Sup3r$ecret",
		})
		require.NoError(t, err)

		assert.Equal(t, signup.UserID, login.UserID)
		assert.NotEqual(t, signup.Token, login.Token)
	})

	t.Run("invalidates the previous session token", func(t *testing.T) {
		svc, _, signup := signedUp(t)

		login, err := svc.Login(context.Background(), LoginRequest{
			Email:    "amel@example.fr",
			Password: "Sup3r$ecret",
		})
		require.NoError(t, err)

		_, err = svc.VerifyToken(context.Background(), signup.Token)
		assert.ErrorIs(t, err, core.ErrUnauthorized)

		identity, err := svc.VerifyToken(context.Background(), login.Token)
		require.NoError(t, err)
		assert.Equal(t, signup.UserID, identity.ID)
	})

	t.Run("fails for a wrong password", func(t *testing.T) {
		svc, _, _ := signedUp(t)

		_, err := svc.Login(context.Background(), LoginRequest{
			Email:    "amel@example.fr",
			Password: "not-the-password",
		})
		assert.ErrorIs(t, err, core.ErrUnauthorized)
	})

	t.Run("fails for an unknown email", func(t *testing.T) {
		svc, _, _ := signedUp(t)

		_, err := svc.Login(context.Background(), LoginRequest{
			Email:    "nobody@example.fr",
			Password: "Sup3r$ecret",
		})
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("fails for accounts without credentials", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newTestService(repo, &fakeMailer{})

		// a Google-created account has no hash or salt
		token := "google-issued-token"
		repo.users["g-1"] = &user.User{
			ID:       "g-1",
			Email:    "google@example.fr",
			Username: "google-user",
			Token:    &token,
		}

		_, err := svc.Login(context.Background(), LoginRequest{
			Email:    "google@example.fr",
			Password: "anything",
		})
		assert.ErrorIs(t, err, core.ErrUnauthorized)
	})
}

func TestGoogleLoginUnconfigured(t *testing.T) {
	svc := newTestService(newFakeUserRepo(), &fakeMailer{})

	_, err := svc.GoogleLogin(context.Background(), "some-code")
	assert.ErrorIs(t, err, core.ErrUpstream)
}
