// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/sook/internal/core"
)

type fakeRepo struct {
	users map[string]*User
}

func newFakeRepo(users ...*User) *fakeRepo {
	repo := &fakeRepo{users: make(map[string]*User)}
	for _, u := range users {
		clone := *u
		repo.users[u.ID] = &clone
	}
	return repo
}

func (f *fakeRepo) Create(_ context.Context, u *User) error {
	clone := *u
	f.users[u.ID] = &clone
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*User, error) {
	if u, ok := f.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
}

func (f *fakeRepo) GetByToken(_ context.Context, token string) (*User, error) {
	for _, u := range f.users {
		if u.Token != nil && *u.Token == token {
			clone := *u
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("get user by token: %w", core.ErrNotFound)
}

func (f *fakeRepo) UpdateToken(_ context.Context, id, token string) error {
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("update token: %w", core.ErrNotFound)
	}
	u.Token = &token
	return nil
}

func (f *fakeRepo) UpdateAccount(_ context.Context, u *User) error {
	if _, ok := f.users[u.ID]; !ok {
		return fmt.Errorf("update account: %w", core.ErrNotFound)
	}
	clone := *u
	f.users[u.ID] = &clone
	return nil
}

func (f *fakeRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(context.Background(), email)
	return err == nil, nil
}

type fakeImageStore struct {
	uploads int
}

func (f *fakeImageStore) UploadDataURL(
	_ context.Context,
	_ string,
) (string, error) {
	f.uploads++
	return fmt.Sprintf("https://img.sook.app/fake-%d.png", f.uploads), nil
}

func testUser() *User {
	address := "12 rue de la Paix"
	return &User{
		ID:       "user-1",
		Email:    "amel@example.fr",
		Username: "amel",
		Address:  &address,
	}
}

func TestGetProfile(t *testing.T) {
	svc := NewService(newFakeRepo(testUser()), nil)

	t.Run("returns the caller's own profile", func(t *testing.T) {
		profile, err := svc.GetProfile(context.Background(), "user-1", "user-1")
		require.NoError(t, err)
		assert.Equal(t, "user-1", profile.UserID)
		assert.Equal(t, "amel", profile.Account.Username)
	})

	t.Run("refuses another user's profile", func(t *testing.T) {
		_, err := svc.GetProfile(context.Background(), "user-2", "user-1")
		assert.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("reports a missing user", func(t *testing.T) {
		_, err := svc.GetProfile(context.Background(), "ghost", "ghost")
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Run("applies only the provided fields", func(t *testing.T) {
		repo := newFakeRepo(testUser())
		svc := NewService(repo, nil)

		country := "France"
		profile, err := svc.UpdateProfile(
			context.Background(),
			"user-1",
			"user-1",
			UpdateProfileRequest{Country: &country},
		)
		require.NoError(t, err)

		assert.Equal(t, "France", *profile.Account.Country)

		// untouched fields keep their stored values
		assert.Equal(t, "amel", profile.Account.Username)
		require.NotNil(t, profile.Account.Address)
		assert.Equal(t, "12 rue de la Paix", *profile.Account.Address)
	})

	t.Run("refuses to patch another user", func(t *testing.T) {
		svc := NewService(newFakeRepo(testUser()), nil)

		username := "mallory"
		_, err := svc.UpdateProfile(
			context.Background(),
			"user-2",
			"user-1",
			UpdateProfileRequest{Username: &username},
		)
		assert.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("parses the date of birth", func(t *testing.T) {
		svc := NewService(newFakeRepo(testUser()), nil)

		born := "1996-04-17"
		profile, err := svc.UpdateProfile(
			context.Background(),
			"user-1",
			"user-1",
			UpdateProfileRequest{DateOfBorn: &born},
		)
		require.NoError(t, err)
		require.NotNil(t, profile.Account.DateOfBorn)
		assert.Equal(t, "1996-04-17", *profile.Account.DateOfBorn)
	})

	t.Run("uploads a data URL avatar", func(t *testing.T) {
		store := &fakeImageStore{}
		svc := NewService(newFakeRepo(testUser()), store)

		avatar := "data:image/png;base64,aGVsbG8="
		profile, err := svc.UpdateProfile(
			context.Background(),
			"user-1",
			"user-1",
			UpdateProfileRequest{Avatar: &avatar},
		)
		require.NoError(t, err)

		assert.Equal(t, 1, store.uploads)
		require.NotNil(t, profile.Account.Avatar)
		assert.True(
			t,
			strings.HasPrefix(*profile.Account.Avatar, "https://img.sook.app/"),
		)
	})

	t.Run("keeps a plain https avatar URL as-is", func(t *testing.T) {
		store := &fakeImageStore{}
		svc := NewService(newFakeRepo(testUser()), store)

		avatar := "https://cdn.example.fr/me.jpg"
		profile, err := svc.UpdateProfile(
			context.Background(),
			"user-1",
			"user-1",
			UpdateProfileRequest{Avatar: &avatar},
		)
		require.NoError(t, err)

		assert.Equal(t, 0, store.uploads)
		assert.Equal(t, avatar, *profile.Account.Avatar)
	})

	t.Run("rejects other avatar schemes", func(t *testing.T) {
		svc := NewService(newFakeRepo(testUser()), &fakeImageStore{})

		avatar := "ftp://example.fr/me.jpg"
		_, err := svc.UpdateProfile(
			context.Background(),
			"user-1",
			"user-1",
			UpdateProfileRequest{Avatar: &avatar},
		)
		assert.ErrorIs(t, err, core.ErrInvalidInput)
	})

	t.Run("fails data URL avatars without an image store", func(t *testing.T) {
		svc := NewService(newFakeRepo(testUser()), nil)

		avatar := "data:image/png;base64,aGVsbG8="
		_, err := svc.UpdateProfile(
			context.Background(),
			"user-1",
			"user-1",
			UpdateProfileRequest{Avatar: &avatar},
		)
		assert.ErrorIs(t, err, core.ErrUpstream)
	})
}
