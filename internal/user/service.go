// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelamos/sook/internal/core"
)

// ImageStore persists uploaded images and returns their public URL.
type ImageStore interface {
	UploadDataURL(ctx context.Context, dataURL string) (string, error)
}

type Service struct {
	repo   Repository
	images ImageStore
}

func NewService(repo Repository, images ImageStore) *Service {
	return &Service{repo: repo, images: images}
}

// GetProfile returns the caller's own profile. Reading another user's
// profile is refused.
func (s *Service) GetProfile(
	ctx context.Context,
	callerID, targetID string,
) (*ProfileResponse, error) {
	if callerID != targetID {
		return nil, fmt.Errorf("get profile: %w", core.ErrForbidden)
	}

	u, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	return ProfileOf(u), nil
}

// UpdateProfile applies a sparse patch to the caller's own account.
// Fields left nil in the request keep their stored value.
func (s *Service) UpdateProfile(
	ctx context.Context,
	callerID, targetID string,
	req UpdateProfileRequest,
) (*ProfileResponse, error) {
	if callerID != targetID {
		return nil, fmt.Errorf("update profile: %w", core.ErrForbidden)
	}

	u, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		u.Username = *req.Username
	}
	if req.Address != nil {
		u.Address = req.Address
	}
	if req.PhoneNumber != nil {
		u.PhoneNumber = req.PhoneNumber
	}
	if req.Country != nil {
		u.Country = req.Country
	}
	if req.PostalCode != nil {
		u.PostalCode = req.PostalCode
	}
	if req.Sexe != nil {
		u.Sexe = req.Sexe
	}
	if req.Newsletter != nil {
		u.Newsletter = *req.Newsletter
	}
	if req.DateOfBorn != nil {
		born, err := time.Parse(time.DateOnly, *req.DateOfBorn)
		if err != nil {
			return nil, fmt.Errorf(
				"update profile: invalid date of birth: %w",
				core.ErrInvalidInput,
			)
		}
		u.DateOfBorn = &born
	}

	if req.Avatar != nil {
		url, err := s.resolveAvatar(ctx, *req.Avatar)
		if err != nil {
			return nil, err
		}
		u.Avatar = &url
	}

	if err := s.repo.UpdateAccount(ctx, u); err != nil {
		return nil, err
	}

	return ProfileOf(u), nil
}

// resolveAvatar accepts a plain URL as-is and pushes data URLs through
// the image store.
func (s *Service) resolveAvatar(
	ctx context.Context,
	avatar string,
) (string, error) {
	if strings.HasPrefix(avatar, "data:") {
		if s.images == nil {
			return "", fmt.Errorf(
				"resolve avatar: image store not configured: %w",
				core.ErrUpstream,
			)
		}
		url, err := s.images.UploadDataURL(ctx, avatar)
		if err != nil {
			return "", fmt.Errorf("resolve avatar: %w", err)
		}
		return url, nil
	}

	if !strings.HasPrefix(avatar, "http://") &&
		!strings.HasPrefix(avatar, "https://") {
		return "", fmt.Errorf(
			"resolve avatar: avatar must be an http(s) or data URL: %w",
			core.ErrInvalidInput,
		)
	}

	return avatar, nil
}
