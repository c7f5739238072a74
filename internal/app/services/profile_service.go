package services

import (
	"context"
	"errors"

	"github.com/prashikshan/backend/internal/app/models/dto"
	"github.com/prashikshan/backend/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// ProfileService serves the role-agnostic public profile lookup
type ProfileService struct {
	identityRepo IdentityStore
	profileRepo  ProfileStore
	logger       zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(identityRepo IdentityStore, profileRepo ProfileStore, logger zerolog.Logger) *ProfileService {
	return &ProfileService{
		identityRepo: identityRepo,
		profileRepo:  profileRepo,
		logger:       logger,
	}
}

// GetPublicProfile returns the basic account info plus the role profile
// for any user id. A register row with a corrupt role is a client-visible
// validation failure, not a server error.
func (s *ProfileService) GetPublicProfile(ctx context.Context, userID int64) (*dto.PublicProfileResponse, error) {
	identity, err := s.identityRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, err
	}

	resp := &dto.PublicProfileResponse{
		Basic: dto.PublicBasicInfo{
			ID:         identity.ID,
			Email:      identity.Email,
			RoleID:     int(identity.Role),
			RoleName:   identity.Role.Name(),
			CreateTime: identity.CreateTime,
		},
	}

	profile, err := s.profileRepo.GetRoleProfile(ctx, identity.Role, identity.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return resp, nil
		}
		return nil, err
	}
	resp.Profile = profile
	return resp, nil
}
