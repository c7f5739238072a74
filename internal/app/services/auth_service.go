package services

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/prashikshan/backend/internal/app/models"
	"github.com/prashikshan/backend/internal/app/models/dto"
	"github.com/prashikshan/backend/internal/pkg/apperrors"
	"github.com/prashikshan/backend/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// maxUserIDAttempts bounds how often registration retries a colliding
// random user id before giving up.
const maxUserIDAttempts = 10

// AuthService handles registration, login, identity lookup and logout
type AuthService struct {
	identityRepo IdentityStore
	tokenRepo    TokenStore
	profileRepo  ProfileStore
	collegeRepo  CollegeStore
	jwtService   *auth.JWTService
	logger       zerolog.Logger

	// newUserID produces candidate 9-digit ids; swapped out in tests
	newUserID func() int64
}

// NewAuthService creates a new AuthService
func NewAuthService(
	identityRepo IdentityStore,
	tokenRepo TokenStore,
	profileRepo ProfileStore,
	collegeRepo CollegeStore,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		identityRepo: identityRepo,
		tokenRepo:    tokenRepo,
		profileRepo:  profileRepo,
		collegeRepo:  collegeRepo,
		jwtService:   jwtService,
		logger:       logger,
		newUserID:    randomUserID,
	}
}

// randomUserID picks a uniform 9-digit id
func randomUserID() int64 {
	return rand.Int63n(900000000) + 100000000
}

// AccessTokenTTL exposes the access token lifetime for cookie expiry
func (s *AuthService) AccessTokenTTL() time.Duration {
	return s.jwtService.AccessTokenExpiry()
}

// Register creates the identity and its role profile, then signs the user in
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	role := models.Role(req.RoleID)
	if !role.IsValid() {
		return nil, apperrors.ErrInvalidRole
	}
	if err := s.validateRoleFields(role, req); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.identityRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, err
	}

	identity := &models.Identity{
		Email:      email,
		Password:   hashed,
		Role:       role,
		CreateTime: time.Now(),
	}

	if err := s.createWithUniqueID(ctx, identity, req); err != nil {
		return nil, err
	}

	accessToken, refreshToken, err := s.jwtService.GenerateTokenPair(identity.ID, role.Name())
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", identity.ID).Msg("Failed to generate token pair")
		return nil, err
	}
	if err := s.tokenRepo.Upsert(ctx, identity.ID, accessToken, refreshToken); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", identity.ID).Str("role", role.Name()).Msg("User registered")
	return &dto.AuthResponse{
		Message:      "Registration successful",
		UserID:       identity.ID,
		RoleName:     role.Name(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// createWithUniqueID allocates a 9-digit id by rejection sampling, retrying
// a bounded number of times on collision before reporting exhaustion.
func (s *AuthService) createWithUniqueID(ctx context.Context, identity *models.Identity, req *dto.RegisterRequest) error {
	for attempt := 0; attempt < maxUserIDAttempts; attempt++ {
		candidate := s.newUserID()
		taken, err := s.identityRepo.IDExists(ctx, candidate)
		if err != nil {
			return err
		}
		if taken {
			continue
		}

		identity.ID = candidate
		err = s.createIdentity(ctx, identity, req)
		if err == nil {
			return nil
		}
		if errors.Is(err, apperrors.ErrConflict) {
			// Lost the id to a concurrent registration; try another.
			continue
		}
		return err
	}
	s.logger.Error().Str("email", identity.Email).Msg("Exhausted user id allocation attempts")
	return apperrors.ErrIDSpaceExhausted
}

func (s *AuthService) createIdentity(ctx context.Context, identity *models.Identity, req *dto.RegisterRequest) error {
	firstName := optional(req.FirstName)
	midName := optional(req.MiddleName)
	lastName := optional(req.LastName)

	switch identity.Role {
	case models.RoleStudent:
		profile := &models.StudentProfile{
			FirstName: firstName,
			MidName:   midName,
			LastName:  lastName,
		}
		// A college picked at signup goes straight onto the students row,
		// so the student shows up in that college's pending list.
		if req.CollegeID != 0 {
			college, err := s.collegeRepo.GetByID(ctx, req.CollegeID)
			if err != nil {
				return err
			}
			profile.CollegeID = &college.ID
			profile.CollegeName = &college.CollegeName
		} else if name := optional(req.CollegeName); name != nil {
			profile.CollegeName = name
		}
		return s.identityRepo.CreateStudent(ctx, identity, profile)
	case models.RoleFaculty:
		return s.identityRepo.CreateFaculty(ctx, identity, &models.FacultyProfile{
			FirstName:   firstName,
			MidName:     midName,
			LastName:    lastName,
			CollegeName: optional(req.CollegeName),
		})
	case models.RoleAdmin:
		return s.identityRepo.CreateAdmin(ctx, identity, &models.AdminProfile{
			FirstName:      firstName,
			MidName:        midName,
			LastName:       lastName,
			CollegeName:    optional(req.CollegeName),
			AisheCode:      optional(req.AISHECode),
			CollegeWebsite: optional(req.CollegeWebsite),
		})
	case models.RoleEmployer:
		return s.identityRepo.CreateEmployer(ctx, identity, &models.EmployerProfile{
			CompanyName: optional(req.CompanyName),
			GSTNumber:   optional(req.GSTNumber),
			ProfileData: models.ProfileData{
				"firstName":      req.FirstName,
				"lastName":       req.LastName,
				"companyWebsite": req.CompanyWebsite,
			},
		})
	case models.RoleStateAdmin:
		return s.identityRepo.CreateStateAdmin(ctx, identity, &models.StateAdminProfile{
			FirstName: firstName,
			MidName:   midName,
			LastName:  lastName,
			State:     optional(req.State),
		})
	default:
		return apperrors.ErrInvalidRole
	}
}

func (s *AuthService) validateRoleFields(role models.Role, req *dto.RegisterRequest) error {
	switch role {
	case models.RoleAdmin:
		if strings.TrimSpace(req.CollegeName) == "" {
			return apperrors.NewValidationError("collegeName is required for college admin registration")
		}
	case models.RoleEmployer:
		if strings.TrimSpace(req.CompanyName) == "" {
			return apperrors.NewValidationError("companyName is required for employer registration")
		}
	case models.RoleStateAdmin:
		if strings.TrimSpace(req.State) == "" {
			return apperrors.NewValidationError("state is required for state admin registration")
		}
	}
	return nil
}

// Login verifies credentials and issues a fresh token pair. Unknown emails
// and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	identity, err := s.identityRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(identity.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.jwtService.GenerateTokenPair(identity.ID, identity.Role.Name())
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", identity.ID).Msg("Failed to generate token pair")
		return nil, err
	}
	if err := s.tokenRepo.Upsert(ctx, identity.ID, accessToken, refreshToken); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetRoleProfile(ctx, identity.Role, identity.ID)
	if err != nil && !errors.Is(err, apperrors.ErrResourceNotFound) {
		s.logger.Warn().Err(err).Int64("userID", identity.ID).Msg("Profile lookup failed during login")
		profile = nil
	}

	return &dto.AuthResponse{
		Message:      "Login successful",
		UserID:       identity.ID,
		RoleName:     identity.Role.Name(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Profile:      profile,
	}, nil
}

// GetSelf resolves the authenticated user from its token claims
func (s *AuthService) GetSelf(ctx context.Context, userID int64) (*dto.MeResponse, error) {
	identity, err := s.identityRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, err
	}

	resp := &dto.MeResponse{
		ID:    identity.ID,
		Email: identity.Email,
		Role:  dto.RoleInfo{ID: int(identity.Role), Name: identity.Role.Name()},
	}

	profile, err := s.profileRepo.GetRoleProfile(ctx, identity.Role, identity.ID)
	if err == nil {
		resp.Profile = profile
		if student, ok := profile.(*models.StudentProfile); ok {
			resp.Status = student.Status
		}
	} else if !errors.Is(err, apperrors.ErrResourceNotFound) && !errors.Is(err, apperrors.ErrInvalidRole) {
		return nil, err
	}

	return resp, nil
}

// Logout drops the user's token bookkeeping row. Tokens already issued stay
// verifiable until they expire; there is no revocation list.
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	return s.tokenRepo.Delete(ctx, userID)
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
