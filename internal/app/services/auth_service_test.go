package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prashikshan/backend/internal/app/models"
	"github.com/prashikshan/backend/internal/app/models/dto"
	"github.com/prashikshan/backend/internal/pkg/apperrors"
	"github.com/prashikshan/backend/internal/pkg/auth"
	"github.com/rs/zerolog"
)

type stubIdentityStore struct {
	identities map[int64]*models.Identity
	byEmail    map[string]*models.Identity

	takenIDs     map[int64]bool
	conflictIDs  map[int64]bool
	idExistCalls int

	createdRole models.Role
	lastStudent *models.StudentProfile

	// when set, created student profiles land here as well
	students *stubStudentStore
}

func newStubIdentityStore() *stubIdentityStore {
	return &stubIdentityStore{
		identities:  map[int64]*models.Identity{},
		byEmail:     map[string]*models.Identity{},
		takenIDs:    map[int64]bool{},
		conflictIDs: map[int64]bool{},
	}
}

func (s *stubIdentityStore) EmailExists(_ context.Context, email string) (bool, error) {
	_, ok := s.byEmail[email]
	return ok, nil
}

func (s *stubIdentityStore) IDExists(_ context.Context, id int64) (bool, error) {
	s.idExistCalls++
	return s.takenIDs[id], nil
}

func (s *stubIdentityStore) GetByEmail(_ context.Context, email string) (*models.Identity, error) {
	identity, ok := s.byEmail[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return identity, nil
}

func (s *stubIdentityStore) GetByID(_ context.Context, id int64) (*models.Identity, error) {
	identity, ok := s.identities[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return identity, nil
}

func (s *stubIdentityStore) store(identity *models.Identity, role models.Role) error {
	if s.conflictIDs[identity.ID] {
		delete(s.conflictIDs, identity.ID)
		return apperrors.ErrConflict
	}
	s.identities[identity.ID] = identity
	s.byEmail[identity.Email] = identity
	s.createdRole = role
	return nil
}

func (s *stubIdentityStore) CreateStudent(_ context.Context, identity *models.Identity, profile *models.StudentProfile) error {
	if err := s.store(identity, models.RoleStudent); err != nil {
		return err
	}
	profile.ID = identity.ID
	profile.Status = models.StatusPending
	s.lastStudent = profile
	if s.students != nil {
		s.students.students[profile.ID] = profile
	}
	return nil
}

func (s *stubIdentityStore) CreateFaculty(_ context.Context, identity *models.Identity, _ *models.FacultyProfile) error {
	return s.store(identity, models.RoleFaculty)
}

func (s *stubIdentityStore) CreateAdmin(_ context.Context, identity *models.Identity, _ *models.AdminProfile) error {
	return s.store(identity, models.RoleAdmin)
}

func (s *stubIdentityStore) CreateEmployer(_ context.Context, identity *models.Identity, _ *models.EmployerProfile) error {
	return s.store(identity, models.RoleEmployer)
}

func (s *stubIdentityStore) CreateStateAdmin(_ context.Context, identity *models.Identity, _ *models.StateAdminProfile) error {
	return s.store(identity, models.RoleStateAdmin)
}

type stubTokenStore struct {
	rows map[int64][2]string
}

func newStubTokenStore() *stubTokenStore {
	return &stubTokenStore{rows: map[int64][2]string{}}
}

func (s *stubTokenStore) Upsert(_ context.Context, userID int64, accessToken, refreshToken string) error {
	s.rows[userID] = [2]string{accessToken, refreshToken}
	return nil
}

func (s *stubTokenStore) Delete(_ context.Context, userID int64) error {
	delete(s.rows, userID)
	return nil
}

type stubProfileStore struct {
	profiles map[int64]interface{}
}

func (s *stubProfileStore) GetRoleProfile(_ context.Context, _ models.Role, id int64) (interface{}, error) {
	if s.profiles == nil {
		return nil, apperrors.ErrResourceNotFound
	}
	profile, ok := s.profiles[id]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	return profile, nil
}

func newAuthServiceForTest(identity *stubIdentityStore, tokens *stubTokenStore) (*AuthService, *auth.JWTService) {
	colleges := &stubCollegeStore{colleges: map[int64]*models.College{
		654321: {ID: 654321, CollegeName: "Test Engineering College"},
	}}
	return newAuthServiceWithColleges(identity, tokens, colleges)
}

func newAuthServiceWithColleges(identity *stubIdentityStore, tokens *stubTokenStore, colleges *stubCollegeStore) (*AuthService, *auth.JWTService) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
	svc := NewAuthService(identity, tokens, &stubProfileStore{}, colleges, jwtService, zerolog.Nop())
	return svc, jwtService
}

func TestRegister_Student(t *testing.T) {
	identity := newStubIdentityStore()
	tokens := newStubTokenStore()
	svc, _ := newAuthServiceForTest(identity, tokens)

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "Student@Example.com",
		Password:  "password1",
		FirstName: "Asha",
		LastName:  "Rao",
		RoleID:    1,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if resp.UserID < 100000000 || resp.UserID > 999999999 {
		t.Errorf("expected a 9-digit user id, got %d", resp.UserID)
	}
	if resp.RoleName != "Student" {
		t.Errorf("expected role Student, got %q", resp.RoleName)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("expected token pair on registration")
	}
	if identity.createdRole != models.RoleStudent {
		t.Errorf("expected student profile row, got role %d", identity.createdRole)
	}
	if _, ok := identity.byEmail["student@example.com"]; !ok {
		t.Error("expected email stored lowercased")
	}
	if _, ok := tokens.rows[resp.UserID]; !ok {
		t.Error("expected token row upserted")
	}
}

func TestRegister_StudentWithCollege(t *testing.T) {
	identity := newStubIdentityStore()
	svc, _ := newAuthServiceForTest(identity, newStubTokenStore())

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "linked@example.com",
		Password:  "password1",
		FirstName: "Asha",
		LastName:  "Rao",
		RoleID:    1,
		CollegeID: 654321,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if identity.lastStudent == nil {
		t.Fatal("expected a student profile row")
	}
	if identity.lastStudent.CollegeID == nil || *identity.lastStudent.CollegeID != 654321 {
		t.Errorf("expected college id 654321 on the student row, got %v", identity.lastStudent.CollegeID)
	}
	if identity.lastStudent.CollegeName == nil || *identity.lastStudent.CollegeName != "Test Engineering College" {
		t.Errorf("expected the college name stored alongside the id, got %v", identity.lastStudent.CollegeName)
	}
}

func TestRegister_StudentCollegeNameOnly(t *testing.T) {
	identity := newStubIdentityStore()
	svc, _ := newAuthServiceForTest(identity, newStubTokenStore())

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:       "named@example.com",
		Password:    "password1",
		RoleID:      1,
		CollegeName: "Some Other College",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if identity.lastStudent.CollegeName == nil || *identity.lastStudent.CollegeName != "Some Other College" {
		t.Errorf("expected the free-text college name stored, got %v", identity.lastStudent.CollegeName)
	}
	if identity.lastStudent.CollegeID != nil {
		t.Errorf("expected no college id without a selection, got %v", *identity.lastStudent.CollegeID)
	}
}

func TestRegister_StudentUnknownCollege(t *testing.T) {
	identity := newStubIdentityStore()
	svc, _ := newAuthServiceForTest(identity, newStubTokenStore())

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "lost@example.com",
		Password:  "password1",
		RoleID:    1,
		CollegeID: 111111,
	})
	if !errors.Is(err, apperrors.ErrCollegeNotFound) {
		t.Errorf("expected ErrCollegeNotFound, got %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	identity := newStubIdentityStore()
	identity.byEmail["taken@example.com"] = &models.Identity{ID: 1, Email: "taken@example.com"}
	svc, _ := newAuthServiceForTest(identity, newStubTokenStore())

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "Taken@Example.com",
		Password: "password1",
		RoleID:   1,
	})
	if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestRegister_InvalidRole(t *testing.T) {
	svc, _ := newAuthServiceForTest(newStubIdentityStore(), newStubTokenStore())

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "a@example.com",
		Password: "password1",
		RoleID:   9,
	})
	if !errors.Is(err, apperrors.ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
}

func TestRegister_RoleFieldValidation(t *testing.T) {
	cases := []struct {
		name string
		req  dto.RegisterRequest
	}{
		{"admin without college", dto.RegisterRequest{Email: "a@example.com", Password: "password1", RoleID: 3}},
		{"employer without company", dto.RegisterRequest{Email: "b@example.com", Password: "password1", RoleID: 4}},
		{"state admin without state", dto.RegisterRequest{Email: "c@example.com", Password: "password1", RoleID: 5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newAuthServiceForTest(newStubIdentityStore(), newStubTokenStore())
			_, err := svc.Register(context.Background(), &tc.req)
			if !errors.Is(err, apperrors.ErrValidationFailed) {
				t.Errorf("expected ErrValidationFailed, got %v", err)
			}
		})
	}
}

func TestRegister_RetriesOnTakenID(t *testing.T) {
	identity := newStubIdentityStore()
	identity.takenIDs[100000001] = true
	svc, _ := newAuthServiceForTest(identity, newStubTokenStore())

	ids := []int64{100000001, 100000002}
	svc.newUserID = func() int64 {
		id := ids[0]
		if len(ids) > 1 {
			ids = ids[1:]
		}
		return id
	}

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "retry@example.com",
		Password: "password1",
		RoleID:   1,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.UserID != 100000002 {
		t.Errorf("expected the second candidate id, got %d", resp.UserID)
	}
}

func TestRegister_RetriesOnInsertConflict(t *testing.T) {
	identity := newStubIdentityStore()
	// The first candidate passes the existence check but loses the insert
	// race; the service must retry with a fresh id.
	identity.conflictIDs[100000001] = true
	svc, _ := newAuthServiceForTest(identity, newStubTokenStore())

	ids := []int64{100000001, 100000002}
	svc.newUserID = func() int64 {
		id := ids[0]
		if len(ids) > 1 {
			ids = ids[1:]
		}
		return id
	}

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "race@example.com",
		Password: "password1",
		RoleID:   1,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.UserID != 100000002 {
		t.Errorf("expected the second candidate id, got %d", resp.UserID)
	}
}

func TestRegister_IDSpaceExhausted(t *testing.T) {
	identity := newStubIdentityStore()
	identity.takenIDs[100000001] = true
	svc, _ := newAuthServiceForTest(identity, newStubTokenStore())
	svc.newUserID = func() int64 { return 100000001 }

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "full@example.com",
		Password: "password1",
		RoleID:   1,
	})
	if !errors.Is(err, apperrors.ErrIDSpaceExhausted) {
		t.Fatalf("expected ErrIDSpaceExhausted, got %v", err)
	}
	if identity.idExistCalls != maxUserIDAttempts {
		t.Errorf("expected exactly %d allocation attempts, got %d", maxUserIDAttempts, identity.idExistCalls)
	}
}

func TestLogin_Success(t *testing.T) {
	identity := newStubIdentityStore()
	tokens := newStubTokenStore()
	svc, jwtService := newAuthServiceForTest(identity, tokens)

	hash, err := auth.HashPassword("password1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	identity.byEmail["user@example.com"] = &models.Identity{
		ID:       123456789,
		Email:    "user@example.com",
		Password: hash,
		Role:     models.RoleStudent,
	}

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "User@Example.com",
		Password: "password1",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.UserID != 123456789 {
		t.Errorf("expected userID 123456789, got %d", resp.UserID)
	}

	claims, err := jwtService.ValidateAndExtractClaims(resp.AccessToken)
	if err != nil {
		t.Fatalf("issued token failed validation: %v", err)
	}
	if claims.UserID != 123456789 || claims.Role != "Student" {
		t.Errorf("unexpected claims: userID=%d role=%q", claims.UserID, claims.Role)
	}
	if _, ok := tokens.rows[123456789]; !ok {
		t.Error("expected token row upserted on login")
	}
}

func TestRegisterThenLogin_SameUserID(t *testing.T) {
	identity := newStubIdentityStore()
	svc, _ := newAuthServiceForTest(identity, newStubTokenStore())

	registered, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "roundtrip@example.com",
		Password: "password1",
		RoleID:   1,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	loggedIn, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "roundtrip@example.com",
		Password: "password1",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if loggedIn.UserID != registered.UserID {
		t.Errorf("expected login to return the registered id %d, got %d", registered.UserID, loggedIn.UserID)
	}
}

func TestLogin_BadCredentialsIndistinguishable(t *testing.T) {
	identity := newStubIdentityStore()
	svc, _ := newAuthServiceForTest(identity, newStubTokenStore())

	hash, err := auth.HashPassword("password1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	identity.byEmail["user@example.com"] = &models.Identity{
		ID:       1,
		Email:    "user@example.com",
		Password: hash,
		Role:     models.RoleStudent,
	}

	_, wrongPass := svc.Login(context.Background(), &dto.LoginRequest{Email: "user@example.com", Password: "nope"})
	_, unknownEmail := svc.Login(context.Background(), &dto.LoginRequest{Email: "ghost@example.com", Password: "password1"})

	if !errors.Is(wrongPass, apperrors.ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if !errors.Is(unknownEmail, apperrors.ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", unknownEmail)
	}
}

func TestLogout_TokensStayVerifiable(t *testing.T) {
	identity := newStubIdentityStore()
	tokens := newStubTokenStore()
	svc, jwtService := newAuthServiceForTest(identity, tokens)

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "bye@example.com",
		Password: "password1",
		RoleID:   1,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.Logout(context.Background(), resp.UserID); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, ok := tokens.rows[resp.UserID]; ok {
		t.Error("expected token row removed on logout")
	}

	// Verification is stateless; a token issued before logout still passes.
	if _, err := jwtService.ValidateAndExtractClaims(resp.AccessToken); err != nil {
		t.Errorf("expected issued token to remain verifiable after logout, got %v", err)
	}
}

func TestGetSelf_UnknownUser(t *testing.T) {
	svc, _ := newAuthServiceForTest(newStubIdentityStore(), newStubTokenStore())

	_, err := svc.GetSelf(context.Background(), 42)
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("expected ErrResourceNotFound, got %v", err)
	}
}
