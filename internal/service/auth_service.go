package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/caremesh/hospital-api/internal/domain"
	"github.com/caremesh/hospital-api/internal/domain/doctor"
	"github.com/caremesh/hospital-api/internal/domain/patient"
	"github.com/caremesh/hospital-api/pkg/auth"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
}

var ErrUserNotFound = errors.New("user not found")

type AuthService struct {
	userRepo    UserRepository
	patientSvc  *PatientService
	patientRepo patient.Repository
	doctorRepo  doctor.Repository
	jwtManager  *auth.JWTManager
	log         *zap.Logger
}

func NewAuthService(
	userRepo UserRepository,
	patientSvc *PatientService,
	patientRepo patient.Repository,
	doctorRepo doctor.Repository,
	jwtManager *auth.JWTManager,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		patientSvc:  patientSvc,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
		jwtManager:  jwtManager,
		log:         log,
	}
}

// Register creates a self-service account. The role is always PATIENT, and a
// placeholder patient record is provisioned alongside so the account can book
// immediately.
func (s *AuthService) Register(ctx context.Context, username, password, email string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, &ValidationError{Fields: []string{"username and password are required"}}
	}

	taken, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("checking username: %w", err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
		Role:         domain.RolePatient,
		Enabled:      true,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	if _, err := s.patientSvc.RegisterPlaceholder(ctx, username); err != nil {
		s.log.Error("failed to provision patient record for new account",
			zap.String("username", username),
			zap.Error(err),
		)
	}

	s.log.Info("user registered", zap.String("username", username))

	return u, nil
}

// LoginResult carries the token pair plus the directory record id the
// account maps to, when one exists, so clients can scope their views.
type LoginResult struct {
	Tokens    *domain.TokenPair
	Username  string
	Role      domain.Role
	DoctorID  *uuid.UUID
	PatientID *uuid.UUID
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	u, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		// Burn a comparable amount of time so response latency does not
		// reveal whether the username exists.
		_, _ = bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		return nil, ErrInvalidCredentials
	}

	if !u.Enabled {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.log.Warn("failed login attempt", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	pair, err := s.jwtManager.GenerateTokenPair(&domain.Claims{
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
	})
	if err != nil {
		s.log.Error("failed to generate token pair", zap.Error(err))
		return nil, fmt.Errorf("generating tokens: %w", err)
	}

	result := &LoginResult{
		Tokens:   pair,
		Username: u.Username,
		Role:     u.Role,
	}

	switch u.Role {
	case domain.RoleDoctor:
		if d, err := s.doctorRepo.GetByName(ctx, u.Username); err == nil {
			result.DoctorID = &d.ID
		}
	case domain.RolePatient:
		if p, err := s.patientRepo.GetByName(ctx, u.Username); err == nil {
			result.PatientID = &p.ID
		}
	}

	s.log.Info("user logged in", zap.String("username", username))

	return result, nil
}

// ChangePassword verifies the current password before swapping in the new one.
func (s *AuthService) ChangePassword(ctx context.Context, username, currentPassword, newPassword string) error {
	u, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	return s.userRepo.UpdatePassword(ctx, u.ID, string(hash))
}

// EnsureAdmin seeds the initial ADMIN account at startup. Self-registration
// only mints PATIENT accounts and CreateAdmin requires an admin requester, so
// a fresh database needs this seed before any admin operation can run. An
// existing account with the same username is left untouched.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password, email string) error {
	if username == "" || password == "" {
		return &ValidationError{Fields: []string{"admin username and password are required"}}
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("checking admin account: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	u := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
		Role:         domain.RoleAdmin,
		Enabled:      true,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return fmt.Errorf("creating admin account: %w", err)
	}

	s.log.Info("default admin account created", zap.String("username", username))

	return nil
}

// CreateAdmin provisions an ADMIN account. Only an existing admin may do so.
func (s *AuthService) CreateAdmin(ctx context.Context, requesterUsername, username, password, email string) (*domain.User, error) {
	requester, err := s.userRepo.GetByUsername(ctx, requesterUsername)
	if err != nil || requester.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}

	taken, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("checking username: %w", err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
		Role:         domain.RoleAdmin,
		Enabled:      true,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("creating admin: %w", err)
	}

	return u, nil
}
