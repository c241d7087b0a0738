package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kayexpress/internal/domain"
	"kayexpress/internal/refnum"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type jwtService interface {
	GenerateToken(userID int64, email, role string) (string, error)
	TTL() time.Duration
}

// Service contains all business logic for authentication
type Service struct {
	users UserRepository
	jwt   jwtService
}

type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresIn int64 // seconds
}

func NewService(users UserRepository, jwt jwtService) *Service {
	return &Service{
		users: users,
		jwt:   jwt,
	}
}

// Register creates a client account. Email and phone are both unique,
// the duplicate check runs twice: a friendly lookup first, then the
// database constraint catches races.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	if req.IDType != "" && !validIDType(req.IDType) {
		return nil, fmt.Errorf("%w: unknown id type %q", ErrValidation, req.IDType)
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.users.GetByPhone(ctx, req.Phone); err == nil {
		return nil, ErrPhoneAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:                 strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:                 strings.TrimSpace(req.Phone),
		PasswordHash:          hashedPassword,
		Role:                  domain.RoleClient,
		FullName:              strings.TrimSpace(req.FullName),
		Region:                req.Region,
		DateOfBirth:           req.DateOfBirth,
		IDType:                req.IDType,
		IDNumber:              req.IDNumber,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
		IsActive:              true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if refnum.IsDuplicateKey(err) {
			return nil, duplicateUserError(err)
		}
		return nil, err
	}

	return s.issueToken(user)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(user)
}

func (s *Service) GetProfile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.FullName != "" {
		user.FullName = strings.TrimSpace(req.FullName)
	}
	if req.Phone != "" {
		user.Phone = strings.TrimSpace(req.Phone)
	}
	if req.Region != "" {
		user.Region = req.Region
	}
	if req.EmergencyContactName != "" {
		user.EmergencyContactName = req.EmergencyContactName
	}
	if req.EmergencyContactPhone != "" {
		user.EmergencyContactPhone = req.EmergencyContactPhone
	}

	if err := s.users.Update(ctx, user); err != nil {
		if refnum.IsDuplicateKey(err) {
			return nil, duplicateUserError(err)
		}
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) ChangePassword(ctx context.Context, userID int64, req ChangePasswordRequest) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return ErrWrongPassword
	}

	hashedPassword, err := s.hashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	return s.users.UpdatePassword(ctx, userID, hashedPassword)
}

func (s *Service) issueToken(user *domain.User) (*AuthResult, error) {
	token, err := s.jwt.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &AuthResult{
		User:      user,
		Token:     token,
		ExpiresIn: int64(s.jwt.TTL().Seconds()),
	}, nil
}

func (s *Service) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// duplicateUserError tells email and phone collisions apart by the
// column named in the constraint violation.
func duplicateUserError(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "phone") {
		return ErrPhoneAlreadyExists
	}
	return ErrEmailAlreadyExists
}

func validIDType(t string) bool {
	switch t {
	case "ghana_card", "passport", "voters_id", "drivers_license":
		return true
	}
	return false
}
