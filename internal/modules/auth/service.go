package auth

import (
	"context"
	"errors"
	"strings"

	"parvarish/internal/domain"
	"parvarish/internal/pkg/validator"
	"parvarish/internal/repository"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service contains all business logic for authentication
type Service struct {
	parents  ParentRepository
	daycares DaycareRepository
	tokens   TokenIssuer
	recorder RegistrationRecorder
}

func NewService(parents ParentRepository, daycares DaycareRepository, tokens TokenIssuer, recorder RegistrationRecorder) *Service {
	return &Service{
		parents:  parents,
		daycares: daycares,
		tokens:   tokens,
		recorder: recorder,
	}
}

func (s *Service) RegisterParent(ctx context.Context, req RegisterParentRequest) (*domain.Parent, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validate(req); err != nil {
		return nil, err
	}

	exists, err := s.parents.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	parent := &domain.Parent{
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Phone:        strings.TrimSpace(req.Phone),
	}
	if err := s.parents.Create(ctx, parent); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	s.recordRegistration(domain.RoleParent)
	log.Info().Str("parent_id", parent.ID).Msg("parent registered")
	return parent, nil
}

func (s *Service) RegisterDaycare(ctx context.Context, req RegisterDaycareRequest) (*domain.Daycare, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validate(req); err != nil {
		return nil, err
	}

	exists, err := s.daycares.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	daycare := &domain.Daycare{
		Name:           strings.TrimSpace(req.Name),
		Email:          req.Email,
		PasswordHash:   hashedPassword,
		Phone:          strings.TrimSpace(req.Phone),
		Address:        req.Address,
		City:           strings.TrimSpace(req.City),
		State:          strings.TrimSpace(req.State),
		ZipCode:        req.ZipCode,
		Capacity:       int(req.Capacity),
		Description:    req.Description,
		OperatingHours: req.OperatingHours,
		AgeRange:       req.AgeRange,
		LicensingInfo:  req.LicensingInfo,
		IsApproved:     false,
	}
	if err := s.daycares.Create(ctx, daycare); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	s.recordRegistration(domain.RoleDaycare)
	log.Info().Str("daycare_id", daycare.ID).Msg("daycare registered, awaiting approval")
	return daycare, nil
}

// Login looks the account up in the namespace selected by req.Type and
// issues a session token. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validate(req); err != nil {
		return nil, ErrInvalidCredentials
	}

	role := domain.ParseRole(req.Type)
	user, hash, err := s.lookupByEmail(ctx, role, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !VerifyPassword(req.Password, hash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email, string(role))
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: *user, Token: token}, nil
}

// GetCurrentUser resolves the session account. The account may have
// disappeared since the token was issued.
func (s *Service) GetCurrentUser(ctx context.Context, userID string, role domain.UserRole) (*UserPublic, error) {
	var (
		user *UserPublic
		err  error
	)
	switch role {
	case domain.RoleDaycare:
		var d *domain.Daycare
		if d, err = s.daycares.GetByID(ctx, userID); err == nil {
			user = &UserPublic{ID: d.ID, Name: d.Name, Email: d.Email, Type: string(role)}
		}
	default:
		var p *domain.Parent
		if p, err = s.parents.GetByID(ctx, userID); err == nil {
			user = &UserPublic{ID: p.ID, Name: p.Name, Email: p.Email, Type: string(domain.RoleParent)}
		}
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) lookupByEmail(ctx context.Context, role domain.UserRole, email string) (*UserPublic, string, error) {
	if role == domain.RoleDaycare {
		d, err := s.daycares.GetByEmail(ctx, email)
		if err != nil {
			return nil, "", err
		}
		return &UserPublic{ID: d.ID, Name: d.Name, Email: d.Email, Type: string(role)}, d.PasswordHash, nil
	}

	p, err := s.parents.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	return &UserPublic{ID: p.ID, Name: p.Name, Email: p.Email, Type: string(role)}, p.PasswordHash, nil
}

func (s *Service) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt caps input at 72 bytes; multi-byte runes can pass the max=72 rule
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", &ValidationError{Fields: map[string]string{"Password": "max"}}
		}
		return "", err
	}
	return string(hash), nil
}

func (s *Service) recordRegistration(role domain.UserRole) {
	if s.recorder != nil {
		s.recorder.RegistrationCompleted(string(role))
	}
}

// VerifyPassword reports whether plaintext matches a bcrypt hash.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

func validate(v any) error {
	if fields := validator.Validate(v); fields != nil {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
