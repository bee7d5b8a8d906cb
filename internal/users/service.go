package users

import (
	"context"
	"errors"
	"strings"

	"github.com/harborlight/portal/internal/config"
	"github.com/harborlight/portal/internal/models"
	"github.com/harborlight/portal/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service encapsulates account and role logic.
type Service struct {
	repo  UserRepository
	admin config.AdminConfig
}

func NewService(r UserRepository, admin config.AdminConfig) *Service {
	return &Service{repo: r, admin: admin}
}

// SignupInput carries the fields collected by the signup form.
type SignupInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
	DateOfBirth string
	Address     string
}

// Signup creates a new account with a bcrypt password hash. The configured
// seed list decides the initial role; after creation the stored role field
// is authoritative and the list is never consulted again.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	role := models.RoleUser
	if s.admin.IsSeedAdmin(email) {
		role = models.RoleAdmin
	}
	u := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         role,
		PhoneNumber:  in.PhoneNumber,
		DateOfBirth:  in.DateOfBirth,
		Address:      in.Address,
	}
	return s.repo.Create(ctx, u)
}

// Authenticate verifies the email/password pair and returns the account.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// ResolveRole returns the stored role for the account. A lookup failure
// fails closed: the caller gets the non-admin role and the error is logged.
// Resolution happens once per sign-in; the result is embedded in the access
// token and never recomputed mid-session.
func (s *Service) ResolveRole(ctx context.Context, id string) string {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		logger.Errorf("role lookup failed for %s: %v", id, err)
		return models.RoleUser
	}
	if u == nil || u.Role == "" {
		return models.RoleUser
	}
	return u.Role
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Patients lists every non-admin account, newest first.
func (s *Service) Patients(ctx context.Context) ([]*models.User, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*models.User, 0, len(all))
	for _, u := range all {
		if u.Role != models.RoleAdmin {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
