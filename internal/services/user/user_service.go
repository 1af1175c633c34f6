package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserAlreadyExists = errors.New("email is already registered")

	// ErrInvalidCredentials is returned for an unknown email and for a wrong
	// password alike, so callers cannot probe which emails are registered.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserService contains account and credential logic
type UserService struct {
	repo UserRepo
}

func NewUserService(repo UserRepo) *UserService {
	return &UserService{repo: repo}
}

// Create registers a new account with the default role. Emails are stored
// lower-cased so duplicate checks and logins agree on case.
func (s *UserService) Create(ctx context.Context, req *CreateUserRequest) (*User, error) {
	email := normalizeEmail(req.Email)

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to validate email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u, err := s.repo.Create(ctx, req.Name, email, req.Phone, string(hash))
	if err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

// Authenticate checks an email/password pair against the store. Unknown email
// and wrong password produce the identical error value.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, normalizeEmail(email))
}

// List returns all accounts ordered by creation time
func (s *UserService) List(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

// UpdateProfile applies the typed allow-list of self-service profile fields.
// A role or email change cannot be expressed through this path.
func (s *UserService) UpdateProfile(ctx context.Context, id string, req *UpdateProfileRequest) (*User, error) {
	params := &UpdateUserParams{
		Name:  req.Name,
		Phone: req.Phone,
	}

	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		hashStr := string(hash)
		params.PasswordHash = &hashStr
	}

	return s.repo.UpdateProfile(ctx, id, params)
}

// SetRole overwrites the account's role with one of the three known values.
func (s *UserService) SetRole(ctx context.Context, id string, role Role) (*User, error) {
	if !ValidRole(role) {
		return nil, fmt.Errorf("invalid role %q", role)
	}

	return s.repo.SetRole(ctx, id, role)
}

// Delete removes an account. Rejecting self-deletion is the caller's job,
// before this is ever reached.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ProvisionAdmin fetches the configured admin account, creating and promoting
// it on first use.
func (s *UserService) ProvisionAdmin(ctx context.Context, name, email, password string) (*User, error) {
	u, err := s.GetByEmail(ctx, email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up admin user: %w", err)
	}

	u, err = s.Create(ctx, &CreateUserRequest{
		Name:     name,
		Email:    email,
		Phone:    "0000000000",
		Password: password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to provision admin user: %w", err)
	}

	return s.SetRole(ctx, u.ID, RoleAdmin)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
