// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/knguyen-dev/account-service/internal/core"
)

var (
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrDuplicateIdentity      = errors.New("email or phone already exists")
	ErrInvalidCurrentPassword = errors.New("current password is incorrect")
)

type NewUser struct {
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Gender       string
	Age          *int
}

type ProfileUpdate struct {
	Name   *string
	Age    *int
	Gender *string
}

// UserProvider is the identity store as the auth flow sees it. Uniqueness
// of email, phone and name is enforced by the store itself at write time;
// the pre-insert existence check here is advisory only.
type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id int64) (*UserInfo, error)
	Create(ctx context.Context, nu NewUser) (*UserInfo, error)
	UpdateProfile(ctx context.Context, id int64, upd ProfileUpdate) (*UserInfo, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	ExistsByIdentity(ctx context.Context, email, phone string) (bool, error)
}

type Service struct {
	users UserProvider
	jwt   *JWTManager
}

func NewService(users UserProvider, jwt *JWTManager) *Service {
	return &Service{users: users, jwt: jwt}
}

func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*AuthResponse, error) {
	email := strings.ToLower(req.Gmail)

	exists, err := s.users.ExistsByIdentity(ctx, email, req.Phone)
	if err != nil {
		return nil, fmt.Errorf("check identity: %w", err)
	}
	if exists {
		return nil, ErrDuplicateIdentity
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	nu := NewUser{
		Name:         req.Name,
		Email:        email,
		Phone:        req.Phone,
		PasswordHash: passwordHash,
	}
	if req.Gender != nil {
		nu.Gender = *req.Gender
	}
	nu.Age = req.Age

	user, err := s.users.Create(ctx, nu)
	if err != nil {
		// The unique indexes close the check-then-insert race. The store
		// reports which column collided; keep that so a name collision is
		// not misreported as an email or phone one.
		if errors.Is(err, core.ErrDuplicateKey) {
			if appErr, ok := core.AsAppError(err); ok {
				return nil, appErr
			}
			return nil, ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	tokens, err := s.jwt.IssuePair(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	return &AuthResponse{User: toUserResponse(user), Tokens: *tokens}, nil
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(req.Gmail))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			// Burn the same hashing cost as a real lookup so latency does
			// not distinguish unknown-user from wrong-password.
			core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !core.VerifyPasswordTimingSafe(req.Password, &user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	tokens, err := s.jwt.IssuePair(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	return &AuthResponse{User: toUserResponse(user), Tokens: *tokens}, nil
}

// Refresh verifies against the refresh key, re-reads the account (a deleted
// account invalidates its refresh tokens) and issues a brand-new pair.
func (s *Service) Refresh(
	ctx context.Context,
	refreshToken string,
) (*RefreshResponse, error) {
	userID, err := s.jwt.VerifyRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("refresh: %w", core.ErrTokenInvalid)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	tokens, err := s.jwt.IssuePair(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	return &RefreshResponse{Tokens: *tokens}, nil
}

// Logout is a stateless no-op. Tokens carry no server-side state, so an
// issued pair stays valid until natural expiry.
func (s *Service) Logout(ctx context.Context, userID int64) error {
	return nil
}

func (s *Service) GetProfile(
	ctx context.Context,
	userID int64,
) (*UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// UpdateProfile mutates name, age and gender only; email, phone and role
// are not reachable through this path.
func (s *Service) UpdateProfile(
	ctx context.Context,
	userID int64,
	req UpdateProfileRequest,
) (*UserResponse, error) {
	user, err := s.users.UpdateProfile(ctx, userID, ProfileUpdate{
		Name:   req.Name,
		Age:    req.Age,
		Gender: req.Gender,
	})
	if err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *Service) ChangePassword(
	ctx context.Context,
	userID int64,
	currentPassword, newPassword string,
) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	if !core.VerifyPassword(currentPassword, user.PasswordHash) {
		return ErrInvalidCurrentPassword
	}

	newHash, err := core.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, newHash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	// Outstanding tokens stay valid until expiry; there is no revocation.
	return nil
}

// ResetPassword overwrites the password for the account behind the email.
// No proof of ownership is required beyond knowing the address.
func (s *Service) ResetPassword(
	ctx context.Context,
	gmail, newPassword string,
) error {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(gmail))
	if err != nil {
		return err
	}

	newHash, err := core.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, user.ID, newHash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return nil
}
