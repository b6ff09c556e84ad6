// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/knguyen-dev/account-service/internal/auth"
	"github.com/knguyen-dev/account-service/internal/core"
)

type Service struct {
	repo Repository
	db   *sqlx.DB
}

// NewService wires the service to a repository and the underlying pool.
// The pool may be nil, in which case read-modify-write operations run
// without a transaction.
func NewService(repo Repository, db *sqlx.DB) *Service {
	return &Service{repo: repo, db: db}
}

// inTx runs fn against a transaction-scoped repository when a pool is
// available, so concurrent updates to the same row cannot interleave.
func (s *Service) inTx(ctx context.Context, fn func(Repository) error) error {
	if s.db == nil {
		return fn(s.repo)
	}
	return core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		return fn(NewRepository(tx))
	})
}

func (s *Service) GetByID(
	ctx context.Context,
	id int64,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) Create(
	ctx context.Context,
	nu auth.NewUser,
) (*auth.UserInfo, error) {
	user := &User{
		Name:         nu.Name,
		Email:        strings.ToLower(nu.Email),
		Phone:        nu.Phone,
		PasswordHash: nu.PasswordHash,
		Gender:       nu.Gender,
		Age:          nu.Age,
		Role:         RoleUser,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) UpdateProfile(
	ctx context.Context,
	id int64,
	upd auth.ProfileUpdate,
) (*auth.UserInfo, error) {
	user, err := s.applyUpdate(ctx, id, upd.Name, upd.Age, upd.Gender)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	id int64,
	passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, id, passwordHash)
}

func (s *Service) ExistsByIdentity(
	ctx context.Context,
	email, phone string,
) (bool, error) {
	return s.repo.ExistsByIdentity(ctx, strings.ToLower(email), phone)
}

func (s *Service) GetUser(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateUser mutates name, age and gender only; email, phone and role are
// not reachable through this path.
func (s *Service) UpdateUser(
	ctx context.Context,
	id int64,
	req UpdateUserRequest,
) (*User, error) {
	return s.applyUpdate(ctx, id, req.Name, req.Age, req.Gender)
}

// UpdateUserRole assigns a role from the closed enum (admin operation).
func (s *Service) UpdateUserRole(
	ctx context.Context,
	id int64,
	role string,
) (*User, error) {
	if !ValidRole(role) {
		return nil, fmt.Errorf(
			"update role: invalid role %q: %w",
			role,
			core.ErrInvalidInput,
		)
	}

	var user *User
	err := s.inTx(ctx, func(r Repository) error {
		var err error
		user, err = r.GetByID(ctx, id)
		if err != nil {
			return err
		}

		user.Role = role
		return r.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListUsers(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	return s.repo.List(ctx, params)
}

// CanDeleteUser allows self-deletion; deleting anyone else requires admin,
// and admin accounts cannot be deleted by other admins.
func (s *Service) CanDeleteUser(
	ctx context.Context,
	requesterID, targetID int64,
) error {
	if requesterID == targetID {
		return nil
	}

	requester, err := s.repo.GetByID(ctx, requesterID)
	if err != nil {
		return err
	}

	if !requester.IsAdmin() {
		return fmt.Errorf("delete user: %w", core.ErrForbidden)
	}

	target, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}

	if target.IsAdmin() {
		return fmt.Errorf("cannot delete admin users: %w", core.ErrForbidden)
	}

	return nil
}

func (s *Service) applyUpdate(
	ctx context.Context,
	id int64,
	name *string,
	age *int,
	gender *string,
) (*User, error) {
	var user *User
	err := s.inTx(ctx, func(r Repository) error {
		var err error
		user, err = r.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if name != nil {
			user.Name = *name
		}
		if age != nil {
			user.Age = age
		}
		if gender != nil {
			user.Gender = *gender
		}

		return r.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		PasswordHash: u.PasswordHash,
		Gender:       u.Gender,
		Age:          u.Age,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
	}
}

var _ auth.UserProvider = (*Service)(nil)
