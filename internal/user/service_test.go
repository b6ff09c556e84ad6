// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knguyen-dev/account-service/internal/core"
)

// fakeRepo is an in-memory Repository for service tests. The service runs
// without a pool here, so inTx goes straight through.
type fakeRepo struct {
	nextID int64
	users  map[int64]*User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, users: make(map[int64]*User)}
}

func (f *fakeRepo) seed(u User) *User {
	u.ID = f.nextID
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	f.users[u.ID] = &u
	f.nextID++
	return &u
}

func (f *fakeRepo) Create(_ context.Context, user *User) error {
	for _, u := range f.users {
		if u.Email == user.Email || u.Phone == user.Phone {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
	}
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	f.users[user.ID] = &clone
	f.nextID++
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	clone := *u
	return &clone, nil
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
}

func (f *fakeRepo) Update(_ context.Context, user *User) error {
	stored, ok := f.users[user.ID]
	if !ok {
		return fmt.Errorf("update user: %w", core.ErrNotFound)
	}
	stored.Name = user.Name
	stored.Gender = user.Gender
	stored.Age = user.Age
	stored.Role = user.Role
	stored.UpdatedAt = time.Now()
	return nil
}

func (f *fakeRepo) UpdatePassword(
	_ context.Context,
	id int64,
	passwordHash string,
) error {
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}
	u.PasswordHash = passwordHash
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return fmt.Errorf("delete user: %w", core.ErrNotFound)
	}
	delete(f.users, id)
	return nil
}

func (f *fakeRepo) List(
	_ context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	params.Normalize()

	var matched []User
	for _, u := range f.users {
		if params.Search == "" ||
			strings.Contains(
				strings.ToLower(u.Name),
				strings.ToLower(params.Search),
			) {
			matched = append(matched, *u)
		}
	}
	return matched, len(matched), nil
}

func (f *fakeRepo) ExistsByIdentity(
	_ context.Context,
	email, phone string,
) (bool, error) {
	for _, u := range f.users {
		if u.Email == email || u.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, nil), repo
}

func TestUpdateUserRoleValidation(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	seeded := repo.seed(User{Name: "A", Email: "a@example.com", Role: RoleUser})

	_, err := svc.UpdateUserRole(ctx, seeded.ID, "superuser")
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	updated, err := svc.UpdateUserRole(ctx, seeded.ID, RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, updated.Role)
}

func TestUpdateUserRoleUnknownUser(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.UpdateUserRole(context.Background(), 99, RoleAdmin)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestUpdateUserLeavesRoleAlone(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	seeded := repo.seed(User{Name: "A", Email: "a@example.com", Role: RoleAdmin})

	name := "Renamed"
	updated, err := svc.UpdateUser(ctx, seeded.ID, UpdateUserRequest{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, RoleAdmin, updated.Role)
}

func TestCanDeleteUser(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	admin := repo.seed(User{Name: "Admin", Email: "admin@example.com", Role: RoleAdmin})
	other := repo.seed(User{Name: "Other", Email: "other@example.com", Role: RoleAdmin})
	plain := repo.seed(User{Name: "Plain", Email: "plain@example.com", Role: RoleUser})
	victim := repo.seed(User{Name: "Victim", Email: "victim@example.com", Role: RoleUser})

	// Anyone may delete themselves.
	assert.NoError(t, svc.CanDeleteUser(ctx, plain.ID, plain.ID))

	// A non-admin cannot delete anyone else.
	err := svc.CanDeleteUser(ctx, plain.ID, victim.ID)
	assert.ErrorIs(t, err, core.ErrForbidden)

	// An admin can delete a regular user.
	assert.NoError(t, svc.CanDeleteUser(ctx, admin.ID, victim.ID))

	// Admin accounts are not deletable by other admins.
	err = svc.CanDeleteUser(ctx, admin.ID, other.ID)
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestDeleteUserIsHard(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	seeded := repo.seed(User{Name: "A", Email: "a@example.com", Role: RoleUser})

	require.NoError(t, svc.DeleteUser(ctx, seeded.ID))

	_, err := svc.GetUser(ctx, seeded.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)

	// A second delete finds nothing.
	err = svc.DeleteUser(ctx, seeded.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestServiceSatisfiesUserProvider(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	seeded := repo.seed(User{
		Name:  "A",
		Email: "a@example.com",
		Phone: "0912345678",
		Role:  RoleUser,
	})

	info, err := svc.GetByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, info.ID)
	assert.Equal(t, "a@example.com", info.Email)

	// Email lookup is case-insensitive at the service boundary.
	info, err = svc.GetByEmail(ctx, "A@Example.com")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, info.ID)

	exists, err := svc.ExistsByIdentity(ctx, "A@EXAMPLE.COM", "none")
	require.NoError(t, err)
	assert.True(t, exists)
}
