// AngelaMos | 2026
// dto_test.go

package user

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsersParamsNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   ListUsersParams
		want ListUsersParams
	}{
		{
			name: "zero values get defaults",
			in:   ListUsersParams{},
			want: ListUsersParams{Page: 1, Limit: 10, Sort: "created_at", Order: "desc"},
		},
		{
			name: "negative page clamps to one",
			in:   ListUsersParams{Page: -3, Limit: 20, Sort: "name", Order: "asc"},
			want: ListUsersParams{Page: 1, Limit: 20, Sort: "name", Order: "asc"},
		},
		{
			name: "limit capped at 100",
			in:   ListUsersParams{Page: 2, Limit: 5000, Sort: "id", Order: "desc"},
			want: ListUsersParams{Page: 2, Limit: 100, Sort: "id", Order: "desc"},
		},
		{
			name: "unknown sort falls back",
			in:   ListUsersParams{Page: 1, Limit: 10, Sort: "password_hash", Order: "asc"},
			want: ListUsersParams{Page: 1, Limit: 10, Sort: "created_at", Order: "asc"},
		},
		{
			name: "unknown order falls back",
			in:   ListUsersParams{Page: 1, Limit: 10, Sort: "age", Order: "sideways"},
			want: ListUsersParams{Page: 1, Limit: 10, Sort: "age", Order: "desc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Normalize()
			assert.Equal(t, tt.want, tt.in)
		})
	}
}

func TestListUsersParamsSortColumn(t *testing.T) {
	p := ListUsersParams{Sort: "gmail"}
	p.Normalize()

	// The wire sort key maps onto the underlying column.
	assert.Equal(t, "email", p.SortColumn())
}

func TestListUsersParamsOffset(t *testing.T) {
	p := ListUsersParams{Page: 3, Limit: 25}
	p.Normalize()

	assert.Equal(t, 50, p.Offset())
}

func TestUserResponseNeverCarriesHash(t *testing.T) {
	u := &User{
		ID:           1,
		Name:         "Nguyen Van A",
		Email:        "nguyen@example.com",
		Phone:        "0912345678",
		PasswordHash: "$2a$12$secret",
		Role:         RoleUser,
	}

	data, err := json.Marshal(ToUserResponse(u))
	require.NoError(t, err)

	assert.NotContains(t, string(data), "secret")
	assert.NotContains(t, string(data), "password")

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "nguyen@example.com", raw["gmail"])
	assert.Equal(t, "0912345678", raw["sdt"])
}

func TestToUserResponseList(t *testing.T) {
	users := []User{
		{ID: 1, Name: "A", Email: "a@example.com"},
		{ID: 2, Name: "B", Email: "b@example.com"},
	}

	responses := ToUserResponseList(users)
	require.Len(t, responses, 2)
	assert.Equal(t, int64(1), responses[0].ID)
	assert.Equal(t, "b@example.com", responses[1].Gmail)
}
