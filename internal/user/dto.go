// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type UpdateUserRequest struct {
	Name   *string `json:"name,omitempty"   validate:"omitempty,min=2,max=50"`
	Age    *int    `json:"age,omitempty"    validate:"omitempty,min=1,max=120"`
	Gender *string `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

// UserResponse is the sanitized view: the password hash has no field here.
// Wire names follow the public contract (gmail, sdt).
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Gmail     string    `json:"gmail"`
	Phone     string    `json:"sdt"`
	Gender    string    `json:"gender,omitempty"`
	Age       *int      `json:"age,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

type ListUsersParams struct {
	Page   int
	Limit  int
	Search string
	Sort   string
	Order  string
}

// Sortable columns; anything else falls back to created_at. The wire name
// "gmail" maps onto the email column.
var sortColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"gmail":      "email",
	"age":        "age",
	"created_at": "created_at",
}

func (p *ListUsersParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if _, ok := sortColumns[p.Sort]; !ok {
		p.Sort = "created_at"
	}
	if p.Order != "asc" && p.Order != "desc" {
		p.Order = "desc"
	}
}

func (p *ListUsersParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

func (p *ListUsersParams) SortColumn() string {
	return sortColumns[p.Sort]
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Gmail:     u.Email,
		Phone:     u.Phone,
		Gender:    u.Gender,
		Age:       u.Age,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(&u))
	}
	return responses
}
