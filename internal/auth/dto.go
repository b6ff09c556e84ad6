// AngelaMos | 2026
// dto.go

package auth

import (
	"time"
)

// Wire field names follow the public API contract: the login identity is
// "gmail" and the phone number is "sdt".

type RegisterRequest struct {
	Name     string  `json:"name"             validate:"required,min=2,max=50"`
	Gmail    string  `json:"gmail"            validate:"required,email,max=255"`
	Password string  `json:"password"         validate:"required,min=6,max=128,containsany=0123456789"`
	Phone    string  `json:"sdt"              validate:"required,len=10,numeric"`
	Gender   *string `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	Age      *int    `json:"age,omitempty"    validate:"omitempty,min=1,max=120"`
}

type LoginRequest struct {
	Gmail    string `json:"gmail"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=6,max=128,containsany=0123456789"`
}

// ResetPasswordRequest is accepted pre-auth; the email address is the only
// proof of identity. The new password follows the register policy so a
// reset cannot plant a password that registration would reject.
type ResetPasswordRequest struct {
	Gmail       string `json:"gmail"       validate:"required,email,max=255"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=128,containsany=0123456789"`
}

type UpdateProfileRequest struct {
	Name   *string `json:"name,omitempty"   validate:"omitempty,min=2,max=50"`
	Age    *int    `json:"age,omitempty"    validate:"omitempty,min=1,max=120"`
	Gender *string `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// UserResponse is the sanitized user. The password hash has no field here
// at all, so it can never serialize outward.
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Gmail     string    `json:"gmail"`
	Phone     string    `json:"sdt"`
	Gender    string    `json:"gender,omitempty"`
	Age       *int      `json:"age,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	User   UserResponse `json:"user"`
	Tokens TokenPair    `json:"tokens"`
}

type RefreshResponse struct {
	Tokens TokenPair `json:"tokens"`
}

// UserInfo is the account projection the auth flow needs from the identity
// store; it carries the hash and must never be serialized.
type UserInfo struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Gender       string
	Age          *int
	Role         string
	CreatedAt    time.Time
}

func toUserResponse(u *UserInfo) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Gmail:     u.Email,
		Phone:     u.Phone,
		Gender:    u.Gender,
		Age:       u.Age,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
