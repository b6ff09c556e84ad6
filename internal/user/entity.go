// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

// User is the identity record. ID is a display-only sequential number
// assigned by the store; name, email and phone are each globally unique.
type User struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	Phone        string    `db:"phone"`
	PasswordHash string    `db:"password_hash"`
	Gender       string    `db:"gender"`
	Age          *int      `db:"age"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
