package models

import "strings"

// Role enumerates the access profile of a dashboard user.
type Role string

const (
	RoleVendor    Role = "vendor"
	RoleInspector Role = "inspector"
	RoleAdmin     Role = "admin"
)

// IsValid reports whether the role is one of the known values.
func (r Role) IsValid() bool {
	switch r {
	case RoleVendor, RoleInspector, RoleAdmin:
		return true
	}
	return false
}

// UserStatus marks whether an account is in use.
type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)

// User is a vendor, inspector or administrator account.
type User struct {
	ID       string     `bson:"_id" json:"id"`
	Name     string     `bson:"name" json:"name"`
	Email    string     `bson:"email" json:"email"`
	Phone    string     `bson:"phone" json:"phone"`
	Role     Role       `bson:"role" json:"role"`
	Company  string     `bson:"company" json:"company"`
	Status   UserStatus `bson:"status" json:"status"`
	JoinDate string     `bson:"join_date" json:"joinDate"`
}

// NewUserRequest is the payload accepted when registering a user.
type NewUserRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Role    Role   `json:"role" validate:"required,oneof=vendor inspector admin"`
	Company string `json:"company"`
}

// UserFilter narrows a user listing. Empty fields match everything.
type UserFilter struct {
	Search string
	Role   Role
}

// Matches reports whether the user satisfies every filter criterion.
func (f UserFilter) Matches(u User) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(u.Name), term) &&
			!strings.Contains(strings.ToLower(u.Email), term) &&
			!strings.Contains(strings.ToLower(u.Company), term) {
			return false
		}
	}
	if f.Role != "" && u.Role != f.Role {
		return false
	}
	return true
}
