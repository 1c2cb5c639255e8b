package models

import "time"

// Role identifies the account type owned by the user-management service.
// The wire value is upper-case; directory filters use the lower-case form.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTeacher Role = "TEACHER"
	RoleStudent Role = "STUDENT"
)

// Lower returns the filter/display form of the role.
func (r Role) Lower() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleTeacher:
		return "teacher"
	case RoleStudent:
		return "student"
	}
	return string(r)
}

// ParseRole normalises a filter value into a Role; ok is false for unknown input.
func ParseRole(raw string) (Role, bool) {
	switch raw {
	case "admin", "ADMIN":
		return RoleAdmin, true
	case "teacher", "TEACHER":
		return RoleTeacher, true
	case "student", "STUDENT":
		return RoleStudent, true
	}
	return "", false
}

// UserRecord is a snapshot of a persisted account, owned by the upstream
// user-management service and read-only to the console.
type UserRecord struct {
	ID          string     `json:"id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	Role        Role       `json:"role"`
	Department  *string    `json:"department,omitempty"`
	StudentID   *string    `json:"student_id,omitempty"`
	ClassYear   *string    `json:"class_year,omitempty"`
	PhoneNumber *string    `json:"phone_number,omitempty"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	LastActive  *time.Time `json:"last_active,omitempty"`
}

// FullName joins the display name the way the console renders it.
func (u UserRecord) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
