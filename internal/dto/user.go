package dto

// UserDraft is the in-progress input captured by the create-user form. Role
// is carried in its lower-case form while editing; the wire payload
// upper-cases it.
type UserDraft struct {
	Role        string `json:"role" validate:"required,oneof=teacher student"`
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	Email       string `json:"email" validate:"required"`
	Password    string `json:"password" validate:"required"`
	PhoneNumber string `json:"phone_number"`
	StudentID   string `json:"student_id" validate:"required_if=Role student"`
	Department  string `json:"department" validate:"required"`
	ClassYear   string `json:"class_year" validate:"required_if=Role student"`
}

// UserPatch is the mutable subset of a persisted record captured by the edit
// form. Email and role are immutable and therefore absent. A blank password
// means "leave unchanged".
type UserPatch struct {
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	PhoneNumber string `json:"phone_number"`
	Department  string `json:"department"`
	ClassYear   string `json:"class_year"`
	IsActive    bool   `json:"is_active"`
	Password    string `json:"password"`
}

// CreateUserPayload is the wire form of a validated draft sent to the
// user-management service.
type CreateUserPayload struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Role        string  `json:"role"`
	Department  string  `json:"department"`
	ClassYear   string  `json:"class_year"`
	PhoneNumber *string `json:"phone_number"`
	StudentID   *string `json:"student_id,omitempty"`
}

// UserPatchPayload is the wire form of a validated patch. Password is
// omitted entirely when no change was requested.
type UserPatchPayload struct {
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
	Department  *string `json:"department"`
	ClassYear   *string `json:"class_year"`
	IsActive    bool    `json:"is_active"`
	Password    *string `json:"password,omitempty"`
}

// AssessRequest carries a candidate credential for scoring.
type AssessRequest struct {
	Password string `json:"password"`
}

// GeneratedCredential returns a policy-compliant temporary password.
type GeneratedCredential struct {
	Password string `json:"password"`
}

// DomainSuggestions lists allow-listed domains for an in-progress address.
type DomainSuggestions struct {
	LocalPart string   `json:"local_part"`
	Domains   []string `json:"domains"`
	Shown     bool     `json:"shown"`
}

// SemesterOptions is the derived semester filter set for a class year.
type SemesterOptions struct {
	ClassYear string   `json:"class_year"`
	Semesters []string `json:"semesters"`
}
