// Package form models the provisioning workflows as explicit finite-state
// machines. Each form owns a transient draft or patch, validates it locally,
// and only hands compliant payloads to the user-management collaborator.
package form

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/macquiz/admin-console-api/internal/dto"
	"github.com/macquiz/admin-console-api/internal/models"
	appErrors "github.com/macquiz/admin-console-api/pkg/errors"
)

// Phase is the submission lifecycle state of a form.
type Phase string

const (
	PhaseEditing    Phase = "editing"
	PhaseValidating Phase = "validating"
	PhaseSubmitting Phase = "submitting"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
)

// ErrSubmitInFlight is returned when Submit is called while a previous
// submission has not settled. The phase machine makes double-submits
// unrepresentable.
var ErrSubmitInFlight = appErrors.New("SUBMIT_IN_FLIGHT", http.StatusConflict, "a submission is already in progress")

// Collaborator is the user-management service surface the forms depend on.
type Collaborator interface {
	CreateUser(ctx context.Context, payload dto.CreateUserPayload) (*models.UserRecord, error)
	UpdateUser(ctx context.Context, id string, payload dto.UserPatchPayload) (*models.UserRecord, error)
}

// Notifier receives form outcomes: transient user-facing status messages and
// the refresh signal that tells the directory its snapshot is stale.
type Notifier interface {
	Success(message string)
	Error(message string)
	UserMutated()
}

// NopNotifier discards notifications; useful in tests.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}
func (NopNotifier) UserMutated()   {}

// FieldErrors maps JSON field names to user-facing validation messages.
type FieldErrors map[string]string

func (fe FieldErrors) first() string {
	for _, field := range []string{"role", "student_id", "first_name", "last_name", "email", "phone_number", "password", "department", "class_year"} {
		if msg, ok := fe[field]; ok {
			return msg
		}
	}
	for _, msg := range fe {
		return msg
	}
	return "validation failed"
}

// Fixed messages shown for local pre-submit validation failures.
const (
	msgInvalidDomain = "Please use a valid email domain (gmail.com, rbmi.in, yahoo.com, outlook.com, hotmail.com)"
	msgWeakPassword  = "Password is too weak. Please use a stronger password or generate one."
)

func nullable(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func asValidationErrors(err error, dest *validator.ValidationErrors) bool {
	return errors.As(err, dest)
}

// jsonField maps a draft/patch struct field to its JSON name.
func jsonField(structField string) string {
	switch structField {
	case "Role":
		return "role"
	case "FirstName":
		return "first_name"
	case "LastName":
		return "last_name"
	case "Email":
		return "email"
	case "Password":
		return "password"
	case "PhoneNumber":
		return "phone_number"
	case "StudentID":
		return "student_id"
	case "Department":
		return "department"
	case "ClassYear":
		return "class_year"
	}
	return structField
}

func requiredMessage(field string) string {
	switch field {
	case "student_id":
		return "Student ID is required for student accounts"
	case "class_year":
		return "Class year is required for student accounts"
	case "first_name":
		return "First name is required"
	case "last_name":
		return "Last name is required"
	case "email":
		return "Email is required"
	case "password":
		return "Password is required"
	case "department":
		return "Department is required"
	case "role":
		return "Role is required"
	}
	return "this field is required"
}
