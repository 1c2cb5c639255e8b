package form

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/macquiz/admin-console-api/internal/dto"
	"github.com/macquiz/admin-console-api/internal/models"
	"github.com/macquiz/admin-console-api/internal/password"
	appErrors "github.com/macquiz/admin-console-api/pkg/errors"
)

// EditForm drives the edit-user workflow. It is seeded from a persisted
// record; email and role stay immutable, and the password field is hidden
// behind an explicit reveal toggle so "no change" is the default.
type EditForm struct {
	userID       string
	role         models.Role
	email        string
	patch        dto.UserPatch
	showPassword bool
	assessment   *password.Assessment
	phase        Phase
	fieldErrors  FieldErrors
	closed       bool

	api      Collaborator
	notify   Notifier
	validate *validator.Validate
	logger   *zap.Logger
}

// NewEditForm opens an edit session seeded from the record under change.
func NewEditForm(record models.UserRecord, api Collaborator, notify Notifier, logger *zap.Logger) *EditForm {
	if notify == nil {
		notify = NopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EditForm{
		userID: record.ID,
		role:   record.Role,
		email:  record.Email,
		patch: dto.UserPatch{
			FirstName:   record.FirstName,
			LastName:    record.LastName,
			PhoneNumber: deref(record.PhoneNumber),
			Department:  deref(record.Department),
			ClassYear:   deref(record.ClassYear),
			IsActive:    record.IsActive,
		},
		phase:    PhaseEditing,
		api:      api,
		notify:   notify,
		validate: validator.New(),
		logger:   logger,
	}
}

// Phase returns the current lifecycle state.
func (f *EditForm) Phase() Phase { return f.phase }

// Patch returns the current field values.
func (f *EditForm) Patch() dto.UserPatch { return f.patch }

// FieldErrors returns the errors from the last failed validation.
func (f *EditForm) FieldErrors() FieldErrors { return f.fieldErrors }

// Email returns the immutable address of the record under edit.
func (f *EditForm) Email() string { return f.email }

// Role returns the immutable role of the record under edit.
func (f *EditForm) Role() models.Role { return f.role }

// Closed reports whether the session ended after a successful submit.
func (f *EditForm) Closed() bool { return f.closed }

// PasswordShown reports whether the optional password field is revealed.
func (f *EditForm) PasswordShown() bool { return f.showPassword }

// Assessment returns the live assessment of the pending password, nil while
// the field is concealed or empty.
func (f *EditForm) Assessment() *password.Assessment { return f.assessment }

// RevealPassword shows the optional password field.
func (f *EditForm) RevealPassword() {
	f.showPassword = true
}

// ConcealPassword hides the password field and discards any pending value,
// restoring the "leave unchanged" default.
func (f *EditForm) ConcealPassword() {
	f.showPassword = false
	f.patch.Password = ""
	f.assessment = nil
}

// SetPassword records a pending password change. Ignored while concealed.
func (f *EditForm) SetPassword(value string) {
	if !f.showPassword {
		return
	}
	f.patch.Password = value
	if value == "" {
		f.assessment = nil
		return
	}
	a := password.Assess(value)
	f.assessment = &a
}

// GeneratePassword reveals the field and fills it with a compliant credential.
func (f *EditForm) GeneratePassword() string {
	f.RevealPassword()
	generated := password.Generate()
	f.SetPassword(generated)
	return generated
}

func (f *EditForm) SetFirstName(v string)   { f.patch.FirstName = v }
func (f *EditForm) SetLastName(v string)    { f.patch.LastName = v }
func (f *EditForm) SetPhoneNumber(v string) { f.patch.PhoneNumber = v }
func (f *EditForm) SetDepartment(v string)  { f.patch.Department = v }
func (f *EditForm) SetClassYear(v string)   { f.patch.ClassYear = v }
func (f *EditForm) SetIsActive(v bool)      { f.patch.IsActive = v }

// Apply replays a complete patch through the field setters. A non-empty
// password in the patch implies the reveal toggle.
func (f *EditForm) Apply(patch dto.UserPatch) {
	f.SetFirstName(patch.FirstName)
	f.SetLastName(patch.LastName)
	f.SetPhoneNumber(patch.PhoneNumber)
	f.SetDepartment(patch.Department)
	f.SetClassYear(patch.ClassYear)
	f.SetIsActive(patch.IsActive)
	if patch.Password != "" {
		f.RevealPassword()
		f.SetPassword(patch.Password)
	}
}

// Submit validates the patch and, when compliant, hands it to the
// collaborator. An empty password never reaches the wire.
func (f *EditForm) Submit(ctx context.Context) (*models.UserRecord, error) {
	if f.phase == PhaseSubmitting || f.phase == PhaseValidating {
		return nil, ErrSubmitInFlight
	}

	f.phase = PhaseValidating
	f.fieldErrors = f.validatePatch()
	if len(f.fieldErrors) > 0 {
		f.phase = PhaseEditing
		return nil, appErrors.Clone(appErrors.ErrValidation, f.fieldErrors.first())
	}

	f.phase = PhaseSubmitting
	record, err := f.api.UpdateUser(ctx, f.userID, f.payload())
	if err != nil {
		f.phase = PhaseFailed
		f.notify.Error(appErrors.FromError(err).Message)
		return nil, err
	}

	f.phase = PhaseSucceeded
	f.notify.Success(fmt.Sprintf("User %s %s updated successfully!", record.FirstName, record.LastName))
	f.notify.UserMutated()
	return record, nil
}

// Settle resolves a submission outcome: a success closes the session, a
// failure returns to editing with the fields intact.
func (f *EditForm) Settle() {
	switch f.phase {
	case PhaseSucceeded:
		f.closed = true
	case PhaseFailed:
		f.phase = PhaseEditing
	}
}

func (f *EditForm) validatePatch() FieldErrors {
	errs := FieldErrors{}

	if err := f.validate.Struct(f.patch); err != nil {
		var invalid validator.ValidationErrors
		if asValidationErrors(err, &invalid) {
			for _, fe := range invalid {
				field := jsonField(fe.StructField())
				errs[field] = requiredMessage(field)
			}
		} else {
			errs["form"] = "invalid form input"
		}
	}

	// A revealed, non-empty password must meet the same bar as on create.
	if f.patch.Password != "" && password.Assess(f.patch.Password).Score < 3 {
		errs["password"] = msgWeakPassword
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// payload builds the wire patch. The password key is present only when a
// change was entered; department and class year null out when blank.
func (f *EditForm) payload() dto.UserPatchPayload {
	p := dto.UserPatchPayload{
		FirstName:   f.patch.FirstName,
		LastName:    f.patch.LastName,
		PhoneNumber: nullable(f.patch.PhoneNumber),
		Department:  nullable(f.patch.Department),
		ClassYear:   nullable(f.patch.ClassYear),
		IsActive:    f.patch.IsActive,
	}
	if f.patch.Password != "" {
		p.Password = nullable(f.patch.Password)
	}
	return p
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
