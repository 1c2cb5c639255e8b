package form

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/macquiz/admin-console-api/internal/dto"
	"github.com/macquiz/admin-console-api/internal/email"
	"github.com/macquiz/admin-console-api/internal/models"
	"github.com/macquiz/admin-console-api/internal/password"
	appErrors "github.com/macquiz/admin-console-api/pkg/errors"
)

const defaultClassYear = "1st Year"

// CreateForm drives the create-user workflow. Field edits keep the password
// assessment and email assistance current; Submit walks the
// Editing → Validating → Submitting → {Succeeded, Failed} machine.
type CreateForm struct {
	draft       dto.UserDraft
	assist      email.Assist
	assessment  *password.Assessment
	emailError  string
	phase       Phase
	fieldErrors FieldErrors

	api      Collaborator
	notify   Notifier
	validate *validator.Validate
	logger   *zap.Logger
}

// NewCreateForm opens a blank draft in the editing phase.
func NewCreateForm(api Collaborator, notify Notifier, logger *zap.Logger) *CreateForm {
	if notify == nil {
		notify = NopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &CreateForm{
		api:      api,
		notify:   notify,
		validate: validator.New(),
		logger:   logger,
	}
	f.reset()
	return f
}

func (f *CreateForm) reset() {
	f.draft = dto.UserDraft{Role: models.RoleStudent.Lower(), ClassYear: defaultClassYear}
	f.assist = email.Assist{}
	f.assessment = nil
	f.emailError = ""
	f.fieldErrors = nil
	f.phase = PhaseEditing
}

// Phase returns the current lifecycle state.
func (f *CreateForm) Phase() Phase { return f.phase }

// Draft returns the current field values.
func (f *CreateForm) Draft() dto.UserDraft { return f.draft }

// FieldErrors returns the errors from the last failed validation.
func (f *CreateForm) FieldErrors() FieldErrors { return f.fieldErrors }

// Assessment returns the live password assessment, nil while the password
// field is empty.
func (f *CreateForm) Assessment() *password.Assessment { return f.assessment }

// EmailError returns the live domain validation message, empty when valid.
func (f *CreateForm) EmailError() string { return f.emailError }

// Assist exposes the assisted-entry affordance for the email field.
func (f *CreateForm) Assist() *email.Assist { return &f.assist }

// SetRole switches the target role. Previously entered values are retained;
// only the requirement set changes.
func (f *CreateForm) SetRole(role string) {
	f.draft.Role = role
	if role == models.RoleStudent.Lower() && f.draft.ClassYear == "" {
		f.draft.ClassYear = defaultClassYear
	}
}

// SetEmail records an email edit, driving the suggestion affordance and the
// live domain check.
func (f *CreateForm) SetEmail(value string) {
	f.draft.Email = value
	f.assist.Input(value)
	if strings.Contains(value, "@") && !email.ValidateDomain(value) {
		f.emailError = msgInvalidDomain
	} else {
		f.emailError = ""
	}
}

// ChooseDomain completes the address from a suggestion.
func (f *CreateForm) ChooseDomain(domain string) {
	f.draft.Email = f.assist.Choose(domain)
	f.emailError = ""
}

// SetPassword records a password edit and recomputes the assessment.
func (f *CreateForm) SetPassword(value string) {
	f.draft.Password = value
	if value == "" {
		f.assessment = nil
		return
	}
	a := password.Assess(value)
	f.assessment = &a
}

// GeneratePassword fills the password field with a compliant credential.
func (f *CreateForm) GeneratePassword() string {
	generated := password.Generate()
	f.SetPassword(generated)
	return generated
}

// SetFirstName, SetLastName, SetPhoneNumber, SetStudentID, SetDepartment and
// SetClassYear record plain field edits.
func (f *CreateForm) SetFirstName(v string)   { f.draft.FirstName = v }
func (f *CreateForm) SetLastName(v string)    { f.draft.LastName = v }
func (f *CreateForm) SetPhoneNumber(v string) { f.draft.PhoneNumber = v }
func (f *CreateForm) SetStudentID(v string)   { f.draft.StudentID = v }
func (f *CreateForm) SetDepartment(v string)  { f.draft.Department = v }
func (f *CreateForm) SetClassYear(v string)   { f.draft.ClassYear = v }

// Apply replays a complete draft through the field setters, as when the
// console receives the whole form in one request.
func (f *CreateForm) Apply(draft dto.UserDraft) {
	f.SetRole(draft.Role)
	f.SetFirstName(draft.FirstName)
	f.SetLastName(draft.LastName)
	f.SetEmail(draft.Email)
	f.SetPassword(draft.Password)
	f.SetPhoneNumber(draft.PhoneNumber)
	f.SetStudentID(draft.StudentID)
	f.SetDepartment(draft.Department)
	if draft.ClassYear != "" {
		f.SetClassYear(draft.ClassYear)
	}
}

// Submit validates the draft and, when compliant, hands it to the
// collaborator. Validation failures return the form to editing with field
// errors and never reach the network.
func (f *CreateForm) Submit(ctx context.Context) (*models.UserRecord, error) {
	if f.phase == PhaseSubmitting || f.phase == PhaseValidating {
		return nil, ErrSubmitInFlight
	}

	f.phase = PhaseValidating
	f.fieldErrors = f.validateDraft()
	if len(f.fieldErrors) > 0 {
		f.phase = PhaseEditing
		return nil, appErrors.Clone(appErrors.ErrValidation, f.fieldErrors.first())
	}

	f.phase = PhaseSubmitting
	record, err := f.api.CreateUser(ctx, f.payload())
	if err != nil {
		f.phase = PhaseFailed
		f.notify.Error(appErrors.FromError(err).Message)
		return nil, err
	}

	f.phase = PhaseSucceeded
	f.notify.Success(fmt.Sprintf("User %s %s created successfully!", record.FirstName, record.LastName))
	f.notify.UserMutated()
	return record, nil
}

// Settle returns the form to editing after a submission outcome: a success
// discards the draft for a blank one, a failure keeps the fields for
// correction.
func (f *CreateForm) Settle() {
	switch f.phase {
	case PhaseSucceeded:
		f.reset()
	case PhaseFailed:
		f.phase = PhaseEditing
	}
}

func (f *CreateForm) validateDraft() FieldErrors {
	errs := FieldErrors{}

	if err := f.validate.Struct(f.draft); err != nil {
		var invalid validator.ValidationErrors
		if ok := asValidationErrors(err, &invalid); ok {
			for _, fe := range invalid {
				field := jsonField(fe.StructField())
				if fe.Tag() == "oneof" {
					errs[field] = "Role must be teacher or student"
					continue
				}
				errs[field] = requiredMessage(field)
			}
		} else {
			errs["form"] = "invalid form input"
		}
	}

	if _, hasEmailErr := errs["email"]; !hasEmailErr && !email.ValidateDomain(f.draft.Email) {
		errs["email"] = msgInvalidDomain
	}

	if _, hasPasswordErr := errs["password"]; !hasPasswordErr {
		if password.Assess(f.draft.Password).Score < 3 {
			errs["password"] = msgWeakPassword
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// payload builds the collaborator wire form: role upper-cased, student_id
// only for students, phone number null when blank.
func (f *CreateForm) payload() dto.CreateUserPayload {
	p := dto.CreateUserPayload{
		Email:       f.draft.Email,
		Password:    f.draft.Password,
		FirstName:   f.draft.FirstName,
		LastName:    f.draft.LastName,
		Role:        strings.ToUpper(f.draft.Role),
		Department:  f.draft.Department,
		ClassYear:   f.draft.ClassYear,
		PhoneNumber: nullable(f.draft.PhoneNumber),
	}
	if f.draft.Role == models.RoleStudent.Lower() {
		p.StudentID = nullable(f.draft.StudentID)
	}
	return p
}
