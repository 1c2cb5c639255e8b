package form

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macquiz/admin-console-api/internal/dto"
	"github.com/macquiz/admin-console-api/internal/models"
	appErrors "github.com/macquiz/admin-console-api/pkg/errors"
)

type mockCollaborator struct {
	createPayload *dto.CreateUserPayload
	createRecord  *models.UserRecord
	createErr     error

	updateID      string
	updatePayload *dto.UserPatchPayload
	updateRecord  *models.UserRecord
	updateErr     error
}

func (m *mockCollaborator) CreateUser(_ context.Context, payload dto.CreateUserPayload) (*models.UserRecord, error) {
	m.createPayload = &payload
	if m.createErr != nil {
		return nil, m.createErr
	}
	if m.createRecord != nil {
		return m.createRecord, nil
	}
	return &models.UserRecord{ID: "u-new", FirstName: payload.FirstName, LastName: payload.LastName}, nil
}

func (m *mockCollaborator) UpdateUser(_ context.Context, id string, payload dto.UserPatchPayload) (*models.UserRecord, error) {
	m.updateID = id
	m.updatePayload = &payload
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	if m.updateRecord != nil {
		return m.updateRecord, nil
	}
	return &models.UserRecord{ID: id, FirstName: payload.FirstName, LastName: payload.LastName}, nil
}

type recordingNotifier struct {
	successes []string
	errors    []string
	mutations int
}

func (n *recordingNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *recordingNotifier) Error(msg string)   { n.errors = append(n.errors, msg) }
func (n *recordingNotifier) UserMutated()       { n.mutations++ }

func validStudentDraft() dto.UserDraft {
	return dto.UserDraft{
		Role:       "student",
		FirstName:  "Jane",
		LastName:   "Doe",
		Email:      "jane.doe@rbmi.in",
		Password:   "Str0ng!pass",
		StudentID:  "CS2024001",
		Department: "Computer Science",
		ClassYear:  "2nd Year",
	}
}

func TestCreateFormDefaults(t *testing.T) {
	f := NewCreateForm(&mockCollaborator{}, nil, nil)

	assert.Equal(t, PhaseEditing, f.Phase())
	assert.Equal(t, "student", f.Draft().Role)
	assert.Equal(t, "1st Year", f.Draft().ClassYear)
	assert.Nil(t, f.Assessment())
}

func TestCreateFormSubmitSuccess(t *testing.T) {
	api := &mockCollaborator{}
	notify := &recordingNotifier{}
	f := NewCreateForm(api, notify, nil)
	f.Apply(validStudentDraft())

	record, err := f.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, PhaseSucceeded, f.Phase())
	assert.Equal(t, 1, notify.mutations)
	require.Len(t, notify.successes, 1)
	assert.Contains(t, notify.successes[0], "Jane Doe")

	require.NotNil(t, api.createPayload)
	assert.Equal(t, "STUDENT", api.createPayload.Role)
	require.NotNil(t, api.createPayload.StudentID)
	assert.Equal(t, "CS2024001", *api.createPayload.StudentID)

	f.Settle()
	assert.Equal(t, PhaseEditing, f.Phase())
	assert.Empty(t, f.Draft().Email, "success resets the draft")
	assert.Equal(t, "student", f.Draft().Role)
}

func TestCreateFormStudentIDRequiredBeforeNetwork(t *testing.T) {
	api := &mockCollaborator{}
	f := NewCreateForm(api, nil, nil)
	draft := validStudentDraft()
	draft.StudentID = ""
	f.Apply(draft)

	_, err := f.Submit(context.Background())
	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrValidation.Code))
	assert.Contains(t, f.FieldErrors(), "student_id")
	assert.Nil(t, api.createPayload, "invalid drafts never reach the collaborator")
	assert.Equal(t, PhaseEditing, f.Phase())
}

func TestCreateFormTeacherSkipsStudentFields(t *testing.T) {
	api := &mockCollaborator{}
	f := NewCreateForm(api, nil, nil)
	draft := validStudentDraft()
	draft.Role = "teacher"
	draft.StudentID = ""
	draft.ClassYear = ""
	f.Apply(draft)

	_, err := f.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, api.createPayload)
	assert.Equal(t, "TEACHER", api.createPayload.Role)
	assert.Nil(t, api.createPayload.StudentID, "teachers carry no student_id")
}

func TestCreateFormPasswordScoreBoundary(t *testing.T) {
	// "abcdefgh" scores 2 (length + lowercase), "Abcdefgh" scores 3.
	f := NewCreateForm(&mockCollaborator{}, nil, nil)
	draft := validStudentDraft()
	draft.Password = "abcdefgh"
	f.Apply(draft)

	_, err := f.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, msgWeakPassword, f.FieldErrors()["password"])

	f.SetPassword("Abcdefgh")
	_, err = f.Submit(context.Background())
	require.NoError(t, err)
}

func TestCreateFormRejectsDisallowedDomain(t *testing.T) {
	f := NewCreateForm(&mockCollaborator{}, nil, nil)
	draft := validStudentDraft()
	draft.Email = "jane@example.com"
	f.Apply(draft)

	assert.Equal(t, msgInvalidDomain, f.EmailError())

	_, err := f.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, msgInvalidDomain, f.FieldErrors()["email"])
}

func TestCreateFormRoleFlipPreservesFields(t *testing.T) {
	f := NewCreateForm(&mockCollaborator{}, nil, nil)
	f.Apply(validStudentDraft())

	f.SetRole("teacher")
	assert.Equal(t, "Jane", f.Draft().FirstName)
	assert.Equal(t, "jane.doe@rbmi.in", f.Draft().Email)
	assert.Equal(t, "CS2024001", f.Draft().StudentID, "entered values survive a role flip")

	f.SetRole("student")
	assert.Equal(t, "CS2024001", f.Draft().StudentID)
}

func TestCreateFormFailureRetainsFields(t *testing.T) {
	api := &mockCollaborator{createErr: appErrors.Clone(appErrors.ErrValidation, "Email already registered")}
	notify := &recordingNotifier{}
	f := NewCreateForm(api, notify, nil)
	f.Apply(validStudentDraft())

	_, err := f.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, PhaseFailed, f.Phase())
	require.Len(t, notify.errors, 1)
	assert.Equal(t, "Email already registered", notify.errors[0])
	assert.Zero(t, notify.mutations)

	f.Settle()
	assert.Equal(t, PhaseEditing, f.Phase())
	assert.Equal(t, "jane.doe@rbmi.in", f.Draft().Email, "failure keeps the draft for correction")
}

func TestCreateFormDoubleSubmit(t *testing.T) {
	f := NewCreateForm(&mockCollaborator{}, nil, nil)
	f.Apply(validStudentDraft())
	f.phase = PhaseSubmitting

	_, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitInFlight)
}

func TestCreateFormBlankPhoneIsNull(t *testing.T) {
	api := &mockCollaborator{}
	f := NewCreateForm(api, nil, nil)
	draft := validStudentDraft()
	draft.PhoneNumber = ""
	f.Apply(draft)

	_, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Nil(t, api.createPayload.PhoneNumber)
}

func TestCreateFormEmailAssist(t *testing.T) {
	f := NewCreateForm(&mockCollaborator{}, nil, nil)

	f.SetEmail("jane")
	assert.True(t, f.Assist().Shown())
	assert.Equal(t, []string{"gmail.com", "rbmi.in", "yahoo.com", "outlook.com", "hotmail.com"}, f.Assist().Suggestions())

	f.ChooseDomain("rbmi.in")
	assert.Equal(t, "jane@rbmi.in", f.Draft().Email)
	assert.False(t, f.Assist().Shown())
	assert.Empty(t, f.EmailError())
}

func TestCreateFormGeneratePasswordIsStrong(t *testing.T) {
	f := NewCreateForm(&mockCollaborator{}, nil, nil)

	generated := f.GeneratePassword()
	assert.Len(t, generated, 12)
	require.NotNil(t, f.Assessment())
	assert.Equal(t, "strong", string(f.Assessment().Strength))
}
