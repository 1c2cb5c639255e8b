package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/macquiz/admin-console-api/internal/directory"
	"github.com/macquiz/admin-console-api/internal/dto"
	"github.com/macquiz/admin-console-api/internal/form"
	"github.com/macquiz/admin-console-api/internal/models"
	appErrors "github.com/macquiz/admin-console-api/pkg/errors"
)

type auditRecorder interface {
	Insert(ctx context.Context, entry *models.AuditEntry) error
}

type lookupInvalidator interface {
	InvalidateLookups(ctx context.Context) error
}

type userDirectory interface {
	Refresh(ctx context.Context) error
	Signal(ctx context.Context)
	Snapshot() []models.UserRecord
	Find(id string) (models.UserRecord, bool)
	Search(filter, query string) []models.UserRecord
	Delete(ctx context.Context, id string, confirmed bool) error
}

// ProvisionOutcome carries a submission result back to the transport layer:
// the record on success, field errors when local validation failed.
type ProvisionOutcome struct {
	Record      *models.UserRecord
	FieldErrors form.FieldErrors
}

// ProvisionService orchestrates the create/edit/delete workflows: it runs the
// form machines over each request, keeps the directory snapshot fresh, and
// records the audit trail.
type ProvisionService struct {
	api       form.Collaborator
	directory userDirectory
	audit     auditRecorder
	cache     lookupInvalidator
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewProvisionService constructs a ProvisionService. audit, cache and
// metrics may be nil when the trail, Redis or instrumentation is disabled.
func NewProvisionService(api form.Collaborator, dir userDirectory, audit auditRecorder, cache lookupInvalidator, metrics *MetricsService, logger *zap.Logger) *ProvisionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProvisionService{
		api:       api,
		directory: dir,
		audit:     audit,
		cache:     cache,
		metrics:   metrics,
		logger:    logger,
	}
}

// notifier bridges form outcomes to the log, the directory and the lookup
// cache.
type notifier struct {
	svc *ProvisionService
	ctx context.Context
}

func (n notifier) Success(message string) {
	n.svc.logger.Info("provisioning succeeded", zap.String("message", message))
}

func (n notifier) Error(message string) {
	n.svc.logger.Warn("provisioning failed", zap.String("message", message))
}

func (n notifier) UserMutated() {
	n.svc.directory.Signal(n.ctx)
	if n.svc.cache != nil {
		if err := n.svc.cache.InvalidateLookups(n.ctx); err != nil {
			n.svc.logger.Warn("lookup cache invalidation failed", zap.Error(err))
		}
	}
}

// CreateUser runs the create-form machine over a submitted draft.
func (s *ProvisionService) CreateUser(ctx context.Context, actor *models.JWTClaims, draft dto.UserDraft) (*ProvisionOutcome, error) {
	f := form.NewCreateForm(s.api, notifier{svc: s, ctx: ctx}, s.logger)
	f.Apply(draft)

	record, err := f.Submit(ctx)
	s.record(ctx, actor, models.AuditActionCreate, draft.Email, draft.Role, err)
	f.Settle()

	if err != nil {
		return &ProvisionOutcome{FieldErrors: f.FieldErrors()}, err
	}
	return &ProvisionOutcome{Record: record}, nil
}

// UpdateUser runs the edit-form machine over a submitted patch. The target is
// resolved from the directory snapshot; administrator accounts are immutable.
func (s *ProvisionService) UpdateUser(ctx context.Context, actor *models.JWTClaims, id string, patch dto.UserPatch) (*ProvisionOutcome, error) {
	target, found := s.directory.Find(id)
	if !found {
		if err := s.directory.Refresh(ctx); err != nil {
			return nil, err
		}
		target, found = s.directory.Find(id)
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	if target.Role == models.RoleAdmin {
		return nil, directory.ErrAdminImmutable
	}

	f := form.NewEditForm(target, s.api, notifier{svc: s, ctx: ctx}, s.logger)
	f.Apply(patch)

	record, err := f.Submit(ctx)
	s.record(ctx, actor, models.AuditActionUpdate, target.Email, target.Role.Lower(), err)
	f.Settle()

	if err != nil {
		return &ProvisionOutcome{FieldErrors: f.FieldErrors()}, err
	}
	return &ProvisionOutcome{Record: record}, nil
}

// DeleteUser removes an account through the directory's confirm-gated path.
func (s *ProvisionService) DeleteUser(ctx context.Context, actor *models.JWTClaims, id string, confirmed bool) error {
	target, _ := s.directory.Find(id)

	err := s.directory.Delete(ctx, id, confirmed)
	if !isDeleteGate(err) {
		// Attempts that reached the upstream are audited whether or not
		// the removal succeeded; local gating failures are not.
		s.record(ctx, actor, models.AuditActionDelete, target.Email, target.Role.Lower(), err)
	}
	if err == nil && s.cache != nil {
		if cacheErr := s.cache.InvalidateLookups(ctx); cacheErr != nil {
			s.logger.Warn("lookup cache invalidation failed", zap.Error(cacheErr))
		}
	}
	return err
}

// ListUsers returns the current snapshot filtered by role and search query,
// fetching it first when the directory is empty.
func (s *ProvisionService) ListUsers(ctx context.Context, filter, query string) ([]models.UserRecord, error) {
	if len(s.directory.Snapshot()) == 0 {
		if err := s.directory.Refresh(ctx); err != nil {
			return nil, err
		}
	}
	return s.directory.Search(filter, query), nil
}

// RefreshDirectory forces a full snapshot refetch.
func (s *ProvisionService) RefreshDirectory(ctx context.Context) error {
	return s.directory.Refresh(ctx)
}

// isDeleteGate reports whether a delete error came from one of the local
// gates, before anything was sent upstream.
func isDeleteGate(err error) bool {
	return appErrors.IsCode(err, directory.ErrConfirmRequired.Code) ||
		appErrors.IsCode(err, directory.ErrAdminImmutable.Code) ||
		appErrors.IsCode(err, appErrors.ErrNotFound.Code)
}

// record counts the action and appends it to the audit trail. Trail failures
// are logged, never surfaced: the provisioning outcome already happened.
func (s *ProvisionService) record(ctx context.Context, actor *models.JWTClaims, action, targetEmail, targetRole string, outcome error) {
	result := models.AuditOutcomeSucceeded
	if outcome != nil {
		result = models.AuditOutcomeFailed
	}
	s.metrics.ObserveProvisionAction(action, result)

	if s.audit == nil {
		return
	}

	entry := &models.AuditEntry{
		Action:      action,
		TargetEmail: targetEmail,
		TargetRole:  targetRole,
		Outcome:     result,
	}
	if actor != nil {
		entry.ActorID = actor.UserID
	}
	if outcome != nil {
		detail := appErrors.FromError(outcome).Message
		entry.Detail = &detail
	}

	if err := s.audit.Insert(ctx, entry); err != nil {
		s.logger.Warn("audit insert failed",
			zap.String("action", action),
			zap.Error(err),
		)
	}
}
