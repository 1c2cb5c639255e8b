package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/macquiz/admin-console-api/internal/directory"
	"github.com/macquiz/admin-console-api/internal/models"
	"github.com/macquiz/admin-console-api/internal/repository"
	"github.com/macquiz/admin-console-api/pkg/config"
	appErrors "github.com/macquiz/admin-console-api/pkg/errors"
	"github.com/macquiz/admin-console-api/pkg/export"
)

// Export formats supported by the lookup views.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

type lookupCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// LookupExport is a rendered activity-lookup download.
type LookupExport struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// LookupService serves the read-only activity lookup views: role-scoped user
// lists with search, plus CSV/PDF downloads of the visible rows.
type LookupService struct {
	directory userDirectory
	cache     lookupCache
	csv       csvRenderer
	pdf       pdfRenderer
	cfg       config.LookupConfig
	logger    *zap.Logger
	now       func() time.Time
}

// NewLookupService constructs a LookupService. cache may be nil when Redis
// is disabled.
func NewLookupService(dir userDirectory, cache lookupCache, cfg config.LookupConfig, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *LookupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Minute
	}
	return &LookupService{
		directory: dir,
		cache:     cache,
		csv:       csv,
		pdf:       pdf,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// List returns the role's user list, optionally narrowed by a search query.
// The unfiltered role list is cached; searches always filter the fresh copy.
func (s *LookupService) List(ctx context.Context, role models.Role, query string) ([]models.UserRecord, error) {
	if role != models.RoleTeacher && role != models.RoleStudent {
		return nil, appErrors.Clone(appErrors.ErrValidation, "lookup views cover teachers and students only")
	}

	users, err := s.roleList(ctx, role)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return users, nil
	}

	out := make([]models.UserRecord, 0, len(users))
	for _, u := range users {
		if matchLookup(u, query) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *LookupService) roleList(ctx context.Context, role models.Role) ([]models.UserRecord, error) {
	key := repository.LookupKey(role.Lower())

	if s.cache != nil {
		var cached []models.UserRecord
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return cached, nil
		} else if !appErrors.IsCode(err, appErrors.ErrCacheMiss.Code) {
			s.logger.Warn("lookup cache read failed", zap.Error(err))
		}
	}

	if len(s.directory.Snapshot()) == 0 {
		if err := s.directory.Refresh(ctx); err != nil {
			return nil, err
		}
	}
	users := s.directory.Search(role.Lower(), "")

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, users, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("lookup cache write failed", zap.Error(err))
		}
	}
	return users, nil
}

// Export renders the visible rows of a lookup view as a download.
func (s *LookupService) Export(ctx context.Context, role models.Role, query, format string) (*LookupExport, error) {
	users, err := s.List(ctx, role, query)
	if err != nil {
		return nil, err
	}

	dataset := buildLookupDataset(role, users)
	title := fmt.Sprintf("%s Activity Lookup", rolePluralTitle(role))

	var payload []byte
	var contentType string
	switch format {
	case FormatCSV, "":
		format = FormatCSV
		contentType = "text/csv"
		payload, err = s.csv.Render(dataset)
	case FormatPDF:
		contentType = "application/pdf"
		payload, err = s.pdf.Render(dataset, title)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("%s_complete_details_%s.%s", rolePlural(role), s.now().UTC().Format("2006-01-02"), format)
	return &LookupExport{Filename: filename, ContentType: contentType, Payload: payload}, nil
}

// buildLookupDataset flattens records into the export table. Student views
// carry two extra columns; missing values render as "N/A" and a null
// last-active as "Never".
func buildLookupDataset(role models.Role, users []models.UserRecord) export.Dataset {
	student := role == models.RoleStudent

	headers := []string{"Sr. No.", "First Name", "Last Name", "Email", "Phone Number", "Department", "Role", "Created At", "Last Active", "Status"}
	if student {
		headers = []string{"Sr. No.", "Student ID", "First Name", "Last Name", "Email", "Phone Number", "Department", "Class/Year", "Role", "Created At", "Last Active", "Status"}
	}

	rows := make([]map[string]string, 0, len(users))
	for i, u := range users {
		row := map[string]string{
			"Sr. No.":      fmt.Sprintf("%d", i+1),
			"First Name":   u.FirstName,
			"Last Name":    u.LastName,
			"Email":        u.Email,
			"Phone Number": orNA(u.PhoneNumber),
			"Department":   orNA(u.Department),
			"Role":         u.Role.Lower(),
			"Created At":   formatCreatedAt(u.CreatedAt),
			"Last Active":  formatLastActive(u.LastActive),
			"Status":       statusLabel(u.IsActive),
		}
		if student {
			row["Student ID"] = orNA(u.StudentID)
			row["Class/Year"] = orNA(u.ClassYear)
		}
		rows = append(rows, row)
	}

	return export.Dataset{Headers: headers, Rows: rows}
}

func matchLookup(u models.UserRecord, query string) bool {
	return directory.MatchSearch(u, query)
}

func orNA(value *string) string {
	if value == nil || *value == "" {
		return "N/A"
	}
	return *value
}

func statusLabel(active bool) string {
	if active {
		return "Active"
	}
	return "Inactive"
}

func formatCreatedAt(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("Jan 2, 2006")
}

func formatLastActive(t *time.Time) string {
	if t == nil {
		return "Never"
	}
	return t.Format("Jan 2, 2006, 03:04 PM")
}

func rolePlural(role models.Role) string {
	return role.Lower() + "s"
}

func rolePluralTitle(role models.Role) string {
	switch role {
	case models.RoleTeacher:
		return "Teachers"
	case models.RoleStudent:
		return "Students"
	}
	return string(role)
}
