// Package export renders back office data as CSV.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/anonto42/pegawe/backend/internal/models"
)

// Format names one of the exportable data sets
type Format string

const (
	FormatJobs         Format = "jobs"
	FormatApplications Format = "applications"
	FormatUsers        Format = "users"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names
var ErrUnknownFormat = errors.New("unknown export format")

var (
	jobsHeader         = []string{"ID", "Title", "Company", "Location", "Type", "Salary", "Category", "Created At", "Active"}
	applicationsHeader = []string{"Application ID", "Job Title", "Company", "Applicant Name", "Applicant Email", "Status", "Cover Letter", "Resume URL", "Applied At"}
	usersHeader        = []string{"Name", "Email", "Phone", "Created At"}
)

// ParseFormat validates a requested format name
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatJobs, FormatApplications, FormatUsers:
		return f, nil
	}
	return "", fmt.Errorf("%w %q: expected jobs, applications or users", ErrUnknownFormat, name)
}

// Filename returns the attachment name for an export made on day now
func Filename(f Format, now time.Time) string {
	return fmt.Sprintf("%s_export_%s.csv", f, now.UTC().Format("2006-01-02"))
}

// WriteJobs writes one row per job
func WriteJobs(w io.Writer, jobs []models.Job) error {
	rows := make([][]string, 0, len(jobs))
	for _, job := range jobs {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(job.ID), 10),
			job.Title,
			job.Company,
			job.Location,
			string(job.Type),
			job.Salary,
			string(job.Category),
			formatTime(job.CreatedAt),
			strconv.FormatBool(job.IsActive),
		})
	}
	return write(w, jobsHeader, rows)
}

// WriteApplications writes one row per application. Job and User must be loaded.
func WriteApplications(w io.Writer, apps []models.Application) error {
	rows := make([][]string, 0, len(apps))
	for _, app := range apps {
		var jobTitle, company, name, email string
		if app.Job != nil {
			jobTitle, company = app.Job.Title, app.Job.Company
		}
		if app.User != nil {
			name, email = app.User.Name, app.User.Email
		}
		if name == "" {
			name = "Anonymous"
		}
		rows = append(rows, []string{
			strconv.FormatUint(uint64(app.ID), 10),
			jobTitle,
			company,
			name,
			email,
			string(app.Status),
			app.CoverLetter,
			app.ResumeURL,
			formatTime(app.CreatedAt),
		})
	}
	return write(w, applicationsHeader, rows)
}

// WriteUsers writes one row per distinct email, keeping the first occurrence
func WriteUsers(w io.Writer, users []models.User) error {
	seen := make(map[string]struct{}, len(users))
	rows := make([][]string, 0, len(users))
	for _, user := range users {
		key := strings.ToLower(user.Email)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		rows = append(rows, []string{user.Name, user.Email, user.Phone, formatTime(user.CreatedAt)})
	}
	return write(w, usersHeader, rows)
}

func write(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
