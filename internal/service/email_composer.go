package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/vineetm1204-m/ODAutomation/internal/model"
	apperrors "github.com/vineetm1204-m/ODAutomation/pkg/errors"
)

var (
	ErrEmailMissingFields     = apperrors.NewValidation("Missing required fields")
	ErrEmailInvalidDate       = apperrors.NewValidation("Date must be in YYYY-MM-DD format")
	ErrEmailNoCompleteSubject = apperrors.NewValidation("Add at least one subject with subject, faculty and time filled in")
)

const (
	DefaultSignature = "ACC Student Coordinator"

	requestDateLayout = "2006-01-02"
	longDateLayout    = "Monday, January 2, 2006"
	generatedAtLayout = "1/2/2006, 3:04:05 PM"
)

// Email a composed message
type Email struct {
	Subject string
	Body    string
}

// Composer renders EmailRequests into the fixed OD approval template. It is
// pure apart from the clock used for the trailing timestamp.
type Composer struct {
	Now                 func() time.Time
	Signature           string
	Location            *time.Location
	RequireClassSection bool
}

// NewComposer creates a Composer using the wall clock in loc
func NewComposer(signature string, loc *time.Location, requireClassSection bool) *Composer {
	if signature == "" {
		signature = DefaultSignature
	}
	if loc == nil {
		loc = time.Local
	}
	return &Composer{
		Now:                 time.Now,
		Signature:           signature,
		Location:            loc,
		RequireClassSection: requireClassSection,
	}
}

// Compose validates req and renders the email. Incomplete subjects are
// skipped and never consume a number.
func (c *Composer) Compose(req *model.EmailRequest) (*Email, error) {
	coordinator := strings.TrimSpace(req.Coordinator)
	classSection := strings.TrimSpace(req.ClassSection)
	if coordinator == "" || strings.TrimSpace(req.Date) == "" || len(req.Subjects) == 0 {
		return nil, ErrEmailMissingFields
	}
	if c.RequireClassSection && classSection == "" {
		return nil, ErrEmailMissingFields
	}

	day, err := time.ParseInLocation(requestDateLayout, strings.TrimSpace(req.Date), c.location())
	if err != nil {
		return nil, ErrEmailInvalidDate
	}

	blocks := renderSubjects(req.Subjects)
	if blocks == "" {
		return nil, ErrEmailNoCompleteSubject
	}

	date := day.Format(longDateLayout)
	subject := "Request for OD Approval – " + date

	scope := date
	if classSection != "" {
		scope += " for " + classSection
	}

	var b strings.Builder
	b.WriteString("Subject: " + subject + "\n\n")
	b.WriteString("Respected " + coordinator + ",\n\n")
	b.WriteString("I hope this email finds you in good health and spirits.\n\n")
	b.WriteString("I am writing to formally request On-Duty (OD) approval for the following academic session(s) scheduled on " + scope + ":\n\n")
	b.WriteString(blocks)
	b.WriteString("I kindly request your approval for the above-mentioned student(s) to be marked as On-Duty for the specified time slots. " +
		"This will ensure their attendance is not adversely affected due to their participation in the scheduled event/activity.\n\n")
	b.WriteString("Thank you for your time and consideration. I look forward to your positive response.\n\n")
	b.WriteString("Best regards,\n" + c.signature() + "\n\n")
	b.WriteString(c.now().In(c.location()).Format(generatedAtLayout))

	return &Email{Subject: subject, Body: b.String()}, nil
}

func renderSubjects(subjects []model.SubjectSnapshot) string {
	var b strings.Builder
	n := 0
	for _, s := range subjects {
		name := strings.TrimSpace(s.Name)
		faculty := strings.TrimSpace(s.Faculty)
		slot := strings.TrimSpace(s.Time)
		if name == "" || faculty == "" || slot == "" {
			continue
		}
		n++
		fmt.Fprintf(&b, "%d. Subject: %s\n   Faculty: %s\n   Time: %s\n", n, name, faculty, slot)

		if names := nonEmpty(s.Students); len(names) > 0 {
			b.WriteString("   Students: " + strings.Join(names, ", ") + "\n")
		}
		for _, sec := range s.Sections {
			names := nonEmpty(sec.Students)
			if len(names) == 0 {
				continue
			}
			label := strings.TrimSpace(strings.TrimSpace(sec.ClassName) + " " + strings.TrimSpace(sec.SectionName))
			if label == "" {
				b.WriteString("   Students: " + strings.Join(names, ", ") + "\n")
			} else {
				b.WriteString("   Students (" + label + "): " + strings.Join(names, ", ") + "\n")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func nonEmpty(list []string) []string {
	var out []string
	for _, s := range list {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (c *Composer) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *Composer) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

func (c *Composer) signature() string {
	if c.Signature == "" {
		return DefaultSignature
	}
	return c.Signature
}
