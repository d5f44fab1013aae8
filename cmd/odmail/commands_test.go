package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/vineetm1204-m/ODAutomation/config"
	"github.com/vineetm1204-m/ODAutomation/internal/form"
	apperrors "github.com/vineetm1204-m/ODAutomation/pkg/errors"
)

const weekCSV = `Day,Time,Subject,Faculty
Monday,9:00 AM - 10:00 AM,CS101 - OS,Dr. Rao
Monday,9:00 AM - 10:00 AM,MA201 - Maths,Dr. Iyer
Tuesday,10:00 AM - 11:00 AM,PH101 - Physics,Dr. Das
`

func writeTimetable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "week.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func cliConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Email.Signature = "ACC Student Coordinator"
	cfg.Email.Timezone = "UTC"
	cfg.Feature.FormLayout = config.LayoutStudents
	return cfg
}

func TestGenerate(t *testing.T) {
	opts := &generateOptions{
		timetable:   writeTimetable(t, weekCSV),
		day:         "Monday",
		slot:        "9:00 AM - 10:00 AM",
		coordinator: "Dr. Singh",
		date:        "2024-03-15",
		students:    []string{"Alice", " Bob ", ""},
	}

	email, err := generate(cliConfig(), opts, zap.NewNop())
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !strings.Contains(email.Subject, "Friday, March 15, 2024") {
		t.Errorf("subject = %q", email.Subject)
	}
	for _, want := range []string{
		"1. Subject: CS101 - OS",
		"2. Subject: MA201 - Maths",
		"Students: Alice, Bob",
	} {
		if !strings.Contains(email.Body, want) {
			t.Errorf("body missing %q:\n%s", want, email.Body)
		}
	}
	if strings.Contains(email.Body, "PH101") {
		t.Error("unmatched entry leaked into the email")
	}
}

func TestGenerate_NoMatch(t *testing.T) {
	opts := &generateOptions{
		timetable:   writeTimetable(t, weekCSV),
		day:         "Friday",
		slot:        "9:00 AM - 10:00 AM",
		coordinator: "Dr. Singh",
		date:        "2024-03-15",
	}

	_, err := generate(cliConfig(), opts, zap.NewNop())
	if !errors.Is(err, form.ErrNoMatch) {
		t.Errorf("expected ErrNoMatch, got %v", err)
	}
}

func TestLoadTimetable_NoEntries(t *testing.T) {
	_, err := loadTimetable(writeTimetable(t, "Day,Time,Subject,Faculty\n,,,\n"))
	if err == nil || !strings.Contains(err.Error(), "No valid entries") {
		t.Errorf("expected no valid entries error, got %v", err)
	}
}

func TestDistinctSlots(t *testing.T) {
	entries, err := loadTimetable(writeTimetable(t, weekCSV))
	if err != nil {
		t.Fatal(err)
	}
	days, times := distinctSlots(entries)
	if strings.Join(days, ",") != "Monday,Tuesday" {
		t.Errorf("days = %v", days)
	}
	if strings.Join(times, ",") != "9:00 AM - 10:00 AM,10:00 AM - 11:00 AM" {
		t.Errorf("times = %v", times)
	}
}

func TestReadBody(t *testing.T) {
	got, err := readBody("-", strings.NewReader("Respected Sir,"))
	if err != nil || got != "Respected Sir," {
		t.Errorf("stdin body = %q, %v", got, err)
	}
	if _, err := readBody("", strings.NewReader("  \n")); err == nil {
		t.Error("blank body should be rejected")
	}
}

func TestDescribeTransport(t *testing.T) {
	te := &apperrors.TransportError{Kind: apperrors.TransportAuth, Op: "verify", Err: errors.New("535")}
	err := describeTransport(te)
	if !strings.HasPrefix(err.Error(), "EAUTH: ") {
		t.Errorf("error = %q", err.Error())
	}
	if !errors.Is(err, te) {
		t.Error("described error should wrap the transport error")
	}

	plain := errors.New("x")
	if describeTransport(plain) != plain {
		t.Error("non-transport errors pass through")
	}
}
