package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/vineetm1204-m/ODAutomation/internal/form"
)

const sampleCSV = `Day,Time,Subject,Faculty
Monday,09:15 AM - 10:10 AM,CS101,Dr. Rao
Monday,10:15 AM - 11:10 AM,MA201,Dr. Iyer
Tuesday,09:15 AM - 10:10 AM,PH101,Dr. Das
`

func TestTimetableService_ImportAndSlots(t *testing.T) {
	repo := newTestRepo()
	svc := NewTimetableService(repo, form.LayoutStudents, nil, zap.NewNop())
	ctx := context.Background()

	resp, err := svc.Import(ctx, "sid", "week.csv", strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if !resp.Success || resp.Count != 3 || len(resp.Data) != 3 {
		t.Fatalf("unexpected response: %+v", resp)
	}

	slots, err := svc.Slots(ctx, "sid")
	if err != nil {
		t.Fatalf("Slots failed: %v", err)
	}
	if strings.Join(slots.Days, "|") != "Monday|Tuesday" {
		t.Errorf("days = %v", slots.Days)
	}
	if strings.Join(slots.Times, "|") != "09:15 AM - 10:10 AM|10:15 AM - 11:10 AM" {
		t.Errorf("times = %v", slots.Times)
	}
}

func TestTimetableService_ImportReplaces(t *testing.T) {
	repo := newTestRepo()
	svc := NewTimetableService(repo, form.LayoutStudents, nil, zap.NewNop())
	ctx := context.Background()

	if _, err := svc.Import(ctx, "sid", "a.csv", strings.NewReader(sampleCSV)); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Import(ctx, "sid", "b.csv", strings.NewReader("Day,Time,Subject,Faculty\nMonday,,CS101,\n"))
	if !errors.Is(err, ErrTimetableNoValidEntries) {
		t.Fatalf("expected ErrTimetableNoValidEntries, got %v", err)
	}

	list, _ := svc.List(ctx, "sid")
	if list.Count != 0 {
		t.Errorf("a readable upload with no rows still replaces the timetable, got %d entries", list.Count)
	}
}

func TestTimetableService_UnreadableKeepsTimetable(t *testing.T) {
	repo := newTestRepo()
	svc := NewTimetableService(repo, form.LayoutStudents, nil, zap.NewNop())
	ctx := context.Background()

	if _, err := svc.Import(ctx, "sid", "a.csv", strings.NewReader(sampleCSV)); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Import(ctx, "sid", "b.csv", strings.NewReader("\xff\xfe")); !errors.Is(err, ErrTimetableReadFailure) {
		t.Fatalf("expected ErrTimetableReadFailure, got %v", err)
	}
	if _, err := svc.Import(ctx, "sid", "b.pdf", strings.NewReader("x")); !errors.Is(err, ErrTimetableUnsupportedFormat) {
		t.Fatalf("expected ErrTimetableUnsupportedFormat, got %v", err)
	}

	list, _ := svc.List(ctx, "sid")
	if list.Count != 3 {
		t.Errorf("failed uploads must not touch the stored timetable, got %d", list.Count)
	}
}

func TestTimetableService_RequiresSession(t *testing.T) {
	svc := NewTimetableService(newTestRepo(), form.LayoutStudents, nil, zap.NewNop())
	if _, err := svc.List(context.Background(), ""); !errors.Is(err, ErrSessionRequired) {
		t.Fatalf("expected ErrSessionRequired, got %v", err)
	}
}

func TestTimetableService_Template(t *testing.T) {
	svc := NewTimetableService(newTestRepo(), form.LayoutStudents, nil, zap.NewNop())

	buf, name, err := svc.Template()
	if err != nil {
		t.Fatalf("Template failed: %v", err)
	}
	if name != "timetable_template.xlsx" {
		t.Errorf("filename = %q", name)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("template is not a workbook: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(templateSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || strings.Join(rows[0], ",") != "Day,Time,Subject,Faculty" {
		t.Errorf("unexpected template rows: %v", rows)
	}
}
