package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/vineetm1204-m/ODAutomation/internal/dto"
	"github.com/vineetm1204-m/ODAutomation/internal/form"
)

func strPtr(s string) *string { return &s }

func TestFormService_NewSessionHasOneSubject(t *testing.T) {
	svc := NewFormService(newTestRepo(), form.LayoutStudents, form.ClearOnMatch, nil, zap.NewNop())

	view, err := svc.Get(context.Background(), "sid")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(view.Cards) != 1 || view.Cards[0].Title != "Subject 1" {
		t.Fatalf("unexpected initial form: %+v", view.Cards)
	}
}

func TestFormService_EditsPersist(t *testing.T) {
	svc := NewFormService(newTestRepo(), form.LayoutStudents, form.ClearOnMatch, nil, zap.NewNop())
	ctx := context.Background()

	view, _ := svc.Get(ctx, "sid")
	first := view.Cards[0].ID

	created, err := svc.AddSubject(ctx, "sid")
	if err != nil {
		t.Fatalf("AddSubject failed: %v", err)
	}
	if created.ID == first || len(created.Form.Cards) != 2 {
		t.Fatalf("unexpected create response: %+v", created)
	}

	if _, err := svc.UpdateSubject(ctx, "sid", created.ID, &dto.UpdateSubjectRequest{Faculty: strPtr("Dr. Rao")}); err != nil {
		t.Fatalf("UpdateSubject failed: %v", err)
	}
	st, err := svc.AddStudent(ctx, "sid", created.ID)
	if err != nil {
		t.Fatalf("AddStudent failed: %v", err)
	}
	if _, err := svc.UpdateStudent(ctx, "sid", st.ID, &dto.UpdateStudentRequest{Name: "Alice"}); err != nil {
		t.Fatalf("UpdateStudent failed: %v", err)
	}

	view, _ = svc.Get(ctx, "sid")
	card := view.Cards[1]
	if card.Faculty != "Dr. Rao" || len(card.Students) != 2 || card.Students[1].Name != "Alice" {
		t.Errorf("edits not persisted: %+v", card)
	}

	view, _ = svc.RemoveSubject(ctx, "sid", first)
	if len(view.Cards) != 1 || view.Cards[0].Title != "Subject 1" {
		t.Errorf("cards should be re-titled by position: %+v", view.Cards)
	}

	if _, err := svc.UpdateSubject(ctx, "sid", 999, &dto.UpdateSubjectRequest{}); !errors.Is(err, form.ErrSubjectNotFound) {
		t.Errorf("expected ErrSubjectNotFound, got %v", err)
	}

	view, _ = svc.Reset(ctx, "sid")
	if len(view.Cards) != 0 {
		t.Errorf("reset should clear the form, got %d cards", len(view.Cards))
	}
}

func TestFormService_SessionsAreIsolated(t *testing.T) {
	svc := NewFormService(newTestRepo(), form.LayoutStudents, form.ClearOnMatch, nil, zap.NewNop())
	ctx := context.Background()

	_, _ = svc.AddSubject(ctx, "a")
	view, _ := svc.Get(ctx, "b")
	if len(view.Cards) != 1 {
		t.Errorf("session b sees session a's edits: %d cards", len(view.Cards))
	}
}

func TestFormService_Sections(t *testing.T) {
	svc := NewFormService(newTestRepo(), form.LayoutSections, form.ClearOnMatch, nil, zap.NewNop())
	ctx := context.Background()

	view, _ := svc.Get(ctx, "sid")
	subj := view.Cards[0].ID
	if len(view.Cards[0].Sections) != 1 {
		t.Fatalf("sections layout should start with one section: %+v", view.Cards[0])
	}

	sec, err := svc.AddSection(ctx, "sid", subj)
	if err != nil {
		t.Fatalf("AddSection failed: %v", err)
	}
	if _, err := svc.UpdateSection(ctx, "sid", sec.ID, &dto.UpdateSectionRequest{ClassName: strPtr("III CSE"), SectionName: strPtr("B")}); err != nil {
		t.Fatalf("UpdateSection failed: %v", err)
	}
	st, err := svc.AddSectionStudent(ctx, "sid", sec.ID)
	if err != nil {
		t.Fatalf("AddSectionStudent failed: %v", err)
	}
	view, _ = svc.RemoveStudent(ctx, "sid", st.ID)
	if got := view.Cards[0].Sections[1]; got.ClassName != "III CSE" || len(got.Students) != 1 {
		t.Errorf("unexpected section: %+v", got)
	}

	view, _ = svc.RemoveSection(ctx, "sid", sec.ID)
	if len(view.Cards[0].Sections) != 1 {
		t.Error("section not removed")
	}
}

func TestFormService_AutoFill(t *testing.T) {
	repo := newTestRepo()
	tt := NewTimetableService(repo, form.LayoutStudents, nil, zap.NewNop())
	svc := NewFormService(repo, form.LayoutStudents, form.ClearOnMatch, nil, zap.NewNop())
	ctx := context.Background()

	if _, err := tt.Import(ctx, "sid", "week.csv", strings.NewReader(sampleCSV)); err != nil {
		t.Fatal(err)
	}

	resp, err := svc.AutoFill(ctx, "sid", &dto.AutoFillRequest{Day: "Monday", Time: "10:15 AM - 11:10 AM"})
	if err != nil {
		t.Fatalf("AutoFill failed: %v", err)
	}
	if resp.Count != 1 || len(resp.Form.Cards) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	card := resp.Form.Cards[0]
	if card.SubjectCode != "MA201" || card.Faculty != "Dr. Iyer" || !card.Complete {
		t.Errorf("card not pre-populated: %+v", card)
	}

	_, err = svc.AutoFill(ctx, "sid", &dto.AutoFillRequest{Day: "Friday", Time: "10:15 AM - 11:10 AM"})
	if !errors.Is(err, form.ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
	view, _ := svc.Get(ctx, "sid")
	if len(view.Cards) != 1 {
		t.Error("on_match mode must keep the form when nothing matches")
	}

	if _, err := svc.AutoFill(ctx, "sid", &dto.AutoFillRequest{Day: "Monday"}); !errors.Is(err, form.ErrMissingSelector) {
		t.Fatalf("expected ErrMissingSelector, got %v", err)
	}
}

func TestFormService_AutoFillClearAlways(t *testing.T) {
	repo := newTestRepo()
	svc := NewFormService(repo, form.LayoutStudents, form.ClearAlways, nil, zap.NewNop())
	ctx := context.Background()

	_, err := svc.AutoFill(ctx, "sid", &dto.AutoFillRequest{Day: "Monday", Time: "09:15 AM - 10:10 AM"})
	if !errors.Is(err, form.ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch with an empty timetable, got %v", err)
	}
	view, _ := svc.Get(ctx, "sid")
	if len(view.Cards) != 0 {
		t.Errorf("always mode should clear and persist the form, got %d cards", len(view.Cards))
	}
}
