package form

import (
	"errors"
	"testing"

	"github.com/vineetm1204-m/ODAutomation/internal/model"
	apperrors "github.com/vineetm1204-m/ODAutomation/pkg/errors"
)

func strPtr(s string) *string { return &s }

// ════════════════════════════════════════════════════════════
// Form state
// ════════════════════════════════════════════════════════════

func TestAddSubject_StudentsLayout(t *testing.T) {
	f := New(LayoutStudents)
	id := f.AddSubject()

	if id != 1 {
		t.Fatalf("first subject id = %d, want 1", id)
	}
	if len(f.Subjects) != 1 || len(f.Subjects[0].Students) != 1 {
		t.Fatalf("expected one subject with one default student, got %+v", f.Subjects)
	}
	if len(f.Subjects[0].Sections) != 0 {
		t.Error("students layout must not create sections")
	}
}

func TestAddSubject_SectionsLayout(t *testing.T) {
	f := New(LayoutSections)
	f.AddSubject()

	b := f.Subjects[0]
	if len(b.Students) != 0 {
		t.Error("sections layout keeps students inside sections")
	}
	if len(b.Sections) != 1 || len(b.Sections[0].Students) != 1 {
		t.Fatalf("expected one default section with one student, got %+v", b.Sections)
	}
}

func TestNew_UnknownLayoutFallsBack(t *testing.T) {
	if f := New("grid"); f.Layout != LayoutStudents {
		t.Errorf("layout = %q, want %q", f.Layout, LayoutStudents)
	}
}

func TestIDsNeverReused(t *testing.T) {
	f := New(LayoutStudents)
	a := f.AddSubject()
	f.RemoveSubject(a)
	b := f.AddSubject()
	f.Reset()
	c := f.AddSubject()

	if a == b || b == c || a == c {
		t.Fatalf("ids reused: %d %d %d", a, b, c)
	}
}

func TestRemoveSubject_MissingIsNoop(t *testing.T) {
	f := New(LayoutStudents)
	f.AddSubject()
	f.AddSubject()

	f.RemoveSubject(99)
	if len(f.Subjects) != 2 {
		t.Fatalf("removing a missing id changed the form: %d subjects", len(f.Subjects))
	}

	f.RemoveSubject(1)
	if len(f.Subjects) != 1 || f.Subjects[0].ID != 2 {
		t.Fatalf("unexpected subjects after removal: %+v", f.Subjects)
	}
}

func TestUpdateSubject(t *testing.T) {
	f := New(LayoutStudents)
	id := f.AddSubject()

	err := f.UpdateSubject(id, SubjectPatch{SubjectCode: strPtr("CS101"), Time: strPtr("09:15 AM - 10:10 AM")})
	if err != nil {
		t.Fatalf("UpdateSubject failed: %v", err)
	}
	b := f.Subjects[0]
	if b.SubjectCode != "CS101" || b.Time != "09:15 AM - 10:10 AM" || b.Faculty != "" {
		t.Errorf("patch applied incorrectly: %+v", b)
	}

	if err := f.UpdateSubject(42, SubjectPatch{}); !errors.Is(err, ErrSubjectNotFound) {
		t.Errorf("expected ErrSubjectNotFound, got %v", err)
	}
}

func TestSectionsAndStudents(t *testing.T) {
	f := New(LayoutSections)
	subj := f.AddSubject()

	secID, err := f.AddSection(subj)
	if err != nil {
		t.Fatalf("AddSection failed: %v", err)
	}
	if err := f.UpdateSection(secID, SectionPatch{ClassName: strPtr("CSE"), SectionName: strPtr("A")}); err != nil {
		t.Fatalf("UpdateSection failed: %v", err)
	}
	stID, err := f.AddSectionStudent(secID)
	if err != nil {
		t.Fatalf("AddSectionStudent failed: %v", err)
	}
	if err := f.UpdateStudent(stID, "Alice"); err != nil {
		t.Fatalf("UpdateStudent failed: %v", err)
	}

	sec := f.Subjects[0].Sections[1]
	if sec.ClassName != "CSE" || sec.SectionName != "A" {
		t.Errorf("section not updated: %+v", sec)
	}
	if len(sec.Students) != 2 || sec.Students[1].Name != "Alice" {
		t.Errorf("student not added to section: %+v", sec.Students)
	}

	f.RemoveStudent(stID)
	if len(f.Subjects[0].Sections[1].Students) != 1 {
		t.Error("student not removed")
	}
	f.RemoveSection(secID)
	if len(f.Subjects[0].Sections) != 1 {
		t.Error("section not removed")
	}

	if _, err := f.AddSection(99); !errors.Is(err, ErrSubjectNotFound) {
		t.Errorf("expected ErrSubjectNotFound, got %v", err)
	}
	if _, err := f.AddSectionStudent(99); !errors.Is(err, ErrSectionNotFound) {
		t.Errorf("expected ErrSectionNotFound, got %v", err)
	}
	if err := f.UpdateStudent(99, "x"); !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("expected ErrStudentNotFound, got %v", err)
	}

	var ve *apperrors.ValidationError
	if !errors.As(ErrSectionNotFound, &ve) {
		t.Error("not-found errors should be validation errors")
	}
}

func TestSnapshot_TrimsAndDropsEmptyNames(t *testing.T) {
	f := New(LayoutStudents)
	id := f.AddSubject()
	_ = f.UpdateSubject(id, SubjectPatch{SubjectCode: strPtr("  CS101 - OS "), Faculty: strPtr("Dr. Rao"), Time: strPtr("09:15 AM - 10:10 AM")})
	st, _ := f.AddStudent(id)
	_ = f.UpdateStudent(st, " Bob ")

	snap := f.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(snap))
	}
	if snap[0].Name != "CS101 - OS" {
		t.Errorf("name = %q", snap[0].Name)
	}
	if len(snap[0].Students) != 1 || snap[0].Students[0] != "Bob" {
		t.Errorf("students = %v, want [Bob]", snap[0].Students)
	}
}

// ════════════════════════════════════════════════════════════
// Auto-fill
// ════════════════════════════════════════════════════════════

var sampleEntries = []model.TimetableEntry{
	{Day: "Monday", Time: "09:15 AM - 10:10 AM", Subject: "CS101", Faculty: "Dr. Rao"},
	{Day: "Monday", Time: "10:15 AM - 11:10 AM", Subject: "MA201", Faculty: "Dr. Iyer"},
	{Day: "Monday", Time: "09:15 AM - 10:10 AM", Subject: "CS102", Faculty: "Dr. Sen"},
	{Day: "Tuesday", Time: "09:15 AM - 10:10 AM", Subject: "PH101", Faculty: "Dr. Das"},
}

func TestMatch_PreservesOrder(t *testing.T) {
	got, err := Match(sampleEntries, "Monday", "09:15 AM - 10:10 AM")
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if len(got) != 2 || got[0].Subject != "CS101" || got[1].Subject != "CS102" {
		t.Fatalf("unexpected matches: %+v", got)
	}
}

func TestMatch_CaseSensitive(t *testing.T) {
	if _, err := Match(sampleEntries, "monday", "09:15 AM - 10:10 AM"); !errors.Is(err, ErrNoMatch) {
		t.Errorf("expected ErrNoMatch, got %v", err)
	}
}

func TestMatch_MissingSelector(t *testing.T) {
	for _, tc := range []struct{ day, slot string }{{"", "x"}, {"Monday", ""}, {"", ""}} {
		if _, err := Match(sampleEntries, tc.day, tc.slot); !errors.Is(err, ErrMissingSelector) {
			t.Errorf("Match(%q, %q) = %v, want ErrMissingSelector", tc.day, tc.slot, err)
		}
	}
}

func TestAutoFill_ReplacesForm(t *testing.T) {
	f := New(LayoutStudents)
	f.AddSubject()
	f.AddSubject()

	n, err := f.AutoFill(sampleEntries, "Monday", "09:15 AM - 10:10 AM", ClearOnMatch)
	if err != nil {
		t.Fatalf("AutoFill failed: %v", err)
	}
	if n != 2 || len(f.Subjects) != 2 {
		t.Fatalf("expected 2 subjects, got n=%d len=%d", n, len(f.Subjects))
	}
	b := f.Subjects[0]
	if b.SubjectCode != "CS101" || b.Faculty != "Dr. Rao" || b.Time != "09:15 AM - 10:10 AM" {
		t.Errorf("subject not pre-populated: %+v", b)
	}
	if len(b.Students) != 1 || b.Students[0].Name != "" {
		t.Errorf("expected one empty default student, got %+v", b.Students)
	}
	if b.ID <= 2 {
		t.Errorf("auto-filled subject reused an id: %d", b.ID)
	}
}

func TestAutoFill_NoMatchClearModes(t *testing.T) {
	f := New(LayoutStudents)
	f.AddSubject()

	if _, err := f.AutoFill(sampleEntries, "Friday", "09:15 AM - 10:10 AM", ClearOnMatch); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
	if len(f.Subjects) != 1 {
		t.Error("on_match mode must leave the form untouched when nothing matches")
	}

	if _, err := f.AutoFill(sampleEntries, "", "", ClearAlways); !errors.Is(err, ErrMissingSelector) {
		t.Fatalf("expected ErrMissingSelector, got %v", err)
	}
	if len(f.Subjects) != 1 {
		t.Error("a missing selector never clears the form")
	}

	if _, err := f.AutoFill(sampleEntries, "Friday", "09:15 AM - 10:10 AM", ClearAlways); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
	if len(f.Subjects) != 0 {
		t.Error("always mode clears the form even without a match")
	}
}

// ════════════════════════════════════════════════════════════
// View
// ════════════════════════════════════════════════════════════

func TestView(t *testing.T) {
	f := New(LayoutStudents)
	a := f.AddSubject()
	f.AddSubject()
	_ = f.UpdateSubject(a, SubjectPatch{SubjectCode: strPtr("CS101"), Faculty: strPtr("Dr. Rao"), Time: strPtr("08:00 AM - 08:50 AM")})
	f.RemoveSubject(a)
	c := f.AddSubject()
	_ = f.UpdateSubject(c, SubjectPatch{SubjectCode: strPtr("MA201"), Faculty: strPtr("Dr. Iyer"), Time: strPtr(DefaultTimeSlots[1])})

	v := f.View()
	if len(v.Cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(v.Cards))
	}
	if v.Cards[0].Title != "Subject 1" || v.Cards[1].Title != "Subject 2" {
		t.Errorf("titles follow position: %q, %q", v.Cards[0].Title, v.Cards[1].Title)
	}
	if v.Cards[0].Complete || !v.Cards[1].Complete || v.CompleteCount != 1 {
		t.Errorf("completeness wrong: %+v", v)
	}

	opts := v.Cards[1].TimeOptions
	if len(opts) != len(DefaultTimeSlots) {
		t.Fatalf("a default slot must not add an option, got %d", len(opts))
	}
	if !opts[1].Selected || opts[0].Selected {
		t.Error("selected slot not marked")
	}
}

func TestView_CustomTimeAppended(t *testing.T) {
	f := New(LayoutStudents)
	id := f.AddSubject()
	_ = f.UpdateSubject(id, SubjectPatch{Time: strPtr("08:00 AM - 08:50 AM")})

	opts := f.View().Cards[0].TimeOptions
	last := opts[len(opts)-1]
	if len(opts) != len(DefaultTimeSlots)+1 || last.Value != "08:00 AM - 08:50 AM" || !last.Selected {
		t.Errorf("custom time not appended as selected option: %+v", last)
	}
}
