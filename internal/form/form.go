// Package form holds the OD form state for one session: subject blocks with
// their student rows (or, in the sections layout, class/section groups of
// students). All operations are synchronous and free of I/O; the caller
// persists the Form between requests.
package form

import (
	"strings"

	"github.com/vineetm1204-m/ODAutomation/internal/model"
	apperrors "github.com/vineetm1204-m/ODAutomation/pkg/errors"
)

// Layout decides where default student rows live
type Layout string

const (
	// LayoutStudents students hang directly off the subject
	LayoutStudents Layout = "students"
	// LayoutSections students are grouped into class/section blocks
	LayoutSections Layout = "sections"
)

var (
	ErrSubjectNotFound = apperrors.NewValidation("subject not found")
	ErrSectionNotFound = apperrors.NewValidation("section not found")
	ErrStudentNotFound = apperrors.NewValidation("student not found")
)

// StudentEntry one student-name row
type StudentEntry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// SectionBlock a class/section group owned by one subject
type SectionBlock struct {
	ID          int            `json:"id"`
	ClassName   string         `json:"className"`
	SectionName string         `json:"sectionName"`
	Students    []StudentEntry `json:"students"`
}

// SubjectBlock one subject card
type SubjectBlock struct {
	ID          int            `json:"id"`
	SubjectCode string         `json:"subjectCode"`
	Faculty     string         `json:"faculty"`
	Time        string         `json:"time"`
	Students    []StudentEntry `json:"students"`
	Sections    []SectionBlock `json:"sections"`
}

// Complete subject, faculty and time are all filled in
func (b *SubjectBlock) Complete() bool {
	return strings.TrimSpace(b.SubjectCode) != "" &&
		strings.TrimSpace(b.Faculty) != "" &&
		strings.TrimSpace(b.Time) != ""
}

// Counters next-id state. IDs are never reused within a session, so a
// removed block's id simply stops resolving.
type Counters struct {
	Subject int `json:"subject"`
	Section int `json:"section"`
	Student int `json:"student"`
}

// Form the whole form for one session
type Form struct {
	Layout   Layout         `json:"layout"`
	Subjects []SubjectBlock `json:"subjects"`
	Counters Counters       `json:"counters"`
}

// New returns an empty form
func New(layout Layout) *Form {
	if layout != LayoutSections {
		layout = LayoutStudents
	}
	return &Form{Layout: layout, Subjects: []SubjectBlock{}}
}

// SubjectPatch fields to overwrite; nil leaves a field unchanged
type SubjectPatch struct {
	SubjectCode *string
	Faculty     *string
	Time        *string
}

// SectionPatch fields to overwrite; nil leaves a field unchanged
type SectionPatch struct {
	ClassName   *string
	SectionName *string
}

// ── Subjects ──

// AddSubject appends an empty subject with its default empty row and
// returns the new subject id
func (f *Form) AddSubject() int {
	f.Counters.Subject++
	block := SubjectBlock{
		ID:       f.Counters.Subject,
		Students: []StudentEntry{},
		Sections: []SectionBlock{},
	}
	if f.Layout == LayoutSections {
		block.Sections = append(block.Sections, f.newSection())
	} else {
		block.Students = append(block.Students, f.newStudent())
	}
	f.Subjects = append(f.Subjects, block)
	return block.ID
}

// RemoveSubject deletes the subject; unknown ids are ignored
func (f *Form) RemoveSubject(id int) {
	for i := range f.Subjects {
		if f.Subjects[i].ID == id {
			f.Subjects = append(f.Subjects[:i], f.Subjects[i+1:]...)
			return
		}
	}
}

// UpdateSubject applies patch to the subject
func (f *Form) UpdateSubject(id int, patch SubjectPatch) error {
	b := f.subject(id)
	if b == nil {
		return ErrSubjectNotFound
	}
	if patch.SubjectCode != nil {
		b.SubjectCode = *patch.SubjectCode
	}
	if patch.Faculty != nil {
		b.Faculty = *patch.Faculty
	}
	if patch.Time != nil {
		b.Time = *patch.Time
	}
	return nil
}

// ── Sections ──

// AddSection appends an empty section (with one empty student row) to a
// subject and returns its id
func (f *Form) AddSection(subjectID int) (int, error) {
	b := f.subject(subjectID)
	if b == nil {
		return 0, ErrSubjectNotFound
	}
	sec := f.newSection()
	b.Sections = append(b.Sections, sec)
	return sec.ID, nil
}

// RemoveSection deletes the section; unknown ids are ignored
func (f *Form) RemoveSection(id int) {
	for i := range f.Subjects {
		secs := f.Subjects[i].Sections
		for j := range secs {
			if secs[j].ID == id {
				f.Subjects[i].Sections = append(secs[:j], secs[j+1:]...)
				return
			}
		}
	}
}

// UpdateSection applies patch to the section
func (f *Form) UpdateSection(id int, patch SectionPatch) error {
	sec := f.section(id)
	if sec == nil {
		return ErrSectionNotFound
	}
	if patch.ClassName != nil {
		sec.ClassName = *patch.ClassName
	}
	if patch.SectionName != nil {
		sec.SectionName = *patch.SectionName
	}
	return nil
}

// ── Students ──

// AddStudent appends an empty student row to a subject
func (f *Form) AddStudent(subjectID int) (int, error) {
	b := f.subject(subjectID)
	if b == nil {
		return 0, ErrSubjectNotFound
	}
	st := f.newStudent()
	b.Students = append(b.Students, st)
	return st.ID, nil
}

// AddSectionStudent appends an empty student row to a section
func (f *Form) AddSectionStudent(sectionID int) (int, error) {
	sec := f.section(sectionID)
	if sec == nil {
		return 0, ErrSectionNotFound
	}
	st := f.newStudent()
	sec.Students = append(sec.Students, st)
	return st.ID, nil
}

// RemoveStudent deletes the student row wherever it lives; unknown ids are
// ignored
func (f *Form) RemoveStudent(id int) {
	for i := range f.Subjects {
		b := &f.Subjects[i]
		if removeStudent(&b.Students, id) {
			return
		}
		for j := range b.Sections {
			if removeStudent(&b.Sections[j].Students, id) {
				return
			}
		}
	}
}

// UpdateStudent sets a student's name
func (f *Form) UpdateStudent(id int, name string) error {
	for i := range f.Subjects {
		b := &f.Subjects[i]
		if st := findStudent(b.Students, id); st != nil {
			st.Name = name
			return nil
		}
		for j := range b.Sections {
			if st := findStudent(b.Sections[j].Students, id); st != nil {
				st.Name = name
				return nil
			}
		}
	}
	return ErrStudentNotFound
}

// Reset drops every subject. Counters keep running.
func (f *Form) Reset() {
	f.Subjects = []SubjectBlock{}
}

// Snapshot converts the form into composer input, trimming every value and
// dropping empty student names
func (f *Form) Snapshot() []model.SubjectSnapshot {
	out := make([]model.SubjectSnapshot, 0, len(f.Subjects))
	for _, b := range f.Subjects {
		snap := model.SubjectSnapshot{
			Name:     strings.TrimSpace(b.SubjectCode),
			Faculty:  strings.TrimSpace(b.Faculty),
			Time:     strings.TrimSpace(b.Time),
			Students: studentNames(b.Students),
		}
		for _, sec := range b.Sections {
			snap.Sections = append(snap.Sections, model.SectionSnapshot{
				ClassName:   strings.TrimSpace(sec.ClassName),
				SectionName: strings.TrimSpace(sec.SectionName),
				Students:    studentNames(sec.Students),
			})
		}
		out = append(out, snap)
	}
	return out
}

// ── internal ──

func (f *Form) newSection() SectionBlock {
	f.Counters.Section++
	return SectionBlock{
		ID:       f.Counters.Section,
		Students: []StudentEntry{f.newStudent()},
	}
}

func (f *Form) newStudent() StudentEntry {
	f.Counters.Student++
	return StudentEntry{ID: f.Counters.Student}
}

func (f *Form) subject(id int) *SubjectBlock {
	for i := range f.Subjects {
		if f.Subjects[i].ID == id {
			return &f.Subjects[i]
		}
	}
	return nil
}

func (f *Form) section(id int) *SectionBlock {
	for i := range f.Subjects {
		for j := range f.Subjects[i].Sections {
			if f.Subjects[i].Sections[j].ID == id {
				return &f.Subjects[i].Sections[j]
			}
		}
	}
	return nil
}

func findStudent(list []StudentEntry, id int) *StudentEntry {
	for i := range list {
		if list[i].ID == id {
			return &list[i]
		}
	}
	return nil
}

func removeStudent(list *[]StudentEntry, id int) bool {
	for i, st := range *list {
		if st.ID == id {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return true
		}
	}
	return false
}

func studentNames(list []StudentEntry) []string {
	var names []string
	for _, st := range list {
		if name := strings.TrimSpace(st.Name); name != "" {
			names = append(names, name)
		}
	}
	return names
}
