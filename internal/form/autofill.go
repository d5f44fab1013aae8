package form

import (
	"github.com/vineetm1204-m/ODAutomation/internal/model"
	apperrors "github.com/vineetm1204-m/ODAutomation/pkg/errors"
)

// ClearMode controls when auto-fill wipes the form
type ClearMode string

const (
	// ClearOnMatch leave the form untouched when nothing matches
	ClearOnMatch ClearMode = "on_match"
	// ClearAlways wipe the form once the selectors are valid, even with no match
	ClearAlways ClearMode = "always"
)

var (
	ErrMissingSelector = apperrors.NewValidation("Please select both day and time.")
	ErrNoMatch         = apperrors.NewNoMatch("No matching entries found for the selected day and time.")
)

// Match returns the entries whose day and time equal the selectors exactly,
// in timetable order
func Match(entries []model.TimetableEntry, day, slot string) ([]model.TimetableEntry, error) {
	if day == "" || slot == "" {
		return nil, ErrMissingSelector
	}
	var matched []model.TimetableEntry
	for _, e := range entries {
		if e.Day == day && e.Time == slot {
			matched = append(matched, e)
		}
	}
	if len(matched) == 0 {
		return nil, ErrNoMatch
	}
	return matched, nil
}

// AutoFill replaces the form's subjects with one pre-populated block per
// matching timetable entry and returns how many were added
func (f *Form) AutoFill(entries []model.TimetableEntry, day, slot string, mode ClearMode) (int, error) {
	matched, err := Match(entries, day, slot)
	if err != nil {
		if err == ErrNoMatch && mode == ClearAlways {
			f.Reset()
		}
		return 0, err
	}

	f.Reset()
	for _, e := range matched {
		id := f.AddSubject()
		b := f.subject(id)
		b.SubjectCode = e.Subject
		b.Faculty = e.Faculty
		b.Time = e.Time
	}
	return len(matched), nil
}
