package form

import "fmt"

// DefaultTimeSlots the period choices offered on every subject card
var DefaultTimeSlots = []string{
	"09:15 AM - 10:10 AM",
	"10:15 AM - 11:10 AM",
	"11:15 AM - 12:10 PM",
	"12:15 PM - 01:10 PM",
	"01:15 PM - 02:10 PM",
	"02:15 PM - 03:10 PM",
	"03:15 PM - 04:10 PM",
	"04:15 PM - 05:10 PM",
}

// TimeOption one entry of the time-slot picker
type TimeOption struct {
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
}

// SectionView a section as rendered
type SectionView struct {
	ID          int            `json:"id"`
	ClassName   string         `json:"className"`
	SectionName string         `json:"sectionName"`
	Students    []StudentEntry `json:"students"`
}

// SubjectCard a subject block as rendered
type SubjectCard struct {
	ID          int            `json:"id"`
	Title       string         `json:"title"`
	SubjectCode string         `json:"subjectCode"`
	Faculty     string         `json:"faculty"`
	Time        string         `json:"time"`
	Complete    bool           `json:"complete"`
	TimeOptions []TimeOption   `json:"timeOptions"`
	Students    []StudentEntry `json:"students"`
	Sections    []SectionView  `json:"sections"`
}

// View renderer-agnostic view model of the whole form
type View struct {
	Layout        Layout        `json:"layout"`
	Cards         []SubjectCard `json:"cards"`
	CompleteCount int           `json:"completeCount"`
}

// View builds the view model. Cards are titled by position; a time that is
// not one of the default slots (e.g. from a timetable) is appended to that
// card's options so it stays selectable.
func (f *Form) View() *View {
	v := &View{Layout: f.Layout, Cards: make([]SubjectCard, 0, len(f.Subjects))}
	for i := range f.Subjects {
		b := &f.Subjects[i]
		card := SubjectCard{
			ID:          b.ID,
			Title:       fmt.Sprintf("Subject %d", i+1),
			SubjectCode: b.SubjectCode,
			Faculty:     b.Faculty,
			Time:        b.Time,
			Complete:    b.Complete(),
			TimeOptions: timeOptions(b.Time),
			Students:    append([]StudentEntry{}, b.Students...),
			Sections:    make([]SectionView, 0, len(b.Sections)),
		}
		for _, sec := range b.Sections {
			card.Sections = append(card.Sections, SectionView{
				ID:          sec.ID,
				ClassName:   sec.ClassName,
				SectionName: sec.SectionName,
				Students:    append([]StudentEntry{}, sec.Students...),
			})
		}
		if card.Complete {
			v.CompleteCount++
		}
		v.Cards = append(v.Cards, card)
	}
	return v
}

func timeOptions(selected string) []TimeOption {
	opts := make([]TimeOption, 0, len(DefaultTimeSlots)+1)
	found := false
	for _, slot := range DefaultTimeSlots {
		isSel := slot == selected
		found = found || isSel
		opts = append(opts, TimeOption{Value: slot, Selected: isSel})
	}
	if selected != "" && !found {
		opts = append(opts, TimeOption{Value: selected, Selected: true})
	}
	return opts
}
