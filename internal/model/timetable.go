package model

// TimetableEntry one (day, time, subject, faculty) row of an uploaded
// timetable. Entries are immutable once parsed.
type TimetableEntry struct {
	Day     string `json:"day"`
	Time    string `json:"time"`
	Subject string `json:"subject"`
	Faculty string `json:"faculty"`
}
