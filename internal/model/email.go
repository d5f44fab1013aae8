package model

// EmailRequest everything the composer needs for one email. Transient.
type EmailRequest struct {
	Coordinator  string            `json:"coordinator"`
	Date         string            `json:"date"` // YYYY-MM-DD
	ClassSection string            `json:"classSection,omitempty"`
	Subjects     []SubjectSnapshot `json:"subjects"`
}

// SubjectSnapshot a subject block as submitted for generation
type SubjectSnapshot struct {
	Name     string            `json:"name"`
	Faculty  string            `json:"faculty"`
	Time     string            `json:"time"`
	Students []string          `json:"students,omitempty"`
	Sections []SectionSnapshot `json:"sections,omitempty"`
}

// SectionSnapshot students grouped under a class/section
type SectionSnapshot struct {
	ClassName   string   `json:"className"`
	SectionName string   `json:"sectionName"`
	Students    []string `json:"students"`
}
