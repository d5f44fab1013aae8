package dto

import "github.com/vineetm1204-m/ODAutomation/internal/form"

// ── Form ──

// UpdateSubjectRequest PUT /api/form/subjects/:id; omitted fields are kept
type UpdateSubjectRequest struct {
	SubjectCode *string `json:"subjectCode" binding:"omitempty,max=200"`
	Faculty     *string `json:"faculty"     binding:"omitempty,max=200"`
	Time        *string `json:"time"        binding:"omitempty,max=100"`
}

// UpdateSectionRequest PUT /api/form/sections/:id
type UpdateSectionRequest struct {
	ClassName   *string `json:"className"   binding:"omitempty,max=100"`
	SectionName *string `json:"sectionName" binding:"omitempty,max=100"`
}

// UpdateStudentRequest PUT /api/form/students/:id
type UpdateStudentRequest struct {
	Name string `json:"name" binding:"max=200"`
}

// AutoFillRequest POST /api/form/autofill
type AutoFillRequest struct {
	Day  string `json:"day"`
	Time string `json:"time"`
}

// CreatedResponse id of a newly added block or row, plus the updated form
type CreatedResponse struct {
	ID   int        `json:"id"`
	Form *form.View `json:"form"`
}

// AutoFillResponse POST /api/form/autofill
type AutoFillResponse struct {
	Success bool       `json:"success"`
	Count   int        `json:"count"`
	Form    *form.View `json:"form"`
}
