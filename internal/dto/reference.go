package dto

// ── Reference data ──

// CreateFacultyRequest POST /api/faculty
type CreateFacultyRequest struct {
	Name string `json:"name" binding:"required,max=150"`
	Code string `json:"code" binding:"required,max=50"`
}

// CreateSubjectRequest POST /api/subjects
type CreateSubjectRequest struct {
	Code string `json:"code" binding:"required,max=50"`
	Name string `json:"name" binding:"required,max=200"`
}
