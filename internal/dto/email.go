package dto

import "github.com/vineetm1204-m/ODAutomation/internal/model"

// ── Email ──

// GenerateEmailRequest POST /api/generate-email
type GenerateEmailRequest struct {
	Coordinator  string                  `json:"coordinator"`
	Date         string                  `json:"date"`
	ClassSection string                  `json:"classSection"`
	Subjects     []model.SubjectSnapshot `json:"subjects"`
}

// ToModel converts the request into composer input
func (r *GenerateEmailRequest) ToModel() *model.EmailRequest {
	return &model.EmailRequest{
		Coordinator:  r.Coordinator,
		Date:         r.Date,
		ClassSection: r.ClassSection,
		Subjects:     r.Subjects,
	}
}

// FormEmailRequest POST /api/form/email; subjects come from the session form
type FormEmailRequest struct {
	Coordinator  string `json:"coordinator"`
	Date         string `json:"date"`
	ClassSection string `json:"classSection"`
}

// GenerateEmailResponse generated email text
type GenerateEmailResponse struct {
	Success bool   `json:"success"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
}

// SendEmailRequest POST /api/send-email
type SendEmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// SendEmailResponse successful dispatch
type SendEmailResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
}

// DispatchLogListRequest GET /api/dispatch-logs
type DispatchLogListRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=200"`
}

// GetLimit limit with default
func (r *DispatchLogListRequest) GetLimit() int {
	if r.Limit <= 0 {
		return 50
	}
	return r.Limit
}
