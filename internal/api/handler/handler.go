package handler

import "github.com/vineetm1204-m/ODAutomation/internal/service"

// Handler aggregates every handler the router mounts
type Handler struct {
	Timetable *TimetableHandler
	Form      *FormHandler
	Email     *EmailHandler
	Reference *ReferenceHandler
}

// NewHandler creates the Handler aggregate
func NewHandler(svc *service.Service, uploadDir string) *Handler {
	return &Handler{
		Timetable: NewTimetableHandler(svc.Timetable, uploadDir),
		Form:      NewFormHandler(svc.Form),
		Email:     NewEmailHandler(svc.Email),
		Reference: NewReferenceHandler(svc.Reference),
	}
}
