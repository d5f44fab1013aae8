package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/vineetm1204-m/ODAutomation/internal/dto"
	"github.com/vineetm1204-m/ODAutomation/internal/form"
	"github.com/vineetm1204-m/ODAutomation/internal/service"
	"github.com/vineetm1204-m/ODAutomation/pkg/response"
)

// FormHandler session form routes
type FormHandler struct {
	svc service.FormService
}

// NewFormHandler creates a FormHandler
func NewFormHandler(svc service.FormService) *FormHandler {
	return &FormHandler{svc: svc}
}

// Get GET /api/form
func (h *FormHandler) Get(c *gin.Context) {
	sid, ok := MustGetSessionID(c)
	if !ok {
		return
	}
	view, err := h.svc.Get(c.Request.Context(), sid)
	if err != nil {
		handleFormError(c, err)
		return
	}
	response.OK(c, view)
}

// Reset DELETE /api/form
func (h *FormHandler) Reset(c *gin.Context) {
	sid, ok := MustGetSessionID(c)
	if !ok {
		return
	}
	view, err := h.svc.Reset(c.Request.Context(), sid)
	if err != nil {
		handleFormError(c, err)
		return
	}
	response.OK(c, view)
}

// ── Subjects ──

// AddSubject POST /api/form/subjects
func (h *FormHandler) AddSubject(c *gin.Context) {
	sid, ok := MustGetSessionID(c)
	if !ok {
		return
	}
	resp, err := h.svc.AddSubject(c.Request.Context(), sid)
	if err != nil {
		handleFormError(c, err)
		return
	}
	response.Created(c, resp)
}

// UpdateSubject PUT /api/form/subjects/:id
func (h *FormHandler) UpdateSubject(c *gin.Context) {
	sid, ok := MustGetSessionID(c)
	if !ok {
		return
	}
	id, ok := MustGetIntParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateSubjectRequest
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.svc.UpdateSubject(c.Request.Context(), sid, id, &req)
	if err != nil {
		handleFormError(c, err)
		return
	}
	response.OK(c, view)
}

// RemoveSubject DELETE /api/form/subjects/:id
func (h *FormHandler) RemoveSubject(c *gin.Context) {
	h.remove(c, h.svc.RemoveSubject)
}

// ── Sections ──

// AddSection POST /api/form/subjects/:id/sections
func (h *FormHandler) AddSection(c *gin.Context) {
	h.create(c, h.svc.AddSection)
}

// UpdateSection PUT /api/form/sections/:id
func (h *FormHandler) UpdateSection(c *gin.Context) {
	sid, ok := MustGetSessionID(c)
	if !ok {
		return
	}
	id, ok := MustGetIntParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateSectionRequest
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.svc.UpdateSection(c.Request.Context(), sid, id, &req)
	if err != nil {
		handleFormError(c, err)
		return
	}
	response.OK(c, view)
}

// RemoveSection DELETE /api/form/sections/:id
func (h *FormHandler) RemoveSection(c *gin.Context) {
	h.remove(c, h.svc.RemoveSection)
}

// ── Students ──

// AddStudent POST /api/form/subjects/:id/students
func (h *FormHandler) AddStudent(c *gin.Context) {
	h.create(c, h.svc.AddStudent)
}

// AddSectionStudent POST /api/form/sections/:id/students
func (h *FormHandler) AddSectionStudent(c *gin.Context) {
	h.create(c, h.svc.AddSectionStudent)
}

// UpdateStudent PUT /api/form/students/:id
func (h *FormHandler) UpdateStudent(c *gin.Context) {
	sid, ok := MustGetSessionID(c)
	if !ok {
		return
	}
	id, ok := MustGetIntParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateStudentRequest
	if !bindJSON(c, &req) {
		return
	}
	view, err := h.svc.UpdateStudent(c.Request.Context(), sid, id, &req)
	if err != nil {
		handleFormError(c, err)
		return
	}
	response.OK(c, view)
}

// RemoveStudent DELETE /api/form/students/:id
func (h *FormHandler) RemoveStudent(c *gin.Context) {
	h.remove(c, h.svc.RemoveStudent)
}

// ── Auto-fill ──

// AutoFill POST /api/form/autofill
func (h *FormHandler) AutoFill(c *gin.Context) {
	sid, ok := MustGetSessionID(c)
	if !ok {
		return
	}
	var req dto.AutoFillRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.svc.AutoFill(c.Request.Context(), sid, &req)
	if err != nil {
		handleFormError(c, err)
		return
	}
	response.OK(c, resp)
}

// ── helpers ──

type createFunc func(ctx context.Context, sessionID string, ownerID int) (*dto.CreatedResponse, error)

type removeFunc func(ctx context.Context, sessionID string, id int) (*form.View, error)

func (h *FormHandler) create(c *gin.Context, fn createFunc) {
	sid, ok := MustGetSessionID(c)
	if !ok {
		return
	}
	ownerID, ok := MustGetIntParam(c, "id")
	if !ok {
		return
	}
	resp, err := fn(c.Request.Context(), sid, ownerID)
	if err != nil {
		handleFormError(c, err)
		return
	}
	response.Created(c, resp)
}

func (h *FormHandler) remove(c *gin.Context, fn removeFunc) {
	sid, ok := MustGetSessionID(c)
	if !ok {
		return
	}
	id, ok := MustGetIntParam(c, "id")
	if !ok {
		return
	}
	view, err := fn(c.Request.Context(), sid, id)
	if err != nil {
		handleFormError(c, err)
		return
	}
	response.OK(c, view)
}

func handleFormError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, form.ErrSubjectNotFound),
		errors.Is(err, form.ErrSectionNotFound),
		errors.Is(err, form.ErrStudentNotFound):
		response.NotFound(c, response.CodeNotFound, err.Error())
	case errors.Is(err, form.ErrMissingSelector):
		response.BadRequest(c, response.CodeValidation, form.ErrMissingSelector.Message)
	case errors.Is(err, form.ErrNoMatch):
		response.NotFound(c, response.CodeNoMatch, form.ErrNoMatch.Message)
	default:
		handleCategoryError(c, err)
	}
}
