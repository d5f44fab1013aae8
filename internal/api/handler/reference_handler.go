package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vineetm1204-m/ODAutomation/internal/dto"
	"github.com/vineetm1204-m/ODAutomation/internal/service"
	"github.com/vineetm1204-m/ODAutomation/pkg/response"
)

// ReferenceHandler faculty and subject lookup lists
type ReferenceHandler struct {
	svc service.ReferenceService
}

// NewReferenceHandler creates a ReferenceHandler
func NewReferenceHandler(svc service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{svc: svc}
}

// ListFaculty GET /faculty.json
func (h *ReferenceHandler) ListFaculty(c *gin.Context) {
	list, err := h.svc.ListFaculty(c.Request.Context())
	if err != nil {
		handleReferenceError(c, err)
		return
	}
	response.OK(c, list)
}

// ListSubjects GET /subjects.json
func (h *ReferenceHandler) ListSubjects(c *gin.Context) {
	list, err := h.svc.ListSubjects(c.Request.Context())
	if err != nil {
		handleReferenceError(c, err)
		return
	}
	response.OK(c, list)
}

// CreateFaculty POST /api/faculty
func (h *ReferenceHandler) CreateFaculty(c *gin.Context) {
	var req dto.CreateFacultyRequest
	if !bindJSON(c, &req) {
		return
	}
	f, err := h.svc.CreateFaculty(c.Request.Context(), &req)
	if err != nil {
		handleReferenceError(c, err)
		return
	}
	response.Created(c, f)
}

// CreateSubject POST /api/subjects
func (h *ReferenceHandler) CreateSubject(c *gin.Context) {
	var req dto.CreateSubjectRequest
	if !bindJSON(c, &req) {
		return
	}
	s, err := h.svc.CreateSubject(c.Request.Context(), &req)
	if err != nil {
		handleReferenceError(c, err)
		return
	}
	response.Created(c, s)
}

func handleReferenceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrReferenceCodeExists):
		response.Error(c, http.StatusConflict, response.CodeConflict, service.ErrReferenceCodeExists.Error())
	default:
		handleCategoryError(c, err)
	}
}
