package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/vineetm1204-m/ODAutomation/internal/dto"
	"github.com/vineetm1204-m/ODAutomation/internal/service"
	"github.com/vineetm1204-m/ODAutomation/pkg/response"
)

// EmailHandler email generation and dispatch
type EmailHandler struct {
	svc service.EmailService
}

// NewEmailHandler creates an EmailHandler
func NewEmailHandler(svc service.EmailService) *EmailHandler {
	return &EmailHandler{svc: svc}
}

// Generate composes an email from an explicit request
// POST /api/generate-email
func (h *EmailHandler) Generate(c *gin.Context) {
	var req dto.GenerateEmailRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.svc.Generate(c.Request.Context(), &req)
	if err != nil {
		handleEmailError(c, err)
		return
	}
	response.OK(c, resp)
}

// GenerateFromForm composes an email from the session form
// POST /api/form/email
func (h *EmailHandler) GenerateFromForm(c *gin.Context) {
	sid, ok := MustGetSessionID(c)
	if !ok {
		return
	}
	var req dto.FormEmailRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.svc.GenerateFromForm(c.Request.Context(), sid, &req)
	if err != nil {
		handleEmailError(c, err)
		return
	}
	response.OK(c, resp)
}

// Send dispatches a composed email
// POST /api/send-email
func (h *EmailHandler) Send(c *gin.Context) {
	var req dto.SendEmailRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.svc.Send(c.Request.Context(), &req)
	if err != nil {
		handleEmailError(c, err)
		return
	}
	response.OK(c, resp)
}

// ListDispatches returns recent dispatch attempts, newest first
// GET /api/dispatch-logs?limit=
func (h *EmailHandler) ListDispatches(c *gin.Context) {
	var req dto.DispatchLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, response.CodeValidation, "Invalid limit")
		return
	}
	logs, err := h.svc.RecentDispatches(c.Request.Context(), req.GetLimit())
	if err != nil {
		handleEmailError(c, err)
		return
	}
	response.OK(c, logs)
}

func handleEmailError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMailNotConfigured):
		response.ServiceUnavailable(c, service.ErrMailNotConfigured.Error())
	default:
		handleCategoryError(c, err)
	}
}
