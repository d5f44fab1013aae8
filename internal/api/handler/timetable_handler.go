package handler

import (
	"errors"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vineetm1204-m/ODAutomation/internal/api/middleware"
	"github.com/vineetm1204-m/ODAutomation/internal/service"
	"github.com/vineetm1204-m/ODAutomation/pkg/response"
)

const uploadField = "timetable"

// TimetableHandler timetable upload and lookup
type TimetableHandler struct {
	svc       service.TimetableService
	uploadDir string
}

// NewTimetableHandler creates a TimetableHandler
func NewTimetableHandler(svc service.TimetableService, uploadDir string) *TimetableHandler {
	if uploadDir == "" {
		uploadDir = os.TempDir()
	}
	return &TimetableHandler{svc: svc, uploadDir: uploadDir}
}

// Upload accepts a timetable file
// POST /api/upload-timetable  (multipart, field "timetable")
//
// The file is written to the upload dir and removed once parsed, whatever
// the outcome.
func (h *TimetableHandler) Upload(c *gin.Context) {
	sid, ok := MustGetSessionID(c)
	if !ok {
		return
	}

	fh, err := c.FormFile(uploadField)
	if err != nil {
		if middleware.IsBodyTooLarge(err) {
			response.Error(c, http.StatusRequestEntityTooLarge, response.CodeTooLarge, "File too large")
			return
		}
		response.BadRequest(c, response.CodeValidation, "No file uploaded")
		return
	}
	if _, err := service.DetectFormat(fh.Filename); err != nil {
		handleTimetableError(c, err)
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		_ = c.Error(err)
		response.InternalError(c)
		return
	}
	path := filepath.Join(h.uploadDir, uuid.NewString()+strings.ToLower(filepath.Ext(fh.Filename)))
	if err := c.SaveUploadedFile(fh, path); err != nil {
		_ = c.Error(err)
		response.InternalError(c)
		return
	}
	defer os.Remove(path)

	f, err := os.Open(path)
	if err != nil {
		_ = c.Error(err)
		response.InternalError(c)
		return
	}
	defer f.Close()

	resp, err := h.svc.Import(c.Request.Context(), sid, fh.Filename, f)
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, resp)
}

// List returns the stored timetable
// GET /api/timetable
func (h *TimetableHandler) List(c *gin.Context) {
	sid, ok := MustGetSessionID(c)
	if !ok {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), sid)
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, resp)
}

// Slots returns the distinct days and times for the auto-fill selectors
// GET /api/timetable/slots
func (h *TimetableHandler) Slots(c *gin.Context) {
	sid, ok := MustGetSessionID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Slots(c.Request.Context(), sid)
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, resp)
}

// Template downloads an XLSX timetable template
// GET /api/timetable/template
func (h *TimetableHandler) Template(c *gin.Context) {
	buf, filename, err := h.svc.Template()
	if err != nil {
		handleTimetableError(c, err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func handleTimetableError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTimetableNoValidEntries):
		response.Unprocessable(c, response.CodeNoEntries, "No valid entries found in the timetable")
	case errors.Is(err, service.ErrTimetableReadFailure):
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeParse, "Error parsing timetable file", err.Error())
	case errors.Is(err, service.ErrTimetableUnsupportedFormat):
		response.BadRequest(c, response.CodeValidation, service.ErrTimetableUnsupportedFormat.Message)
	case errors.Is(err, service.ErrTimetableTemplateFailed):
		response.InternalError(c)
	default:
		handleCategoryError(c, err)
	}
}
