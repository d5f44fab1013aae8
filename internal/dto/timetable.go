package dto

import "github.com/vineetm1204-m/ODAutomation/internal/model"

// ── Timetable ──

// UploadTimetableResponse POST /api/upload-timetable
type UploadTimetableResponse struct {
	Success bool                   `json:"success"`
	Data    []model.TimetableEntry `json:"data"`
	Count   int                    `json:"count"`
}

// TimetableResponse GET /api/timetable
type TimetableResponse struct {
	Entries []model.TimetableEntry `json:"entries"`
	Count   int                    `json:"count"`
}

// TimetableSlotsResponse distinct selector values, in first-seen order
type TimetableSlotsResponse struct {
	Days  []string `json:"days"`
	Times []string `json:"times"`
}
