package model

import "time"

// Dispatch statuses
const (
	DispatchSent   = "sent"
	DispatchFailed = "failed"
)

// DispatchLog delivery metadata for one send attempt (table dispatch_logs)
// Bodies and credentials are never stored.
type DispatchLog struct {
	ID        uint      `gorm:"primaryKey"                 json:"id"`
	MessageID string    `gorm:"type:varchar(255)"          json:"message_id,omitempty"`
	Recipient string    `gorm:"type:varchar(320);not null" json:"recipient"`
	Subject   string    `gorm:"type:varchar(500);not null" json:"subject"`
	Relay     string    `gorm:"type:varchar(20);not null"  json:"relay"`
	Status    string    `gorm:"type:varchar(20);not null"  json:"status"`
	ErrorCode string    `gorm:"type:varchar(20)"           json:"error_code,omitempty"`
	CreatedAt time.Time `gorm:"not null"                   json:"created_at"`
}

// TableName table name
func (DispatchLog) TableName() string { return "dispatch_logs" }
