package model

import "time"

// BaseModel audit timestamps shared by persisted models
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null" json:"-"`
	UpdatedAt time.Time `gorm:"not null" json:"-"`
}
