package model

// Faculty suggestion list entry, table faculty, served as /faculty.json
type Faculty struct {
	ID   uint   `gorm:"primaryKey"                       json:"-"`
	Name string `gorm:"type:varchar(150);not null"       json:"name"`
	Code string `gorm:"type:varchar(50);not null;unique" json:"code"`
	BaseModel
}

// TableName table name
func (Faculty) TableName() string { return "faculty" }

// Subject suggestion list entry, table subjects, served as /subjects.json
type Subject struct {
	ID   uint   `gorm:"primaryKey"                       json:"-"`
	Code string `gorm:"type:varchar(50);not null;unique" json:"code"`
	Name string `gorm:"type:varchar(200);not null"       json:"name"`
	BaseModel
}

// TableName table name
func (Subject) TableName() string { return "subjects" }
