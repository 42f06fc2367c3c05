package models

import "time"

// Licenser is a licensing authority (e.g. FDA, EMA), keyed by acronym.
type Licenser struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Acronym     string `json:"acronym" gorm:"uniqueIndex;not null"`
	Region      string `json:"region"`
	Country     string `json:"country"`
	FullName    string `json:"fullName" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	Website     string `json:"website"`
}

func (Licenser) TableName() string {
	return "licensers"
}
