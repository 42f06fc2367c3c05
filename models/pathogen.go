package models

import "time"

// Pathogen is a disease-causing agent covered by one or more vaccines.
type Pathogen struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name         string `json:"name" gorm:"uniqueIndex;not null"`
	Description  string `json:"description" gorm:"type:text"`
	Image        string `json:"image"`
	Bulletpoints string `json:"bulletpoints" gorm:"type:text"`
	Link         string `json:"link"`

	// Informational only; the populated view matches Vaccine.pathogenNames
	// by substring instead of reading these lists.
	VaccineNames          string `json:"vaccineNames" gorm:"type:text"`
	CandidateVaccineNames string `json:"candidateVaccineNames" gorm:"type:text"`
}

func (Pathogen) TableName() string {
	return "pathogens"
}
