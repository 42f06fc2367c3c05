package models

import "time"

// ManufacturerCandidate is a vaccine candidate in clinical development.
// The manufacturer field references Manufacturer.name by plain text.
type ManufacturerCandidate struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	PathogenName  string `json:"pathogenName" gorm:"index;not null"`
	Name          string `json:"name" gorm:"not null"`
	Manufacturer  string `json:"manufacturer" gorm:"index"`
	Platform      string `json:"platform"`
	ClinicalPhase string `json:"clinicalPhase"`
	CompanyURL    string `json:"companyUrl" gorm:"column:company_url"`
	Other         string `json:"other" gorm:"type:text"`
}

func (ManufacturerCandidate) TableName() string {
	return "manufacturer_candidates"
}
