package models

import "time"

// ProductProfile describes one presentation of a vaccine. Descriptive fields
// default to the "- not licensed yet -" placeholder when absent; the odd
// capitalized Efficacy JSON name is kept for portal compatibility.
type ProductProfile struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	VaccineName string `json:"vaccineName" gorm:"index:idx_product_profiles_vaccine;not null"`
	Type        string `json:"type" gorm:"index:idx_product_profiles_vaccine;not null"`
	Name        string `json:"name" gorm:"not null"`

	Composition          string `json:"composition" gorm:"type:text"`
	StrainCoverage       string `json:"strainCoverage" gorm:"type:text"`
	Indication           string `json:"indication" gorm:"type:text"`
	Contraindication     string `json:"contraindication" gorm:"type:text"`
	Dosing               string `json:"dosing" gorm:"type:text"`
	Immunogenicity       string `json:"immunogenicity" gorm:"type:text"`
	Efficacy             string `json:"Efficacy" gorm:"type:text"`
	DurationOfProtection string `json:"durationOfProtection" gorm:"type:text"`
	CoAdministration     string `json:"coAdministration" gorm:"type:text"`
	Reactogenicity       string `json:"reactogenicity" gorm:"type:text"`
	Safety               string `json:"safety" gorm:"type:text"`
	VaccinationGoal      string `json:"vaccinationGoal" gorm:"type:text"`
	Others               string `json:"others" gorm:"type:text"`
}

func (ProductProfile) TableName() string {
	return "product_profiles"
}
