package models

import "time"

// Vaccine types accepted by the API.
const (
	VaccineTypeSingle      = "single"
	VaccineTypeCombination = "combination"
)

// Vaccine is a licensed vaccine. Relations to pathogens and manufacturers are
// kept as comma-separated name lists; they are resolved by name at read time.
type Vaccine struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name              string `json:"name" gorm:"uniqueIndex;not null"`
	VaccineType       string `json:"vaccineType" gorm:"not null"` // single | combination
	PathogenNames     string `json:"pathogenNames" gorm:"type:text;not null"`
	ManufacturerNames string `json:"manufacturerNames" gorm:"type:text;not null"`
}

func (Vaccine) TableName() string {
	return "vaccines"
}
