package models

import "time"

// LicensingDate records an approval of a vaccine by a licensing authority.
// vaccineName is a denormalized reference to Vaccine.name.
type LicensingDate struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	VaccineName         string `json:"vaccineName" gorm:"index;not null"`
	Name                string `json:"name" gorm:"not null"` // licensing authority
	Type                string `json:"type"`
	ApprovalDate        string `json:"approvalDate" gorm:"not null"`
	Source              string `json:"source" gorm:"not null"`
	LastUpdateOnVaccine string `json:"lastUpdateOnVaccine"`
}

func (LicensingDate) TableName() string {
	return "licensing_dates"
}
