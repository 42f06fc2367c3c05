package models

import "time"

// Model names tracked in the last_updates side table, one row per kind.
const (
	KindVaccine               = "Vaccine"
	KindPathogen              = "Pathogen"
	KindManufacturer          = "Manufacturer"
	KindLicensingDate         = "LicensingDate"
	KindProductProfile        = "ProductProfile"
	KindManufacturerProduct   = "ManufacturerProduct"
	KindManufacturerSource    = "ManufacturerSource"
	KindManufacturerCandidate = "ManufacturerCandidate"
	KindNITAG                 = "NITAG"
	KindLicenser              = "Licenser"
)

// LastUpdate records when an entity kind was last mutated. It is upserted on
// every successful write; the API exposes only the most recent row.
type LastUpdate struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	ModelName     string    `json:"modelName" gorm:"uniqueIndex;not null"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt" gorm:"index;not null"`
}

func (LastUpdate) TableName() string {
	return "last_updates"
}
