package models

import "time"

// ManufacturerSource is a reference link backing a manufacturer's data.
type ManufacturerSource struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	ManufacturerName string `json:"manufacturerName" gorm:"index;not null"`
	LastUpdated      string `json:"lastUpdated"`
	Title            string `json:"title" gorm:"not null"`
	Link             string `json:"link" gorm:"not null"`
}

func (ManufacturerSource) TableName() string {
	return "manufacturer_sources"
}
