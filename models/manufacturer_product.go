package models

import "time"

// ManufacturerProduct is a marketed product of a manufacturer.
type ManufacturerProduct struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	ManufacturerName   string `json:"manufacturerName" gorm:"index;not null"`
	ProductName        string `json:"productName" gorm:"not null"`
	ProductDescription string `json:"productDescription" gorm:"type:text"`
}

func (ManufacturerProduct) TableName() string {
	return "manufacturer_products"
}
