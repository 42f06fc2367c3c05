package models

import "time"

// NITAG is a National Immunization Technical Advisory Group, keyed by country.
type NITAG struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Country           string `json:"country" gorm:"uniqueIndex;not null"`
	AvailableNitag    string `json:"availableNitag"`
	AvailableWebsite  string `json:"availableWebsite"`
	WebsiteURL        string `json:"websiteUrl" gorm:"column:website_url"`
	NationalNitagName string `json:"nationalNitagName"`
	YearEstablished   string `json:"yearEstablished"`
}

func (NITAG) TableName() string {
	return "nitags"
}
