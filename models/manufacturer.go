package models

import "time"

// Manufacturer is a vaccine manufacturer with free-text company details.
// The details_* JSON names mirror the columns the portal exports.
type Manufacturer struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name        string `json:"name" gorm:"uniqueIndex;not null"`
	Description string `json:"description" gorm:"type:text"`
	History     string `json:"history" gorm:"type:text"`
	LastUpdated string `json:"lastUpdated"`

	DetailsWebsite           string `json:"details_website"`
	DetailsFounded           string `json:"details_founded"`
	DetailsHeadquarters      string `json:"details_headquarters"`
	DetailsCEO               string `json:"details_ceo" gorm:"column:details_ceo"`
	DetailsRevenue           string `json:"details_revenue"`
	DetailsOperatingIncome   string `json:"details_operatingIncome"`
	DetailsNetIncome         string `json:"details_netIncome"`
	DetailsTotalAssets       string `json:"details_totalAssets"`
	DetailsTotalEquity       string `json:"details_totalEquity"`
	DetailsNumberOfEmployees string `json:"details_numberOfEmployees"`
	DetailsProducts          string `json:"details_products" gorm:"type:text"`

	LicensedVaccineNames  string `json:"licensedVaccineNames" gorm:"type:text"`
	CandidateVaccineNames string `json:"candidateVaccineNames" gorm:"type:text"`
}

func (Manufacturer) TableName() string {
	return "manufacturers"
}
