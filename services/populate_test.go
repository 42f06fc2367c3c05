package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"vacciprofile/models"
)

func seedVaccineTree(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&models.Vaccine{
		Name: "FluShot", VaccineType: "single",
		PathogenNames: "Influenza", ManufacturerNames: "Acme",
	}).Error)
	require.NoError(t, db.Create(&models.Vaccine{
		Name: "TwinVax", VaccineType: "combination",
		PathogenNames: "Influenza, Hepatitis B", ManufacturerNames: "Beta",
	}).Error)
	require.NoError(t, db.Create(&models.LicensingDate{
		VaccineName: "FluShot", Name: "FDA", ApprovalDate: "2021-03-01", Source: "https://fda.example",
	}).Error)
	require.NoError(t, db.Create(&models.LicensingDate{
		VaccineName: "FluShot", Name: "EMA", ApprovalDate: "2020-01-15", Source: "https://ema.example",
	}).Error)
	require.NoError(t, db.Create(&models.ProductProfile{
		VaccineName: "FluShot", Type: "standard", Name: "FluShot IM",
	}).Error)
}

func TestPopulateVaccines(t *testing.T) {
	db := newTestDB(t)
	seedVaccineTree(t, db)

	var vaccines []models.Vaccine
	require.NoError(t, db.Order("name").Find(&vaccines).Error)

	populated, err := NewPopulator(db).PopulateVaccines(vaccines)
	require.NoError(t, err)
	require.Len(t, populated, 2)

	flu := populated[0]
	assert.Equal(t, "FluShot", flu.Name)
	require.Len(t, flu.LicensingDates, 2)
	// Sorted by approval date.
	assert.Equal(t, "EMA", flu.LicensingDates[0].Name)
	assert.Equal(t, "FDA", flu.LicensingDates[1].Name)
	require.Len(t, flu.ProductProfiles, 1)

	// No children resolves to empty lists, not nil.
	twin := populated[1]
	assert.NotNil(t, twin.LicensingDates)
	assert.Empty(t, twin.LicensingDates)
	assert.NotNil(t, twin.ProductProfiles)
	assert.Empty(t, twin.ProductProfiles)
}

func TestPopulateManufacturers(t *testing.T) {
	db := newTestDB(t)
	seedVaccineTree(t, db)

	require.NoError(t, db.Create(&models.Manufacturer{
		Name: "Acme", LicensedVaccineNames: "FluShot, Ghost Vaccine",
	}).Error)
	require.NoError(t, db.Create(&models.ManufacturerProduct{
		ManufacturerName: "Acme", ProductName: "FluShot IM",
	}).Error)
	require.NoError(t, db.Create(&models.ManufacturerSource{
		ManufacturerName: "Acme", Title: "Annual Report", Link: "https://acme.example/report",
	}).Error)
	require.NoError(t, db.Create(&models.ManufacturerCandidate{
		PathogenName: "RSV", Name: "RSV-Next", Manufacturer: "Acme",
	}).Error)

	var manufacturers []models.Manufacturer
	require.NoError(t, db.Order("name").Find(&manufacturers).Error)

	populated, err := NewPopulator(db).PopulateManufacturers(manufacturers)
	require.NoError(t, err)
	require.Len(t, populated, 1)

	acme := populated[0]
	require.Len(t, acme.Products, 1)
	require.Len(t, acme.Sources, 1)
	require.Len(t, acme.Candidates, 1)

	// "Ghost Vaccine" dangles and is skipped; the resolved vaccine carries
	// its own children.
	require.Len(t, acme.Vaccines, 1)
	assert.Equal(t, "FluShot", acme.Vaccines[0].Name)
	assert.Len(t, acme.Vaccines[0].LicensingDates, 2)
}

func TestPopulateManufacturersDanglingOnly(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Create(&models.Manufacturer{
		Name: "Hollow", LicensedVaccineNames: "Nothing Real",
	}).Error)

	var manufacturers []models.Manufacturer
	require.NoError(t, db.Find(&manufacturers).Error)

	populated, err := NewPopulator(db).PopulateManufacturers(manufacturers)
	require.NoError(t, err)
	require.Len(t, populated, 1)
	assert.NotNil(t, populated[0].Vaccines)
	assert.Empty(t, populated[0].Vaccines)
	assert.Empty(t, populated[0].Products)
}

func TestPopulatePathogens(t *testing.T) {
	db := newTestDB(t)
	seedVaccineTree(t, db)

	require.NoError(t, db.Create(&models.Pathogen{Name: "Influenza"}).Error)
	require.NoError(t, db.Create(&models.Pathogen{Name: "Hepatitis B"}).Error)
	require.NoError(t, db.Create(&models.Pathogen{Name: "Rabies"}).Error)

	var pathogens []models.Pathogen
	require.NoError(t, db.Order("name").Find(&pathogens).Error)

	populated, err := NewPopulator(db).PopulatePathogens(pathogens)
	require.NoError(t, err)
	require.Len(t, populated, 3)

	byName := map[string]PopulatedPathogen{}
	for _, p := range populated {
		byName[p.Name] = p
	}

	// The combination vaccine is found by each of its pathogens.
	flu := byName["Influenza"]
	require.Len(t, flu.Vaccines, 2)
	assert.Equal(t, "FluShot", flu.Vaccines[0].Name)
	assert.Equal(t, "TwinVax", flu.Vaccines[1].Name)
	assert.Len(t, flu.Vaccines[0].LicensingDates, 2)

	hep := byName["Hepatitis B"]
	require.Len(t, hep.Vaccines, 1)
	assert.Equal(t, "TwinVax", hep.Vaccines[0].Name)

	// No match resolves to an empty list.
	rabies := byName["Rabies"]
	assert.NotNil(t, rabies.Vaccines)
	assert.Empty(t, rabies.Vaccines)
}

func TestPopulatePathogensCaseInsensitive(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Create(&models.Vaccine{
		Name: "HepVax", VaccineType: "single",
		PathogenNames: "HEPATITIS B", ManufacturerNames: "Acme",
	}).Error)
	require.NoError(t, db.Create(&models.Pathogen{Name: "hepatitis b"}).Error)

	var pathogens []models.Pathogen
	require.NoError(t, db.Find(&pathogens).Error)

	populated, err := NewPopulator(db).PopulatePathogens(pathogens)
	require.NoError(t, err)
	require.Len(t, populated, 1)
	require.Len(t, populated[0].Vaccines, 1)
	assert.Equal(t, "HepVax", populated[0].Vaccines[0].Name)
}
