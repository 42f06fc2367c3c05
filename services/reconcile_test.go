package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"vacciprofile/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Vaccine{},
		&models.Pathogen{},
		&models.Manufacturer{},
		&models.LicensingDate{},
		&models.ProductProfile{},
		&models.ManufacturerProduct{},
		&models.ManufacturerSource{},
		&models.ManufacturerCandidate{},
		&models.NITAG{},
		&models.Licenser{},
		&models.LastUpdate{},
	))
	return db
}

func TestReconcileVaccineCreate(t *testing.T) {
	db := newTestDB(t)

	outcome, v, err := ReconcileVaccine(db, models.Vaccine{
		Name:              "FluShot",
		VaccineType:       "single",
		PathogenNames:     "Influenza",
		ManufacturerNames: "Acme",
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, outcome)
	assert.Equal(t, "FluShot", v.Name)

	var count int64
	db.Model(&models.Vaccine{}).Count(&count)
	assert.EqualValues(t, 1, count)

	// The write is stamped.
	var lu models.LastUpdate
	require.NoError(t, db.Where("model_name = ?", models.KindVaccine).First(&lu).Error)
}

func TestReconcileVaccineMerge(t *testing.T) {
	db := newTestDB(t)

	_, _, err := ReconcileVaccine(db, models.Vaccine{
		Name:              "FluShot",
		VaccineType:       "single",
		PathogenNames:     "Influenza",
		ManufacturerNames: "Acme",
	})
	require.NoError(t, err)

	outcome, v, err := ReconcileVaccine(db, models.Vaccine{
		Name:              "FluShot",
		ManufacturerNames: "Acme, Beta",
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdated, outcome)
	assert.Equal(t, "Acme, Beta", v.ManufacturerNames)
	assert.Equal(t, "Influenza", v.PathogenNames)
	assert.Equal(t, "single", v.VaccineType)
}

func TestReconcileVaccineIdempotent(t *testing.T) {
	db := newTestDB(t)

	in := models.Vaccine{
		Name:              "FluShot",
		VaccineType:       "single",
		PathogenNames:     "Influenza",
		ManufacturerNames: "Acme",
	}
	_, _, err := ReconcileVaccine(db, in)
	require.NoError(t, err)

	outcome, _, err := ReconcileVaccine(db, in)
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnchanged, outcome)

	// Case-variant duplicates in the lists do not count as changes.
	outcome, v, err := ReconcileVaccine(db, models.Vaccine{
		Name:              "FluShot",
		ManufacturerNames: "ACME",
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnchanged, outcome)
	assert.Equal(t, "Acme", v.ManufacturerNames)
}

func TestReconcileVaccineKeyNormalization(t *testing.T) {
	db := newTestDB(t)

	_, _, err := ReconcileVaccine(db, models.Vaccine{
		Name:              "FluShot",
		PathogenNames:     "Influenza",
		ManufacturerNames: "Acme",
	})
	require.NoError(t, err)

	// A padded key resolves to the same record.
	outcome, _, err := ReconcileVaccine(db, models.Vaccine{Name: "  FluShot  "})
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnchanged, outcome)

	var count int64
	db.Model(&models.Vaccine{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestReconcileVaccineValidation(t *testing.T) {
	db := newTestDB(t)

	_, _, err := ReconcileVaccine(db, models.Vaccine{PathogenNames: "Influenza"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Field)

	_, _, err = ReconcileVaccine(db, models.Vaccine{Name: "FluShot", ManufacturerNames: "Acme"})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "pathogenNames", ve.Field)

	_, _, err = ReconcileVaccine(db, models.Vaccine{
		Name:              "FluShot",
		VaccineType:       "bivalent",
		PathogenNames:     "Influenza",
		ManufacturerNames: "Acme",
	})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "vaccineType", ve.Field)

	// Nothing was written.
	var count int64
	db.Model(&models.Vaccine{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestReconcilePathogenScalarOverwrite(t *testing.T) {
	db := newTestDB(t)

	_, _, err := ReconcilePathogen(db, models.Pathogen{
		Name:        "Influenza",
		Description: "old description",
	})
	require.NoError(t, err)

	outcome, p, err := ReconcilePathogen(db, models.Pathogen{
		Name:        "Influenza",
		Description: "new description",
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdated, outcome)
	assert.Equal(t, "new description", p.Description)

	// Blank incoming scalars never clear stored values.
	outcome, p, err = ReconcilePathogen(db, models.Pathogen{Name: "Influenza"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnchanged, outcome)
	assert.Equal(t, "new description", p.Description)
}

func TestReconcileManufacturerMerge(t *testing.T) {
	db := newTestDB(t)

	_, _, err := ReconcileManufacturer(db, models.Manufacturer{
		Name:                 "Acme",
		DetailsCEO:           "J. Doe",
		LicensedVaccineNames: "FluShot",
	})
	require.NoError(t, err)

	outcome, m, err := ReconcileManufacturer(db, models.Manufacturer{
		Name:                 "Acme",
		DetailsCEO:           "A. Smith",
		LicensedVaccineNames: "PolioVax, FluShot",
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdated, outcome)
	assert.Equal(t, "A. Smith", m.DetailsCEO)
	assert.Equal(t, "FluShot, PolioVax", m.LicensedVaccineNames)
}

func TestReconcileNITAG(t *testing.T) {
	db := newTestDB(t)

	outcome, _, err := ReconcileNITAG(db, models.NITAG{Country: "Germany", AvailableNitag: "Yes"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, outcome)

	outcome, n, err := ReconcileNITAG(db, models.NITAG{Country: "Germany", NationalNitagName: "STIKO"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdated, outcome)
	assert.Equal(t, "Yes", n.AvailableNitag)
	assert.Equal(t, "STIKO", n.NationalNitagName)
}

func TestReconcileLicenserRequiresFullName(t *testing.T) {
	db := newTestDB(t)

	_, _, err := ReconcileLicenser(db, models.Licenser{Acronym: "FDA"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "fullName", ve.Field)

	outcome, _, err := ReconcileLicenser(db, models.Licenser{
		Acronym:  "FDA",
		FullName: "Food and Drug Administration",
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, outcome)
}
