package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vacciprofile/models"
)

func TestDecodeCSV(t *testing.T) {
	// BOM, shuffled columns and padded cells are all tolerated.
	data := []byte("\ufeffvaccineType,name,pathogenNames,manufacturerNames\n" +
		"single,  FluShot ,Influenza,Acme\n" +
		"\n" +
		",,,\n")
	rows, err := DecodeCSV(data)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "FluShot", rows[0]["name"])
	assert.Equal(t, "single", rows[0]["vaccineType"])
}

func TestDecodeCSVEmpty(t *testing.T) {
	_, err := DecodeCSV([]byte(""))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestDecodeCSVShortRow(t *testing.T) {
	rows, err := DecodeCSV([]byte("name,vaccineType\nFluShot\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "FluShot", rows[0]["name"])
	assert.Equal(t, "", rows[0]["vaccineType"])
}

func TestImportVaccinesScenario(t *testing.T) {
	db := newTestDB(t)
	im := NewImporter(db, zap.NewNop())

	result, err := im.Import(CSVVaccines, []byte(
		"name,vaccineType,pathogenNames,manufacturerNames\n"+
			"FluShot,single,Influenza,Acme\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"FluShot"}, result.Success)
	assert.Empty(t, result.Updated)
	assert.Empty(t, result.Errors)

	// Re-import with an extended manufacturer list merges.
	result, err = im.Import(CSVVaccines, []byte(
		"name,manufacturerNames\n"+
			"FluShot,\"Acme, Beta\"\n"))
	require.NoError(t, err)
	assert.Empty(t, result.Success)
	assert.Equal(t, []string{"FluShot (updated)"}, result.Updated)

	var v models.Vaccine
	require.NoError(t, db.Where("name = ?", "FluShot").First(&v).Error)
	assert.Equal(t, "Acme, Beta", v.ManufacturerNames)

	// Importing the same file again is a no-op.
	result, err = im.Import(CSVVaccines, []byte(
		"name,manufacturerNames\n"+
			"FluShot,\"Acme, Beta\"\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"FluShot"}, result.Success)
	assert.Empty(t, result.Updated)
}

func TestImportRowErrorIsolation(t *testing.T) {
	db := newTestDB(t)
	im := NewImporter(db, zap.NewNop())

	result, err := im.Import(CSVVaccines, []byte(
		"name,vaccineType,pathogenNames,manufacturerNames\n"+
			"GoodVax,single,Influenza,Acme\n"+
			"BadVax,single,,Acme\n"+
			"AlsoGood,single,Measles,Beta\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"GoodVax", "AlsoGood"}, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "BadVax", result.Errors[0].Name)
	assert.Contains(t, result.Errors[0].Error, "pathogenNames")
}

func TestImportRepeatedKeyInBatch(t *testing.T) {
	db := newTestDB(t)
	im := NewImporter(db, zap.NewNop())

	// The second row sees the first row's result and merges into it.
	result, err := im.Import(CSVVaccines, []byte(
		"name,vaccineType,pathogenNames,manufacturerNames\n"+
			"FluShot,single,Influenza,Acme\n"+
			"FluShot,single,Influenza,Beta\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"FluShot"}, result.Success)
	assert.Equal(t, []string{"FluShot (updated)"}, result.Updated)

	var v models.Vaccine
	require.NoError(t, db.Where("name = ?", "FluShot").First(&v).Error)
	assert.Equal(t, "Acme, Beta", v.ManufacturerNames)
}

func TestImportLicensingDateDefaults(t *testing.T) {
	db := newTestDB(t)
	im := NewImporter(db, zap.NewNop())

	result, err := im.Import(CSVLicensingDates, []byte(
		"vaccineName,name,approvalDate,source,type\n"+
			"FluShot,FDA,2021-03-01,https://fda.example,\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"FluShot - FDA"}, result.Success)

	var d models.LicensingDate
	require.NoError(t, db.First(&d).Error)
	assert.Equal(t, NotAvailable, d.Type)
	assert.Equal(t, NotAvailable, d.LastUpdateOnVaccine)
}

func TestImportProductProfileDefaults(t *testing.T) {
	db := newTestDB(t)
	im := NewImporter(db, zap.NewNop())

	_, err := im.Import(CSVProductProfiles, []byte(
		"vaccineName,type,name,dosing\n"+
			"FluShot,standard,FluShot IM,two doses\n"))
	require.NoError(t, err)

	var p models.ProductProfile
	require.NoError(t, db.First(&p).Error)
	assert.Equal(t, "two doses", p.Dosing)
	assert.Equal(t, NotLicensedYet, p.Composition)
	assert.Equal(t, NotLicensedYet, p.Efficacy)
}

func TestImportUnknownKind(t *testing.T) {
	db := newTestDB(t)
	im := NewImporter(db, zap.NewNop())

	_, err := im.Import("papers", []byte("name\nx\n"))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestExportCSV(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Vaccine{
		Name: "ZVax", VaccineType: "single", PathogenNames: "Zika", ManufacturerNames: "Acme",
	}).Error)
	require.NoError(t, db.Create(&models.Vaccine{
		Name: "AVax", VaccineType: "single", PathogenNames: "Anthrax", ManufacturerNames: "Beta",
	}).Error)

	data, err := ExportCSV(db, CSVVaccines)
	require.NoError(t, err)

	out := string(data)
	require.True(t, strings.HasPrefix(out, "\ufeff"))

	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(out, "\ufeff")), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "name,vaccineType,pathogenNames,manufacturerNames", lines[0])
	// Sorted by natural key.
	assert.True(t, strings.HasPrefix(lines[1], "AVax,"))
	assert.True(t, strings.HasPrefix(lines[2], "ZVax,"))
}

func TestExportImportRoundTrip(t *testing.T) {
	db := newTestDB(t)
	im := NewImporter(db, zap.NewNop())

	require.NoError(t, db.Create(&models.Licenser{
		Acronym: "EMA", FullName: "European Medicines Agency", Region: "Europe",
	}).Error)

	data, err := ExportCSV(db, CSVLicensers)
	require.NoError(t, err)

	// Re-importing an export is a clean no-op.
	result, err := im.Import(CSVLicensers, data)
	require.NoError(t, err)
	assert.Equal(t, []string{"EMA"}, result.Success)
	assert.Empty(t, result.Updated)
	assert.Empty(t, result.Errors)

	var count int64
	db.Model(&models.Licenser{}).Count(&count)
	assert.EqualValues(t, 1, count)
}
