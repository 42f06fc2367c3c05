package main

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"vacciprofile/config"
	"vacciprofile/models"
)

const testAPIKey = "test-key"

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	cfg := &config.Config{
		AdminAPIKey: testAPIKey,
		CORSOrigins: "http://localhost:3000",
	}
	return newRouter(cfg, db, zap.NewNop()), db
}

func doJSON(router *gin.Engine, method, path string, body any, apiKey string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-KEY", apiKey)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestVaccineCRUD(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/vaccines", gin.H{
		"name":              "FluShot",
		"vaccineType":       "single",
		"pathogenNames":     "Influenza",
		"manufacturerNames": "Acme",
	}, testAPIKey)
	require.Equal(t, http.StatusCreated, w.Code)

	// Duplicate natural key conflicts on the create path.
	w = doJSON(router, http.MethodPost, "/api/vaccines", gin.H{
		"name":              "FluShot",
		"vaccineType":       "single",
		"pathogenNames":     "Influenza",
		"manufacturerNames": "Acme",
	}, testAPIKey)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")

	// Public list read.
	w = doJSON(router, http.MethodGet, "/api/vaccines", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.EqualValues(t, 1, body["count"])

	// Update.
	w = doJSON(router, http.MethodPut, "/api/vaccines/1", gin.H{
		"manufacturerNames": "Acme, Beta",
	}, testAPIKey)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Acme, Beta")

	w = doJSON(router, http.MethodGet, "/api/vaccines/999", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMutationsRequireAPIKey(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/vaccines", gin.H{"name": "X"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodPost, "/api/vaccines", gin.H{"name": "X"}, "wrong-key")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodGet, "/api/csv/export/vaccines", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Reads stay public.
	w = doJSON(router, http.MethodGet, "/api/vaccines", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVaccineCascadeDelete(t *testing.T) {
	router, db := newTestRouter(t)

	require.NoError(t, db.Create(&models.Vaccine{
		Name: "FluShot", VaccineType: "single",
		PathogenNames: "Influenza", ManufacturerNames: "Acme",
	}).Error)
	require.NoError(t, db.Create(&models.LicensingDate{
		VaccineName: "FluShot", Name: "FDA", ApprovalDate: "2021-03-01", Source: "https://fda.example",
	}).Error)
	require.NoError(t, db.Create(&models.ProductProfile{
		VaccineName: "FluShot", Type: "standard", Name: "FluShot IM",
	}).Error)
	require.NoError(t, db.Create(&models.LicensingDate{
		VaccineName: "OtherVax", Name: "EMA", ApprovalDate: "2019-05-01", Source: "https://ema.example",
	}).Error)

	w := doJSON(router, http.MethodDelete, "/api/vaccines/1", nil, testAPIKey)
	require.Equal(t, http.StatusOK, w.Code)

	var dates, profiles int64
	db.Model(&models.LicensingDate{}).Count(&dates)
	db.Model(&models.ProductProfile{}).Count(&profiles)
	// Only the named vaccine's children are gone.
	assert.EqualValues(t, 1, dates)
	assert.EqualValues(t, 0, profiles)
}

func TestRenameUniquenessCheck(t *testing.T) {
	router, db := newTestRouter(t)

	require.NoError(t, db.Create(&models.Pathogen{Name: "Influenza"}).Error)
	require.NoError(t, db.Create(&models.Pathogen{Name: "Measles"}).Error)

	w := doJSON(router, http.MethodPut, "/api/pathogens/2", gin.H{"name": "Influenza"}, testAPIKey)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestPopulatedVaccineEndpoint(t *testing.T) {
	router, db := newTestRouter(t)

	require.NoError(t, db.Create(&models.Vaccine{
		Name: "FluShot", VaccineType: "single",
		PathogenNames: "Influenza", ManufacturerNames: "Acme",
	}).Error)
	require.NoError(t, db.Create(&models.LicensingDate{
		VaccineName: "FluShot", Name: "FDA", ApprovalDate: "2021-03-01", Source: "https://fda.example",
	}).Error)

	w := doJSON(router, http.MethodGet, "/api/vaccines/1/populated", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	vaccine := body["vaccine"].(map[string]any)
	dates := vaccine["licensingDates"].([]any)
	require.Len(t, dates, 1)
	// Dangling children keys are present as empty arrays.
	profiles := vaccine["productProfiles"].([]any)
	assert.Empty(t, profiles)
}

func TestChildListFilter(t *testing.T) {
	router, db := newTestRouter(t)

	require.NoError(t, db.Create(&models.LicensingDate{
		VaccineName: "FluShot", Name: "FDA", ApprovalDate: "2021-03-01", Source: "https://fda.example",
	}).Error)
	require.NoError(t, db.Create(&models.LicensingDate{
		VaccineName: "PolioVax", Name: "EMA", ApprovalDate: "2018-01-01", Source: "https://ema.example",
	}).Error)

	w := doJSON(router, http.MethodGet, "/api/licensing-dates?vaccineName=FluShot", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.EqualValues(t, 1, body["count"])
}

func TestLastUpdateEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	// Empty store still answers with a timestamp.
	w := doJSON(router, http.MethodGet, "/api/last-update", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Contains(t, body, "lastUpdate")

	doJSON(router, http.MethodPost, "/api/nitags", gin.H{"country": "Germany"}, testAPIKey)

	w = doJSON(router, http.MethodGet, "/api/last-update", nil, "")
	body = decodeBody(t, w)
	lastUpdate := body["lastUpdate"].(map[string]any)
	assert.Equal(t, models.KindNITAG, lastUpdate["modelName"])
}

func TestCSVImportEndpoint(t *testing.T) {
	router, db := newTestRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "vaccines.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(
		"name,vaccineType,pathogenNames,manufacturerNames\n" +
			"FluShot,single,Influenza,Acme\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/csv/import/vaccines", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-API-KEY", testAPIKey)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Vaccine{}).Count(&count)
	assert.EqualValues(t, 1, count)

	// Export echoes the imported record.
	w2 := doJSON(router, http.MethodGet, "/api/csv/export/vaccines", nil, testAPIKey)
	require.Equal(t, http.StatusOK, w2.Code)
	assert.Contains(t, w2.Header().Get("Content-Disposition"), "vaccines.csv")
	assert.True(t, strings.Contains(w2.Body.String(), "FluShot"))
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doJSON(router, http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}
