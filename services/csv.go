package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"gorm.io/gorm"

	"vacciprofile/models"
)

// CSV kind identifiers, matching the route segments.
const (
	CSVVaccines               = "vaccines"
	CSVPathogens              = "pathogens"
	CSVManufacturers          = "manufacturers"
	CSVLicensingDates         = "licensing-dates"
	CSVProductProfiles        = "product-profiles"
	CSVManufacturerProducts   = "manufacturer-products"
	CSVManufacturerSources    = "manufacturer-sources"
	CSVManufacturerCandidates = "manufacturer-candidates"
	CSVNITAGs                 = "nitags"
	CSVLicensers              = "licensers"
)

// exportColumns fixes the header order per kind. Imports accept any column
// order; exports always emit this one.
var exportColumns = map[string][]string{
	CSVVaccines:  {"name", "vaccineType", "pathogenNames", "manufacturerNames"},
	CSVPathogens: {"name", "description", "image", "bulletpoints", "link", "vaccineNames", "candidateVaccineNames"},
	CSVManufacturers: {
		"name", "description", "history", "lastUpdated",
		"details_website", "details_founded", "details_headquarters", "details_ceo",
		"details_revenue", "details_operatingIncome", "details_netIncome",
		"details_totalAssets", "details_totalEquity", "details_numberOfEmployees",
		"details_products", "licensedVaccineNames", "candidateVaccineNames",
	},
	CSVLicensingDates: {"vaccineName", "name", "type", "approvalDate", "source", "lastUpdateOnVaccine"},
	CSVProductProfiles: {
		"vaccineName", "type", "name",
		"composition", "strainCoverage", "indication", "contraindication",
		"dosing", "immunogenicity", "Efficacy", "durationOfProtection",
		"coAdministration", "reactogenicity", "safety", "vaccinationGoal", "others",
	},
	CSVManufacturerProducts:   {"manufacturerName", "productName", "productDescription"},
	CSVManufacturerSources:    {"manufacturerName", "lastUpdated", "title", "link"},
	CSVManufacturerCandidates: {"pathogenName", "name", "manufacturer", "platform", "clinicalPhase", "companyUrl", "other"},
	CSVNITAGs:                 {"country", "availableNitag", "availableWebsite", "websiteUrl", "nationalNitagName", "yearEstablished"},
	CSVLicensers:              {"acronym", "region", "country", "fullName", "description", "website"},
}

// CSVKinds lists every kind with a codec, in snapshot order.
var CSVKinds = []string{
	CSVVaccines, CSVPathogens, CSVManufacturers,
	CSVLicensingDates, CSVProductProfiles,
	CSVManufacturerProducts, CSVManufacturerSources, CSVManufacturerCandidates,
	CSVNITAGs, CSVLicensers,
}

// KnownCSVKind reports whether kind has a CSV codec.
func KnownCSVKind(kind string) bool {
	_, ok := exportColumns[kind]
	return ok
}

// DecodeCSV parses uploaded CSV bytes into header-keyed rows. A leading BOM
// is stripped and every cell is trimmed and NFC-normalized. The first row is
// the header; blank lines and short rows are tolerated.
func DecodeCSV(data []byte) ([]map[string]string, error) {
	r := csv.NewReader(bytes.NewReader(StripBOM(data)))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, &ValidationError{Field: "file", Message: "CSV file is empty"}
	}
	if err != nil {
		return nil, &ValidationError{Field: "file", Message: fmt.Sprintf("invalid CSV: %v", err)}
	}
	for i := range header {
		header[i] = NormalizeText(header[i])
	}

	var rows []map[string]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ValidationError{Field: "file", Message: fmt.Sprintf("invalid CSV: %v", err)}
		}
		row := make(map[string]string, len(header))
		empty := true
		for i, col := range header {
			if i >= len(record) || col == "" {
				continue
			}
			v := NormalizeText(record[i])
			row[col] = v
			if v != "" {
				empty = false
			}
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// ExportCSV renders every record of the kind as BOM-prefixed UTF-8 CSV,
// sorted by natural key, with the kind's fixed column order.
func ExportCSV(db *gorm.DB, kind string) ([]byte, error) {
	columns, ok := exportColumns[kind]
	if !ok {
		return nil, &ValidationError{Field: "kind", Message: fmt.Sprintf("unknown CSV kind %q", kind)}
	}

	var rows [][]string
	var err error
	switch kind {
	case CSVVaccines:
		var recs []models.Vaccine
		if err = db.Order("name").Find(&recs).Error; err == nil {
			for _, r := range recs {
				rows = append(rows, []string{r.Name, r.VaccineType, r.PathogenNames, r.ManufacturerNames})
			}
		}
	case CSVPathogens:
		var recs []models.Pathogen
		if err = db.Order("name").Find(&recs).Error; err == nil {
			for _, r := range recs {
				rows = append(rows, []string{r.Name, r.Description, r.Image, r.Bulletpoints, r.Link, r.VaccineNames, r.CandidateVaccineNames})
			}
		}
	case CSVManufacturers:
		var recs []models.Manufacturer
		if err = db.Order("name").Find(&recs).Error; err == nil {
			for _, r := range recs {
				rows = append(rows, []string{
					r.Name, r.Description, r.History, r.LastUpdated,
					r.DetailsWebsite, r.DetailsFounded, r.DetailsHeadquarters, r.DetailsCEO,
					r.DetailsRevenue, r.DetailsOperatingIncome, r.DetailsNetIncome,
					r.DetailsTotalAssets, r.DetailsTotalEquity, r.DetailsNumberOfEmployees,
					r.DetailsProducts, r.LicensedVaccineNames, r.CandidateVaccineNames,
				})
			}
		}
	case CSVLicensingDates:
		var recs []models.LicensingDate
		if err = db.Order("vaccine_name, approval_date").Find(&recs).Error; err == nil {
			for _, r := range recs {
				rows = append(rows, []string{r.VaccineName, r.Name, r.Type, r.ApprovalDate, r.Source, r.LastUpdateOnVaccine})
			}
		}
	case CSVProductProfiles:
		var recs []models.ProductProfile
		if err = db.Order("vaccine_name, type").Find(&recs).Error; err == nil {
			for _, r := range recs {
				rows = append(rows, []string{
					r.VaccineName, r.Type, r.Name,
					r.Composition, r.StrainCoverage, r.Indication, r.Contraindication,
					r.Dosing, r.Immunogenicity, r.Efficacy, r.DurationOfProtection,
					r.CoAdministration, r.Reactogenicity, r.Safety, r.VaccinationGoal, r.Others,
				})
			}
		}
	case CSVManufacturerProducts:
		var recs []models.ManufacturerProduct
		if err = db.Order("manufacturer_name, product_name").Find(&recs).Error; err == nil {
			for _, r := range recs {
				rows = append(rows, []string{r.ManufacturerName, r.ProductName, r.ProductDescription})
			}
		}
	case CSVManufacturerSources:
		var recs []models.ManufacturerSource
		if err = db.Order("manufacturer_name, title").Find(&recs).Error; err == nil {
			for _, r := range recs {
				rows = append(rows, []string{r.ManufacturerName, r.LastUpdated, r.Title, r.Link})
			}
		}
	case CSVManufacturerCandidates:
		var recs []models.ManufacturerCandidate
		if err = db.Order("pathogen_name, name").Find(&recs).Error; err == nil {
			for _, r := range recs {
				rows = append(rows, []string{r.PathogenName, r.Name, r.Manufacturer, r.Platform, r.ClinicalPhase, r.CompanyURL, r.Other})
			}
		}
	case CSVNITAGs:
		var recs []models.NITAG
		if err = db.Order("country").Find(&recs).Error; err == nil {
			for _, r := range recs {
				rows = append(rows, []string{r.Country, r.AvailableNitag, r.AvailableWebsite, r.WebsiteURL, r.NationalNitagName, r.YearEstablished})
			}
		}
	case CSVLicensers:
		var recs []models.Licenser
		if err = db.Order("acronym").Find(&recs).Error; err == nil {
			for _, r := range recs {
				rows = append(rows, []string{r.Acronym, r.Region, r.Country, r.FullName, r.Description, r.Website})
			}
		}
	}
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(utf8BOM)
	w := csv.NewWriter(&buf)
	if err := w.Write(columns); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportFilename is the attachment name for a kind's CSV download.
func ExportFilename(kind string) string {
	return kind + ".csv"
}
