package services

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"vacciprofile/models"
)

// ImportError is one rejected CSV row.
type ImportError struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

// ImportResult summarizes one CSV batch. Created and unchanged rows land in
// Success, merged rows in Updated with an "(updated)" suffix.
type ImportResult struct {
	Success []string      `json:"success"`
	Updated []string      `json:"updated"`
	Errors  []ImportError `json:"errors"`
}

func newImportResult() *ImportResult {
	return &ImportResult{
		Success: make([]string, 0),
		Updated: make([]string, 0),
		Errors:  make([]ImportError, 0),
	}
}

// Imported is the number of accepted rows.
func (r *ImportResult) Imported() int {
	return len(r.Success) + len(r.Updated)
}

func (r *ImportResult) record(label string, outcome Outcome) {
	if outcome == OutcomeUpdated {
		r.Updated = append(r.Updated, label+" (updated)")
		return
	}
	r.Success = append(r.Success, label)
}

// rowError distinguishes row-level rejections from infrastructure failures.
// Validation and conflict errors are recorded and the batch continues;
// anything else aborts.
func (r *ImportResult) rowError(label string, err error) error {
	var ve *ValidationError
	var ce *ConflictError
	if errors.As(err, &ve) || errors.As(err, &ce) {
		if label == "" {
			label = "Unknown"
		}
		r.Errors = append(r.Errors, ImportError{Name: label, Error: err.Error()})
		return nil
	}
	return err
}

// Importer runs CSV batches against the store. Rows are processed
// sequentially in input order so that a repeated key within one batch merges
// into the first row's result.
type Importer struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewImporter(db *gorm.DB, log *zap.Logger) *Importer {
	return &Importer{DB: db, Log: log}
}

// Import decodes the CSV payload and dispatches to the kind's row handler.
func (im *Importer) Import(kind string, data []byte) (*ImportResult, error) {
	rows, err := DecodeCSV(data)
	if err != nil {
		return nil, err
	}
	switch kind {
	case CSVVaccines:
		return im.importVaccines(rows)
	case CSVPathogens:
		return im.importPathogens(rows)
	case CSVManufacturers:
		return im.importManufacturers(rows)
	case CSVLicensingDates:
		return im.importLicensingDates(rows)
	case CSVProductProfiles:
		return im.importProductProfiles(rows)
	case CSVManufacturerProducts:
		return im.importManufacturerProducts(rows)
	case CSVManufacturerSources:
		return im.importManufacturerSources(rows)
	case CSVManufacturerCandidates:
		return im.importManufacturerCandidates(rows)
	case CSVNITAGs:
		return im.importNITAGs(rows)
	case CSVLicensers:
		return im.importLicensers(rows)
	}
	return nil, &ValidationError{Field: "kind", Message: fmt.Sprintf("unknown CSV kind %q", kind)}
}

func (im *Importer) importVaccines(rows []map[string]string) (*ImportResult, error) {
	result := newImportResult()
	for _, row := range rows {
		name := row["name"]
		if name == "" {
			name = row["vaccineName"]
		}
		outcome, v, err := ReconcileVaccine(im.DB, models.Vaccine{
			Name:              name,
			VaccineType:       row["vaccineType"],
			PathogenNames:     row["pathogenNames"],
			ManufacturerNames: row["manufacturerNames"],
		})
		if err != nil {
			if err = result.rowError(name, err); err != nil {
				return nil, err
			}
			continue
		}
		result.record(v.Name, outcome)
	}
	return result, nil
}

func (im *Importer) importPathogens(rows []map[string]string) (*ImportResult, error) {
	result := newImportResult()
	for _, row := range rows {
		outcome, p, err := ReconcilePathogen(im.DB, models.Pathogen{
			Name:                  row["name"],
			Description:           row["description"],
			Image:                 row["image"],
			Bulletpoints:          row["bulletpoints"],
			Link:                  row["link"],
			VaccineNames:          row["vaccineNames"],
			CandidateVaccineNames: row["candidateVaccineNames"],
		})
		if err != nil {
			if err = result.rowError(row["name"], err); err != nil {
				return nil, err
			}
			continue
		}
		result.record(p.Name, outcome)
	}
	return result, nil
}

func (im *Importer) importManufacturers(rows []map[string]string) (*ImportResult, error) {
	result := newImportResult()
	for _, row := range rows {
		outcome, m, err := ReconcileManufacturer(im.DB, models.Manufacturer{
			Name:                     row["name"],
			Description:              row["description"],
			History:                  row["history"],
			LastUpdated:              row["lastUpdated"],
			DetailsWebsite:           row["details_website"],
			DetailsFounded:           row["details_founded"],
			DetailsHeadquarters:      row["details_headquarters"],
			DetailsCEO:               row["details_ceo"],
			DetailsRevenue:           row["details_revenue"],
			DetailsOperatingIncome:   row["details_operatingIncome"],
			DetailsNetIncome:         row["details_netIncome"],
			DetailsTotalAssets:       row["details_totalAssets"],
			DetailsTotalEquity:       row["details_totalEquity"],
			DetailsNumberOfEmployees: row["details_numberOfEmployees"],
			DetailsProducts:          row["details_products"],
			LicensedVaccineNames:     row["licensedVaccineNames"],
			CandidateVaccineNames:    row["candidateVaccineNames"],
		})
		if err != nil {
			if err = result.rowError(row["name"], err); err != nil {
				return nil, err
			}
			continue
		}
		result.record(m.Name, outcome)
	}
	return result, nil
}

func (im *Importer) importNITAGs(rows []map[string]string) (*ImportResult, error) {
	result := newImportResult()
	for _, row := range rows {
		outcome, n, err := ReconcileNITAG(im.DB, models.NITAG{
			Country:           row["country"],
			AvailableNitag:    row["availableNitag"],
			AvailableWebsite:  row["availableWebsite"],
			WebsiteURL:        row["websiteUrl"],
			NationalNitagName: row["nationalNitagName"],
			YearEstablished:   row["yearEstablished"],
		})
		if err != nil {
			if err = result.rowError(row["country"], err); err != nil {
				return nil, err
			}
			continue
		}
		result.record(n.Country, outcome)
	}
	return result, nil
}

func (im *Importer) importLicensers(rows []map[string]string) (*ImportResult, error) {
	result := newImportResult()
	for _, row := range rows {
		outcome, l, err := ReconcileLicenser(im.DB, models.Licenser{
			Acronym:     row["acronym"],
			Region:      row["region"],
			Country:     row["country"],
			FullName:    row["fullName"],
			Description: row["description"],
			Website:     row["website"],
		})
		if err != nil {
			if err = result.rowError(row["acronym"], err); err != nil {
				return nil, err
			}
			continue
		}
		result.record(l.Acronym, outcome)
	}
	return result, nil
}

// Child kinds import as plain creates with defaults applied; a failing row is
// recorded and skipped, it never aborts the batch.

func (im *Importer) importLicensingDates(rows []map[string]string) (*ImportResult, error) {
	result := newImportResult()
	created := 0
	for _, row := range rows {
		label := row["vaccineName"]
		d, err := NewLicensingDate(row)
		if err == nil {
			err = im.DB.Create(d).Error
		}
		if err != nil {
			if err = result.rowError(label, err); err != nil {
				return nil, err
			}
			continue
		}
		created++
		result.record(d.VaccineName+" - "+d.Name, OutcomeCreated)
	}
	return result, im.stampIfAny(created, models.KindLicensingDate)
}

func (im *Importer) importProductProfiles(rows []map[string]string) (*ImportResult, error) {
	result := newImportResult()
	created := 0
	for _, row := range rows {
		label := row["vaccineName"]
		p, err := NewProductProfile(row)
		if err == nil {
			err = im.DB.Create(p).Error
		}
		if err != nil {
			if err = result.rowError(label, err); err != nil {
				return nil, err
			}
			continue
		}
		created++
		result.record(p.VaccineName+" - "+p.Type, OutcomeCreated)
	}
	return result, im.stampIfAny(created, models.KindProductProfile)
}

func (im *Importer) importManufacturerProducts(rows []map[string]string) (*ImportResult, error) {
	result := newImportResult()
	created := 0
	for _, row := range rows {
		label := row["manufacturerName"]
		p, err := NewManufacturerProduct(row)
		if err == nil {
			err = im.DB.Create(p).Error
		}
		if err != nil {
			if err = result.rowError(label, err); err != nil {
				return nil, err
			}
			continue
		}
		created++
		result.record(p.ManufacturerName+" - "+p.ProductName, OutcomeCreated)
	}
	return result, im.stampIfAny(created, models.KindManufacturerProduct)
}

func (im *Importer) importManufacturerSources(rows []map[string]string) (*ImportResult, error) {
	result := newImportResult()
	created := 0
	for _, row := range rows {
		label := row["manufacturerName"]
		s, err := NewManufacturerSource(row)
		if err == nil {
			err = im.DB.Create(s).Error
		}
		if err != nil {
			if err = result.rowError(label, err); err != nil {
				return nil, err
			}
			continue
		}
		created++
		result.record(s.ManufacturerName+" - "+s.Title, OutcomeCreated)
	}
	return result, im.stampIfAny(created, models.KindManufacturerSource)
}

func (im *Importer) importManufacturerCandidates(rows []map[string]string) (*ImportResult, error) {
	result := newImportResult()
	created := 0
	for _, row := range rows {
		label := row["pathogenName"]
		c, err := NewManufacturerCandidate(row)
		if err == nil {
			err = im.DB.Create(c).Error
		}
		if err != nil {
			if err = result.rowError(label, err); err != nil {
				return nil, err
			}
			continue
		}
		created++
		result.record(c.PathogenName+" - "+c.Name, OutcomeCreated)
	}
	return result, im.stampIfAny(created, models.KindManufacturerCandidate)
}

func (im *Importer) stampIfAny(created int, kind string) error {
	if created == 0 {
		return nil
	}
	if err := StampLastUpdate(im.DB, kind); err != nil {
		im.Log.Warn("last-update stamp failed", zap.String("kind", kind), zap.Error(err))
	}
	return nil
}
