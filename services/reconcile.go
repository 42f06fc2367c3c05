package services

import (
	"errors"

	"gorm.io/gorm"

	"vacciprofile/models"
)

// Outcome of a reconcile call. "Already exists with identical data" is
// OutcomeUnchanged, a success, never an error.
type Outcome int

const (
	OutcomeCreated Outcome = iota
	OutcomeUpdated
	OutcomeUnchanged
)

// mergeList folds the incoming comma-separated list into dst without
// duplicating tokens. Existing tokens keep their position and casing.
func mergeList(dst *string, incoming string, changed *bool) {
	merged, added := MergeNameLists(*dst, NormalizeText(incoming))
	if added {
		*dst = merged
		*changed = true
	}
}

// mergeScalar overwrites dst with a non-blank differing incoming value.
// Incoming is authoritative for scalars, merge-only for lists.
func mergeScalar(dst *string, incoming string, changed *bool) {
	v := NormalizeText(incoming)
	if v != "" && v != *dst {
		*dst = v
		*changed = true
	}
}

func validVaccineType(t string) bool {
	return t == models.VaccineTypeSingle || t == models.VaccineTypeCombination
}

// ReconcileVaccine creates the vaccine or merges the incoming row into the
// record with the same name. List fields are merged, vaccineType is
// overwritten when it differs. Writes stamp the Vaccine last-update row.
func ReconcileVaccine(db *gorm.DB, in models.Vaccine) (Outcome, *models.Vaccine, error) {
	name := NormalizeText(in.Name)
	if name == "" {
		return 0, nil, missingField("name")
	}

	var existing models.Vaccine
	err := db.Where("name = ?", name).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		v := models.Vaccine{
			Name:              name,
			VaccineType:       Defaulted(in.VaccineType, models.VaccineTypeSingle),
			PathogenNames:     NormalizeText(in.PathogenNames),
			ManufacturerNames: NormalizeText(in.ManufacturerNames),
		}
		if !validVaccineType(v.VaccineType) {
			return 0, nil, invalidField("vaccineType", "vaccineType must be 'single' or 'combination'")
		}
		if v.PathogenNames == "" {
			return 0, nil, missingField("pathogenNames")
		}
		if v.ManufacturerNames == "" {
			return 0, nil, missingField("manufacturerNames")
		}
		if err := db.Create(&v).Error; err != nil {
			return 0, nil, err
		}
		return OutcomeCreated, &v, StampLastUpdate(db, models.KindVaccine)
	case err != nil:
		return 0, nil, err
	}

	changed := false
	mergeList(&existing.PathogenNames, in.PathogenNames, &changed)
	mergeList(&existing.ManufacturerNames, in.ManufacturerNames, &changed)
	if t := NormalizeText(in.VaccineType); t != "" && t != existing.VaccineType {
		if !validVaccineType(t) {
			return 0, nil, invalidField("vaccineType", "vaccineType must be 'single' or 'combination'")
		}
		existing.VaccineType = t
		changed = true
	}

	if !changed {
		return OutcomeUnchanged, &existing, nil
	}
	if err := db.Save(&existing).Error; err != nil {
		return 0, nil, err
	}
	return OutcomeUpdated, &existing, StampLastUpdate(db, models.KindVaccine)
}

// ReconcilePathogen creates or merges a pathogen by name.
func ReconcilePathogen(db *gorm.DB, in models.Pathogen) (Outcome, *models.Pathogen, error) {
	name := NormalizeText(in.Name)
	if name == "" {
		return 0, nil, missingField("name")
	}

	var existing models.Pathogen
	err := db.Where("name = ?", name).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		p := models.Pathogen{
			Name:                  name,
			Description:           NormalizeText(in.Description),
			Image:                 NormalizeText(in.Image),
			Bulletpoints:          NormalizeText(in.Bulletpoints),
			Link:                  NormalizeText(in.Link),
			VaccineNames:          NormalizeText(in.VaccineNames),
			CandidateVaccineNames: NormalizeText(in.CandidateVaccineNames),
		}
		if err := db.Create(&p).Error; err != nil {
			return 0, nil, err
		}
		return OutcomeCreated, &p, StampLastUpdate(db, models.KindPathogen)
	case err != nil:
		return 0, nil, err
	}

	changed := false
	mergeScalar(&existing.Description, in.Description, &changed)
	mergeScalar(&existing.Image, in.Image, &changed)
	mergeScalar(&existing.Bulletpoints, in.Bulletpoints, &changed)
	mergeScalar(&existing.Link, in.Link, &changed)
	mergeList(&existing.VaccineNames, in.VaccineNames, &changed)
	mergeList(&existing.CandidateVaccineNames, in.CandidateVaccineNames, &changed)

	if !changed {
		return OutcomeUnchanged, &existing, nil
	}
	if err := db.Save(&existing).Error; err != nil {
		return 0, nil, err
	}
	return OutcomeUpdated, &existing, StampLastUpdate(db, models.KindPathogen)
}

// ReconcileManufacturer creates or merges a manufacturer by name.
func ReconcileManufacturer(db *gorm.DB, in models.Manufacturer) (Outcome, *models.Manufacturer, error) {
	name := NormalizeText(in.Name)
	if name == "" {
		return 0, nil, missingField("name")
	}

	var existing models.Manufacturer
	err := db.Where("name = ?", name).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		m := in
		m.ID = 0
		m.Name = name
		normalizeManufacturerFields(&m)
		if err := db.Create(&m).Error; err != nil {
			return 0, nil, err
		}
		return OutcomeCreated, &m, StampLastUpdate(db, models.KindManufacturer)
	case err != nil:
		return 0, nil, err
	}

	changed := false
	mergeScalar(&existing.Description, in.Description, &changed)
	mergeScalar(&existing.History, in.History, &changed)
	mergeScalar(&existing.LastUpdated, in.LastUpdated, &changed)
	mergeScalar(&existing.DetailsWebsite, in.DetailsWebsite, &changed)
	mergeScalar(&existing.DetailsFounded, in.DetailsFounded, &changed)
	mergeScalar(&existing.DetailsHeadquarters, in.DetailsHeadquarters, &changed)
	mergeScalar(&existing.DetailsCEO, in.DetailsCEO, &changed)
	mergeScalar(&existing.DetailsRevenue, in.DetailsRevenue, &changed)
	mergeScalar(&existing.DetailsOperatingIncome, in.DetailsOperatingIncome, &changed)
	mergeScalar(&existing.DetailsNetIncome, in.DetailsNetIncome, &changed)
	mergeScalar(&existing.DetailsTotalAssets, in.DetailsTotalAssets, &changed)
	mergeScalar(&existing.DetailsTotalEquity, in.DetailsTotalEquity, &changed)
	mergeScalar(&existing.DetailsNumberOfEmployees, in.DetailsNumberOfEmployees, &changed)
	mergeScalar(&existing.DetailsProducts, in.DetailsProducts, &changed)
	mergeList(&existing.LicensedVaccineNames, in.LicensedVaccineNames, &changed)
	mergeList(&existing.CandidateVaccineNames, in.CandidateVaccineNames, &changed)

	if !changed {
		return OutcomeUnchanged, &existing, nil
	}
	if err := db.Save(&existing).Error; err != nil {
		return 0, nil, err
	}
	return OutcomeUpdated, &existing, StampLastUpdate(db, models.KindManufacturer)
}

func normalizeManufacturerFields(m *models.Manufacturer) {
	for _, f := range []*string{
		&m.Description, &m.History, &m.LastUpdated,
		&m.DetailsWebsite, &m.DetailsFounded, &m.DetailsHeadquarters,
		&m.DetailsCEO, &m.DetailsRevenue, &m.DetailsOperatingIncome,
		&m.DetailsNetIncome, &m.DetailsTotalAssets, &m.DetailsTotalEquity,
		&m.DetailsNumberOfEmployees, &m.DetailsProducts,
		&m.LicensedVaccineNames, &m.CandidateVaccineNames,
	} {
		*f = NormalizeText(*f)
	}
}

// ReconcileNITAG creates or merges a NITAG by country. All fields are
// scalars; incoming non-blank values overwrite.
func ReconcileNITAG(db *gorm.DB, in models.NITAG) (Outcome, *models.NITAG, error) {
	country := NormalizeText(in.Country)
	if country == "" {
		return 0, nil, missingField("country")
	}

	var existing models.NITAG
	err := db.Where("country = ?", country).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		n := models.NITAG{
			Country:           country,
			AvailableNitag:    NormalizeText(in.AvailableNitag),
			AvailableWebsite:  NormalizeText(in.AvailableWebsite),
			WebsiteURL:        NormalizeText(in.WebsiteURL),
			NationalNitagName: NormalizeText(in.NationalNitagName),
			YearEstablished:   NormalizeText(in.YearEstablished),
		}
		if err := db.Create(&n).Error; err != nil {
			return 0, nil, err
		}
		return OutcomeCreated, &n, StampLastUpdate(db, models.KindNITAG)
	case err != nil:
		return 0, nil, err
	}

	changed := false
	mergeScalar(&existing.AvailableNitag, in.AvailableNitag, &changed)
	mergeScalar(&existing.AvailableWebsite, in.AvailableWebsite, &changed)
	mergeScalar(&existing.WebsiteURL, in.WebsiteURL, &changed)
	mergeScalar(&existing.NationalNitagName, in.NationalNitagName, &changed)
	mergeScalar(&existing.YearEstablished, in.YearEstablished, &changed)

	if !changed {
		return OutcomeUnchanged, &existing, nil
	}
	if err := db.Save(&existing).Error; err != nil {
		return 0, nil, err
	}
	return OutcomeUpdated, &existing, StampLastUpdate(db, models.KindNITAG)
}

// ReconcileLicenser creates or merges a licensing authority by acronym.
func ReconcileLicenser(db *gorm.DB, in models.Licenser) (Outcome, *models.Licenser, error) {
	acronym := NormalizeText(in.Acronym)
	if acronym == "" {
		return 0, nil, missingField("acronym")
	}

	var existing models.Licenser
	err := db.Where("acronym = ?", acronym).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		l := models.Licenser{
			Acronym:     acronym,
			Region:      NormalizeText(in.Region),
			Country:     NormalizeText(in.Country),
			FullName:    NormalizeText(in.FullName),
			Description: NormalizeText(in.Description),
			Website:     NormalizeText(in.Website),
		}
		if l.FullName == "" {
			return 0, nil, missingField("fullName")
		}
		if err := db.Create(&l).Error; err != nil {
			return 0, nil, err
		}
		return OutcomeCreated, &l, StampLastUpdate(db, models.KindLicenser)
	case err != nil:
		return 0, nil, err
	}

	changed := false
	mergeScalar(&existing.Region, in.Region, &changed)
	mergeScalar(&existing.Country, in.Country, &changed)
	mergeScalar(&existing.FullName, in.FullName, &changed)
	mergeScalar(&existing.Description, in.Description, &changed)
	mergeScalar(&existing.Website, in.Website, &changed)

	if !changed {
		return OutcomeUnchanged, &existing, nil
	}
	if err := db.Save(&existing).Error; err != nil {
		return 0, nil, err
	}
	return OutcomeUpdated, &existing, StampLastUpdate(db, models.KindLicenser)
}
