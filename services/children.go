package services

import (
	"vacciprofile/models"
)

// Validation for the child kinds that hang off a parent by name. The same
// functions back the direct-create handlers and the CSV importer: fields are
// trimmed and NFC-normalized in place, placeholders applied, then required
// fields checked.

func ValidateLicensingDate(d *models.LicensingDate) error {
	d.VaccineName = NormalizeText(d.VaccineName)
	d.Name = NormalizeText(d.Name)
	d.ApprovalDate = NormalizeText(d.ApprovalDate)
	d.Source = NormalizeText(d.Source)
	d.Type = Defaulted(d.Type, NotAvailable)
	d.LastUpdateOnVaccine = Defaulted(d.LastUpdateOnVaccine, NotAvailable)

	switch {
	case d.VaccineName == "":
		return missingField("vaccineName")
	case d.Name == "":
		return missingField("name")
	case d.ApprovalDate == "":
		return missingField("approvalDate")
	case d.Source == "":
		return missingField("source")
	}
	return nil
}

func ValidateProductProfile(p *models.ProductProfile) error {
	p.VaccineName = NormalizeText(p.VaccineName)
	p.Type = NormalizeText(p.Type)
	p.Name = NormalizeText(p.Name)
	for _, f := range []*string{
		&p.Composition, &p.StrainCoverage, &p.Indication, &p.Contraindication,
		&p.Dosing, &p.Immunogenicity, &p.Efficacy, &p.DurationOfProtection,
		&p.CoAdministration, &p.Reactogenicity, &p.Safety, &p.VaccinationGoal,
		&p.Others,
	} {
		*f = Defaulted(*f, NotLicensedYet)
	}

	switch {
	case p.VaccineName == "":
		return missingField("vaccineName")
	case p.Type == "":
		return missingField("type")
	case p.Name == "":
		return missingField("name")
	}
	return nil
}

func ValidateManufacturerProduct(p *models.ManufacturerProduct) error {
	p.ManufacturerName = NormalizeText(p.ManufacturerName)
	p.ProductName = NormalizeText(p.ProductName)
	p.ProductDescription = NormalizeText(p.ProductDescription)

	switch {
	case p.ManufacturerName == "":
		return missingField("manufacturerName")
	case p.ProductName == "":
		return missingField("productName")
	}
	return nil
}

func ValidateManufacturerSource(s *models.ManufacturerSource) error {
	s.ManufacturerName = NormalizeText(s.ManufacturerName)
	s.LastUpdated = NormalizeText(s.LastUpdated)
	s.Title = NormalizeText(s.Title)
	s.Link = NormalizeText(s.Link)

	switch {
	case s.ManufacturerName == "":
		return missingField("manufacturerName")
	case s.Title == "":
		return missingField("title")
	case s.Link == "":
		return missingField("link")
	}
	return nil
}

func ValidateManufacturerCandidate(c *models.ManufacturerCandidate) error {
	c.PathogenName = NormalizeText(c.PathogenName)
	c.Name = NormalizeText(c.Name)
	c.Manufacturer = NormalizeText(c.Manufacturer)
	c.Platform = NormalizeText(c.Platform)
	c.ClinicalPhase = NormalizeText(c.ClinicalPhase)
	c.CompanyURL = NormalizeText(c.CompanyURL)
	c.Other = NormalizeText(c.Other)

	switch {
	case c.PathogenName == "":
		return missingField("pathogenName")
	case c.Name == "":
		return missingField("name")
	}
	return nil
}

// Row constructors used by the CSV importer.

func NewLicensingDate(row map[string]string) (*models.LicensingDate, error) {
	d := &models.LicensingDate{
		VaccineName:         row["vaccineName"],
		Name:                row["name"],
		Type:                row["type"],
		ApprovalDate:        row["approvalDate"],
		Source:              row["source"],
		LastUpdateOnVaccine: row["lastUpdateOnVaccine"],
	}
	if err := ValidateLicensingDate(d); err != nil {
		return nil, err
	}
	return d, nil
}

func NewProductProfile(row map[string]string) (*models.ProductProfile, error) {
	p := &models.ProductProfile{
		VaccineName:          row["vaccineName"],
		Type:                 row["type"],
		Name:                 row["name"],
		Composition:          row["composition"],
		StrainCoverage:       row["strainCoverage"],
		Indication:           row["indication"],
		Contraindication:     row["contraindication"],
		Dosing:               row["dosing"],
		Immunogenicity:       row["immunogenicity"],
		Efficacy:             row["Efficacy"],
		DurationOfProtection: row["durationOfProtection"],
		CoAdministration:     row["coAdministration"],
		Reactogenicity:       row["reactogenicity"],
		Safety:               row["safety"],
		VaccinationGoal:      row["vaccinationGoal"],
		Others:               row["others"],
	}
	if err := ValidateProductProfile(p); err != nil {
		return nil, err
	}
	return p, nil
}

func NewManufacturerProduct(row map[string]string) (*models.ManufacturerProduct, error) {
	p := &models.ManufacturerProduct{
		ManufacturerName:   row["manufacturerName"],
		ProductName:        row["productName"],
		ProductDescription: row["productDescription"],
	}
	if err := ValidateManufacturerProduct(p); err != nil {
		return nil, err
	}
	return p, nil
}

func NewManufacturerSource(row map[string]string) (*models.ManufacturerSource, error) {
	s := &models.ManufacturerSource{
		ManufacturerName: row["manufacturerName"],
		LastUpdated:      row["lastUpdated"],
		Title:            row["title"],
		Link:             row["link"],
	}
	if err := ValidateManufacturerSource(s); err != nil {
		return nil, err
	}
	return s, nil
}

func NewManufacturerCandidate(row map[string]string) (*models.ManufacturerCandidate, error) {
	c := &models.ManufacturerCandidate{
		PathogenName:  row["pathogenName"],
		Name:          row["name"],
		Manufacturer:  row["manufacturer"],
		Platform:      row["platform"],
		ClinicalPhase: row["clinicalPhase"],
		CompanyURL:    row["companyUrl"],
		Other:         row["other"],
	}
	if err := ValidateManufacturerCandidate(c); err != nil {
		return nil, err
	}
	return c, nil
}
