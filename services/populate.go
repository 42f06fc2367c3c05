package services

import (
	"strings"

	"gorm.io/gorm"

	"vacciprofile/models"
)

// PopulatedVaccine is a vaccine with its child records resolved by name.
type PopulatedVaccine struct {
	models.Vaccine
	LicensingDates  []models.LicensingDate  `json:"licensingDates"`
	ProductProfiles []models.ProductProfile `json:"productProfiles"`
}

// PopulatedManufacturer carries the manufacturer's own child tables plus the
// fully populated vaccines named in licensedVaccineNames.
type PopulatedManufacturer struct {
	models.Manufacturer
	Products   []models.ManufacturerProduct   `json:"products"`
	Sources    []models.ManufacturerSource    `json:"sources"`
	Candidates []models.ManufacturerCandidate `json:"candidates"`
	Vaccines   []PopulatedVaccine             `json:"vaccines"`
}

// PathogenVaccine is the reduced vaccine view embedded in a populated
// pathogen: licensing dates only, no product profiles.
type PathogenVaccine struct {
	models.Vaccine
	LicensingDates []models.LicensingDate `json:"licensingDates"`
}

// PopulatedPathogen lists the vaccines whose pathogenNames mention the
// pathogen, matched case-insensitively by substring.
type PopulatedPathogen struct {
	models.Pathogen
	Vaccines []PathogenVaccine `json:"vaccines"`
}

// Populator resolves name-based references into nested views. All lookups are
// batched per kind; a name that resolves to nothing yields an empty list.
type Populator struct {
	DB *gorm.DB
}

func NewPopulator(db *gorm.DB) *Populator {
	return &Populator{DB: db}
}

// licensingDatesByVaccine loads the licensing dates of the given vaccines in
// one query, grouped by vaccine name, ordered by approval date then authority.
func (p *Populator) licensingDatesByVaccine(names []string) (map[string][]models.LicensingDate, error) {
	grouped := make(map[string][]models.LicensingDate, len(names))
	if len(names) == 0 {
		return grouped, nil
	}
	var dates []models.LicensingDate
	if err := p.DB.Where("vaccine_name IN ?", names).
		Order("approval_date, name").Find(&dates).Error; err != nil {
		return nil, err
	}
	for _, d := range dates {
		grouped[d.VaccineName] = append(grouped[d.VaccineName], d)
	}
	return grouped, nil
}

func (p *Populator) profilesByVaccine(names []string) (map[string][]models.ProductProfile, error) {
	grouped := make(map[string][]models.ProductProfile, len(names))
	if len(names) == 0 {
		return grouped, nil
	}
	var profiles []models.ProductProfile
	if err := p.DB.Where("vaccine_name IN ?", names).
		Order("type, name").Find(&profiles).Error; err != nil {
		return nil, err
	}
	for _, pr := range profiles {
		grouped[pr.VaccineName] = append(grouped[pr.VaccineName], pr)
	}
	return grouped, nil
}

// PopulateVaccines attaches licensing dates and product profiles to each
// vaccine, preserving the input order.
func (p *Populator) PopulateVaccines(vaccines []models.Vaccine) ([]PopulatedVaccine, error) {
	names := make([]string, len(vaccines))
	for i, v := range vaccines {
		names[i] = v.Name
	}
	dates, err := p.licensingDatesByVaccine(names)
	if err != nil {
		return nil, err
	}
	profiles, err := p.profilesByVaccine(names)
	if err != nil {
		return nil, err
	}

	out := make([]PopulatedVaccine, len(vaccines))
	for i, v := range vaccines {
		out[i] = PopulatedVaccine{
			Vaccine:         v,
			LicensingDates:  emptyIfNil(dates[v.Name]),
			ProductProfiles: emptyIfNil(profiles[v.Name]),
		}
	}
	return out, nil
}

// PopulateManufacturers attaches products, sources, candidates and the
// populated licensed vaccines to each manufacturer.
func (p *Populator) PopulateManufacturers(manufacturers []models.Manufacturer) ([]PopulatedManufacturer, error) {
	names := make([]string, len(manufacturers))
	for i, m := range manufacturers {
		names[i] = m.Name
	}

	products := make(map[string][]models.ManufacturerProduct, len(names))
	sources := make(map[string][]models.ManufacturerSource, len(names))
	candidates := make(map[string][]models.ManufacturerCandidate, len(names))
	if len(names) > 0 {
		var rows []models.ManufacturerProduct
		if err := p.DB.Where("manufacturer_name IN ?", names).
			Order("product_name").Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, r := range rows {
			products[r.ManufacturerName] = append(products[r.ManufacturerName], r)
		}

		var srcs []models.ManufacturerSource
		if err := p.DB.Where("manufacturer_name IN ?", names).
			Order("title").Find(&srcs).Error; err != nil {
			return nil, err
		}
		for _, s := range srcs {
			sources[s.ManufacturerName] = append(sources[s.ManufacturerName], s)
		}

		var cands []models.ManufacturerCandidate
		if err := p.DB.Where("manufacturer IN ?", names).
			Order("pathogen_name, name").Find(&cands).Error; err != nil {
			return nil, err
		}
		for _, c := range cands {
			candidates[c.Manufacturer] = append(candidates[c.Manufacturer], c)
		}
	}

	// Resolve every licensed vaccine name across the batch in one pass,
	// then populate those vaccines and index them by name.
	var wanted []string
	seen := make(map[string]bool)
	for _, m := range manufacturers {
		for _, name := range SplitNameList(m.LicensedVaccineNames) {
			if !seen[name] {
				seen[name] = true
				wanted = append(wanted, name)
			}
		}
	}
	vaccineByName := make(map[string]PopulatedVaccine, len(wanted))
	if len(wanted) > 0 {
		var vaccines []models.Vaccine
		if err := p.DB.Where("name IN ?", wanted).Find(&vaccines).Error; err != nil {
			return nil, err
		}
		populated, err := p.PopulateVaccines(vaccines)
		if err != nil {
			return nil, err
		}
		for _, pv := range populated {
			vaccineByName[pv.Name] = pv
		}
	}

	out := make([]PopulatedManufacturer, len(manufacturers))
	for i, m := range manufacturers {
		pm := PopulatedManufacturer{
			Manufacturer: m,
			Products:     emptyIfNil(products[m.Name]),
			Sources:      emptyIfNil(sources[m.Name]),
			Candidates:   emptyIfNil(candidates[m.Name]),
			Vaccines:     make([]PopulatedVaccine, 0),
		}
		for _, name := range SplitNameList(m.LicensedVaccineNames) {
			if pv, ok := vaccineByName[name]; ok {
				pm.Vaccines = append(pm.Vaccines, pv)
			}
		}
		out[i] = pm
	}
	return out, nil
}

// PopulatePathogens attaches the vaccines that mention each pathogen in their
// pathogenNames list. The match is a case-insensitive substring, so a
// combination vaccine listing several pathogens is found by each of them.
func (p *Populator) PopulatePathogens(pathogens []models.Pathogen) ([]PopulatedPathogen, error) {
	var vaccines []models.Vaccine
	if err := p.DB.Order("name").Find(&vaccines).Error; err != nil {
		return nil, err
	}

	matched := make(map[string][]models.Vaccine, len(pathogens))
	var matchedNames []string
	seen := make(map[string]bool)
	for _, pg := range pathogens {
		needle := strings.ToLower(pg.Name)
		if needle == "" {
			continue
		}
		for _, v := range vaccines {
			if strings.Contains(strings.ToLower(v.PathogenNames), needle) {
				matched[pg.Name] = append(matched[pg.Name], v)
				if !seen[v.Name] {
					seen[v.Name] = true
					matchedNames = append(matchedNames, v.Name)
				}
			}
		}
	}
	dates, err := p.licensingDatesByVaccine(matchedNames)
	if err != nil {
		return nil, err
	}

	out := make([]PopulatedPathogen, len(pathogens))
	for i, pg := range pathogens {
		pp := PopulatedPathogen{
			Pathogen: pg,
			Vaccines: make([]PathogenVaccine, 0, len(matched[pg.Name])),
		}
		for _, v := range matched[pg.Name] {
			pp.Vaccines = append(pp.Vaccines, PathogenVaccine{
				Vaccine:        v,
				LicensingDates: emptyIfNil(dates[v.Name]),
			})
		}
		out[i] = pp
	}
	return out, nil
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return make([]T, 0)
	}
	return s
}
