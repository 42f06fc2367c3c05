package services

// Placeholder values used across the dataset. "- not licensed yet -" marks
// product profile fields of vaccines without a license; it is a domain
// convention, not a null.
const (
	NotLicensedYet = "- not licensed yet -"
	NotAvailable   = "N/A"
)

// Defaulted returns the value trimmed and normalized, or the fallback when
// the value is blank.
func Defaulted(value, fallback string) string {
	if v := NormalizeText(value); v != "" {
		return v
	}
	return fallback
}
