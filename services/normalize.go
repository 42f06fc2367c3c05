package services

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const utf8BOM = "\ufeff"

// NormalizeText trims the value and applies canonical composition (NFC) so
// that visually identical names with decomposed accents compare equal.
func NormalizeText(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// StripBOM removes a leading UTF-8 byte-order mark from uploaded CSV data.
func StripBOM(data []byte) []byte {
	return []byte(strings.TrimPrefix(string(data), utf8BOM))
}

// SplitNameList splits a comma-separated name list into trimmed, non-empty
// tokens.
func SplitNameList(list string) []string {
	var names []string
	for _, tok := range strings.Split(list, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			names = append(names, tok)
		}
	}
	return names
}

// MergeNameLists merges the incoming comma-separated list into the existing
// one. Tokens are compared case-insensitively; the stored casing of the
// first-seen variant wins. Novel incoming tokens are appended in their
// incoming order. Returns the merged list and whether anything was added.
func MergeNameLists(existing, incoming string) (string, bool) {
	existingTokens := SplitNameList(existing)
	incomingTokens := SplitNameList(incoming)
	if len(incomingTokens) == 0 {
		return existing, false
	}

	seen := make(map[string]bool, len(existingTokens))
	for _, tok := range existingTokens {
		seen[strings.ToLower(tok)] = true
	}

	merged := existingTokens
	changed := false
	for _, tok := range incomingTokens {
		key := strings.ToLower(tok)
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, tok)
		changed = true
	}
	if !changed {
		return existing, false
	}
	return strings.Join(merged, ", "), true
}
