package rates

import (
	"regexp"
	"strings"
)

// crnaPattern covers the textual variants of the nurse-anesthetist credential
// found in the transaction feed. This is a hard-coded exception list, not a
// synonym table; a new variant means a new alternative here.
const crnaPattern = `(APRN - CRNA|Certified Nurse Anesthetist|(^|\s|-)CRNA($|\s|-))`

// SpecialtyPattern builds a whole-word match pattern for a free-text
// specialty, usable both as a Postgres case-insensitive regex and as a Go
// regexp with (?i). Boundary anchoring keeps short codes from matching inside
// longer ones ("ICU" must not match "NICU").
func SpecialtyPattern(specialty string) string {
	trimmed := strings.TrimSpace(specialty)
	if strings.EqualFold(trimmed, "crna") {
		return crnaPattern
	}
	return `(^|\s|-)` + regexp.QuoteMeta(trimmed) + `($|\s|-)`
}

// ProfessionLocum is the profession category for locum/tenens placements.
// It drives both the exact-match restriction and the forecast vocabulary's
// no-prefix path.
const ProfessionLocum = "Locum/Tenens"

// ProfessionRestriction returns the exact-match profession value to restrict
// on. Profession comes from a fixed caller-supplied enumeration, so there is
// no fuzzy matching; an empty input means no restriction at all.
func ProfessionRestriction(profession string) (string, bool) {
	trimmed := strings.TrimSpace(profession)
	if trimmed == "" {
		return "", false
	}
	return trimmed, true
}

// IsLocumProfession reports whether a profession value names the
// locum/tenens category
func IsLocumProfession(profession string) bool {
	return strings.EqualFold(strings.TrimSpace(profession), ProfessionLocum)
}
