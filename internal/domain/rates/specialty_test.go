package rates

import (
	"regexp"
	"testing"
)

func compile(t *testing.T, pattern string) *regexp.Regexp {
	t.Helper()
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		t.Fatalf("pattern does not compile: %v", err)
	}
	return re
}

func TestSpecialtyPattern_WholeWordBoundaries(t *testing.T) {
	re := compile(t, SpecialtyPattern("ICU"))

	matches := []string{"ICU", "RN - ICU", "ICU Stepdown", "Medical ICU", "Med-ICU"}
	for _, s := range matches {
		if !re.MatchString(s) {
			t.Errorf("expected pattern to match %q", s)
		}
	}

	// A longer code that merely contains the specialty must not match
	nonMatches := []string{"NICU", "PICU", "SICU", "RN - NICU"}
	for _, s := range nonMatches {
		if re.MatchString(s) {
			t.Errorf("expected pattern not to match %q", s)
		}
	}
}

func TestSpecialtyPattern_EscapesLiterals(t *testing.T) {
	re := compile(t, SpecialtyPattern("Med/Surg"))
	if !re.MatchString("RN - Med/Surg") {
		t.Error("expected escaped pattern to match the literal specialty")
	}
	if re.MatchString("MedXSurg") {
		t.Error("slash must be matched literally, not as a metacharacter")
	}
}

func TestSpecialtyPattern_CRNAVariants(t *testing.T) {
	re := compile(t, SpecialtyPattern("crna"))

	for _, s := range []string{"CRNA", "APRN - CRNA", "Certified Nurse Anesthetist", "CRNA - Anesthesia"} {
		if !re.MatchString(s) {
			t.Errorf("expected CRNA alternation to match %q", s)
		}
	}
}

func TestProfessionRestriction(t *testing.T) {
	if _, ok := ProfessionRestriction("   "); ok {
		t.Error("blank profession must produce no restriction")
	}
	value, ok := ProfessionRestriction("Nursing")
	if !ok || value != "Nursing" {
		t.Errorf("expected exact restriction on Nursing, got %q ok=%v", value, ok)
	}
}

func TestIsLocumProfession(t *testing.T) {
	if !IsLocumProfession("locum/tenens") {
		t.Error("profession comparison must be case-insensitive")
	}
	if IsLocumProfession("Nursing") {
		t.Error("nursing is not a locum profession")
	}
}
