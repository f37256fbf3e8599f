package extract

import (
	"regexp"
	"strings"

	"invoicegen/internal/domain"
)

// Common state abbreviations seen on purchase orders. GST state codes are
// the authoritative identifiers; these exist only to repair model output.
var stateAbbreviations = map[string]string{
	"UP": "Uttar Pradesh",
	"DL": "Delhi",
	"HR": "Haryana",
	"PB": "Punjab",
	"RJ": "Rajasthan",
	"MH": "Maharashtra",
	"GJ": "Gujarat",
	"KA": "Karnataka",
	"TN": "Tamil Nadu",
	"WB": "West Bengal",
	"MP": "Madhya Pradesh",
	"AP": "Andhra Pradesh",
	"TS": "Telangana",
	"KL": "Kerala",
	"BR": "Bihar",
	"JH": "Jharkhand",
	"OR": "Odisha",
	"OD": "Odisha",
	"CG": "Chhattisgarh",
	"UK": "Uttarakhand",
	"HP": "Himachal Pradesh",
	"JK": "Jammu and Kashmir",
	"GA": "Goa",
	"AS": "Assam",
	"CH": "Chandigarh",
	"SK": "Sikkim",
	"MN": "Manipur",
	"ML": "Meghalaya",
	"MZ": "Mizoram",
	"NL": "Nagaland",
	"TR": "Tripura",
	"AR": "Arunachal Pradesh",
	"PY": "Puducherry",
}

var (
	abbrCodeForm = regexp.MustCompile(`^([A-Z]{2})-?(\d{2})$`)
	bareCodeForm = regexp.MustCompile(`^\d{2}$`)
)

// NormalizeState resolves free-form state text from extraction output into a
// canonical state name and GST code. It accepts the forms documents actually
// carry: "UP-09", "UP09", "UP", a bare "09", the full name in any case, or a
// distinctive fragment of the name. Unresolvable input is returned as-is
// with an empty code so the user can correct it in the preview.
func NormalizeState(input string, states *domain.StateRegistry) (name, code string) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ""
	}

	// "UP-09" or "DL07"
	if m := abbrCodeForm.FindStringSubmatch(strings.ToUpper(input)); m != nil {
		if full, ok := stateAbbreviations[m[1]]; ok {
			c, _ := states.CodeFor(full)
			return full, c
		}
	}

	// Bare 2-digit GST code.
	if bareCodeForm.MatchString(input) {
		if full, ok := states.NameForCode(input); ok {
			return full, input
		}
		return "", input
	}

	// Plain abbreviation.
	if full, ok := stateAbbreviations[strings.ToUpper(input)]; ok {
		c, _ := states.CodeFor(full)
		return full, c
	}

	// Exact name, any case.
	if c, ok := states.CodeFor(input); ok {
		return canonicalName(input, states), c
	}

	// Fragment of a name ("Tamil" resolves; registry order keeps ambiguous
	// fragments deterministic).
	lower := strings.ToLower(input)
	for _, e := range states.Entries() {
		if strings.Contains(strings.ToLower(e.Name), lower) {
			return e.Name, e.Code
		}
	}

	return input, ""
}

func canonicalName(input string, states *domain.StateRegistry) string {
	lower := strings.ToLower(strings.TrimSpace(input))
	for _, e := range states.Entries() {
		if strings.ToLower(e.Name) == lower {
			return e.Name
		}
	}
	return input
}
