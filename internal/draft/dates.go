package draft

import "time"

const (
	wireDateLayout = "02/01/2006" // DD/MM/YYYY, the document wire format
	isoDateLayout  = "2006-01-02" // YYYY-MM-DD, the editing-widget format
)

// ToISODate converts an extracted DD/MM/YYYY date to YYYY-MM-DD for editing
// widgets. Malformed input yields an empty string rather than a guess.
func ToISODate(ddmmyyyy string) string {
	t, err := time.Parse(wireDateLayout, ddmmyyyy)
	if err != nil {
		return ""
	}
	return t.Format(isoDateLayout)
}

// ToWireDate converts a YYYY-MM-DD form date to the DD/MM/YYYY wire format.
// Malformed input yields an empty string.
func ToWireDate(iso string) string {
	t, err := time.Parse(isoDateLayout, iso)
	if err != nil {
		return ""
	}
	return t.Format(wireDateLayout)
}
