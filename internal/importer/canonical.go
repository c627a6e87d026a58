package importer

import "taxportal/internal/form"

// CanonicalValues is the field set every simulated extraction produces. The
// uploaded file's content is never read.
func CanonicalValues() form.Values {
	return form.Values{
		form.FullName:        "Mohamed Ahmed El-Sayed Ali",
		form.TaxID:           "123-456-789",
		form.TransactionType: "commercial",
		form.Amount:          "5000",
		form.Notes:           "Extracted automatically from the uploaded transaction template. Please review and submit.",
	}
}
