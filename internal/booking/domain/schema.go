package domain

// Contact and reference column names used across the stores. Each store keeps
// only a subset; Schema lists which.
var (
	EmailColumns = []string{"email", "buyer_email", "user_email", "customer_email", "contact_email"}
	PhoneColumns = []string{"phone", "phone_number", "contact_phone"}

	ReferenceColumns = []string{
		"payment_reference",
		"reference",
		"ref",
		"payment_ref",
		"transaction_reference",
		"transaction_ref",
		"tx_ref",
		"txref",
	}

	// FuzzyReferenceColumns are searched by substring when no exact match exists.
	FuzzyReferenceColumns = []string{"payment_reference", "reference"}

	// ReferencePaths are gateway fields nested inside the metadata column.
	ReferencePaths = [][]string{
		{"paystack", "reference"},
		{"flutterwave", "tx_ref"},
		{"gateway", "reference"},
	}
)

// MetadataColumn holds gateway payloads and other free-form fields on every store.
const MetadataColumn = "metadata"

// Schema describes how one category's store names its fields.
type Schema struct {
	Category         Category
	Table            string
	OwnerColumn      string
	EmailColumns     []string
	PhoneColumns     []string
	ReferenceColumns []string
	// ContactEmailColumn is rewritten when a booking is claimed.
	ContactEmailColumn string
}

// FuzzyColumns returns the fuzzy-searchable reference columns this store has.
func (s Schema) FuzzyColumns() []string {
	return intersect(FuzzyReferenceColumns, s.ReferenceColumns)
}

func intersect(wanted, have []string) []string {
	out := make([]string, 0, len(wanted))
	for _, w := range wanted {
		for _, h := range have {
			if w == h {
				out = append(out, w)
				break
			}
		}
	}
	return out
}
