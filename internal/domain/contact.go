package domain

type Contact struct {
	FullName string
	Company  string
}

// ContactEnrichment is the immutable snapshot composed from the three
// sub-extractions for one contact. Every field may legitimately be nil;
// WorkEmail is a guess, not a verified mailbox.
type ContactEnrichment struct {
	LinkedInURL *string
	Designation *string
	WorkEmail   *string
	Source      string
	Confidence  Confidence
}

// ContactResult is one output row: the input record plus its enrichment.
type ContactResult struct {
	Contact
	ContactEnrichment
}
