package domain

// Confidence is a coarse label for how trustworthy an extracted fact is.
// It is not a probability.
type Confidence string

const (
	ConfidenceLow    Confidence = "Low"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceHigh   Confidence = "High"
)

type Company struct {
	Name   string
	Region string
}

// RevenueFact is the result of one revenue extraction. A nil AmountUSD with
// Low confidence is the explicit "not found" state, never an error.
type RevenueFact struct {
	AmountUSD  *float64
	Confidence Confidence
}

// CompanyResult is one output row: the input record plus the extracted
// revenue and the tier derived from it.
type CompanyResult struct {
	Company
	Revenue RevenueFact
	Tier    string
}
