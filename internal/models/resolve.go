package models

// ResolutionStatus is the outcome class of a ticker resolution.
type ResolutionStatus int

const (
	// Resolved means the input maps to a single canonical ticker.
	Resolved ResolutionStatus = iota
	// Ambiguous means the input matched multiple catalog names.
	Ambiguous
	// Unresolved means the input was empty or unusable.
	Unresolved
)

// Candidate is one (name, code) pair offered for disambiguation.
type Candidate struct {
	Name string
	Code string
}

// Resolution is the result of resolving raw user text into a ticker.
// Candidates is populated only when Status is Ambiguous, in catalog
// iteration order: callers show it to the user as-is.
type Resolution struct {
	Status     ResolutionStatus
	Ticker     string
	Name       string // display name, may be empty for foreign tickers
	Candidates []Candidate
}
