package entity

// Candidate is one configured sponsorship keyword. Priority is the position
// in the configured list, lower is more preferred.
type Candidate struct {
	Keyword  string `json:"keyword" yaml:"keyword"`
	Priority int    `json:"priority" yaml:"priority"`
}

// CandidatesFromKeywords builds the candidate list from an ordered keyword
// slice, assigning priorities by position.
func CandidatesFromKeywords(keywords []string) []Candidate {
	candidates := make([]Candidate, 0, len(keywords))

	for i, keyword := range keywords {
		candidates = append(candidates, Candidate{
			Keyword:  keyword,
			Priority: i,
		})
	}

	return candidates
}
