package policy

// Policy is the ranking order applied to composed results.
type Policy string

// Ranking policy constants.
const (
	// Relevance orders by backend match score; the default view.
	Relevance Policy = "relevance"
	Rating    Policy = "rating"
	Price     Policy = "price"
)

// IsValid checks if the policy is one of the supported values.
func (p Policy) IsValid() bool {
	return p == Relevance || p == Rating || p == Price
}

// Parse returns the policy for s, defaulting to Relevance when s is empty.
func Parse(s string) (Policy, bool) {
	if s == "" {
		return Relevance, true
	}
	p := Policy(s)
	return p, p.IsValid()
}
