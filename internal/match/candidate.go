package match

import (
	"cmp"
	"fmt"
	"slices"
)

// Thresholds for suggesting a name.
const (
	// DefaultMinScore is the similarity a name needs to be worth suggesting.
	DefaultMinScore = 0.5
	// DefaultMinGap is the lead the best name needs over the runner-up.
	DefaultMinGap = 0.1
)

// Candidate is one name scored against the misspelled input.
type Candidate struct {
	Name  string
	Score float64
}

// CandidateList is a list of candidates, best first.
type CandidateList []Candidate

// Rank scores every name against input. The result is sorted by score
// descending, then by name.
func Rank(input string, names []string) CandidateList {
	out := make(CandidateList, 0, len(names))

	for _, name := range names {
		if name == input {
			continue
		}

		out = append(out, Candidate{Name: name, Score: IdentSimilarity(input, name)})
	}

	slices.SortFunc(out, func(a, b Candidate) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}

		return cmp.Compare(a.Name, b.Name)
	})

	return out
}

// Best returns the best candidate, or nil if there are none.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// HighConfidence returns the best candidate when it scores at least minScore
// and leads the runner-up by at least minGap. Otherwise it returns nil.
func (c CandidateList) HighConfidence(minScore, minGap float64) *Candidate {
	best := c.Best()
	if best == nil || best.Score < minScore {
		return nil
	}

	if len(c) > 1 && best.Score-c[1].Score < minGap {
		return nil
	}

	return best
}

// Closest returns the name input was most likely meant to be.
func Closest(input string, names []string) (string, bool) {
	best := Rank(input, names).HighConfidence(DefaultMinScore, DefaultMinGap)
	if best == nil {
		return "", false
	}

	return best.Name, true
}

// DidYouMean returns a "did you mean" hint for input, or "" when no name is
// close enough.
func DidYouMean(input string, names []string) string {
	name, ok := Closest(input, names)
	if !ok {
		return ""
	}

	return fmt.Sprintf("did you mean %q?", name)
}
