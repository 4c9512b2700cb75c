package match

import "sort"

// DefaultCutoff is the minimum similarity for a name to be suggested.
const DefaultCutoff = 0.6

// Candidate is a known name scored against a requested one.
type Candidate struct {
	Name       string
	Normalized string
	Score      float64
}

// CandidateList is a list of candidates ordered by descending score.
type CandidateList []Candidate

// Rank scores every candidate name against name. The score is the better of
// the raw and the NameSimilarity score, so case and separator slips rank
// as close misses.
func Rank(name string, candidates []string) CandidateList {
	ranked := make(CandidateList, 0, len(candidates))

	for _, candidate := range candidates {
		ranked = append(ranked, Candidate{
			Name:       candidate,
			Normalized: NormalizeIdent(candidate),
			Score:      max(Similarity(name, candidate), NameSimilarity(name, candidate)),
		})
	}

	sort.Sort(ranked)

	return ranked
}

// Suggest returns up to limit candidate names whose similarity to name is at
// least DefaultCutoff, best first. A limit below one means no limit.
func Suggest(name string, candidates []string, limit int) []string {
	ranked := Rank(name, candidates).AboveThreshold(DefaultCutoff)
	if limit > 0 {
		ranked = ranked.Top(limit)
	}

	names := make([]string, 0, len(ranked))
	for _, c := range ranked {
		names = append(names, c.Name)
	}

	return names
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Ties are broken alphabetically for determinism.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Name < c[j].Name
}

// Top returns the first n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}

	return c[:n]
}

// Best returns the best candidate, or nil if there are none.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// AboveThreshold returns the candidates scoring at least threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList

	for _, cand := range c {
		if cand.Score >= threshold {
			result = append(result, cand)
		}
	}

	return result
}
