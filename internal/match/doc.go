// Package match ranks names by edit distance so that misspelled fragment
// references can be answered with suggestions.
//
// Key functions:
//   - NormalizeIdent: folds case and separators for fuzzy comparison
//   - Levenshtein: computes edit distance between strings
//   - Rank: orders candidate names by similarity
//   - Suggest: returns the closest candidates above a cutoff
package match
