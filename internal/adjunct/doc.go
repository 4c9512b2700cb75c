// Package adjunct holds the side-channel data produced while reducing
// annotations: the Adjuncts bag of markers and structural traits, and the
// Cache that memoizes reductions and guards against reference cycles.
package adjunct
