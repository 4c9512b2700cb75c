// Package assemble builds docstrings and writes them onto subject trees.
//
// A docstring is the blank-line separated join of:
//  1. the subject's existing docstring, when preserved
//  2. the fragments supplied for it (Doc text or fragment-table entries)
//  3. the rendered introspection of the subject, when enabled
//
// Decoration recurses into members of classes and modules according to the
// control's targets. Each top-level call walks with its own visited set, so
// a subject reachable through several members is decorated once per walk.
package assemble
