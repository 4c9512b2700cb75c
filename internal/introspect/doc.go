// Package introspect extracts documentation records from functions, classes
// and modules.
//
// Introspect dispatches on the subject kind. Each annotation is reduced with
// a fresh adjunct bag; the bag's markers are then classified into a
// description, a default valuation, an association and a visibility
// decision. Argument and return records are always emitted; attribute
// records are filtered by visibility.
//
// Nothing in this package returns an error to the caller. Failures are
// reported through the Context's notifier and the affected subject
// contributes fewer records.
package introspect
