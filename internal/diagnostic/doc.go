// Package diagnostic collects the non-fatal findings of a generation run
// (unmatched directive scopes, unresolved imports, missing modules) with
// their source location and "did you mean" suggestions.
package diagnostic
