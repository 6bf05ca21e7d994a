// Package match provides identifier normalization and edit-distance
// ranking used to suggest the intended name when a decorator refers to a
// model or function that does not exist.
//
// Key functions:
//   - NormalizeIdent: folds case and separators of an identifier
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks known names by similarity to an unknown one
package match
