// Package match ranks names by similarity to offer corrections for
// mistyped node paths and table values.
//
// Key functions:
//   - Levenshtein: computes edit distance between strings, rune by rune
//   - NormalizeName: folds case and drops separators before comparing
//   - Suggest: picks the closest candidate above a similarity threshold
package match
