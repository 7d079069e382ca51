// Package diagnostic provides structured warnings, errors and informational
// reports produced while walking and reconciling tag trees.
//
// Key capabilities:
//   - Stable codes for the error taxonomy (structural, type mismatch, duplicate,
//     unresolved link, I/O)
//   - Per-item reports carrying the node path they relate to
//   - Merging reports of nested runs into one summary
package diagnostic
