// Package model is the in-process node store backing the engineering
// project: a tree of named nodes addressed by (owner, name).
//
// Key capabilities:
//   - Append-only child creation with unique names among siblings
//   - Name lookup, slash-separated descendant lookup and path resolution
//     relative to a context node ("..", leading "/")
//   - Browse paths from a start node and relative paths between two nodes
//   - A closed data-type taxonomy with integer widths
//   - Structured dynamic links (base path, element index, bit index)
//   - Classification of source nodes into structured, scalar and
//     bookkeeping nodes
package model
