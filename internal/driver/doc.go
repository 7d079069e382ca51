// Package driver describes the closed set of communication-driver tag kinds
// and the writable properties each kind carries.
//
// Every kind publishes a table of Field descriptors built once at package
// init from (name, getter, setter, text codec) tuples. The tabular codec and
// the project file use those tables to format, parse and copy properties
// without runtime type inspection.
//
// Key types:
//   - Kind: the driver a tag belongs to, with its table discriminator
//   - Props: the per-kind property set carried by a tag node
//   - Field: a named, text-codec backed accessor for one property
package driver
