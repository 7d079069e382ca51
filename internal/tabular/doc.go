// Package tabular exports a tag tree to a semicolon-separated table and
// imports such a table back into a tree.
//
// # Layout
//
// The first row is the header. Five fixed columns come first:
//
//	Type;BrowseName;BrowsePath;NodeDataType;ArrayLength
//
// followed by one column per writable driver property, the union of the
// properties of every driver kind present in the export. Every following row
// describes one tag or tag structure:
//
//	FTOptix.CommunicationDriver.TagStructure;Axes;Tags/Axes;;4
//	FTOptix.CommunicationDriver.TagStructure;Motor;Tags/Motor;;
//	FTOptix.S7TCP.Tag;Speed;Tags/Motor/Speed;Int32;;DataBlock;10;4;0;0
//
// Rows are written array templates first, then structures, then tags.
// ArrayLength is empty for scalars, "n" for one dimension and "rows,cols"
// for two.
//
// # Import
//
// Each row is interpreted on its own: the owner is found by walking the
// browse path (minus its first and last segment) from the import root. Rows
// whose owner does not exist yet are retried once the other rows are in.
// Existing tags are updated in place when their data type and driver kind
// match; existing structures are left alone.
//
// Output is UTF-16LE with a byte order mark unless UTF-8 is requested;
// input encoding is detected from the byte order mark.
package tabular
