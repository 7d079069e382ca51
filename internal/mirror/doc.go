// Package mirror reproduces a source tag tree inside the engineering model
// and audits the dynamic links left behind.
//
// Nodes are matched by (owner, name) at every level: existing nodes are
// reused, missing ones created, nothing is deleted or renamed. Arrays of
// structures are not given a container; their template fields are hoisted
// into the parent with a "<template>_" prefix.
package mirror
