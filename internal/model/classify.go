package model

import "tagmirror/internal/common"

// NodeKind is the role a source node plays while walking a tag tree.
type NodeKind int

const (
	KindOther NodeKind = iota
	KindStructured
	KindScalarVariable
	KindBookkeeping
)

func (k NodeKind) String() string {
	switch k {
	case KindOther:
		return "other"
	case KindStructured:
		return "structured"
	case KindScalarVariable:
		return "scalar"
	case KindBookkeeping:
		return "bookkeeping"
	default:
		return common.UnknownStr
	}
}

// bookkeepingMarker identifies internal array-length nodes.
const bookkeepingMarker = "arraydimen"

// IsBookkeeping reports whether n is an internal array-length marker.
func IsBookkeeping(n *Node) bool {
	return common.ContainsFold(n.Name, bookkeepingMarker)
}

// Classify returns the walking role of n.
func Classify(n *Node) NodeKind {
	if IsBookkeeping(n) {
		return KindBookkeeping
	}

	switch n.Class {
	case ClassFolder, ClassObject, ClassTagStructure:
		return KindStructured
	case ClassTag, ClassVariable:
		return KindScalarVariable
	default:
		return KindOther
	}
}

// IsStructureArray reports whether n is a structured array template.
func IsStructureArray(n *Node) bool {
	return Classify(n) == KindStructured && n.IsArray()
}
