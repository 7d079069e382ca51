package model

import (
	"fmt"
	"strconv"

	"tagmirror/internal/common"
)

// LinkMode is the direction a dynamic link propagates values in.
type LinkMode int

const (
	LinkRead LinkMode = iota
	LinkReadWrite
)

func (m LinkMode) String() string {
	switch m {
	case LinkRead:
		return "read"
	case LinkReadWrite:
		return "read_write"
	default:
		return common.UnknownStr
	}
}

// ParseLinkMode parses a mode produced by LinkMode.String.
func ParseLinkMode(s string) (LinkMode, error) {
	switch s {
	case "read":
		return LinkRead, nil
	case "read_write", "":
		return LinkReadWrite, nil
	default:
		return 0, fmt.Errorf("unknown link mode %q", s)
	}
}

// DynamicLink binds a variable's value to another variable, optionally
// narrowed to one array element and one bit of that element.
type DynamicLink struct {
	// Path locates the source variable, resolved with the link-bearing node as context.
	Path    string
	Element *uint32
	Bit     *uint32
	Mode    LinkMode
}

// NewLink returns a read/write link from the node "from" to the variable "to".
// It fails when the nodes belong to different trees.
func NewLink(from, to *Node) (*DynamicLink, error) {
	path, err := RelativePath(from, to)
	if err != nil {
		return nil, err
	}

	return &DynamicLink{Path: path, Mode: LinkReadWrite}, nil
}

// AtElement returns a copy of l narrowed to array element i.
func (l DynamicLink) AtElement(i uint32) *DynamicLink {
	l.Element = &i
	return &l
}

// AtBit returns a copy of l narrowed to bit i.
func (l DynamicLink) AtBit(i uint32) *DynamicLink {
	l.Bit = &i
	return &l
}

// String renders the link in the host convention: path, then "[element]",
// then ".bit".
func (l DynamicLink) String() string {
	s := l.Path
	if l.Element != nil {
		s += "[" + strconv.FormatUint(uint64(*l.Element), 10) + "]"
	}

	if l.Bit != nil {
		s += "." + strconv.FormatUint(uint64(*l.Bit), 10)
	}

	return s
}

// Resolve locates the variable the link points at from ctx, the node bearing
// the link, and checks the element and bit indices against its shape and width.
func (l DynamicLink) Resolve(ctx *Node) (*Node, error) {
	target, err := ResolvePath(ctx, l.Path)
	if err != nil {
		return nil, err
	}

	if l.Element != nil {
		dim, ok := target.FirstDimension()
		if !ok {
			return nil, fmt.Errorf("element [%d] addresses non-array %q", *l.Element, target.Name)
		}

		if *l.Element >= dim {
			return nil, fmt.Errorf("element [%d] out of range for %q of length %d", *l.Element, target.Name, dim)
		}
	}

	if l.Bit != nil {
		width := target.DataType.Bits()
		if width == 0 {
			return nil, fmt.Errorf("bit .%d addresses non-integer %q of type %s", *l.Bit, target.Name, target.DataType)
		}

		if int(*l.Bit) >= width {
			return nil, fmt.Errorf("bit .%d out of range for %q of type %s", *l.Bit, target.Name, target.DataType)
		}
	}

	return target, nil
}
