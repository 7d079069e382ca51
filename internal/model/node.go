package model

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/google/uuid"

	"tagmirror/internal/common"
	"tagmirror/internal/driver"
)

var (
	// ErrDuplicateName is returned when a child with the same name already exists.
	ErrDuplicateName = errors.New("duplicate node name")
	// ErrNotFound is returned when a path segment does not name an existing node.
	ErrNotFound = errors.New("node not found")
	// ErrDifferentTrees is returned when a path is requested between nodes without a common root.
	ErrDifferentTrees = errors.New("nodes belong to different trees")
)

// Class is the node class of the engineering project.
type Class int

const (
	ClassUnknown Class = iota
	ClassFolder
	ClassObject
	ClassTagStructure
	ClassTag
	ClassVariable
	ClassAlarm
)

var classNames = [...]string{
	ClassFolder:       "folder",
	ClassObject:       "object",
	ClassTagStructure: "tag_structure",
	ClassTag:          "tag",
	ClassVariable:     "variable",
	ClassAlarm:        "alarm",
}

// String returns the class name used in project files.
func (c Class) String() string {
	if c <= ClassUnknown || int(c) >= len(classNames) {
		return common.UnknownStr
	}

	return classNames[c]
}

// ParseClass parses a class name produced by Class.String.
func ParseClass(s string) (Class, error) {
	for i := range classNames {
		if i > 0 && classNames[i] == s {
			return Class(i), nil
		}
	}

	return ClassUnknown, fmt.Errorf("unknown node class %q", s)
}

// IsVariable reports whether nodes of this class carry a value.
func (c Class) IsVariable() bool {
	return c == ClassTag || c == ClassVariable
}

// Node is one named element of the project tree.
type Node struct {
	ID         uuid.UUID
	Name       string
	Class      Class
	DataType   DataType
	ArrayShape []uint32
	// Link binds the node's value to another variable. Only set on variables and alarms.
	Link *DynamicLink
	// Driver holds the communication-driver properties of tags.
	Driver driver.Props
	// Message is the text raised by alarms.
	Message string

	owner    *Node
	children []*Node
}

func newNode(name string, class Class) *Node {
	return &Node{
		ID:    uuid.New(),
		Name:  name,
		Class: class,
	}
}

// NewFolder creates an organizational folder.
func NewFolder(name string) *Node {
	return newNode(name, ClassFolder)
}

// NewObject creates a plain container object.
func NewObject(name string) *Node {
	return newNode(name, ClassObject)
}

// NewTagStructure creates a tag structure. A non-empty shape declares an
// array of structures whose children form the element template.
func NewTagStructure(name string, shape ...uint32) *Node {
	n := newNode(name, ClassTagStructure)
	if len(shape) > 0 {
		n.DataType = Structure
		n.ArrayShape = slices.Clone(shape)
	}

	return n
}

// NewVariable creates a model variable of the given element type and shape.
func NewVariable(name string, dt DataType, shape ...uint32) *Node {
	n := newNode(name, ClassVariable)
	n.DataType = dt
	n.ArrayShape = slices.Clone(shape)

	return n
}

// NewTag creates a communication-driver tag.
func NewTag(name string, props driver.Props, dt DataType, shape ...uint32) *Node {
	n := newNode(name, ClassTag)
	n.Driver = props
	n.DataType = dt
	n.ArrayShape = slices.Clone(shape)

	return n
}

// NewAlarm creates a digital alarm.
func NewAlarm(name, message string) *Node {
	n := newNode(name, ClassAlarm)
	n.Message = message

	return n
}

// Owner returns the node this node is a child of, or nil for a root.
func (n *Node) Owner() *Node {
	return n.owner
}

// Root returns the topmost ancestor of n.
func (n *Node) Root() *Node {
	for n.owner != nil {
		n = n.owner
	}

	return n
}

// Children returns the ordered children of n. The slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// Child returns the child named name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
	}

	return nil
}

// Add appends child to n. Names are unique among siblings and a node has at
// most one owner.
func (n *Node) Add(child *Node) error {
	if child == nil {
		return errors.New("cannot add nil node")
	}

	if child.owner != nil {
		return fmt.Errorf("node %q already belongs to %q", child.Name, child.owner.Name)
	}

	if n.Child(child.Name) != nil {
		return fmt.Errorf("%w: %q already exists into %q", ErrDuplicateName, child.Name, n.Name)
	}

	child.owner = n
	n.children = append(n.children, child)

	return nil
}

// ClearChildren detaches every child of n and returns how many there were.
func (n *Node) ClearChildren() int {
	count := len(n.children)
	for _, c := range n.children {
		c.owner = nil
	}

	n.children = nil

	return count
}

// IsArray reports whether n declares at least one array dimension.
func (n *Node) IsArray() bool {
	return len(n.ArrayShape) > 0
}

// Get walks slash-separated child names starting at n.
func (n *Node) Get(path string) (*Node, error) {
	segments, err := ParsePath(path)
	if err != nil {
		return nil, err
	}

	cur := n
	for _, seg := range segments {
		next := cur.Child(seg)
		if next == nil {
			return nil, fmt.Errorf("%w: %q under %q", ErrNotFound, seg, cur.Name)
		}

		cur = next
	}

	return cur, nil
}

// All returns a pre-order iterator over n and its descendants.
func (n *Node) All() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.walk(yield)
	}
}

func (n *Node) walk(yield func(*Node) bool) bool {
	if !yield(n) {
		return false
	}

	for _, c := range n.children {
		if !c.walk(yield) {
			return false
		}
	}

	return true
}

// FirstDimension returns the length of the first array dimension, if any.
func (n *Node) FirstDimension() (uint32, bool) {
	return common.First(n.ArrayShape)
}
