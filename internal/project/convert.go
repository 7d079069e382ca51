package project

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"tagmirror/internal/driver"
	"tagmirror/internal/model"
)

// addNode builds the subtree described by doc and attaches it to owner. path
// is only used in error messages.
func addNode(owner *model.Node, doc *NodeDoc, path string) error {
	n, err := toNode(doc)
	if err != nil {
		return fmt.Errorf("node %s: %w", path, err)
	}

	if err := owner.Add(n); err != nil {
		return fmt.Errorf("node %s: %w", path, err)
	}

	for i := range doc.Children {
		child := &doc.Children[i]
		if err := addNode(n, child, path+model.PathSeparator+child.Name); err != nil {
			return err
		}
	}

	return nil
}

func toNode(doc *NodeDoc) (*model.Node, error) {
	if doc.Name == "" {
		return nil, errors.New("missing name")
	}

	class, err := model.ParseClass(doc.Class)
	if err != nil {
		return nil, err
	}

	var dt model.DataType
	if doc.DataType != "" {
		if dt, err = model.ParseDataType(doc.DataType); err != nil {
			return nil, err
		}
	}

	var n *model.Node

	switch class {
	case model.ClassFolder:
		n = model.NewFolder(doc.Name)
	case model.ClassObject:
		n = model.NewObject(doc.Name)
	case model.ClassTagStructure:
		n = model.NewTagStructure(doc.Name, doc.Array...)
	case model.ClassVariable:
		n = model.NewVariable(doc.Name, dt, doc.Array...)
	case model.ClassTag:
		if doc.Driver == nil {
			return nil, errors.New("tag without driver properties")
		}

		props, err := toProps(doc.Driver)
		if err != nil {
			return nil, err
		}

		n = model.NewTag(doc.Name, props, dt, doc.Array...)
	case model.ClassAlarm:
		n = model.NewAlarm(doc.Name, doc.Message)
	}

	if doc.ID != "" {
		id, err := uuid.Parse(doc.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", doc.ID, err)
		}

		n.ID = id
	}

	if doc.Link != nil {
		mode, err := model.ParseLinkMode(doc.Link.Mode)
		if err != nil {
			return nil, err
		}

		n.Link = &model.DynamicLink{
			Path:    doc.Link.Path,
			Element: doc.Link.Element,
			Bit:     doc.Link.Bit,
			Mode:    mode,
		}
	}

	return n, nil
}

func toProps(doc *DriverDoc) (driver.Props, error) {
	kind, err := driver.ParseKind(doc.Kind)
	if err != nil {
		return nil, err
	}

	props := kind.New()
	for name, value := range doc.Fields {
		f, ok := kind.FieldByName(name)
		if !ok {
			return nil, fmt.Errorf("%s tags have no property %s", kind, name)
		}

		if err := f.Parse(props, value); err != nil {
			return nil, err
		}
	}

	return props, nil
}

func fromNode(n *model.Node) NodeDoc {
	doc := NodeDoc{
		ID:      n.ID.String(),
		Name:    n.Name,
		Class:   n.Class.String(),
		Array:   slices.Clone(n.ArrayShape),
		Message: n.Message,
	}

	if n.DataType.IsValid() && n.Class != model.ClassTagStructure {
		doc.DataType = n.DataType.String()
	}

	if n.Link != nil {
		doc.Link = &LinkDoc{
			Path:    n.Link.Path,
			Element: n.Link.Element,
			Bit:     n.Link.Bit,
			Mode:    n.Link.Mode.String(),
		}
	}

	if n.Driver != nil {
		doc.Driver = fromProps(n.Driver)
	}

	for _, c := range n.Children() {
		doc.Children = append(doc.Children, fromNode(c))
	}

	return doc
}

func fromProps(p driver.Props) *DriverDoc {
	doc := &DriverDoc{Kind: p.Kind().String(), Fields: make(map[string]string)}

	for _, f := range p.Kind().Fields() {
		if v, ok := f.Format(p); ok {
			doc.Fields[f.Name] = v
		}
	}

	return doc
}
