package project

// File is the root of a YAML project document.
type File struct {
	// Version of the project schema.
	Version string `yaml:"version,omitempty"`

	// Name of the project.
	Name string `yaml:"name"`

	// Nodes are the top-level nodes of the project.
	Nodes []NodeDoc `yaml:"nodes,omitempty"`
}

// NodeDoc is the persisted form of one node and its subtree.
type NodeDoc struct {
	ID       string     `yaml:"id,omitempty"`
	Name     string     `yaml:"name"`
	Class    string     `yaml:"class"`
	DataType string     `yaml:"data_type,omitempty"`
	Array    []uint32   `yaml:"array,flow,omitempty"`
	Link     *LinkDoc   `yaml:"link,omitempty"`
	Driver   *DriverDoc `yaml:"driver,omitempty"`
	Message  string     `yaml:"message,omitempty"`
	Children []NodeDoc  `yaml:"children,omitempty"`
}

// LinkDoc is the persisted form of a dynamic link.
type LinkDoc struct {
	Path    string  `yaml:"path"`
	Element *uint32 `yaml:"element,omitempty"`
	Bit     *uint32 `yaml:"bit,omitempty"`
	Mode    string  `yaml:"mode,omitempty"`
}

// DriverDoc is the persisted form of a tag's driver properties. Fields are
// keyed by property name.
type DriverDoc struct {
	Kind   string            `yaml:"kind"`
	Fields map[string]string `yaml:"fields,omitempty"`
}
