package project

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tagmirror/internal/model"
)

// Names of the folders every new project starts with.
const (
	ModelFolder       = "Model"
	AlarmsFolder      = "Alarms"
	CommDriversFolder = "CommDrivers"
)

const currentVersion = "1"

// Project is an engineering project: a name and the tree of its nodes.
type Project struct {
	Name string
	// Root is an unnamed-in-paths container; its children are the top-level nodes.
	Root *model.Node
}

// New returns an empty project with the well-known top-level folders.
func New(name string) *Project {
	p := &Project{Name: name, Root: model.NewFolder(name)}

	for _, folder := range []string{ModelFolder, AlarmsFolder, CommDriversFolder} {
		// fresh root, names are distinct
		_ = p.Root.Add(model.NewFolder(folder))
	}

	return p
}

// Get returns the node at the slash-separated path below the project root.
func (p *Project) Get(path string) (*model.Node, error) {
	return p.Root.Get(path)
}

// LoadFile loads and parses a YAML project file from the given path.
func LoadFile(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Project.
func Parse(data []byte) (*Project, error) {
	var f File

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse project YAML: %w", err)
	}

	applyDefaults(&f)

	if f.Name == "" {
		return nil, errors.New("project has no name")
	}

	p := &Project{Name: f.Name, Root: model.NewFolder(f.Name)}
	for i := range f.Nodes {
		if err := addNode(p.Root, &f.Nodes[i], f.Nodes[i].Name); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = currentVersion
	}
}

// Marshal serializes a Project to YAML.
func Marshal(p *Project) ([]byte, error) {
	f := File{Version: currentVersion, Name: p.Name}
	for _, c := range p.Root.Children() {
		f.Nodes = append(f.Nodes, fromNode(c))
	}

	return yaml.Marshal(&f)
}

// WriteFile writes a Project to the given path.
func WriteFile(p *Project, path string) error {
	data, err := Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write project file %s: %w", path, err)
	}

	return nil
}
