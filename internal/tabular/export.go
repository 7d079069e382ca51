package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"tagmirror/internal/driver"
	"tagmirror/internal/model"
)

// ExportStats counts the rows written by one export.
type ExportStats struct {
	Tags            int
	Structures      int
	StructureArrays int
	Skipped         int
}

// partition holds the exportable nodes below a root in pre-order.
type partition struct {
	tags       []*model.Node
	structures []*model.Node
	arrays     []*model.Node
}

func partitionTree(root *model.Node) partition {
	var p partition
	p.collect(root)

	return p
}

func (p *partition) collect(n *model.Node) {
	for _, c := range n.Children() {
		if model.IsBookkeeping(c) {
			continue
		}

		switch c.Class {
		case model.ClassTag:
			p.tags = append(p.tags, c)
		case model.ClassTagStructure:
			if c.IsArray() {
				p.arrays = append(p.arrays, c)
			} else {
				p.structures = append(p.structures, c)
			}

			p.collect(c)
		default:
			p.collect(c)
		}
	}
}

// kinds returns the distinct driver kinds of the tags, in declaration order.
func (p *partition) kinds() []driver.Kind {
	present := make(map[driver.Kind]bool)
	for _, t := range p.tags {
		if t.Driver != nil {
			present[t.Driver.Kind()] = true
		}
	}

	var kinds []driver.Kind
	for _, k := range driver.Kinds() {
		if present[k] {
			kinds = append(kinds, k)
		}
	}

	return kinds
}

// ExportFile writes the table of root to path.
func (c *Codec) ExportFile(path string, root *model.Node) (ExportStats, error) {
	f, err := os.Create(path)
	if err != nil {
		return ExportStats{}, fmt.Errorf("failed to create tags file %s: %w", path, err)
	}

	stats, err := c.Export(f, root)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close tags file %s: %w", path, cerr)
	}

	return stats, err
}

// Export writes the table of every tag and tag structure below root to w.
func (c *Codec) Export(w io.Writer, root *model.Node) (ExportStats, error) {
	var stats ExportStats

	if root == nil {
		return stats, errors.New("export: nil root")
	}

	p := partitionTree(root)
	columns := Columns(p.kinds())
	dynamic := columns[len(fixedColumns):]

	enc := c.opts.Encoding.encode(w)
	cw := csv.NewWriter(enc)
	cw.Comma = Separator

	if err := cw.Write(columns); err != nil {
		return stats, fmt.Errorf("write header: %w", err)
	}

	for _, s := range p.arrays {
		if err := cw.Write(c.structureRow(root, s, len(columns))); err != nil {
			return stats, fmt.Errorf("write %s: %w", s.Name, err)
		}

		stats.StructureArrays++
	}

	for _, s := range p.structures {
		if err := cw.Write(c.structureRow(root, s, len(columns))); err != nil {
			return stats, fmt.Errorf("write %s: %w", s.Name, err)
		}

		stats.Structures++
	}

	for _, t := range p.tags {
		row, err := c.tagRow(root, t, dynamic)
		if err != nil {
			stats.Skipped++
			c.logger.Error("Cannot export tag", zap.String("node", t.Name), zap.Error(err))

			continue
		}

		if err := cw.Write(row); err != nil {
			return stats, fmt.Errorf("write %s: %w", t.Name, err)
		}

		stats.Tags++
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return stats, fmt.Errorf("flush tags table: %w", err)
	}

	if err := enc.Close(); err != nil {
		return stats, fmt.Errorf("flush tags table: %w", err)
	}

	c.logger.Info("Tags exported",
		zap.Int("tags", stats.Tags),
		zap.Int("tag_structures", stats.Structures),
		zap.Int("tag_structure_arrays", stats.StructureArrays))

	return stats, nil
}

func (c *Codec) structureRow(root, s *model.Node, width int) []string {
	row := make([]string, width)
	row[0] = driver.StructureDiscriminator
	row[1] = s.Name
	row[2] = browsePath(root, s)
	row[3] = ""
	row[4] = formatStructureArrayLength(s.ArrayShape)

	return row
}

func (c *Codec) tagRow(root, t *model.Node, dynamic []string) ([]string, error) {
	if t.Driver == nil {
		return nil, errors.New("tag has no driver properties")
	}

	arrayLength, err := formatTagArrayLength(t.ArrayShape)
	if err != nil {
		return nil, err
	}

	row := make([]string, 0, len(fixedColumns)+len(dynamic))
	row = append(row,
		t.Driver.Kind().Discriminator(),
		t.Name,
		browsePath(root, t),
		t.DataType.String(),
		arrayLength,
	)

	kind := t.Driver.Kind()
	for _, name := range dynamic {
		f, ok := kind.FieldByName(name)
		if !ok {
			row = append(row, "")
			continue
		}

		v, ok := f.Format(t.Driver)
		if !ok {
			return nil, fmt.Errorf("property %s does not apply to %T", name, t.Driver)
		}

		row = append(row, v)
	}

	return row, nil
}

// browsePath never fails for nodes collected below root.
func browsePath(root, n *model.Node) string {
	p, err := model.BrowsePath(root, n)
	if err != nil {
		return n.Name
	}

	return p
}
