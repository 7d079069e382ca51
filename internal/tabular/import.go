package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"go.uber.org/zap"

	"tagmirror/internal/diagnostic"
	"tagmirror/internal/driver"
	"tagmirror/internal/match"
	"tagmirror/internal/model"
)

// ErrTypeMismatch is returned when an imported tag disagrees with the value
// type of the existing tag it would update.
var ErrTypeMismatch = errors.New("type mismatch")

// errOwnerMissing marks rows whose owner may still be created by a later row.
var errOwnerMissing = errors.New("owner not found")

// ImportStats counts what one import did.
type ImportStats struct {
	TagsUpdated       int
	TagsCreated       int
	StructuresCreated int
	RowsFailed        int

	Diagnostics diagnostic.Diagnostics
}

type row struct {
	line   int
	fields []string
}

// ImportFile reads the table at path into root.
func (c *Codec) ImportFile(path string, root *model.Node) (ImportStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportStats{}, fmt.Errorf("failed to open tags file %s: %w", path, err)
	}
	defer f.Close()

	return c.Import(f, root)
}

// Import reads a table from r and creates or updates the tags and tag
// structures it describes below root. Row failures are logged and counted;
// only failing to read the table returns an error.
func (c *Codec) Import(r io.Reader, root *model.Node) (ImportStats, error) {
	var stats ImportStats

	if root == nil {
		return stats, errors.New("import: nil root")
	}

	cr := csv.NewReader(decode(r))
	cr.Comma = Separator
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	names, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return stats, nil
	}

	if err != nil {
		return stats, fmt.Errorf("read header: %w", err)
	}

	h, err := newHeader(names)
	if err != nil {
		return stats, err
	}

	var pending []row

	for line := 2; ; line++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		var perr *csv.ParseError
		if errors.As(err, &perr) {
			c.rowFailed(&stats, row{line: line}, "", err)
			continue
		}

		if err != nil {
			return stats, fmt.Errorf("read row %d: %w", line, err)
		}

		r := row{line: line, fields: fields}
		if err := c.importRow(h, r, root, &stats); err != nil {
			if errors.Is(err, errOwnerMissing) {
				pending = append(pending, r)
				continue
			}

			c.rowFailed(&stats, r, h.value(fields, ColumnBrowsePath), err)
		}
	}

	c.retryPending(h, pending, root, &stats)

	c.logger.Info("Tags imported",
		zap.Int("tags_updated", stats.TagsUpdated),
		zap.Int("tags_created", stats.TagsCreated),
		zap.Int("tag_structures_created", stats.StructuresCreated),
		zap.Int("rows_failed", stats.RowsFailed))

	return stats, nil
}

// retryPending re-applies rows whose owner was missing until a pass makes
// no progress.
func (c *Codec) retryPending(h header, pending []row, root *model.Node, stats *ImportStats) {
	for len(pending) > 0 {
		var (
			next     []row
			lastErrs = make(map[int]error)
		)

		for _, r := range pending {
			err := c.importRow(h, r, root, stats)
			switch {
			case err == nil:
			case errors.Is(err, errOwnerMissing):
				next = append(next, r)
				lastErrs[r.line] = err
			default:
				c.rowFailed(stats, r, h.value(r.fields, ColumnBrowsePath), err)
			}
		}

		if len(next) == len(pending) {
			for _, r := range next {
				c.rowFailed(stats, r, h.value(r.fields, ColumnBrowsePath), lastErrs[r.line])
			}

			return
		}

		pending = next
	}
}

func (c *Codec) rowFailed(stats *ImportStats, r row, path string, err error) {
	stats.RowsFailed++

	code := diagnostic.CodeStructural
	if errors.Is(err, ErrTypeMismatch) {
		code = diagnostic.CodeTypeMismatch
	}

	stats.Diagnostics.AddError(code, fmt.Sprintf("row %d: %v", r.line, err), path)
	c.logger.Error("Cannot import row",
		zap.Int("line", r.line),
		zap.String("path", path),
		zap.String("code", code),
		zap.Error(err))
}

func (c *Codec) importRow(h header, r row, root *model.Node, stats *ImportStats) error {
	discriminator := h.value(r.fields, ColumnType)
	name := h.value(r.fields, ColumnBrowseName)
	path := h.value(r.fields, ColumnBrowsePath)

	if name == "" {
		return errors.New("empty browse name")
	}

	if discriminator == driver.StructureDiscriminator {
		return c.importStructure(h, r, name, path, root, stats)
	}

	kind, err := driver.ParseDiscriminator(discriminator)
	if err != nil {
		if hint, ok := match.Suggest(discriminator, discriminators()); ok {
			return fmt.Errorf("%w (did you mean %s?)", err, hint)
		}

		return err
	}

	tag, err := buildTag(h, r.fields, kind, name)
	if err != nil {
		return err
	}

	owner, err := resolveOwner(root, path)
	if err != nil {
		return err
	}

	if existing := owner.Child(name); existing != nil {
		if err := updateTag(existing, tag); err != nil {
			return err
		}

		stats.TagsUpdated++

		return nil
	}

	if err := owner.Add(tag); err != nil {
		return err
	}

	stats.TagsCreated++

	return nil
}

func (c *Codec) importStructure(h header, r row, name, path string, root *model.Node, stats *ImportStats) error {
	var structure *model.Node

	if arrayLength := h.value(r.fields, ColumnArrayLength); arrayLength != "" {
		n, err := strconv.ParseUint(arrayLength, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid array length %q: %w", arrayLength, err)
		}

		structure = model.NewTagStructure(name, uint32(n))
	} else {
		structure = model.NewTagStructure(name)
	}

	owner, err := resolveOwner(root, path)
	if err != nil {
		return err
	}

	if owner.Child(name) != nil {
		stats.Diagnostics.AddWarning(diagnostic.CodeDuplicate, name+" already exists into "+owner.Name, path)
		c.logger.Warn("Tag structure already exists",
			zap.Int("line", r.line),
			zap.String("path", path))

		return nil
	}

	if err := owner.Add(structure); err != nil {
		return err
	}

	stats.StructuresCreated++

	return nil
}

func buildTag(h header, fields []string, kind driver.Kind, name string) (*model.Node, error) {
	dt, err := model.ParseDataType(h.value(fields, ColumnDataType))
	if err != nil {
		return nil, err
	}

	shape, err := parseArrayLength(h.value(fields, ColumnArrayLength))
	if err != nil {
		return nil, err
	}

	props := kind.New()
	for _, f := range kind.Fields() {
		v := h.value(fields, f.Name)
		if v == "" {
			continue
		}

		if err := f.Parse(props, v); err != nil {
			return nil, err
		}
	}

	return model.NewTag(name, props, dt, shape...), nil
}

func discriminators() []string {
	out := []string{driver.StructureDiscriminator}
	for _, k := range driver.Kinds() {
		out = append(out, k.Discriminator())
	}

	return out
}

// resolveOwner walks the browse path without its first (root) and last
// (node itself) segments.
func resolveOwner(root *model.Node, path string) (*model.Node, error) {
	segments := model.SplitBrowsePath(path)
	if len(segments) < 2 {
		return nil, fmt.Errorf("browse path %q has no owner", path)
	}

	owner := root
	for _, seg := range segments[1 : len(segments)-1] {
		next := owner.Child(seg)
		if next == nil {
			return nil, fmt.Errorf("%w: %q under %q", errOwnerMissing, seg, owner.Name)
		}

		owner = next
	}

	return owner, nil
}

// updateTag copies the driver properties of src onto dst. Type, shape and
// driver kind must already agree.
func updateTag(dst, src *model.Node) error {
	if dst.DataType != src.DataType {
		return fmt.Errorf("%w: tag %s cannot be updated because its type is %s and the imported data says %s",
			ErrTypeMismatch, dst.Name, dst.DataType, src.DataType)
	}

	if !slices.Equal(dst.ArrayShape, src.ArrayShape) {
		return fmt.Errorf("%w: tag %s cannot be updated because its shape is %v and the imported data says %v",
			ErrTypeMismatch, dst.Name, dst.ArrayShape, src.ArrayShape)
	}

	if dst.Driver == nil || dst.Driver.Kind() != src.Driver.Kind() {
		return fmt.Errorf("%w: tag %s is not a %s tag", ErrTypeMismatch, dst.Name, src.Driver.Kind())
	}

	for _, f := range src.Driver.Kind().Fields() {
		f.Copy(dst.Driver, src.Driver)
	}

	return nil
}
