package tabular

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"tagmirror/internal/common"
	"tagmirror/internal/driver"
)

// Separator separates the columns of a row.
const Separator = ';'

const arrayLengthSeparator = ","

// Fixed column names.
const (
	ColumnType        = "Type"
	ColumnBrowseName  = "BrowseName"
	ColumnBrowsePath  = "BrowsePath"
	ColumnDataType    = "NodeDataType"
	ColumnArrayLength = "ArrayLength"
)

var fixedColumns = []string{ColumnType, ColumnBrowseName, ColumnBrowsePath, ColumnDataType, ColumnArrayLength}

// Columns returns the header for an export containing tags of the given kinds.
func Columns(kinds []driver.Kind) []string {
	cols := slices.Clone(fixedColumns)
	for _, k := range kinds {
		for _, f := range k.Fields() {
			if !slices.Contains(cols, f.Name) {
				cols = append(cols, f.Name)
			}
		}
	}

	return cols
}

type header struct {
	index map[string]int
}

func newHeader(names []string) (header, error) {
	h := header{index: make(map[string]int, len(names))}
	for i, name := range names {
		name = strings.TrimSpace(name)
		if _, dup := h.index[name]; !dup {
			h.index[name] = i
		}
	}

	for _, col := range fixedColumns {
		if _, ok := h.index[col]; !ok {
			return header{}, fmt.Errorf("header lacks column %s", col)
		}
	}

	return h, nil
}

// value returns the cell of column in row, or "" when either is missing.
func (h header) value(row []string, column string) string {
	i, ok := h.index[column]
	if !ok || i >= len(row) {
		return ""
	}

	return row[i]
}

// formatTagArrayLength renders a scalar, vector or matrix shape. Higher ranks
// have no textual form.
func formatTagArrayLength(shape []uint32) (string, error) {
	switch len(shape) {
	case 0:
		return "", nil
	case 1:
		return strconv.FormatUint(uint64(shape[0]), 10), nil
	case 2:
		return strconv.FormatUint(uint64(shape[0]), 10) + arrayLengthSeparator + strconv.FormatUint(uint64(shape[1]), 10), nil
	default:
		return "", fmt.Errorf("%d-dimensional arrays cannot be exported", len(shape))
	}
}

func formatStructureArrayLength(shape []uint32) string {
	dim, ok := common.First(shape)
	if !ok || dim == 0 {
		return ""
	}

	return strconv.FormatUint(uint64(dim), 10)
}

// parseArrayLength parses "", "n" or "rows,cols".
func parseArrayLength(s string) ([]uint32, error) {
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, arrayLengthSeparator)
	if len(parts) > 2 {
		return nil, fmt.Errorf("invalid array length %q: at most two dimensions", s)
	}

	first, second := common.Unpack2(parts)

	rows, err := parseDimension(first)
	if err != nil {
		return nil, fmt.Errorf("invalid array length %q: %w", s, err)
	}

	if len(parts) == 1 {
		return []uint32{rows}, nil
	}

	cols, err := parseDimension(second)
	if err != nil {
		return nil, fmt.Errorf("invalid array length %q: %w", s, err)
	}

	return []uint32{rows, cols}, nil
}

func parseDimension(s string) (uint32, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	return uint32(n), err
}
