package model

import (
	"fmt"
)

// DataType is the element type of a variable.
type DataType int

const (
	_ DataType = iota // skip zero value, use it as a default (invalid) value for DataType

	Boolean
	SByte
	Byte
	Int16
	UInt16
	Int32
	UInt32
	Int64
	UInt64
	Float
	Double
	String
	DateTime
	Structure
	BaseDataType

	// DataTypeTotal is a constant that represents the total number of data types defined
	DataTypeTotal = int(iota)
)

var dataTypeNames = [...]string{
	Boolean:      "Boolean",
	SByte:        "SByte",
	Byte:         "Byte",
	Int16:        "Int16",
	UInt16:       "UInt16",
	Int32:        "Int32",
	UInt32:       "UInt32",
	Int64:        "Int64",
	UInt64:       "UInt64",
	Float:        "Float",
	Double:       "Double",
	String:       "String",
	DateTime:     "DateTime",
	Structure:    "Structure",
	BaseDataType: "BaseDataType",
}

func (d DataType) IsValid() bool {
	return d > 0 && int(d) < DataTypeTotal
}

func (d DataType) String() string {
	if !d.IsValid() {
		return fmt.Sprintf("DataType(%d)", int(d))
	}

	return dataTypeNames[d]
}

// ParseDataType returns the data type with the given symbolic name.
func ParseDataType(s string) (DataType, error) {
	for i := 1; i < DataTypeTotal; i++ {
		if dataTypeNames[i] == s {
			return DataType(i), nil
		}
	}

	return 0, fmt.Errorf("unknown data type %q", s)
}

func (d DataType) IsInteger() bool {
	switch d {
	default:
		return false
	case SByte, Byte, Int16, UInt16, Int32, UInt32, Int64, UInt64:
		return true
	}
}

func (d DataType) IsSigned() bool {
	switch d {
	default:
		return false
	case SByte, Int16, Int32, Int64:
		return true
	}
}

// Bits returns the width of integer types and 0 for every other type.
func (d DataType) Bits() int {
	switch d {
	default:
		return 0
	case SByte, Byte:
		return 8
	case Int16, UInt16:
		return 16
	case Int32, UInt32:
		return 32
	case Int64, UInt64:
		return 64
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d DataType) MarshalText() ([]byte, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("cannot marshal %s", d)
	}

	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *DataType) UnmarshalText(text []byte) error {
	v, err := ParseDataType(string(text))
	if err != nil {
		return err
	}

	*d = v

	return nil
}
