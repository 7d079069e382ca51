package driver

import (
	"errors"
	"fmt"

	"tagmirror/internal/common"
)

// ErrUnknownKind is returned when a discriminator does not name a known driver kind.
var ErrUnknownKind = errors.New("unknown driver tag kind")

// StructureDiscriminator is the type column value of tag structure rows.
const StructureDiscriminator = "FTOptix.CommunicationDriver.TagStructure"

type Kind int

const (
	_ Kind = iota // zero value is not a valid kind

	KindS7TCP
	KindCODESYS
	KindModbus
	KindRAEtherNetIP

	// KindTotal is the number of kinds defined, including the invalid zero value
	KindTotal = int(iota)
)

var kindNames = [...]string{
	KindS7TCP:        "S7TCP",
	KindCODESYS:      "CODESYS",
	KindModbus:       "Modbus",
	KindRAEtherNetIP: "RAEtherNetIP",
}

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindS7TCP, KindCODESYS, KindModbus, KindRAEtherNetIP}
}

func (k Kind) IsValid() bool {
	return k > 0 && int(k) < KindTotal
}

func (k Kind) String() string {
	if !k.IsValid() {
		return common.UnknownStr
	}

	return kindNames[k]
}

// Discriminator returns the type column value identifying tags of this kind.
func (k Kind) Discriminator() string {
	return "FTOptix." + k.String() + ".Tag"
}

// ParseDiscriminator maps a type column value back to its kind.
func ParseDiscriminator(s string) (Kind, error) {
	for _, k := range Kinds() {
		if k.Discriminator() == s {
			return k, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// ParseKind parses a kind by its short name, as stored in project files.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if k.String() == s {
			return k, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// New returns zero-valued properties of this kind.
func (k Kind) New() Props {
	switch k {
	case KindS7TCP:
		return &S7TCPTag{}
	case KindCODESYS:
		return &CODESYSTag{}
	case KindModbus:
		return &ModbusTag{}
	case KindRAEtherNetIP:
		return &RAEtherNetIPTag{}
	default:
		return nil
	}
}

// Fields returns the writable property table of this kind.
func (k Kind) Fields() []Field {
	switch k {
	case KindS7TCP:
		return s7tcpFields
	case KindCODESYS:
		return codesysFields
	case KindModbus:
		return modbusFields
	case KindRAEtherNetIP:
		return raEtherNetIPFields
	default:
		return nil
	}
}

// FieldByName looks a property of this kind up by its column name.
func (k Kind) FieldByName(name string) (Field, bool) {
	for _, f := range k.Fields() {
		if f.Name == name {
			return f, true
		}
	}

	return Field{}, false
}
