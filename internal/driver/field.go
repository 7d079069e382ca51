package driver

import (
	"fmt"
	"strconv"
)

// Field is a named accessor for one writable property of a driver kind.
// The zero Field is not usable; fields come from Kind.Fields.
type Field struct {
	Name string

	format func(Props) (string, bool)
	parse  func(Props, string) error
	copy   func(dst, src Props) bool
}

// Format renders the property of p as text. It returns false when p is not of
// the kind owning the field.
func (f Field) Format(p Props) (string, bool) {
	return f.format(p)
}

// Parse converts text and assigns it to the property of p.
func (f Field) Parse(p Props, text string) error {
	return f.parse(p, text)
}

// Copy assigns the property of src to dst. It returns false when either is not
// of the kind owning the field.
func (f Field) Copy(dst, src Props) bool {
	return f.copy(dst, src)
}

// codec converts a property value to and from its textual representation.
type codec[V any] struct {
	format func(V) string
	parse  func(string) (V, error)
}

func newField[P Props, V any](name string, c codec[V], get func(P) V, set func(P, V)) Field {
	return Field{
		Name: name,
		format: func(p Props) (string, bool) {
			tp, ok := p.(P)
			if !ok {
				return "", false
			}

			return c.format(get(tp)), true
		},
		parse: func(p Props, text string) error {
			tp, ok := p.(P)
			if !ok {
				return fmt.Errorf("property %s does not apply to %s tags", name, p.Kind())
			}

			v, err := c.parse(text)
			if err != nil {
				return fmt.Errorf("invalid value %q for %s: %w", text, name, err)
			}

			set(tp, v)

			return nil
		},
		copy: func(dst, src Props) bool {
			tdst, ok := dst.(P)
			if !ok {
				return false
			}

			tsrc, ok := src.(P)
			if !ok {
				return false
			}

			set(tdst, get(tsrc))

			return true
		},
	}
}

func intCodec[V ~int8 | ~int16 | ~int32 | ~int64](bits int) codec[V] {
	return codec[V]{
		format: func(v V) string { return strconv.FormatInt(int64(v), 10) },
		parse: func(s string) (V, error) {
			n, err := strconv.ParseInt(s, 10, bits)
			return V(n), err
		},
	}
}

func uintCodec[V ~uint8 | ~uint16 | ~uint32 | ~uint64](bits int) codec[V] {
	return codec[V]{
		format: func(v V) string { return strconv.FormatUint(uint64(v), 10) },
		parse: func(s string) (V, error) {
			n, err := strconv.ParseUint(s, 10, bits)
			return V(n), err
		},
	}
}

var (
	int16Codec  = intCodec[int16](16)
	int32Codec  = intCodec[int32](32)
	uint8Codec  = uintCodec[uint8](8)
	uint16Codec = uintCodec[uint16](16)
	uint32Codec = uintCodec[uint32](32)

	float64Codec = codec[float64]{
		format: func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) },
		parse:  func(s string) (float64, error) { return strconv.ParseFloat(s, 64) },
	}

	boolCodec = codec[bool]{
		format: strconv.FormatBool,
		parse:  strconv.ParseBool,
	}

	stringCodec = codec[string]{
		format: func(v string) string { return v },
		parse:  func(s string) (string, error) { return s, nil },
	}
)

// enumCodec renders enumerations by their symbolic name.
func enumCodec[E fmt.Stringer](parse func(string) (E, error)) codec[E] {
	return codec[E]{
		format: func(v E) string { return v.String() },
		parse:  parse,
	}
}
