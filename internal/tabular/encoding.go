package tabular

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"tagmirror/internal/common"
)

// Encoding is the character encoding of exported tables.
type Encoding int

const (
	// EncodingUTF16LE writes little-endian UTF-16 with a byte order mark.
	EncodingUTF16LE Encoding = iota
	EncodingUTF8
)

func (e Encoding) String() string {
	switch e {
	case EncodingUTF16LE:
		return "utf-16le"
	case EncodingUTF8:
		return "utf-8"
	default:
		return common.UnknownStr
	}
}

// ParseEncoding parses an encoding name. The empty string selects UTF-16LE.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "utf-16le", "utf-16", "unicode":
		return EncodingUTF16LE, nil
	case "utf-8", "utf8":
		return EncodingUTF8, nil
	default:
		return 0, fmt.Errorf("unsupported encoding %q", s)
	}
}

// encode wraps w so that text written to it is encoded as e. The returned
// writer must be closed to flush.
func (e Encoding) encode(w io.Writer) io.WriteCloser {
	switch e {
	case EncodingUTF8:
		return nopCloser{w}
	default:
		return transform.NewWriter(w, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder())
	}
}

// decode wraps r, picking the encoding from its byte order mark and falling
// back to UTF-8.
func decode(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
