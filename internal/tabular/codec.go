package tabular

import (
	"go.uber.org/zap"
)

// Options configures a Codec.
type Options struct {
	// Encoding of exported tables.
	Encoding Encoding
}

// Codec exports and imports tag tables.
type Codec struct {
	logger *zap.Logger
	opts   Options
}

// New returns a Codec. A nil logger discards output.
func New(logger *zap.Logger, opts Options) *Codec {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Codec{logger: logger, opts: opts}
}
