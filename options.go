package ngjson

import (
	"log/slog"

	"github.com/ngjson/ngjson/internal/decode"
	"github.com/ngjson/ngjson/internal/encode"
)

// BinaryMode selects how a []byte field is represented: as a JSON array
// of numbers, or as a quoted hex string.
type BinaryMode int

const (
	BinaryModeArray BinaryMode = iota
	BinaryModeHex
)

// DecodeOptions carries the parser's feature flags. The zero value is a
// strict, RFC 8259 parser with the default recursion limit.
type DecodeOptions struct {
	// RecursionLimit caps container nesting depth; 0 selects
	// decode.DefaultRecursionLimit.
	RecursionLimit int
	// DisableRecursionLimit removes the nesting cap entirely. A
	// RecursionLimitExceeded error always takes priority over a
	// concurrent AllowPartial* acceptance, even when this is set.
	DisableRecursionLimit bool
	// AllowPartialObject, AllowPartialList, and AllowPartialString accept
	// a truncated container or string at EOF instead of erroring,
	// returning whatever was parsed so far.
	AllowPartialObject bool
	AllowPartialList   bool
	AllowPartialString bool
	// BinaryMode selects how a binding layer built on this package reads
	// a []byte field; the core parser does not act on it directly.
	BinaryMode BinaryMode
	// Logger receives debug-level diagnostics (each partial-parse
	// acceptance at EOF). Nil disables tracing; this is opt-in
	// instrumentation, never required for a correct parse.
	Logger *slog.Logger
}

func (o DecodeOptions) toInternal() decode.Options {
	return decode.Options{
		RecursionLimit:        o.RecursionLimit,
		DisableRecursionLimit: o.DisableRecursionLimit,
		AllowPartialObject:    o.AllowPartialObject,
		AllowPartialList:      o.AllowPartialList,
		AllowPartialString:    o.AllowPartialString,
		BinaryMode:            decode.BinaryMode(o.BinaryMode),
		Logger:                o.Logger,
	}
}

// Formatter selects the output Serializer chooses.
type Formatter int

const (
	// FormatterCompact writes no insignificant whitespace.
	FormatterCompact Formatter = iota
	// FormatterPretty indents nested containers with Indent (two spaces
	// if Indent is empty).
	FormatterPretty
)

// EncodeOptions carries the serializer's feature flags.
type EncodeOptions struct {
	Formatter Formatter
	// Indent is the per-depth-level indent string used by
	// FormatterPretty. Defaults to two spaces.
	Indent string
	// ASCIIOnly escapes every non-ASCII rune as \uXXXX instead of
	// writing raw UTF-8.
	ASCIIOnly bool
	// BinaryMode selects how Value.Pipe-adjacent binding helpers built
	// on this package render a []byte field.
	BinaryMode BinaryMode
	// Logger mirrors DecodeOptions.Logger; the encoder does not read it,
	// so nothing is logged while encoding.
	Logger *slog.Logger
}

func (o EncodeOptions) newFormatter() encode.Formatter {
	var f encode.Formatter
	switch o.Formatter {
	case FormatterPretty:
		indent := o.Indent
		if indent == "" {
			indent = "  "
		}
		f = encode.NewPretty(indent)
	default:
		f = encode.CompactFormatter{}
	}
	if o.ASCIIOnly {
		f = encode.NewASCIIOnly(f)
	}
	return f
}
