package ngjson

// Span records the byte offsets a parsed value occupied in its source,
// [Start, End). It is produced by Decoder.DecodeSpanned and
// is meant to be surfaced to callers as the `$start`/`$end`/`$value`
// marker-field triple when a binding layer wants position information
// alongside a bound value.
type Span struct {
	Start uint64
	End   uint64
}
