package ngjson

// RawValue holds the exact, unparsed bytes of one JSON value, captured
// without building a Value tree, such as the bytes Decoder.DecodeRaw
// returns; Parse lazily parses it on demand.
type RawValue []byte

// Parse parses the captured bytes into a Value tree. It never mutates r,
// unlike Unmarshal on a caller-owned slice.
func (r RawValue) Parse(opts DecodeOptions) (*Value, error) {
	return UnmarshalString(string(r), opts)
}

// String returns the captured bytes as a string, unmodified.
func (r RawValue) String() string { return string(r) }
