// Package visit defines the visitor/binding contract consumed by
// internal/decode and produced by internal/encode's value walkers. It is a
// leaf package: both internal/decode and internal/encode depend on it, and
// the root package re-exports its types as aliases, so this package must
// never import either of them.
//
// Go has no generic methods, so every caller of these interfaces is
// itself a free generic function (see internal/decode.DeserializeAny)
// rather than a generic method on some concrete parser type.
package visit

// Visitor receives exactly one call for a successfully parsed JSON value.
// T is the visitor's own result type; a Visitor[Value] builds a value tree,
// a Visitor[MyStruct] binds into a user type, and so on.
type Visitor[T any] interface {
	VisitNull() (T, error)
	VisitBool(v bool) (T, error)
	VisitI64(v int64) (T, error)
	VisitU64(v uint64) (T, error)
	VisitF64(v float64) (T, error)
	// VisitBorrowedStr is called when the string was not copied: its
	// bytes are backed directly by the source buffer and only remain
	// valid until the next read from that source.
	VisitBorrowedStr(v string) (T, error)
	// VisitStr is called when the string was copied into scratch (it
	// contained an escape) and is therefore safe to retain.
	VisitStr(v string) (T, error)
	VisitBytes(v []byte) (T, error)
	VisitSeq(seq SeqAccess[T]) (T, error)
	VisitMap(m MapAccess[T]) (T, error)
}

// SeqAccess drives one array's worth of elements. NextElement returns
// ok=false once the closing `]` has been reached; it must not be called
// again afterward.
type SeqAccess[T any] interface {
	NextElement() (v T, ok bool, err error)
}

// MapAccess drives one object's worth of entries. NextKey returns
// ok=false once the closing `}` has been reached. NextValue must be called
// exactly once after each NextKey that returns ok=true, before the next
// NextKey call.
type MapAccess[T any] interface {
	NextKey() (key string, ok bool, err error)
	NextValue() (v T, err error)
}
