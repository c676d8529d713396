package ngjson

import "github.com/ngjson/ngjson/internal/visit"

// Visitor, SeqAccess, and MapAccess are the callback contract a caller
// implements to bind a parsed JSON value into its own type, rather than
// into a Value tree. They are aliases of internal/visit's generic
// interfaces so callers never need to import that package directly.
type Visitor[T any] = visit.Visitor[T]

// SeqAccess drives one array's worth of elements during a VisitSeq call.
type SeqAccess[T any] = visit.SeqAccess[T]

// MapAccess drives one object's worth of entries during a VisitMap call.
type MapAccess[T any] = visit.MapAccess[T]
