package ngjson

import "github.com/ngjson/ngjson/internal/visit"

// valueVisitor is the Visitor[*Value] that DeserializeAny drives to build
// an in-memory Value tree; it is what Unmarshal and Decoder.Decode(*Value)
// use under the hood.
type valueVisitor struct{}

func (valueVisitor) VisitNull() (*Value, error)          { return NewNull(), nil }
func (valueVisitor) VisitBool(v bool) (*Value, error)    { return NewBool(v), nil }
func (valueVisitor) VisitI64(v int64) (*Value, error)    { return NewNumber(NumberFromI64(v)), nil }
func (valueVisitor) VisitU64(v uint64) (*Value, error)   { return NewNumber(NumberFromU64(v)), nil }
func (valueVisitor) VisitF64(v float64) (*Value, error)  { return NewNumber(NumberFromF64(v)), nil }
func (valueVisitor) VisitBorrowedStr(v string) (*Value, error) { return NewString(v), nil }
func (valueVisitor) VisitStr(v string) (*Value, error)   { return NewString(v), nil }

func (valueVisitor) VisitBytes(v []byte) (*Value, error) {
	items := make([]*Value, len(v))
	for i, b := range v {
		items[i] = NewNumber(NumberFromU64(uint64(b)))
	}
	return NewArray(items), nil
}

func (valueVisitor) VisitSeq(seq visit.SeqAccess[*Value]) (*Value, error) {
	items := []*Value{}
	for {
		v, ok, err := seq.NextElement()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		items = append(items, v)
	}
	return NewArray(items), nil
}

func (valueVisitor) VisitMap(m visit.MapAccess[*Value]) (*Value, error) {
	obj := NewMap()
	for {
		key, ok, err := m.NextKey()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		v, err := m.NextValue()
		if err != nil {
			return nil, err
		}
		obj.Insert(key, v)
	}
	return NewObject(obj), nil
}
