package ngjson

import "github.com/ngjson/ngjson/internal/encode"

// writeValue walks v and emits it through s, the Value-tree specialization
// of the visitor-driven binding a custom Visitor[T] would otherwise drive.
func writeValue(s *encode.Serializer, v *Value) error {
	if v == nil {
		return s.WriteNull()
	}
	switch v.Kind() {
	case Null:
		return s.WriteNull()
	case Bool:
		b, _ := v.AsBool()
		return s.WriteBool(b)
	case Num:
		n, _ := v.AsNumber()
		switch {
		case n.IsI64():
			i, _ := n.AsI64()
			return s.WriteI64(i)
		case n.IsU64():
			u, _ := n.AsU64()
			return s.WriteU64(u)
		default:
			return s.WriteF64(n.AsF64())
		}
	case String:
		str, _ := v.AsString()
		return s.WriteString(str)
	case Array:
		items, _ := v.AsArray()
		if err := s.BeginArray(); err != nil {
			return err
		}
		for i, item := range items {
			if err := s.BeginArrayValue(i == 0); err != nil {
				return err
			}
			if err := writeValue(s, item); err != nil {
				return err
			}
			if err := s.EndArrayValue(); err != nil {
				return err
			}
		}
		return s.EndArray()
	case Object:
		obj, _ := v.AsObject()
		if err := s.BeginObject(); err != nil {
			return err
		}
		first := true
		var werr error
		obj.Each(func(k string, val *Value) bool {
			if err := s.BeginObjectKey(first); err != nil {
				werr = err
				return false
			}
			first = false
			if err := s.WriteString(k); err != nil {
				werr = err
				return false
			}
			if err := s.EndObjectKey(); err != nil {
				werr = err
				return false
			}
			if err := s.BeginObjectValue(); err != nil {
				werr = err
				return false
			}
			if err := writeValue(s, val); err != nil {
				werr = err
				return false
			}
			if err := s.EndObjectValue(); err != nil {
				werr = err
				return false
			}
			return true
		})
		if werr != nil {
			return werr
		}
		return s.EndObject()
	default:
		return s.WriteNull()
	}
}
