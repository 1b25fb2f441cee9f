package model

import "reflect"

// valueStore reads and writes already-coerced attribute values.
type valueStore interface {
	get(attr *attribute) any
	set(attr *attribute, value reflect.Value)
}

type structStore struct {
	root reflect.Value
}

func (s structStore) field(attr *attribute, alloc bool) (reflect.Value, bool) {
	v := s.root
	for _, idx := range attr.index {
		for v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !alloc {
					return reflect.Value{}, false
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(idx)
	}
	return v, true
}

func (s structStore) get(attr *attribute) any {
	v, ok := s.field(attr, false)
	if !ok {
		return reflect.Zero(attr.typ).Interface()
	}
	if attr.pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	return v.Interface()
}

func (s structStore) set(attr *attribute, value reflect.Value) {
	v, _ := s.field(attr, true)
	if attr.pointer {
		ptr := reflect.New(attr.typ)
		ptr.Elem().Set(value)
		v.Set(ptr)
		return
	}
	v.Set(value)
}

type mapStore struct {
	values map[string]any
}

func (s mapStore) get(attr *attribute) any {
	if value, ok := s.values[attr.name]; ok {
		return value
	}
	return reflect.Zero(attr.typ).Interface()
}

func (s mapStore) set(attr *attribute, value reflect.Value) {
	s.values[attr.name] = value.Interface()
}
