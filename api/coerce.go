package api

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
)

// ToValue converts a Go value into a configuration value. Values that already are configuration
// values are returned as is. Maps must have string keys (or interface{} keys that are strings),
// map keys are added in sorted order since Go maps have no order of their own. A json.Number
// becomes an integer when it fits in an int64 and a float otherwise. NaN and infinities are
// not convertible.
func ToValue(vi interface{}) (Value, error) {
	switch v := vi.(type) {
	case nil:
		return Nil, nil
	case Scalar:
		return v, nil
	case Sequence:
		return v, nil
	case *Fragment:
		if v == nil {
			return FragmentWithCapacity(0), nil
		}
		return v, nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, NotConvertible(vi)
		}
		return fromFloat(f)
	case string:
		return String(v), nil
	case bool:
		return Bool(v), nil
	case int:
		return Int(int64(v)), nil
	case int8:
		return Int(int64(v)), nil
	case int16:
		return Int(int64(v)), nil
	case int32:
		return Int(int64(v)), nil
	case int64:
		return Int(v), nil
	case uint:
		return fromUint(uint64(v)), nil
	case uint8:
		return Int(int64(v)), nil
	case uint16:
		return Int(int64(v)), nil
	case uint32:
		return Int(int64(v)), nil
	case uint64:
		return fromUint(v), nil
	case float32:
		return fromFloat(float64(v))
	case float64:
		return fromFloat(v)
	case []interface{}:
		s := make(Sequence, len(v))
		for i, e := range v {
			ev, err := ToValue(e)
			if err != nil {
				return nil, err
			}
			s[i] = ev
		}
		return s, nil
	case map[string]interface{}:
		ks := make([]string, 0, len(v))
		for k := range v {
			ks = append(ks, k)
		}
		sort.Strings(ks)
		f := FragmentWithCapacity(len(ks))
		for _, k := range ks {
			ev, err := ToValue(v[k])
			if err != nil {
				return nil, err
			}
			f.Put(k, ev)
		}
		return f, nil
	}
	return reflectValue(reflect.ValueOf(vi))
}

func fromFloat(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf(`number %v: %w`, f, ErrNotConvertible)
	}
	return Float(f), nil
}

func fromUint(u uint64) Value {
	if u > math.MaxInt64 {
		return Float(float64(u))
	}
	return Int(int64(u))
}

func reflectValue(rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return Nil, nil
		}
		return ToValue(rv.Elem().Interface())
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fromUint(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return fromFloat(rv.Float())
	case reflect.Slice, reflect.Array:
		top := rv.Len()
		s := make(Sequence, top)
		for i := 0; i < top; i++ {
			ev, err := ToValue(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			s[i] = ev
		}
		return s, nil
	case reflect.Map:
		keys := rv.MapKeys()
		ks := make([]string, 0, len(keys))
		vs := make(map[string]reflect.Value, len(keys))
		for _, mk := range keys {
			k := mk
			for k.Kind() == reflect.Interface && !k.IsNil() {
				k = k.Elem()
			}
			if k.Kind() != reflect.String {
				return nil, NotConvertible(rv.Interface())
			}
			ks = append(ks, k.String())
			vs[k.String()] = rv.MapIndex(mk)
		}
		sort.Strings(ks)
		f := FragmentWithCapacity(len(ks))
		for _, k := range ks {
			ev, err := ToValue(vs[k].Interface())
			if err != nil {
				return nil, err
			}
			f.Put(k, ev)
		}
		return f, nil
	}
	if !rv.IsValid() {
		return Nil, nil
	}
	return nil, NotConvertible(rv.Interface())
}

// ToFragment converts the given Go value into a Fragment. An error wrapping ErrNotMapping is
// returned if the value doesn't represent a mapping. The argName is used in that error.
func ToFragment(argName string, vi interface{}) (*Fragment, error) {
	v, err := ToValue(vi)
	if err != nil {
		return nil, fmt.Errorf(`%s: %w`, argName, err)
	}
	if f, ok := v.(*Fragment); ok {
		return f, nil
	}
	return nil, NotMapping(argName, vi)
}

// MustValue is like ToValue but panics on error. It is intended for tests and static data.
func MustValue(vi interface{}) Value {
	v, err := ToValue(vi)
	if err != nil {
		panic(err)
	}
	return v
}

// MustFragment is like ToFragment but panics on error. It is intended for tests and static data.
func MustFragment(vi interface{}) *Fragment {
	f, err := ToFragment(`fragment`, vi)
	if err != nil {
		panic(err)
	}
	return f
}

// ToNative converts a configuration value into plain Go data: map[string]interface{},
// []interface{}, or the Go value wrapped by a Scalar.
func ToNative(v Value) interface{} {
	switch v := v.(type) {
	case *Fragment:
		m := make(map[string]interface{}, v.Len())
		v.EachEntry(func(k string, ev Value) { m[k] = ToNative(ev) })
		return m
	case Sequence:
		a := make([]interface{}, len(v))
		for i, ev := range v {
			a[i] = ToNative(ev)
		}
		return a
	case Scalar:
		return v.v
	}
	return nil
}
