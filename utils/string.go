package utils

import (
	"reflect"
	"strings"
)

// TrimAllStringFields returns a copy of input with every exported string field,
// slice element and map key/value trimmed. Pointers are copied, never mutated in place.
func TrimAllStringFields[T any](input T) T {
	value := reflect.ValueOf(input)
	if !value.IsValid() {
		return input
	}
	trimmed, ok := trimValue(value).Interface().(T)
	if !ok {
		return input
	}
	return trimmed
}

func trimValue(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return v
		}
		newElem := trimValue(v.Elem())
		newPtr := reflect.New(v.Type().Elem())
		newPtr.Elem().Set(newElem)
		return newPtr

	case reflect.Struct:
		newStruct := reflect.New(v.Type()).Elem()
		newStruct.Set(v)
		for i := 0; i < v.NumField(); i++ {
			if !v.Type().Field(i).IsExported() {
				continue
			}
			if newStruct.Field(i).CanSet() {
				newStruct.Field(i).Set(trimValue(v.Field(i)))
			}
		}
		return newStruct

	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		newSlice := reflect.MakeSlice(v.Type(), v.Len(), v.Cap())
		for i := 0; i < v.Len(); i++ {
			newSlice.Index(i).Set(trimValue(v.Index(i)))
		}
		return newSlice

	case reflect.Map:
		if v.IsNil() {
			return v
		}
		newMap := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			newMap.SetMapIndex(trimValue(iter.Key()), trimValue(iter.Value()))
		}
		return newMap

	case reflect.Interface:
		if v.IsNil() {
			return v
		}
		inner := trimValue(v.Elem())
		out := reflect.New(v.Type()).Elem()
		out.Set(inner)
		return out

	case reflect.String:
		out := reflect.New(v.Type()).Elem()
		out.SetString(strings.TrimSpace(v.String()))
		return out
	}

	return v
}
