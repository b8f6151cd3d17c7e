// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package trace

import (
	"cmp"
	"net"
	"os"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

const unknownValue = "Unknown type variable"

// Pair is a single key and value entry of an Array.
type Pair struct {
	Key   any
	Value any
}

// Array is an ordered composite value, printed in insertion order.
// Use it when the order of a mapping matters, Go maps are printed sorted by key.
type Array []Pair

var textEscaper = strings.NewReplacer(
	"\x00", `\0`,
	"\n", `\n`,
	"\r", `\r`,
	"\x1a", `\Z`,
	"\t", `\t`,
)

// PrintValue returns a short text representation of v, suitable for a single stack line.
//
// Strings are double quoted with NUL, newline, carriage return, SUB and tab escaped;
// numbers and booleans are printed as literals; slices, arrays and maps are printed
// as "array( key => value, ... )"; open files and network connections as
// "Resource <kind>"; structs and other objects as "Object <type>".
// A value containing itself is printed as recursionMarker where it repeats.
// Anything else is reported as an unknown type.
func PrintValue(v any) string {
	p := &printer{
		builder:  new(strings.Builder),
		visiting: make(map[visit]struct{}),
	}
	p.writeValue(v)
	return p.builder.String()
}

const recursionMarker = "*RECURSION*"

// visit identifies a composite value currently being printed.
type visit struct {
	ptr uintptr
	typ reflect.Type
}

type printer struct {
	builder  *strings.Builder
	visiting map[visit]struct{}
}

func (p *printer) writeValue(v any) {
	switch value := v.(type) {
	case nil:
		p.builder.WriteString(unknownValue)
		return
	case Array:
		p.enter(reflect.ValueOf(value), func() { p.writeArray(value) })
		return
	case *os.File:
		if value != nil {
			p.builder.WriteString("Resource stream")
			return
		}
	case net.Conn, net.Listener:
		if reflect.ValueOf(value).Kind() != reflect.Pointer || !reflect.ValueOf(value).IsNil() {
			p.builder.WriteString("Resource socket")
			return
		}
	}

	p.writeReflectValue(reflect.ValueOf(v))
}

// enter calls write unless value is already being printed higher in the tree, in
// which case the recursion marker is written instead.
func (p *printer) enter(value reflect.Value, write func()) {
	key := visit{typ: value.Type()}
	switch value.Kind() {
	case reflect.Map, reflect.Pointer:
		key.ptr = value.Pointer()
	case reflect.Slice:
		if value.Len() > 0 {
			key.ptr = value.Pointer()
		}
	}

	if key.ptr == 0 {
		write()
		return
	}

	if _, found := p.visiting[key]; found {
		p.builder.WriteString(recursionMarker)
		return
	}

	p.visiting[key] = struct{}{}
	defer delete(p.visiting, key)
	write()
}

func (p *printer) writeReflectValue(value reflect.Value) {
	switch value.Kind() {
	case reflect.String:
		p.builder.WriteString(`"` + textEscaper.Replace(value.String()) + `"`)
	case reflect.Bool:
		p.builder.WriteString(strconv.FormatBool(value.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		p.builder.WriteString(strconv.FormatInt(value.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		p.builder.WriteString(strconv.FormatUint(value.Uint(), 10))
	case reflect.Float32:
		p.builder.WriteString(strconv.FormatFloat(value.Float(), 'g', -1, 32))
	case reflect.Float64:
		p.builder.WriteString(strconv.FormatFloat(value.Float(), 'g', -1, 64))
	case reflect.Slice, reflect.Array:
		p.enter(value, func() {
			pairs := make(Array, 0, value.Len())
			for idx := range value.Len() {
				pairs = append(pairs, Pair{Key: idx, Value: interfaceOf(value.Index(idx))})
			}
			p.writeArray(pairs)
		})
	case reflect.Map:
		p.enter(value, func() {
			keys := value.MapKeys()
			slices.SortFunc(keys, compareKeys)
			pairs := make(Array, 0, len(keys))
			for _, key := range keys {
				pairs = append(pairs, Pair{Key: interfaceOf(key), Value: interfaceOf(value.MapIndex(key))})
			}
			p.writeArray(pairs)
		})
	case reflect.Pointer:
		switch {
		case value.IsNil():
			p.builder.WriteString(unknownValue)
		case value.Elem().Kind() == reflect.Struct:
			p.builder.WriteString("Object " + value.Elem().Type().String())
		default:
			p.enter(value, func() { p.writeValue(interfaceOf(value.Elem())) })
		}
	case reflect.Struct:
		p.builder.WriteString("Object " + value.Type().String())
	case reflect.Interface:
		if value.IsNil() {
			p.builder.WriteString(unknownValue)
			return
		}
		p.writeValue(interfaceOf(value.Elem()))
	default:
		p.builder.WriteString(unknownValue)
	}
}

func (p *printer) writeArray(pairs Array) {
	p.builder.WriteString("array( ")
	for idx, pair := range pairs {
		if idx > 0 {
			p.builder.WriteString(", ")
		}
		p.writeValue(pair.Key)
		p.builder.WriteString(" => ")
		p.writeValue(pair.Value)
	}
	p.builder.WriteString(" )")
}

// interfaceOf returns the value held by v, or nil when it cannot be read
// (for example elements reached through unexported struct fields).
func interfaceOf(v reflect.Value) any {
	if !v.IsValid() || !v.CanInterface() {
		return nil
	}

	return v.Interface()
}

func compareKeys(a, b reflect.Value) int {
	if a.Kind() == b.Kind() {
		switch a.Kind() {
		case reflect.String:
			return cmp.Compare(a.String(), b.String())
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return cmp.Compare(a.Int(), b.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return cmp.Compare(a.Uint(), b.Uint())
		case reflect.Float32, reflect.Float64:
			return cmp.Compare(a.Float(), b.Float())
		}
	}

	return cmp.Compare(PrintValue(interfaceOf(a)), PrintValue(interfaceOf(b)))
}
