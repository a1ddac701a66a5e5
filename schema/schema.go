// Package schema encodes records from a declarative, ordered field list.
//
// A Schema is built once per record layout and encodes Values in declaration
// order into a single buffer of the exact final size. Values that do not fit
// their declared field are programming errors and panic.
package schema

import (
	"encoding/binary"
	"fmt"
	"reflect"
)

type kind uint8

const (
	kindScalar kind = iota
	kindBytes
	kindVector
	kindTable
	kindTrailing
)

// Field is one entry of a Schema.
type Field struct {
	name  string
	kind  kind
	width int // scalar width, fixed byte length, or vector element width
	count string
	sub   *Schema
}

// Name returns the field name.
func (f Field) Name() string { return f.name }

// Uint8 declares a 1-byte scalar.
func Uint8(name string) Field { return Field{name: name, kind: kindScalar, width: 1} }

// Uint16 declares a 2-byte little-endian scalar.
func Uint16(name string) Field { return Field{name: name, kind: kindScalar, width: 2} }

// Uint32 declares a 4-byte little-endian scalar.
func Uint32(name string) Field { return Field{name: name, kind: kindScalar, width: 4} }

// Uint64 declares an 8-byte little-endian scalar.
func Uint64(name string) Field { return Field{name: name, kind: kindScalar, width: 8} }

// Bytes declares a fixed-length byte field.
func Bytes(name string, length int) Field {
	return Field{name: name, kind: kindBytes, width: length}
}

// Vector declares a run of little-endian scalars of elemWidth bytes whose
// element count is carried by the sibling field countField. Element width 1
// accepts a []byte value.
func Vector(name, countField string, elemWidth int) Field {
	return Field{name: name, kind: kindVector, width: elemWidth, count: countField}
}

// Table declares an array of nested records whose element count is carried
// by countField.
func Table(name, countField string, sub *Schema) Field {
	return Field{name: name, kind: kindTable, count: countField, sub: sub}
}

// Trailing declares an uncounted array of nested records. It must be the
// last field.
func Trailing(name string, sub *Schema) Field {
	return Field{name: name, kind: kindTrailing, sub: sub}
}

// Values maps field names to values. Scalars take any unsigned or
// non-negative signed integer, Bytes take []byte, Vectors take []byte (width
// 1) or a slice of integers, and tables take []Values.
type Values map[string]any

// Schema is an ordered list of fields.
type Schema struct {
	fields []Field
	index  map[string]int
}

// New builds a Schema. It panics on duplicate names, a count field that is
// not an earlier scalar, or a trailing array that is not last.
func New(fields ...Field) *Schema {
	s := &Schema{fields: fields, index: make(map[string]int, len(fields))}
	for i, f := range fields {
		if _, dup := s.index[f.name]; dup {
			panic(fmt.Sprintf("schema: duplicate field %q", f.name))
		}
		if f.count != "" {
			j, ok := s.index[f.count]
			if !ok || fields[j].kind != kindScalar {
				panic(fmt.Sprintf("schema: field %q counted by unknown scalar %q", f.name, f.count))
			}
		}
		if f.kind == kindTrailing && i != len(fields)-1 {
			panic(fmt.Sprintf("schema: trailing array %q must be the last field", f.name))
		}
		s.index[f.name] = i
	}
	return s
}

// Fields returns the declared fields in order.
func (s *Schema) Fields() []Field { return s.fields }

// Size returns the encoded length of v.
func (s *Schema) Size(v Values) int {
	n := 0
	for _, f := range s.fields {
		switch f.kind {
		case kindScalar, kindBytes:
			n += f.width
		case kindVector:
			n += vectorLen(f, v[f.name]) * f.width
		case kindTable, kindTrailing:
			for _, row := range tableRows(f, v[f.name]) {
				n += f.sub.Size(row)
			}
		}
	}
	return n
}

// Encode serializes v. The result always has length Size(v).
func (s *Schema) Encode(v Values) []byte {
	size := s.Size(v)
	out := s.appendTo(make([]byte, 0, size), v)
	if len(out) != size {
		panic(fmt.Sprintf("schema: encoded %d bytes, expected %d", len(out), size))
	}
	return out
}

func (s *Schema) appendTo(buf []byte, v Values) []byte {
	for _, f := range s.fields {
		val, ok := v[f.name]
		if !ok && f.kind != kindTrailing {
			panic(fmt.Sprintf("schema: missing value for field %q", f.name))
		}
		switch f.kind {
		case kindScalar:
			buf = appendScalar(buf, f.name, f.width, toUint64(f.name, val))
		case kindBytes:
			b, ok := val.([]byte)
			if !ok || len(b) != f.width {
				panic(fmt.Sprintf("schema: field %q wants %d bytes, got %T of length %d",
					f.name, f.width, val, lenOf(val)))
			}
			buf = append(buf, b...)
		case kindVector:
			s.checkCount(f, v, vectorLen(f, val))
			if b, ok := val.([]byte); ok && f.width == 1 {
				buf = append(buf, b...)
				continue
			}
			rv := reflect.ValueOf(val)
			for i := 0; i < rv.Len(); i++ {
				buf = appendScalar(buf, f.name, f.width, toUint64(f.name, rv.Index(i).Interface()))
			}
		case kindTable, kindTrailing:
			rows := tableRows(f, val)
			if f.kind == kindTable {
				s.checkCount(f, v, len(rows))
			}
			for _, row := range rows {
				buf = f.sub.appendTo(buf, row)
			}
		}
	}
	return buf
}

func (s *Schema) checkCount(f Field, v Values, n int) {
	declared := toUint64(f.count, v[f.count])
	if declared != uint64(n) {
		panic(fmt.Sprintf("schema: field %q has %d elements but %q says %d",
			f.name, n, f.count, declared))
	}
}

func appendScalar(buf []byte, name string, width int, x uint64) []byte {
	if width < 8 && x>>(8*uint(width)) != 0 {
		panic(fmt.Sprintf("schema: value %d overflows %d-byte field %q", x, width, name))
	}
	switch width {
	case 1:
		return append(buf, byte(x))
	case 2:
		return binary.LittleEndian.AppendUint16(buf, uint16(x))
	case 4:
		return binary.LittleEndian.AppendUint32(buf, uint32(x))
	case 8:
		return binary.LittleEndian.AppendUint64(buf, x)
	}
	panic(fmt.Sprintf("schema: unsupported width %d for field %q", width, name))
}

func toUint64(name string, val any) uint64 {
	switch x := val.(type) {
	case uint8:
		return uint64(x)
	case uint16:
		return uint64(x)
	case uint32:
		return uint64(x)
	case uint64:
		return x
	case int:
		if x < 0 {
			panic(fmt.Sprintf("schema: negative value %d for field %q", x, name))
		}
		return uint64(x)
	}
	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if rv.Int() < 0 {
			panic(fmt.Sprintf("schema: negative value %d for field %q", rv.Int(), name))
		}
		return uint64(rv.Int())
	}
	panic(fmt.Sprintf("schema: field %q wants an integer, got %T", name, val))
}

func vectorLen(f Field, val any) int {
	if val == nil {
		return 0
	}
	rv := reflect.ValueOf(val)
	if rv.Kind() != reflect.Slice {
		panic(fmt.Sprintf("schema: vector %q wants a slice, got %T", f.name, val))
	}
	return rv.Len()
}

func tableRows(f Field, val any) []Values {
	if val == nil {
		return nil
	}
	rows, ok := val.([]Values)
	if !ok {
		panic(fmt.Sprintf("schema: table %q wants []Values, got %T", f.name, val))
	}
	return rows
}

func lenOf(val any) int {
	if b, ok := val.([]byte); ok {
		return len(b)
	}
	return -1
}
