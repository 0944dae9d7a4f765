// MIT License
//
// Copyright 2018 Canonical Ledgers, LLC
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS
// IN THE SOFTWARE.

package abi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Serializer converts values to and from the binary form of an ABI type.
type Serializer interface {
	Serialize(a *ABI, typeName string, v interface{}) ([]byte, error)
	Deserialize(a *ABI, typeName string, data []byte) (interface{}, error)
}

// BinarySerializer is the EOSIO binary Serializer. The zero value is ready
// to use.
type BinarySerializer struct{}

var _ Serializer = BinarySerializer{}

// Serialize serializes v as typeName using BinarySerializer.
func Serialize(a *ABI, typeName string, v interface{}) ([]byte, error) {
	return BinarySerializer{}.Serialize(a, typeName, v)
}

// Deserialize deserializes data as typeName using BinarySerializer.
func Deserialize(a *ABI, typeName string, data []byte) (interface{}, error) {
	return BinarySerializer{}.Deserialize(a, typeName, data)
}

func (BinarySerializer) Serialize(a *ABI,
	typeName string, v interface{}) ([]byte, error) {
	a.index()
	val, err := normalize(v)
	if err != nil {
		return nil, &SerializationError{"serialize", typeName, err}
	}
	e := encoder{abi: a}
	if err := e.encode(typeName, val); err != nil {
		return nil, &SerializationError{"serialize", typeName, err}
	}
	return e.buf.Bytes(), nil
}

func (BinarySerializer) Deserialize(a *ABI,
	typeName string, data []byte) (interface{}, error) {
	a.index()
	d := decoder{abi: a, reader: reader{data: data}}
	v, err := d.decode(typeName)
	if err != nil {
		return nil, &SerializationError{"deserialize", typeName, err}
	}
	if d.remaining() > 0 {
		return nil, &SerializationError{"deserialize", typeName,
			fmt.Errorf("%v trailing bytes", d.remaining())}
	}
	return v, nil
}

// normalize converts v to its generic JSON form so that structs, maps and
// typed values such as fio.Name are all handled alike.
func normalize(v interface{}) (interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	d := json.NewDecoder(bytes.NewReader(data))
	d.UseNumber()
	var val interface{}
	if err := d.Decode(&val); err != nil {
		return nil, err
	}
	return val, nil
}

// Convert copies a deserialized value into v, which must be a pointer to a
// type whose JSON form matches.
func Convert(val interface{}, v interface{}) error {
	data, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

type encoder struct {
	abi *ABI
	buf bytes.Buffer
}

func (e *encoder) encode(typ string, v interface{}) error {
	typ = e.abi.resolve(typ)
	base, suffix := typeSuffix(typ)
	switch suffix {
	case "[]":
		if v == nil {
			putUvarint(&e.buf, 0)
			return nil
		}
		arr, ok := v.([]interface{})
		if !ok {
			return fmt.Errorf("expected array, got %T", v)
		}
		putUvarint(&e.buf, uint64(len(arr)))
		for i, elem := range arr {
			if err := e.encode(base, elem); err != nil {
				return errors.Wrapf(err, "[%v]", i)
			}
		}
		return nil
	case "?":
		if v == nil {
			e.buf.WriteByte(0)
			return nil
		}
		e.buf.WriteByte(1)
		return e.encode(base, v)
	case "$":
		return e.encode(base, v)
	}

	if b, ok := builtins[typ]; ok {
		return b.encode(&e.buf, v)
	}
	if s, ok := e.abi.structs[typ]; ok {
		obj, ok := v.(map[string]interface{})
		if !ok {
			return fmt.Errorf("expected object for %v, got %T", typ, v)
		}
		return e.encodeStruct(s, obj, 0)
	}
	if vd, ok := e.abi.variants[typ]; ok {
		return e.encodeVariant(vd, v)
	}
	return fmt.Errorf("unknown type %q", typ)
}

func (e *encoder) encodeStruct(s *StructDef,
	obj map[string]interface{}, depth int) error {
	if depth > maxTypedefDepth {
		return fmt.Errorf("struct %v: base nesting too deep", s.Name)
	}
	if len(s.Base) > 0 {
		base, ok := e.abi.structs[e.abi.resolve(s.Base)]
		if !ok {
			return fmt.Errorf("struct %v: unknown base %q", s.Name, s.Base)
		}
		if err := e.encodeStruct(base, obj, depth+1); err != nil {
			return err
		}
	}
	for i, f := range s.Fields {
		fv, present := obj[f.Name]
		if !present {
			if strings.HasSuffix(f.Type, "$") {
				for _, rest := range s.Fields[i+1:] {
					if _, ok := obj[rest.Name]; ok {
						return fmt.Errorf("%v: present after missing binary extension %v",
							rest.Name, f.Name)
					}
				}
				return nil
			}
			if !strings.HasSuffix(f.Type, "?") {
				return fmt.Errorf("missing field %v", f.Name)
			}
		}
		if err := e.encode(f.Type, fv); err != nil {
			return errors.Wrap(err, f.Name)
		}
	}
	return nil
}

func (e *encoder) encodeVariant(vd *VariantDef, v interface{}) error {
	pair, ok := v.([]interface{})
	if !ok || len(pair) != 2 {
		return fmt.Errorf("expected [type, value] for variant %v", vd.Name)
	}
	name, ok := pair[0].(string)
	if !ok {
		return fmt.Errorf("variant %v: expected type name", vd.Name)
	}
	for i, typ := range vd.Types {
		if typ == name {
			putUvarint(&e.buf, uint64(i))
			return errors.Wrap(e.encode(typ, pair[1]), name)
		}
	}
	return fmt.Errorf("variant %v: invalid type %q", vd.Name, name)
}

type decoder struct {
	abi *ABI
	reader
}

func (d *decoder) decode(typ string) (interface{}, error) {
	typ = d.abi.resolve(typ)
	base, suffix := typeSuffix(typ)
	switch suffix {
	case "[]":
		l, err := d.uvarint()
		if err != nil {
			return nil, err
		}
		if l > uint64(d.remaining()) {
			return nil, fmt.Errorf("array length %v exceeds remaining data", l)
		}
		arr := make([]interface{}, 0, l)
		for i := uint64(0); i < l; i++ {
			elem, err := d.decode(base)
			if err != nil {
				return nil, errors.Wrapf(err, "[%v]", i)
			}
			arr = append(arr, elem)
		}
		return arr, nil
	case "?":
		present, err := decodeBool(&d.reader)
		if err != nil {
			return nil, err
		}
		if !present.(bool) {
			return nil, nil
		}
		return d.decode(base)
	case "$":
		return d.decode(base)
	}

	if b, ok := builtins[typ]; ok {
		return b.decode(&d.reader)
	}
	if s, ok := d.abi.structs[typ]; ok {
		obj := make(map[string]interface{}, len(s.Fields))
		if err := d.decodeStruct(s, obj, 0); err != nil {
			return nil, err
		}
		return obj, nil
	}
	if vd, ok := d.abi.variants[typ]; ok {
		i, err := d.uvarint()
		if err != nil {
			return nil, err
		}
		if i >= uint64(len(vd.Types)) {
			return nil, fmt.Errorf("variant %v: invalid index %v", vd.Name, i)
		}
		name := vd.Types[i]
		v, err := d.decode(name)
		if err != nil {
			return nil, errors.Wrap(err, name)
		}
		return []interface{}{name, v}, nil
	}
	return nil, fmt.Errorf("unknown type %q", typ)
}

func (d *decoder) decodeStruct(s *StructDef,
	obj map[string]interface{}, depth int) error {
	if depth > maxTypedefDepth {
		return fmt.Errorf("struct %v: base nesting too deep", s.Name)
	}
	if len(s.Base) > 0 {
		base, ok := d.abi.structs[d.abi.resolve(s.Base)]
		if !ok {
			return fmt.Errorf("struct %v: unknown base %q", s.Name, s.Base)
		}
		if err := d.decodeStruct(base, obj, depth+1); err != nil {
			return err
		}
	}
	for _, f := range s.Fields {
		if strings.HasSuffix(f.Type, "$") && d.remaining() == 0 {
			return nil
		}
		v, err := d.decode(f.Type)
		if err != nil {
			return errors.Wrap(err, f.Name)
		}
		obj[f.Name] = v
	}
	return nil
}
