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

	eos "github.com/eoscanada/eos-go"
	"github.com/pkg/errors"
)

// ContractSerializer serializes the data of contract actions with the
// eos-go ABI encoder. Other types, and actions whose data contains a
// public_key or signature, which eos-go only accepts with EOS prefixes, are
// handled by the embedded BinarySerializer. The zero value is ready to use.
//
// Deserialize returns the same Go types as BinarySerializer.
type ContractSerializer struct {
	BinarySerializer
}

var _ Serializer = ContractSerializer{}

func (c ContractSerializer) Serialize(a *ABI,
	typeName string, v interface{}) ([]byte, error) {
	contract, action, ok := a.eosAction(typeName)
	if !ok {
		return c.BinarySerializer.Serialize(a, typeName, v)
	}
	val, err := normalize(v)
	if err != nil {
		return nil, &SerializationError{"serialize", typeName, err}
	}
	// eos-go encodes missing fields as zero values.
	if err := a.checkFields(typeName, val); err != nil {
		return nil, &SerializationError{"serialize", typeName, err}
	}
	js, err := json.Marshal(val)
	if err != nil {
		return nil, &SerializationError{"serialize", typeName, err}
	}
	data, err := contract.EncodeAction(action, js)
	if err != nil {
		return nil, &SerializationError{"serialize", typeName, err}
	}
	return data, nil
}

func (c ContractSerializer) Deserialize(a *ABI,
	typeName string, data []byte) (interface{}, error) {
	contract, action, ok := a.eosAction(typeName)
	if !ok {
		return c.BinarySerializer.Deserialize(a, typeName, data)
	}
	js, err := contract.DecodeAction(data, action)
	if err != nil {
		return nil, &SerializationError{"deserialize", typeName, err}
	}
	d := json.NewDecoder(bytes.NewReader(js))
	d.UseNumber()
	var val interface{}
	if err := d.Decode(&val); err != nil {
		return nil, &SerializationError{"deserialize", typeName, err}
	}
	v, err := a.typed(typeName, val, 0)
	if err != nil {
		return nil, &SerializationError{"deserialize", typeName, err}
	}
	return v, nil
}

// eosAction returns the eos-go form of a and the action whose data is
// typeName. It is false if no action can be handled by eos-go.
func (a *ABI) eosAction(typeName string) (*eos.ABI, eos.ActionName, bool) {
	a.eosOnce.Do(a.loadEOS)
	if a.eos == nil {
		return nil, "", false
	}
	a.index()
	action, ok := a.eosActions[a.resolve(typeName)]
	return a.eos, action, ok
}

// loadEOS parses a with eos-go. If eos-go rejects a, every type falls back
// to BinarySerializer.
func (a *ABI) loadEOS() {
	a.index()
	js, err := json.Marshal(a)
	if err != nil {
		return
	}
	contract, err := eos.NewABI(bytes.NewReader(js))
	if err != nil {
		return
	}
	actions := make(map[string]eos.ActionName, len(a.Actions))
	for _, act := range a.Actions {
		typ := a.resolve(act.Type)
		if _, ok := actions[typ]; ok {
			continue
		}
		if a.usesKeys(typ, make(map[string]bool)) {
			continue
		}
		actions[typ] = eos.ActionName(act.Name.String())
	}
	a.eos = contract
	a.eosActions = actions
}

// usesKeys reports whether typ contains a public_key or signature.
func (a *ABI) usesKeys(typ string, seen map[string]bool) bool {
	typ = a.resolve(typ)
	if base, suffix := typeSuffix(typ); len(suffix) > 0 {
		return a.usesKeys(base, seen)
	}
	switch typ {
	case "public_key", "signature":
		return true
	}
	if seen[typ] {
		return false
	}
	seen[typ] = true
	if s, ok := a.structs[typ]; ok {
		if len(s.Base) > 0 && a.usesKeys(s.Base, seen) {
			return true
		}
		for _, f := range s.Fields {
			if a.usesKeys(f.Type, seen) {
				return true
			}
		}
	}
	if vd, ok := a.variants[typ]; ok {
		for _, t := range vd.Types {
			if a.usesKeys(t, seen) {
				return true
			}
		}
	}
	return false
}

// checkFields returns an error if val, the normalized value of struct typ,
// lacks a field that is neither optional nor a binary extension.
func (a *ABI) checkFields(typ string, val interface{}) error {
	s, ok := a.Struct(typ)
	if !ok {
		return nil
	}
	obj, ok := val.(map[string]interface{})
	if !ok {
		return fmt.Errorf("expected object for %v, got %T", typ, val)
	}
	for depth := 0; ; depth++ {
		if depth > maxTypedefDepth {
			return fmt.Errorf("struct %v: base nesting too deep", typ)
		}
		for _, f := range s.Fields {
			if _, ok := obj[f.Name]; ok ||
				strings.HasSuffix(f.Type, "?") ||
				strings.HasSuffix(f.Type, "$") {
				continue
			}
			return fmt.Errorf("missing field %v", f.Name)
		}
		if len(s.Base) == 0 {
			return nil
		}
		if s, ok = a.Struct(s.Base); !ok {
			return fmt.Errorf("struct %v: unknown base", typ)
		}
	}
}

// typed converts v, the generic JSON form of typ, to the Go types returned
// by BinarySerializer.Deserialize. Builtin values are converted by a pass
// through their binary form.
func (a *ABI) typed(typ string, v interface{}, depth int) (interface{}, error) {
	if depth > maxTypedefDepth {
		return nil, fmt.Errorf("%v: nesting too deep", typ)
	}
	typ = a.resolve(typ)
	base, suffix := typeSuffix(typ)
	switch suffix {
	case "[]":
		if v == nil {
			return []interface{}{}, nil
		}
		arr, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("expected array, got %T", v)
		}
		out := make([]interface{}, len(arr))
		for i, elem := range arr {
			var err error
			if out[i], err = a.typed(base, elem, depth+1); err != nil {
				return nil, errors.Wrapf(err, "[%v]", i)
			}
		}
		return out, nil
	case "?":
		if v == nil {
			return nil, nil
		}
		return a.typed(base, v, depth+1)
	case "$":
		return a.typed(base, v, depth+1)
	}

	if b, ok := builtins[typ]; ok {
		var buf bytes.Buffer
		if err := b.encode(&buf, v); err != nil {
			return nil, err
		}
		return b.decode(&reader{data: buf.Bytes()})
	}
	if s, ok := a.structs[typ]; ok {
		obj, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("expected object for %v, got %T", typ, v)
		}
		out := make(map[string]interface{}, len(obj))
		for s != nil {
			for _, f := range s.Fields {
				fv, ok := obj[f.Name]
				if !ok {
					if strings.HasSuffix(f.Type, "$") {
						continue
					}
					if !strings.HasSuffix(f.Type, "?") {
						return nil, fmt.Errorf("missing field %v", f.Name)
					}
				}
				tv, err := a.typed(f.Type, fv, depth+1)
				if err != nil {
					return nil, errors.Wrap(err, f.Name)
				}
				out[f.Name] = tv
			}
			if len(s.Base) == 0 {
				break
			}
			if depth++; depth > maxTypedefDepth {
				return nil, fmt.Errorf("struct %v: base nesting too deep", typ)
			}
			if s, ok = a.structs[a.resolve(s.Base)]; !ok {
				return nil, fmt.Errorf("struct %v: unknown base", typ)
			}
		}
		return out, nil
	}
	if vd, ok := a.variants[typ]; ok {
		pair, ok := v.([]interface{})
		if !ok || len(pair) != 2 {
			return nil, fmt.Errorf("expected [type, value] for variant %v", vd.Name)
		}
		name, ok := pair[0].(string)
		if !ok {
			return nil, fmt.Errorf("variant %v: expected type name", vd.Name)
		}
		tv, err := a.typed(name, pair[1], depth+1)
		if err != nil {
			return nil, errors.Wrap(err, name)
		}
		return []interface{}{name, tv}, nil
	}
	return nil, fmt.Errorf("unknown type %q", typ)
}
