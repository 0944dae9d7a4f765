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

// Package abi implements the EOSIO ABI binary format used by FIO contracts.
//
// An ABI describes the structs, typedefs and variants of a contract. Values
// are serialized according to a type name resolved against an ABI. Values
// passed to Serialize may be any Go value with a JSON encoding matching the
// type, for example map[string]interface{} or a struct with json tags.
// Deserialize returns map[string]interface{} for structs, []interface{} for
// arrays and variants, and Go scalars or strings for builtin types.
package abi

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	eos "github.com/eoscanada/eos-go"

	"github.com/Factom-Asset-Tokens/fiod/fio"
)

// ABI is a contract abi_def.
type ABI struct {
	Version          string         `json:"version"`
	Types            []TypeDef      `json:"types"`
	Structs          []StructDef    `json:"structs"`
	Actions          []ActionDef    `json:"actions"`
	Tables           []TableDef     `json:"tables"`
	RicardianClauses []ClausePair   `json:"ricardian_clauses"`
	ErrorMessages    []ErrorMessage `json:"error_messages"`
	ABIExtensions    []Extension    `json:"abi_extensions"`
	Variants         []VariantDef   `json:"variants,omitempty"`

	once     sync.Once
	typedefs map[string]string
	structs  map[string]*StructDef
	variants map[string]*VariantDef
	actions  map[fio.Name]string

	eosOnce    sync.Once
	eos        *eos.ABI
	eosActions map[string]eos.ActionName
}

type TypeDef struct {
	NewTypeName string `json:"new_type_name"`
	Type        string `json:"type"`
}

type FieldDef struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type StructDef struct {
	Name   string     `json:"name"`
	Base   string     `json:"base"`
	Fields []FieldDef `json:"fields"`
}

type ActionDef struct {
	Name              fio.Name `json:"name"`
	Type              string   `json:"type"`
	RicardianContract string   `json:"ricardian_contract"`
}

type TableDef struct {
	Name      fio.Name `json:"name"`
	IndexType string   `json:"index_type"`
	KeyNames  []string `json:"key_names"`
	KeyTypes  []string `json:"key_types"`
	Type      string   `json:"type"`
}

type ClausePair struct {
	ID   string `json:"id"`
	Body string `json:"body"`
}

type ErrorMessage struct {
	ErrorCode uint64 `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

type Extension struct {
	Tag   uint16    `json:"tag"`
	Value fio.Bytes `json:"value"`
}

type VariantDef struct {
	Name  string   `json:"name"`
	Types []string `json:"types"`
}

// Parse unmarshals the JSON form of an abi_def.
func Parse(data []byte) (*ABI, error) {
	var a ABI
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%T: %v", &a, err)
	}
	return &a, nil
}

// MustParse is like Parse but panics on error. It is used for the builtin
// ABIs.
func MustParse(data string) *ABI {
	a, err := Parse([]byte(data))
	if err != nil {
		panic(err)
	}
	return a
}

func (a *ABI) index() {
	a.once.Do(func() {
		a.typedefs = make(map[string]string, len(a.Types))
		for _, t := range a.Types {
			a.typedefs[t.NewTypeName] = t.Type
		}
		a.structs = make(map[string]*StructDef, len(a.Structs))
		for i := range a.Structs {
			a.structs[a.Structs[i].Name] = &a.Structs[i]
		}
		a.variants = make(map[string]*VariantDef, len(a.Variants))
		for i := range a.Variants {
			a.variants[a.Variants[i].Name] = &a.Variants[i]
		}
		a.actions = make(map[fio.Name]string, len(a.Actions))
		for _, act := range a.Actions {
			a.actions[act.Name] = act.Type
		}
	})
}

// ActionType returns the struct type of the data of action name.
func (a *ABI) ActionType(name fio.Name) (string, bool) {
	a.index()
	typ, ok := a.actions[name]
	return typ, ok
}

// Struct returns the struct named name, after resolving typedefs.
func (a *ABI) Struct(name string) (*StructDef, bool) {
	a.index()
	s, ok := a.structs[a.resolve(name)]
	return s, ok
}

// maxTypedefDepth bounds typedef chains so that a cyclic ABI fails instead
// of looping.
const maxTypedefDepth = 32

func (a *ABI) resolve(typ string) string {
	for i := 0; i < maxTypedefDepth; i++ {
		t, ok := a.typedefs[typ]
		if !ok {
			return typ
		}
		typ = t
	}
	return typ
}

// typeSuffix splits the extension suffix ("[]", "?" or "$") from typ.
func typeSuffix(typ string) (base, suffix string) {
	switch {
	case strings.HasSuffix(typ, "[]"):
		return typ[:len(typ)-2], "[]"
	case strings.HasSuffix(typ, "?"), strings.HasSuffix(typ, "$"):
		return typ[:len(typ)-1], typ[len(typ)-1:]
	}
	return typ, ""
}
