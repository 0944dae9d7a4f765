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

// Package action defines the FIO contract actions and converts them to the
// actions of a transaction.
package action

import (
	"fmt"

	"github.com/Factom-Asset-Tokens/fiod/fio"
	"github.com/Factom-Asset-Tokens/fiod/fio/abi"
)

// Payload is the structured data of an action before serialization. Keys
// are the field names of the action's ABI struct.
type Payload map[string]interface{}

// PermissionLevel authorizes an action.
type PermissionLevel struct {
	Actor      fio.Name `json:"actor"`
	Permission fio.Name `json:"permission"`
}

// Action is a contract action. Data holds a Payload, or the binary fio.Bytes
// form in the copy returned by Serialized.
type Action struct {
	Account       fio.Name          `json:"account"`
	Name          fio.Name          `json:"name"`
	Authorization []PermissionLevel `json:"authorization"`
	Data          interface{}       `json:"data"`
}

// Variant is one of the actions in this package.
type Variant interface {
	Account() fio.Name
	ActionName() fio.Name
	Payload() Payload
}

// New returns the Action for v, authorized by the active permission of
// actor, who is also recorded in the payload.
func New(v Variant, actor fio.Name) *Action {
	data := v.Payload()
	data["actor"] = actor.String()
	return &Action{
		Account: v.Account(),
		Name:    v.ActionName(),
		Authorization: []PermissionLevel{{
			Actor:      actor,
			Permission: fio.NameActive,
		}},
		Data: data,
	}
}

// IsSerialized reports whether Data holds the binary form.
func (a *Action) IsSerialized() bool {
	_, ok := a.Data.(fio.Bytes)
	return ok
}

// Serialized returns a copy of a whose Data is the binary form of the
// payload, using the action's type in contract. a is never modified. An
// action that is already serialized is rejected.
func (a *Action) Serialized(s abi.Serializer, contract *abi.ABI) (*Action, error) {
	if a.IsSerialized() {
		return nil, &abi.SerializationError{Op: "serialize", Type: a.Name.String(),
			Err: fmt.Errorf("action already serialized")}
	}
	typ, ok := contract.ActionType(a.Name)
	if !ok {
		return nil, &abi.SerializationError{Op: "serialize", Type: a.Name.String(),
			Err: fmt.Errorf("action not defined by %v abi", a.Account)}
	}
	data, err := s.Serialize(contract, typ, a.Data)
	if err != nil {
		return nil, err
	}
	cp := *a
	cp.Authorization = append([]PermissionLevel(nil), a.Authorization...)
	cp.Data = fio.Bytes(data)
	return &cp, nil
}
