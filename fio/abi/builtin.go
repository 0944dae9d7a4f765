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
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Factom-Asset-Tokens/fiod/fio"
)

type builtin struct {
	encode func(w *bytes.Buffer, v interface{}) error
	decode func(r *reader) (interface{}, error)
}

var builtins = map[string]builtin{
	"bool": {encodeBool, decodeBool},

	"int8":   intType(1),
	"int16":  intType(2),
	"int32":  intType(4),
	"int64":  intType(8),
	"uint8":  uintType(1),
	"uint16": uintType(2),
	"uint32": uintType(4),
	"uint64": uintType(8),

	"varuint32": {encodeVaruint32, decodeVaruint32},
	"varint32":  {encodeVarint32, decodeVarint32},

	"float32": floatType(4),
	"float64": floatType(8),

	"name":   {encodeName, decodeName},
	"string": {encodeString, decodeString},
	"bytes":  {encodeBytes, decodeBytes},

	"time_point_sec":       {encodeTimePointSec, decodeTimePointSec},
	"time_point":           {encodeTimePoint, decodeTimePoint},
	"block_timestamp_type": {encodeBlockTimestamp, decodeBlockTimestamp},

	"checksum160": checksumType(20),
	"checksum256": checksumType(32),
	"checksum512": checksumType(64),

	"public_key": {encodePublicKey, decodePublicKey},
	"signature":  {encodeSignature, decodeSignature},

	"symbol_code": {encodeSymbolCode, decodeSymbolCode},
	"symbol":      {encodeSymbol, decodeSymbol},
	"asset":       {encodeAsset, decodeAsset},
}

// reader reads binary ABI data.
type reader struct {
	data []byte
	pos  int
}

func (r *reader) remaining() int { return len(r.data) - r.pos }

func (r *reader) read(n int) ([]byte, error) {
	if n < 0 || r.remaining() < n {
		return nil, fmt.Errorf("unexpected end of data at offset %v", r.pos)
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) uint(size int) (uint64, error) {
	b, err := r.read(size)
	if err != nil {
		return 0, err
	}
	var x uint64
	for i := size - 1; i >= 0; i-- {
		x = x<<8 | uint64(b[i])
	}
	return x, nil
}

func (r *reader) uvarint() (uint64, error) {
	x, n := binary.Uvarint(r.data[r.pos:])
	if n <= 0 {
		return 0, fmt.Errorf("invalid varuint at offset %v", r.pos)
	}
	r.pos += n
	return x, nil
}

func putUint(w *bytes.Buffer, x uint64, size int) {
	for i := 0; i < size; i++ {
		w.WriteByte(byte(x >> (8 * i)))
	}
}

func putUvarint(w *bytes.Buffer, x uint64) {
	w.Write(binary.AppendUvarint(nil, x))
}

func numberString(v interface{}) (string, error) {
	switch v := v.(type) {
	case json.Number:
		return v.String(), nil
	case string:
		return v, nil
	}
	return "", fmt.Errorf("expected number, got %T", v)
}

func parseUint(v interface{}, bits int) (uint64, error) {
	s, err := numberString(v)
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(s, 10, bits)
}

func parseInt(v interface{}, bits int) (int64, error) {
	s, err := numberString(v)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(s, 10, bits)
}

func asString(v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("expected string, got %T", v)
	}
	return s, nil
}

func encodeBool(w *bytes.Buffer, v interface{}) error {
	b, ok := v.(bool)
	if !ok {
		return fmt.Errorf("expected bool, got %T", v)
	}
	if b {
		w.WriteByte(1)
	} else {
		w.WriteByte(0)
	}
	return nil
}

func decodeBool(r *reader) (interface{}, error) {
	b, err := r.read(1)
	if err != nil {
		return nil, err
	}
	switch b[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return nil, fmt.Errorf("invalid bool %#x", b[0])
}

func uintType(size int) builtin {
	return builtin{
		encode: func(w *bytes.Buffer, v interface{}) error {
			x, err := parseUint(v, size*8)
			if err != nil {
				return err
			}
			putUint(w, x, size)
			return nil
		},
		decode: func(r *reader) (interface{}, error) {
			x, err := r.uint(size)
			if err != nil {
				return nil, err
			}
			switch size {
			case 1:
				return uint8(x), nil
			case 2:
				return uint16(x), nil
			case 4:
				return uint32(x), nil
			}
			return x, nil
		},
	}
}

func intType(size int) builtin {
	return builtin{
		encode: func(w *bytes.Buffer, v interface{}) error {
			x, err := parseInt(v, size*8)
			if err != nil {
				return err
			}
			putUint(w, uint64(x), size)
			return nil
		},
		decode: func(r *reader) (interface{}, error) {
			u, err := r.uint(size)
			if err != nil {
				return nil, err
			}
			shift := uint(64 - 8*size)
			x := int64(u<<shift) >> shift
			switch size {
			case 1:
				return int8(x), nil
			case 2:
				return int16(x), nil
			case 4:
				return int32(x), nil
			}
			return x, nil
		},
	}
}

func floatType(size int) builtin {
	return builtin{
		encode: func(w *bytes.Buffer, v interface{}) error {
			s, err := numberString(v)
			if err != nil {
				return err
			}
			f, err := strconv.ParseFloat(s, size*8)
			if err != nil {
				return err
			}
			if size == 4 {
				putUint(w, uint64(math.Float32bits(float32(f))), 4)
				return nil
			}
			putUint(w, math.Float64bits(f), 8)
			return nil
		},
		decode: func(r *reader) (interface{}, error) {
			x, err := r.uint(size)
			if err != nil {
				return nil, err
			}
			if size == 4 {
				return math.Float32frombits(uint32(x)), nil
			}
			return math.Float64frombits(x), nil
		},
	}
}

func encodeVaruint32(w *bytes.Buffer, v interface{}) error {
	x, err := parseUint(v, 32)
	if err != nil {
		return err
	}
	putUvarint(w, x)
	return nil
}

func decodeVaruint32(r *reader) (interface{}, error) {
	x, err := r.uvarint()
	if err != nil {
		return nil, err
	}
	if x > math.MaxUint32 {
		return nil, fmt.Errorf("varuint32 overflow")
	}
	return uint32(x), nil
}

func encodeVarint32(w *bytes.Buffer, v interface{}) error {
	x, err := parseInt(v, 32)
	if err != nil {
		return err
	}
	w.Write(binary.AppendVarint(nil, x))
	return nil
}

func decodeVarint32(r *reader) (interface{}, error) {
	x, n := binary.Varint(r.data[r.pos:])
	if n <= 0 || x < math.MinInt32 || x > math.MaxInt32 {
		return nil, fmt.Errorf("invalid varint32 at offset %v", r.pos)
	}
	r.pos += n
	return int32(x), nil
}

func encodeName(w *bytes.Buffer, v interface{}) error {
	s, err := asString(v)
	if err != nil {
		return err
	}
	n, err := fio.NewName(s)
	if err != nil {
		return err
	}
	putUint(w, uint64(n), 8)
	return nil
}

func decodeName(r *reader) (interface{}, error) {
	x, err := r.uint(8)
	if err != nil {
		return nil, err
	}
	return fio.Name(x).String(), nil
}

func encodeString(w *bytes.Buffer, v interface{}) error {
	s, err := asString(v)
	if err != nil {
		return err
	}
	putUvarint(w, uint64(len(s)))
	w.WriteString(s)
	return nil
}

func readBytes(r *reader) ([]byte, error) {
	l, err := r.uvarint()
	if err != nil {
		return nil, err
	}
	if l > uint64(r.remaining()) {
		return nil, fmt.Errorf("length %v exceeds remaining data", l)
	}
	return r.read(int(l))
}

func decodeString(r *reader) (interface{}, error) {
	b, err := readBytes(r)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func encodeBytes(w *bytes.Buffer, v interface{}) error {
	s, err := asString(v)
	if err != nil {
		return err
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	putUvarint(w, uint64(len(b)))
	w.Write(b)
	return nil
}

func decodeBytes(r *reader) (interface{}, error) {
	b, err := readBytes(r)
	if err != nil {
		return nil, err
	}
	return fio.Bytes(append([]byte{}, b...)), nil
}

func parseTime(v interface{}) (time.Time, error) {
	s, err := asString(v)
	if err != nil {
		return time.Time{}, err
	}
	return fio.ParseTime(s)
}

func encodeTimePointSec(w *bytes.Buffer, v interface{}) error {
	t, err := parseTime(v)
	if err != nil {
		return err
	}
	sec := t.Unix()
	if sec < 0 || sec > math.MaxUint32 {
		return fmt.Errorf("time %v out of range", t)
	}
	putUint(w, uint64(sec), 4)
	return nil
}

func decodeTimePointSec(r *reader) (interface{}, error) {
	x, err := r.uint(4)
	if err != nil {
		return nil, err
	}
	return fio.TimePointSec(x).String(), nil
}

const timePointFormat = fio.TimeFormat + ".000"

func encodeTimePoint(w *bytes.Buffer, v interface{}) error {
	t, err := parseTime(v)
	if err != nil {
		return err
	}
	putUint(w, uint64(t.UnixMicro()), 8)
	return nil
}

func decodeTimePoint(r *reader) (interface{}, error) {
	x, err := r.uint(8)
	if err != nil {
		return nil, err
	}
	return time.UnixMicro(int64(x)).UTC().Format(timePointFormat), nil
}

// blockTimestampEpoch is 2000-01-01T00:00:00Z in milliseconds. Block
// timestamps count half seconds since then.
const blockTimestampEpoch = 946684800000

func encodeBlockTimestamp(w *bytes.Buffer, v interface{}) error {
	t, err := parseTime(v)
	if err != nil {
		return err
	}
	slot := (t.UnixMilli() - blockTimestampEpoch) / 500
	if slot < 0 || slot > math.MaxUint32 {
		return fmt.Errorf("block timestamp %v out of range", t)
	}
	putUint(w, uint64(slot), 4)
	return nil
}

func decodeBlockTimestamp(r *reader) (interface{}, error) {
	x, err := r.uint(4)
	if err != nil {
		return nil, err
	}
	ms := int64(x)*500 + blockTimestampEpoch
	return time.UnixMilli(ms).UTC().Format(timePointFormat), nil
}

func checksumType(size int) builtin {
	return builtin{
		encode: func(w *bytes.Buffer, v interface{}) error {
			s, err := asString(v)
			if err != nil {
				return err
			}
			b, err := hex.DecodeString(s)
			if err != nil {
				return err
			}
			if len(b) != size {
				return fmt.Errorf("invalid length")
			}
			w.Write(b)
			return nil
		},
		decode: func(r *reader) (interface{}, error) {
			b, err := r.read(size)
			if err != nil {
				return nil, err
			}
			return hex.EncodeToString(b), nil
		},
	}
}

// keyTypeK1 is the key type tag of secp256k1 keys and signatures.
const keyTypeK1 = 0

func encodePublicKey(w *bytes.Buffer, v interface{}) error {
	s, err := asString(v)
	if err != nil {
		return err
	}
	pub, err := fio.NewPublicKey(s)
	if err != nil {
		return err
	}
	w.WriteByte(keyTypeK1)
	w.Write(pub[:])
	return nil
}

func readKeyType(r *reader) error {
	b, err := r.read(1)
	if err != nil {
		return err
	}
	if b[0] != keyTypeK1 {
		return fmt.Errorf("unsupported key type %v", b[0])
	}
	return nil
}

func decodePublicKey(r *reader) (interface{}, error) {
	if err := readKeyType(r); err != nil {
		return nil, err
	}
	var pub fio.PublicKey
	b, err := r.read(len(pub))
	if err != nil {
		return nil, err
	}
	copy(pub[:], b)
	return pub.String(), nil
}

func encodeSignature(w *bytes.Buffer, v interface{}) error {
	s, err := asString(v)
	if err != nil {
		return err
	}
	sig, err := fio.NewSignature(s)
	if err != nil {
		return err
	}
	w.WriteByte(keyTypeK1)
	w.Write(sig[:])
	return nil
}

func decodeSignature(r *reader) (interface{}, error) {
	if err := readKeyType(r); err != nil {
		return nil, err
	}
	var sig fio.Signature
	b, err := r.read(len(sig))
	if err != nil {
		return nil, err
	}
	copy(sig[:], b)
	return sig.String(), nil
}

func symbolCode(code string) (uint64, error) {
	if len(code) == 0 || len(code) > 7 {
		return 0, fmt.Errorf("invalid symbol code %q", code)
	}
	var x uint64
	for i := 0; i < len(code); i++ {
		c := code[i]
		if c < 'A' || c > 'Z' {
			return 0, fmt.Errorf("invalid symbol code %q", code)
		}
		x |= uint64(c) << (8 * i)
	}
	return x, nil
}

func symbolCodeString(x uint64) string {
	var b strings.Builder
	for ; x&0xff != 0; x >>= 8 {
		b.WriteByte(byte(x))
	}
	return b.String()
}

func encodeSymbolCode(w *bytes.Buffer, v interface{}) error {
	s, err := asString(v)
	if err != nil {
		return err
	}
	x, err := symbolCode(s)
	if err != nil {
		return err
	}
	putUint(w, x, 8)
	return nil
}

func decodeSymbolCode(r *reader) (interface{}, error) {
	x, err := r.uint(8)
	if err != nil {
		return nil, err
	}
	return symbolCodeString(x), nil
}

// parseSymbol parses "precision,CODE".
func parseSymbol(s string) (uint64, error) {
	p, code, ok := strings.Cut(s, ",")
	if !ok {
		return 0, fmt.Errorf("invalid symbol %q", s)
	}
	precision, err := strconv.ParseUint(p, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid symbol precision %q", p)
	}
	x, err := symbolCode(code)
	if err != nil {
		return 0, err
	}
	return precision | x<<8, nil
}

func symbolString(x uint64) string {
	return fmt.Sprintf("%v,%v", uint8(x), symbolCodeString(x>>8))
}

func encodeSymbol(w *bytes.Buffer, v interface{}) error {
	s, err := asString(v)
	if err != nil {
		return err
	}
	x, err := parseSymbol(s)
	if err != nil {
		return err
	}
	putUint(w, x, 8)
	return nil
}

func decodeSymbol(r *reader) (interface{}, error) {
	x, err := r.uint(8)
	if err != nil {
		return nil, err
	}
	return symbolString(x), nil
}

// parseAsset parses "amount CODE", where the number of decimal places of
// amount is the symbol precision.
func parseAsset(s string) (int64, uint64, error) {
	amount, code, ok := strings.Cut(strings.TrimSpace(s), " ")
	if !ok {
		return 0, 0, fmt.Errorf("invalid asset %q", s)
	}
	whole, frac, _ := strings.Cut(amount, ".")
	if len(frac) > 18 {
		return 0, 0, fmt.Errorf("invalid asset precision %q", s)
	}
	x, err := strconv.ParseInt(whole+frac, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid asset amount %q", amount)
	}
	c, err := symbolCode(strings.TrimSpace(code))
	if err != nil {
		return 0, 0, err
	}
	return x, uint64(len(frac)) | c<<8, nil
}

func assetString(amount int64, symbol uint64) string {
	precision := int(uint8(symbol))
	neg := amount < 0
	abs := uint64(amount)
	if neg {
		abs = -abs
	}
	digits := strconv.FormatUint(abs, 10)
	if len(digits) <= precision {
		digits = strings.Repeat("0", precision-len(digits)+1) + digits
	}
	if precision > 0 {
		digits = digits[:len(digits)-precision] + "." +
			digits[len(digits)-precision:]
	}
	if neg {
		digits = "-" + digits
	}
	return digits + " " + symbolCodeString(symbol>>8)
}

func encodeAsset(w *bytes.Buffer, v interface{}) error {
	s, err := asString(v)
	if err != nil {
		return err
	}
	amount, symbol, err := parseAsset(s)
	if err != nil {
		return err
	}
	putUint(w, uint64(amount), 8)
	putUint(w, symbol, 8)
	return nil
}

func decodeAsset(r *reader) (interface{}, error) {
	amount, err := r.uint(8)
	if err != nil {
		return nil, err
	}
	symbol, err := r.uint(8)
	if err != nil {
		return nil, err
	}
	return assetString(int64(amount), symbol), nil
}
