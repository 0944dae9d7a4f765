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

// Package validate checks the syntax of FIO names, keys and request
// parameters before any network or cryptographic work is attempted.
package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/asaskevich/govalidator"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Factom-Asset-Tokens/fiod/fio"
)

// namePart matches one part of a FIO address, or a domain: alphanumerics
// and hyphens, starting and ending with an alphanumeric.
var namePart = regexp.MustCompile(`^[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?$`)

func isNamePart(s string) bool {
	return namePart.MatchString(s) && !strings.Contains(s, "--")
}

// IsFIOAddress reports whether s is a FIO address of the form name:domain.
// The legacy name@domain form is also accepted.
func IsFIOAddress(s string) bool {
	if len(s) < 3 || len(s) > 64 {
		return false
	}
	i := strings.IndexAny(s, ":@")
	if i < 0 {
		return false
	}
	return isNamePart(s[:i]) && isNamePart(s[i+1:])
}

// IsFIODomain reports whether s is a FIO domain.
func IsFIODomain(s string) bool {
	return len(s) >= 1 && len(s) <= 62 && isNamePart(s)
}

// IsFIOPublicKey reports whether s is a valid FIO public key, including its
// checksum.
func IsFIOPublicKey(s string) bool {
	_, err := fio.NewPublicKey(s)
	return err == nil
}

// IsTokenCode reports whether s is a token code of 1 to 10 alphanumerics.
func IsTokenCode(s string) bool {
	return len(s) >= 1 && len(s) <= 10 && govalidator.IsAlphanumeric(s)
}

// IsNativeChainAddress reports whether s could be an address on another
// chain: 1 to 128 characters without whitespace.
func IsNativeChainAddress(s string) bool {
	return len(s) >= 1 && utf8.RuneCountInString(s) <= 128 &&
		!govalidator.HasWhitespace(s)
}

// Rules for use with ozzo-validation. Like all string rules they accept the
// empty string, so combine them with validation.Required where a value is
// mandatory.
var (
	FIOAddress = validation.NewStringRuleWithError(IsFIOAddress,
		validation.NewError("validation_fio_address",
			"must be a valid FIO address"))
	FIODomain = validation.NewStringRuleWithError(IsFIODomain,
		validation.NewError("validation_fio_domain",
			"must be a valid FIO domain"))
	FIOPublicKey = validation.NewStringRuleWithError(IsFIOPublicKey,
		validation.NewError("validation_fio_public_key",
			"must be a valid FIO public key"))
	TokenCode = validation.NewStringRuleWithError(IsTokenCode,
		validation.NewError("validation_token_code",
			"must be 1 to 10 alphanumeric characters"))
	NativeChainAddress = validation.NewStringRuleWithError(IsNativeChainAddress,
		validation.NewError("validation_native_chain_address",
			"must be 1 to 128 characters without whitespace"))
)
