// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package epub

import (
	"errors"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrNotText means a resource is not valid UTF-8 or BOM-marked UTF-16.
var ErrNotText = errors.New("epub: resource is not UTF-8 or UTF-16 text")

// DecodeText converts resource bytes to a string. A UTF-8 or UTF-16 byte
// order mark selects the encoding and is removed; unmarked content must be
// valid UTF-8.
func DecodeText(data []byte) (string, error) {
	out, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(out) {
		return "", ErrNotText
	}
	return string(out), nil
}

// ReadText reads res and decodes it with DecodeText.
func (r *Reader) ReadText(res Resource) (string, error) {
	data, err := r.ReadResource(res)
	if err != nil {
		return "", err
	}
	return DecodeText(data)
}
