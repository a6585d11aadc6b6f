// Package store holds the value model shared between the schema core and the
// entity store. It deliberately has no dependency on the schema package so
// that storage backends can consume it on its own.
package store

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Value is an attribute value as the store persists it. The schema core only
// ever produces String and Bytes values (the legal id column types); storage
// backends add further kinds on their side of the boundary.
type Value interface {
	// String renders the value the way it appears in store diagnostics.
	String() string

	isValue()
}

// String is a UTF-8 string value.
type String string

func (s String) String() string { return string(s) }
func (String) isValue()         {}

// Bytes is an arbitrary byte sequence, rendered as 0x-prefixed lowercase hex.
type Bytes []byte

func (b Bytes) String() string { return "0x" + hex.EncodeToString(b) }
func (Bytes) isValue()         {}

// BytesFromString decodes a hex string into a Bytes value. The conventional
// 0x prefix is optional and hex digits are matched case-insensitively; an odd
// number of digits or a non-hex character is an error naming the input.
func BytesFromString(s string) (Bytes, error) {
	trimmed := strings.TrimPrefix(s, "0x")
	b, err := hex.DecodeString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("value %q is not a valid hex string: %v", s, err)
	}
	return Bytes(b), nil
}
