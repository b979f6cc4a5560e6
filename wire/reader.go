// Copyright 2018 The BAREWire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	"github.com/barewire/barewire/barewire"
	"github.com/barewire/barewire/binary"
	"github.com/barewire/barewire/runetext"
	"github.com/barewire/barewire/varint"
)

// Reader decodes BARE-encoded bytes from a borrowed slice, advancing an
// explicit cursor. It never copies or retains the slice beyond what a
// Data/FixedData/String read returns to the caller.
type Reader struct {
	b   []byte
	pos int
}

// NewReader returns a Reader over b. b is not copied; the caller must
// not mutate it while the Reader is in use.
func NewReader(b []byte) *Reader { return &Reader{b: b} }

// Pos returns the reader's current cursor position.
func (r *Reader) Pos() int { return r.pos }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.b) - r.pos }

func (r *Reader) take(n int) ([]byte, error) {
	if r.pos+n > len(r.b) {
		return nil, barewire.Errorf(barewire.Decoding, "truncated input: need %d bytes at offset %d, %d available", n, r.pos, len(r.b)-r.pos)
	}
	out := r.b[r.pos : r.pos+n]
	r.pos += n
	return out, nil
}

// maxLength bounds any varint-encoded length prefix (String/Data count,
// list/map element count) before it is converted to an int. Without
// this check a crafted prefix near 1<<63 wraps to a negative int on
// conversion and panics a few lines later in take() or in a make()
// call sized by the count, instead of surfacing as a Decoding error.
const maxLength = 0x7FFFFFFF

func checkLength(n uint64) (int, error) {
	if n > maxLength {
		return 0, barewire.Errorf(barewire.Decoding, "length prefix %d exceeds maximum of %d", n, maxLength)
	}
	return int(n), nil
}

// ReadU8 reads a single raw byte.
func (r *Reader) ReadU8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadI8 reads a single raw byte.
func (r *Reader) ReadI8() (int8, error) {
	v, err := r.ReadU8()
	return int8(v), err
}

// ReadBool reads a 0x00/0x01 byte. Any other value is a Decoding
// error: BARE bools have exactly two legal encodings.
func (r *Reader) ReadBool() (bool, error) {
	v, err := r.ReadU8()
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, barewire.Errorf(barewire.Decoding, "bool: byte 0x%02x is neither 0x00 nor 0x01", v)
	}
}

// ReadU16 reads a little-endian uint16.
func (r *Reader) ReadU16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.U16(b), nil
}

// ReadI16 reads a little-endian int16.
func (r *Reader) ReadI16() (int16, error) {
	v, err := r.ReadU16()
	return int16(v), err
}

// ReadU32 reads a little-endian uint32.
func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.U32(b), nil
}

// ReadI32 reads a little-endian int32.
func (r *Reader) ReadI32() (int32, error) {
	v, err := r.ReadU32()
	return int32(v), err
}

// ReadU64 reads a little-endian uint64.
func (r *Reader) ReadU64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.U64(b), nil
}

// ReadI64 reads a little-endian int64.
func (r *Reader) ReadI64() (int64, error) {
	v, err := r.ReadU64()
	return int64(v), err
}

// ReadF32 reads a little-endian float32 bit pattern.
func (r *Reader) ReadF32() (float32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.F32(b), nil
}

// ReadF64 reads a little-endian float64 bit pattern.
func (r *Reader) ReadF64() (float64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.F64(b), nil
}

// ReadUvarint reads a ULEB128 value.
func (r *Reader) ReadUvarint() (uint64, error) {
	v, n, err := varint.Uvarint(r.b[r.pos:])
	if err != nil {
		return 0, err
	}
	r.pos += n
	return v, nil
}

// ReadVarint reads a zigzag ULEB128 value.
func (r *Reader) ReadVarint() (int64, error) {
	v, n, err := varint.Varint(r.b[r.pos:])
	if err != nil {
		return 0, err
	}
	r.pos += n
	return v, nil
}

// ReadString reads a varint byte length followed by that many UTF-8
// bytes, validating them.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadUvarint()
	if err != nil {
		return "", err
	}
	ln, err := checkLength(n)
	if err != nil {
		return "", err
	}
	b, err := r.take(ln)
	if err != nil {
		return "", err
	}
	return runetext.Decode(b)
}

// ReadData reads a varint byte length followed by that many raw bytes.
// The returned slice aliases the Reader's backing array; callers that
// retain it past the Reader's lifetime should copy it.
func (r *Reader) ReadData() ([]byte, error) {
	n, err := r.ReadUvarint()
	if err != nil {
		return nil, err
	}
	ln, err := checkLength(n)
	if err != nil {
		return nil, err
	}
	return r.take(ln)
}

// ReadFixedData reads exactly n raw bytes with no length prefix.
func (r *Reader) ReadFixedData(n int) ([]byte, error) {
	return r.take(n)
}

// ReadOptionalTag reads the 0x00/0x01 presence tag.
func (r *Reader) ReadOptionalTag() (bool, error) { return r.ReadBool() }

// ReadCount reads a list/map element count.
func (r *Reader) ReadCount() (int, error) {
	n, err := r.ReadUvarint()
	if err != nil {
		return 0, err
	}
	return checkLength(n)
}

// ReadUnionTag reads a union case's 32-bit tag.
func (r *Reader) ReadUnionTag() (uint32, error) {
	n, err := r.ReadUvarint()
	if err != nil {
		return 0, err
	}
	if n > 0xFFFFFFFF {
		return 0, barewire.Errorf(barewire.Decoding, "union tag %d exceeds 32 bits", n)
	}
	return uint32(n), nil
}
