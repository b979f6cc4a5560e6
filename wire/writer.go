// Copyright 2018 The BAREWire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wire is the streaming BARE encoder and decoder (spec §4.G):
// every primitive and aggregate wire form, built on the binary, varint
// and runetext leaf packages. Two parallel APIs exist — a Writer that
// owns a growable buffer and tracks its own position, and a Reader
// that borrows a byte slice and advances an explicit cursor. Both
// return (or advance) the new position so calls can be chained, the
// way the teacher's own chunked Writer tracks chunksWritten and a
// reusable chunkBuffer across Insert/Flush calls.
package wire

import (
	"github.com/barewire/barewire/barewire"
	"github.com/barewire/barewire/binary"
	"github.com/barewire/barewire/varint"
)

// Writer appends BARE-encoded bytes into an owned, growable buffer.
// The zero Writer is ready to use. If Limit is non-zero, writes that
// would grow the buffer past it fail with an Encoding error instead of
// growing further — the "buffer overflow" failure spec §4.G calls out
// for a caller-bounded destination.
type Writer struct {
	buf   []byte
	pos   int
	Limit int
}

// NewWriter returns a Writer backed by an internal buffer of the given
// initial capacity. limit of 0 means unbounded.
func NewWriter(capacity, limit int) *Writer {
	return &Writer{buf: make([]byte, 0, capacity), Limit: limit}
}

// Bytes returns the bytes written so far. The caller owns the
// returned slice; the Writer never retains a reference to it once
// returned.
func (w *Writer) Bytes() []byte {
	out := make([]byte, len(w.buf))
	copy(out, w.buf)
	return out
}

// Pos returns the writer's current position, equal to len(Bytes()).
func (w *Writer) Pos() int { return w.pos }

func (w *Writer) grow(n int) ([]byte, error) {
	if w.Limit > 0 && w.pos+n > w.Limit {
		return nil, barewire.Errorf(barewire.Encoding, "buffer overflow: writing %d bytes at position %d exceeds limit %d", n, w.pos, w.Limit)
	}
	w.buf = append(w.buf, make([]byte, n)...)
	dst := w.buf[w.pos : w.pos+n]
	w.pos += n
	return dst, nil
}

// WriteU8 writes a single raw byte.
func (w *Writer) WriteU8(v uint8) error {
	dst, err := w.grow(1)
	if err != nil {
		return err
	}
	dst[0] = v
	return nil
}

// WriteI8 writes a single raw byte.
func (w *Writer) WriteI8(v int8) error { return w.WriteU8(uint8(v)) }

// WriteBool writes v as 0x00 or 0x01.
func (w *Writer) WriteBool(v bool) error {
	if v {
		return w.WriteU8(1)
	}
	return w.WriteU8(0)
}

// WriteU16 writes v little-endian.
func (w *Writer) WriteU16(v uint16) error {
	return w.writeFixed(2, func(dst []byte) { binary.PutU16(dst, v) })
}

// WriteI16 writes v little-endian.
func (w *Writer) WriteI16(v int16) error { return w.WriteU16(uint16(v)) }

// WriteU32 writes v little-endian.
func (w *Writer) WriteU32(v uint32) error {
	return w.writeFixed(4, func(dst []byte) { binary.PutU32(dst, v) })
}

// WriteI32 writes v little-endian.
func (w *Writer) WriteI32(v int32) error { return w.WriteU32(uint32(v)) }

// WriteU64 writes v little-endian.
func (w *Writer) WriteU64(v uint64) error {
	return w.writeFixed(8, func(dst []byte) { binary.PutU64(dst, v) })
}

// WriteI64 writes v little-endian.
func (w *Writer) WriteI64(v int64) error { return w.WriteU64(uint64(v)) }

// WriteF32 writes the little-endian bit pattern of v.
func (w *Writer) WriteF32(v float32) error {
	return w.writeFixed(4, func(dst []byte) { binary.PutF32(dst, v) })
}

// WriteF64 writes the little-endian bit pattern of v.
func (w *Writer) WriteF64(v float64) error {
	return w.writeFixed(8, func(dst []byte) { binary.PutF64(dst, v) })
}

func (w *Writer) writeFixed(n int, put func(dst []byte)) error {
	dst, err := w.grow(n)
	if err != nil {
		return err
	}
	put(dst)
	return nil
}

// WriteUvarint writes v as ULEB128.
func (w *Writer) WriteUvarint(v uint64) error {
	enc := varint.PutUvarint(nil, v)
	dst, err := w.grow(len(enc))
	if err != nil {
		return err
	}
	copy(dst, enc)
	return nil
}

// WriteVarint writes v as zigzag ULEB128.
func (w *Writer) WriteVarint(v int64) error {
	enc := varint.PutVarint(nil, v)
	dst, err := w.grow(len(enc))
	if err != nil {
		return err
	}
	copy(dst, enc)
	return nil
}

// WriteString writes the varint byte length of s followed by its UTF-8
// bytes.
func (w *Writer) WriteString(s string) error {
	if err := w.WriteUvarint(uint64(len(s))); err != nil {
		return err
	}
	dst, err := w.grow(len(s))
	if err != nil {
		return err
	}
	copy(dst, s)
	return nil
}

// WriteData writes the varint byte length of b followed by b itself.
func (w *Writer) WriteData(b []byte) error {
	if err := w.WriteUvarint(uint64(len(b))); err != nil {
		return err
	}
	dst, err := w.grow(len(b))
	if err != nil {
		return err
	}
	copy(dst, b)
	return nil
}

// WriteFixedData writes exactly len(b) bytes with no length prefix. The
// caller is responsible for b having the schema-declared length.
func (w *Writer) WriteFixedData(b []byte) error {
	dst, err := w.grow(len(b))
	if err != nil {
		return err
	}
	copy(dst, b)
	return nil
}

// WriteOptionalTag writes the 0x00/0x01 presence tag. Callers write the
// payload themselves when present=true, immediately after.
func (w *Writer) WriteOptionalTag(present bool) error { return w.WriteBool(present) }

// WriteCount writes a list/map element count as a varint.
func (w *Writer) WriteCount(n int) error { return w.WriteUvarint(uint64(n)) }

// WriteUnionTag writes a union case's 32-bit tag as a varint.
func (w *Writer) WriteUnionTag(tag uint32) error { return w.WriteUvarint(uint64(tag)) }
