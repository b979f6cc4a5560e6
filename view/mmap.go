// Copyright 2018 The BAREWire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package view

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/barewire/barewire/platform"
	"github.com/barewire/barewire/schema"
)

// FileView is a View backed by a memory-mapped file rather than an
// in-process byte slice, letting a hardware-register descriptor or an
// on-disk record be addressed in place without a read/write copy.
type FileView struct {
	*View
	f  *os.File
	mm mmap.MMap
}

// OpenFile memory-maps name and builds a View over it for root.
// writable selects RDWR vs RDONLY mapping; when it is false, the
// returned FileView also rejects Set at the API boundary (View.Writable
// is false), rather than leaving the read-only mapping to fault the
// process the first time a write touches the page.
func OpenFile(ctx platform.Context, s *schema.Schema, root, name string, writable bool) (*FileView, error) {
	flag := os.O_RDONLY
	prot := mmap.RDONLY
	if writable {
		flag = os.O_RDWR
		prot = mmap.RDWR
	}

	f, err := os.OpenFile(name, flag, 0)
	if err != nil {
		return nil, err
	}

	mm, err := mmap.Map(f, prot, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	v, err := New(ctx, s, root, mm)
	if err != nil {
		mm.Unmap()
		f.Close()
		return nil, err
	}
	v.writable = writable

	return &FileView{View: v, f: f, mm: mm}, nil
}

// Close unmaps the file and closes its descriptor.
func (fv *FileView) Close() error {
	unmapErr := fv.mm.Unmap()
	closeErr := fv.f.Close()
	if unmapErr != nil {
		return unmapErr
	}
	return closeErr
}
