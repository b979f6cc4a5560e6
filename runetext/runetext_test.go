// Copyright 2018 The BAREWire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runetext

import (
	"errors"
	"testing"

	"github.com/barewire/barewire/barewire"
)

func TestRoundTrip(t *testing.T) {
	cases := []string{"", "hi", "héllo wörld", "日本語", "🎉emoji🎉"}
	for _, s := range cases {
		enc := Encode(nil, s)
		got, err := Decode(enc)
		if err != nil {
			t.Fatalf("Decode(%q): %v", s, err)
		}
		if got != s {
			t.Fatalf("round trip: got %q want %q", got, s)
		}
	}
}

func TestDecodeInvalidUTF8(t *testing.T) {
	_, err := Decode([]byte{0x68, 0x69, 0xFF, 0xFE})
	if err == nil {
		t.Fatal("expected error for ill-formed UTF-8")
	}
	var be *barewire.Error
	if !errors.As(err, &be) || be.Kind != barewire.Decoding {
		t.Fatalf("expected Decoding error, got %v", err)
	}
}

func TestRuneCount(t *testing.T) {
	if n := RuneCount([]byte("日本語")); n != 3 {
		t.Fatalf("RuneCount: got %d want 3", n)
	}
}
