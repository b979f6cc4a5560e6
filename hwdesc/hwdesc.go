// Copyright 2018 The BAREWire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hwdesc holds the stable record shapes an external hardware
// register code generator consumes (spec §6.3). BAREWire does not
// implement that generator; it only promises these shapes won't shift
// under it.
package hwdesc

// AccessKind is a register or field's read/write permission.
type AccessKind int

const (
	ReadOnly AccessKind = iota
	WriteOnly
	ReadWrite
)

func (a AccessKind) String() string {
	switch a {
	case ReadOnly:
		return "ReadOnly"
	case WriteOnly:
		return "WriteOnly"
	case ReadWrite:
		return "ReadWrite"
	default:
		return "Unknown"
	}
}

// MemoryRegionKind classifies where a peripheral's layout lives.
type MemoryRegionKind int

const (
	Flash MemoryRegionKind = iota
	SRAM
	Peripheral
	SystemControl
	DMA
	CCM
)

func (m MemoryRegionKind) String() string {
	switch m {
	case Flash:
		return "Flash"
	case SRAM:
		return "SRAM"
	case Peripheral:
		return "Peripheral"
	case SystemControl:
		return "SystemControl"
	case DMA:
		return "DMA"
	case CCM:
		return "CCM"
	default:
		return "Unknown"
	}
}

// regionTraits is the fixed classifier table spec §6.3 calls for:
// volatility, cacheability and executability derived from a region
// kind alone.
type regionTraits struct {
	volatile    bool
	cacheable   bool
	executable  bool
}

var traits = map[MemoryRegionKind]regionTraits{
	Flash:         {volatile: false, cacheable: true, executable: true},
	SRAM:          {volatile: false, cacheable: true, executable: true},
	Peripheral:    {volatile: true, cacheable: false, executable: false},
	SystemControl: {volatile: true, cacheable: false, executable: false},
	DMA:           {volatile: true, cacheable: false, executable: false},
	CCM:           {volatile: false, cacheable: true, executable: false},
}

// Volatile reports whether reads of this region kind may observe
// side-effect-driven changes between accesses.
func (m MemoryRegionKind) Volatile() bool { return traits[m].volatile }

// Cacheable reports whether this region kind may be safely cached.
func (m MemoryRegionKind) Cacheable() bool { return traits[m].cacheable }

// Executable reports whether code may be fetched from this region kind.
func (m MemoryRegionKind) Executable() bool { return traits[m].executable }

// BitFieldDescriptor is one named sub-range of a register field.
type BitFieldDescriptor struct {
	Name     string
	Position int
	Width    int
	Access   AccessKind
}

// FieldDescriptor is one addressable field within a peripheral layout.
type FieldDescriptor struct {
	Name          string
	Offset        int
	Type          string
	Access        AccessKind
	BitFields     []BitFieldDescriptor
	Documentation string
}

// PeripheralLayout is the field layout shared by every instance of a
// peripheral.
type PeripheralLayout struct {
	Size      int
	Alignment int
	Fields    []FieldDescriptor
}

// Instance is one concrete base-address placement of a peripheral.
type Instance struct {
	InstanceName string
	BaseAddress  uint64
}

// PeripheralDescriptor names a peripheral, its instances, its field
// layout, and the memory region its instances live in.
type PeripheralDescriptor struct {
	Name         string
	Instances    []Instance
	Layout       PeripheralLayout
	MemoryRegion MemoryRegionKind
}
