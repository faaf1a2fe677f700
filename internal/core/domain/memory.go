package domain

import (
	"fmt"
	"math"
)

type MemoryUnit int

const (
	MemoryUnitUnknown MemoryUnit = iota
	MemoryUnitBit
	MemoryUnitByte
	MemoryUnitKilobyte
	MemoryUnitMegabyte
	MemoryUnitGigabyte
	MemoryUnitTerabyte
)

var memoryUnitNames = map[MemoryUnit]string{
	MemoryUnitUnknown:  "UNKNOWN",
	MemoryUnitBit:      "BIT",
	MemoryUnitByte:     "BYTE",
	MemoryUnitKilobyte: "KILOBYTE",
	MemoryUnitMegabyte: "MEGABYTE",
	MemoryUnitGigabyte: "GIGABYTE",
	MemoryUnitTerabyte: "TERABYTE",
}

func (u MemoryUnit) String() string {
	if name, ok := memoryUnitNames[u]; ok {
		return name
	}
	return fmt.Sprintf("MemoryUnit(%d)", int(u))
}

type Memory struct {
	Value uint64
	Unit  MemoryUnit
}

// ToBits normalises the quantity to bits. Units use binary multiples
// (1 KILOBYTE = 1024 bytes). Unknown units normalise to zero and quantities
// too large for a uint64 saturate at math.MaxUint64.
func (m Memory) ToBits() uint64 {
	var shift uint
	switch m.Unit {
	case MemoryUnitBit:
		shift = 0
	case MemoryUnitByte:
		shift = 3
	case MemoryUnitKilobyte:
		shift = 13
	case MemoryUnitMegabyte:
		shift = 23
	case MemoryUnitGigabyte:
		shift = 33
	case MemoryUnitTerabyte:
		shift = 43
	default:
		return 0
	}
	if m.Value > math.MaxUint64>>shift {
		return math.MaxUint64
	}
	return m.Value << shift
}

func (m Memory) String() string {
	return fmt.Sprintf("%d %s", m.Value, m.Unit)
}
