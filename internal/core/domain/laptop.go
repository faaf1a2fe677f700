package domain

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type Laptop struct {
	ID          string
	Brand       string
	Name        string
	CPU         CPU
	RAM         Memory
	GPUs        []GPU
	Storages    []Storage
	Screen      Screen
	Keyboard    Keyboard
	Weight      Weight
	PriceUSD    decimal.Decimal
	ReleaseYear uint32
	UpdatedAt   time.Time
	ImageIDs    []string
	Rating      Rating
}

type CPU struct {
	Brand         string
	Name          string
	NumberCores   uint32
	NumberThreads uint32
	MinGhz        float64
	MaxGhz        float64
}

type GPU struct {
	Brand  string
	Name   string
	MinGhz float64
	MaxGhz float64
	Memory Memory
}

type StorageDriver string

const (
	StorageDriverUnknown StorageDriver = "UNKNOWN"
	StorageDriverHDD     StorageDriver = "HDD"
	StorageDriverSSD     StorageDriver = "SSD"
)

type Storage struct {
	Driver StorageDriver
	Memory Memory
}

type ScreenPanel string

const (
	ScreenPanelUnknown ScreenPanel = "UNKNOWN"
	ScreenPanelIPS     ScreenPanel = "IPS"
	ScreenPanelOLED    ScreenPanel = "OLED"
)

type Resolution struct {
	Width  uint32
	Height uint32
}

type Screen struct {
	SizeInch   float32
	Resolution Resolution
	Panel      ScreenPanel
	Multitouch bool
}

type KeyboardLayout string

const (
	KeyboardLayoutUnknown KeyboardLayout = "UNKNOWN"
	KeyboardLayoutQWERTY  KeyboardLayout = "QWERTY"
	KeyboardLayoutQWERTZ  KeyboardLayout = "QWERTZ"
	KeyboardLayoutAZERTY  KeyboardLayout = "AZERTY"
)

type Keyboard struct {
	Layout  KeyboardLayout
	Backlit bool
}

type WeightUnit string

const (
	WeightUnitKg WeightUnit = "kg"
	WeightUnitLb WeightUnit = "lb"
)

type Weight struct {
	Value float64
	Unit  WeightUnit
}

// Clone returns a deep copy. Store implementations clone on every boundary
// crossing so callers never share slices with stored records.
func (l Laptop) Clone() Laptop {
	out := l
	out.GPUs = slices.Clone(l.GPUs)
	out.Storages = slices.Clone(l.Storages)
	out.ImageIDs = slices.Clone(l.ImageIDs)
	return out
}
