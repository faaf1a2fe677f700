package domain

import "github.com/shopspring/decimal"

type Filter struct {
	MaxPriceUSD decimal.Decimal
	MinCPUCores uint32
	MinCPUGhz   float64
	MinRAM      Memory
}

// Matches reports whether the laptop satisfies every clause of the filter.
// A zero clause always passes.
func (f Filter) Matches(laptop Laptop) bool {
	if f.MaxPriceUSD.IsPositive() && laptop.PriceUSD.GreaterThan(f.MaxPriceUSD) {
		return false
	}
	if laptop.CPU.NumberCores < f.MinCPUCores {
		return false
	}
	if laptop.CPU.MinGhz < f.MinCPUGhz {
		return false
	}
	if laptop.RAM.ToBits() < f.MinRAM.ToBits() {
		return false
	}
	return true
}
