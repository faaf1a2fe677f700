// Package sample builds randomized laptops and scores for tests, the client
// CLI and the stress harness.
package sample

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rl1809/pcbook/internal/core/domain"
)

var (
	cpuNames = map[string][]string{
		"Intel": {"Xeon E-2286M", "Core i9-9980HK", "Core i7-9750H", "Core i5-9400F", "Core i3-1005G1"},
		"AMD":   {"Ryzen 7 PRO 2700U", "Ryzen 5 PRO 3500U", "Ryzen 3 PRO 3200GE"},
	}
	gpuNames = map[string][]string{
		"NVIDIA": {"RTX 2060", "RTX 2070", "GTX 1660-Ti", "GTX 1070"},
		"AMD":    {"RX 590", "RX 580", "RX 5700-XT", "RX Vega-56"},
	}
	laptopNames = map[string][]string{
		"Apple":  {"Macbook Air", "Macbook Pro"},
		"Dell":   {"Latitude", "Vostro", "XPS", "Alienware"},
		"Lenovo": {"Thinkpad X1", "Thinkpad P1", "Thinkpad P53"},
	}
)

// Generator is not safe for concurrent use.
type Generator struct {
	rnd *rand.Rand
}

func NewGenerator(seed uint64) *Generator {
	return &Generator{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (g *Generator) NewLaptop() domain.Laptop {
	brand := g.pickKey(laptopNames)
	ramGB := g.intBetween(4, 64)

	return domain.Laptop{
		ID:          uuid.NewString(),
		Brand:       brand,
		Name:        g.pick(laptopNames[brand]),
		CPU:         g.NewCPU(),
		RAM:         domain.Memory{Value: uint64(ramGB), Unit: domain.MemoryUnitGigabyte},
		GPUs:        []domain.GPU{g.NewGPU()},
		Storages:    []domain.Storage{g.NewSSD(), g.NewHDD()},
		Screen:      g.NewScreen(),
		Keyboard:    g.NewKeyboard(),
		Weight:      domain.Weight{Value: g.floatBetween(1.0, 3.0), Unit: domain.WeightUnitKg},
		PriceUSD:    decimal.NewFromFloat(g.floatBetween(1500, 3500)).Round(2),
		ReleaseYear: uint32(g.intBetween(2015, 2024)),
		UpdatedAt:   time.Now().UTC(),
	}
}

func (g *Generator) NewCPU() domain.CPU {
	brand := g.pickKey(cpuNames)
	cores := g.intBetween(2, 8)
	minGhz := g.floatBetween(2.0, 3.5)

	return domain.CPU{
		Brand:         brand,
		Name:          g.pick(cpuNames[brand]),
		NumberCores:   uint32(cores),
		NumberThreads: uint32(g.intBetween(cores, 12)),
		MinGhz:        minGhz,
		MaxGhz:        g.floatBetween(minGhz, 5.0),
	}
}

func (g *Generator) NewGPU() domain.GPU {
	brand := g.pickKey(gpuNames)
	minGhz := g.floatBetween(1.0, 1.5)

	return domain.GPU{
		Brand:  brand,
		Name:   g.pick(gpuNames[brand]),
		MinGhz: minGhz,
		MaxGhz: g.floatBetween(minGhz, 2.0),
		Memory: domain.Memory{Value: uint64(g.intBetween(2, 6)), Unit: domain.MemoryUnitGigabyte},
	}
}

func (g *Generator) NewSSD() domain.Storage {
	return domain.Storage{
		Driver: domain.StorageDriverSSD,
		Memory: domain.Memory{Value: uint64(g.intBetween(128, 1024)), Unit: domain.MemoryUnitGigabyte},
	}
}

func (g *Generator) NewHDD() domain.Storage {
	return domain.Storage{
		Driver: domain.StorageDriverHDD,
		Memory: domain.Memory{Value: uint64(g.intBetween(1, 6)), Unit: domain.MemoryUnitTerabyte},
	}
}

func (g *Generator) NewScreen() domain.Screen {
	height := g.intBetween(1080, 4320)
	width := height * 16 / 9

	panel := domain.ScreenPanelIPS
	if g.rnd.IntN(2) == 1 {
		panel = domain.ScreenPanelOLED
	}

	return domain.Screen{
		SizeInch:   float32(g.floatBetween(13, 17)),
		Resolution: domain.Resolution{Width: uint32(width), Height: uint32(height)},
		Panel:      panel,
		Multitouch: g.rnd.IntN(2) == 1,
	}
}

func (g *Generator) NewKeyboard() domain.Keyboard {
	layouts := []domain.KeyboardLayout{
		domain.KeyboardLayoutQWERTY,
		domain.KeyboardLayoutQWERTZ,
		domain.KeyboardLayoutAZERTY,
	}
	return domain.Keyboard{
		Layout:  layouts[g.rnd.IntN(len(layouts))],
		Backlit: g.rnd.IntN(2) == 1,
	}
}

// NewScore returns an integral score between 1 and 10.
func (g *Generator) NewScore() float64 {
	return float64(g.intBetween(1, 10))
}

func (g *Generator) intBetween(lo, hi int) int {
	return lo + g.rnd.IntN(hi-lo+1)
}

func (g *Generator) floatBetween(lo, hi float64) float64 {
	return lo + g.rnd.Float64()*(hi-lo)
}

func (g *Generator) pick(values []string) string {
	return values[g.rnd.IntN(len(values))]
}

// pickKey picks a map key deterministically for a given seed.
func (g *Generator) pickKey(m map[string][]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys[g.rnd.IntN(len(keys))]
}
