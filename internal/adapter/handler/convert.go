package handler

import (
	"github.com/shopspring/decimal"

	"github.com/rl1809/pcbook/internal/adapter/handler/pb"
	"github.com/rl1809/pcbook/internal/core/domain"
)

func laptopFromPB(in *pb.Laptop) domain.Laptop {
	if in == nil {
		return domain.Laptop{}
	}
	out := domain.Laptop{
		ID:          in.Id,
		Brand:       in.Brand,
		Name:        in.Name,
		RAM:         memoryFromPB(in.Ram),
		PriceUSD:    decimal.NewFromFloat(in.PriceUsd),
		ReleaseYear: in.ReleaseYear,
		ImageIDs:    append([]string(nil), in.ImageIds...),
	}
	if in.Cpu != nil {
		out.CPU = domain.CPU{
			Brand:         in.Cpu.Brand,
			Name:          in.Cpu.Name,
			NumberCores:   in.Cpu.NumberCores,
			NumberThreads: in.Cpu.NumberThreads,
			MinGhz:        in.Cpu.MinGhz,
			MaxGhz:        in.Cpu.MaxGhz,
		}
	}
	for _, gpu := range in.Gpus {
		if gpu == nil {
			continue
		}
		out.GPUs = append(out.GPUs, domain.GPU{
			Brand:  gpu.Brand,
			Name:   gpu.Name,
			MinGhz: gpu.MinGhz,
			MaxGhz: gpu.MaxGhz,
			Memory: memoryFromPB(gpu.Memory),
		})
	}
	for _, storage := range in.Storages {
		if storage == nil {
			continue
		}
		out.Storages = append(out.Storages, domain.Storage{
			Driver: domain.StorageDriver(storage.Driver.String()),
			Memory: memoryFromPB(storage.Memory),
		})
	}
	if in.Screen != nil {
		out.Screen = domain.Screen{
			SizeInch:   in.Screen.SizeInch,
			Panel:      domain.ScreenPanel(in.Screen.Panel.String()),
			Multitouch: in.Screen.Multitouch,
		}
		if in.Screen.Resolution != nil {
			out.Screen.Resolution = domain.Resolution{
				Width:  in.Screen.Resolution.Width,
				Height: in.Screen.Resolution.Height,
			}
		}
	}
	if in.Keyboard != nil {
		out.Keyboard = domain.Keyboard{
			Layout:  domain.KeyboardLayout(in.Keyboard.Layout.String()),
			Backlit: in.Keyboard.Backlit,
		}
	}
	switch {
	case in.WeightKg != 0:
		out.Weight = domain.Weight{Value: in.WeightKg, Unit: domain.WeightUnitKg}
	case in.WeightLb != 0:
		out.Weight = domain.Weight{Value: in.WeightLb, Unit: domain.WeightUnitLb}
	}
	if in.Rating != nil {
		out.Rating = domain.Rating{Count: in.Rating.Count, Average: in.Rating.Average}
	}
	return out
}

// LaptopToPB converts a stored laptop to its wire form.
func LaptopToPB(in domain.Laptop) *pb.Laptop {
	out := &pb.Laptop{
		Id:    in.ID,
		Brand: in.Brand,
		Name:  in.Name,
		Cpu: &pb.CPU{
			Brand:         in.CPU.Brand,
			Name:          in.CPU.Name,
			NumberCores:   in.CPU.NumberCores,
			NumberThreads: in.CPU.NumberThreads,
			MinGhz:        in.CPU.MinGhz,
			MaxGhz:        in.CPU.MaxGhz,
		},
		Ram: memoryToPB(in.RAM),
		Screen: &pb.Screen{
			SizeInch: in.Screen.SizeInch,
			Resolution: &pb.Screen_Resolution{
				Width:  in.Screen.Resolution.Width,
				Height: in.Screen.Resolution.Height,
			},
			Panel:      pb.Screen_Panel(pb.Screen_Panel_value[string(in.Screen.Panel)]),
			Multitouch: in.Screen.Multitouch,
		},
		Keyboard: &pb.Keyboard{
			Layout:  pb.Keyboard_Layout(pb.Keyboard_Layout_value[string(in.Keyboard.Layout)]),
			Backlit: in.Keyboard.Backlit,
		},
		PriceUsd:    in.PriceUSD.InexactFloat64(),
		ReleaseYear: in.ReleaseYear,
		UpdatedAt:   in.UpdatedAt,
		ImageIds:    append([]string(nil), in.ImageIDs...),
		Rating:      &pb.Rating{Count: in.Rating.Count, Average: in.Rating.Average},
	}
	for _, gpu := range in.GPUs {
		out.Gpus = append(out.Gpus, &pb.GPU{
			Brand:  gpu.Brand,
			Name:   gpu.Name,
			MinGhz: gpu.MinGhz,
			MaxGhz: gpu.MaxGhz,
			Memory: memoryToPB(gpu.Memory),
		})
	}
	for _, storage := range in.Storages {
		out.Storages = append(out.Storages, &pb.Storage{
			Driver: pb.Storage_Driver(pb.Storage_Driver_value[string(storage.Driver)]),
			Memory: memoryToPB(storage.Memory),
		})
	}
	switch in.Weight.Unit {
	case domain.WeightUnitKg:
		out.WeightKg = in.Weight.Value
	case domain.WeightUnitLb:
		out.WeightLb = in.Weight.Value
	}
	return out
}

// Wire and domain memory units share ordinals.
func memoryFromPB(in *pb.Memory) domain.Memory {
	return domain.Memory{Value: in.GetValue(), Unit: domain.MemoryUnit(in.GetUnit())}
}

func memoryToPB(in domain.Memory) *pb.Memory {
	return &pb.Memory{Value: in.Value, Unit: pb.Memory_Unit(in.Unit)}
}

func filterFromPB(in *pb.Filter) domain.Filter {
	if in == nil {
		return domain.Filter{}
	}
	return domain.Filter{
		MaxPriceUSD: decimal.NewFromFloat(in.MaxPriceUsd),
		MinCPUCores: in.MinCpuCores,
		MinCPUGhz:   in.MinCpuGhz,
		MinRAM:      memoryFromPB(in.MinRam),
	}
}
