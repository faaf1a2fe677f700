package pb

import "time"

type Memory_Unit int32

const (
	Memory_UNKNOWN  Memory_Unit = 0
	Memory_BIT      Memory_Unit = 1
	Memory_BYTE     Memory_Unit = 2
	Memory_KILOBYTE Memory_Unit = 3
	Memory_MEGABYTE Memory_Unit = 4
	Memory_GIGABYTE Memory_Unit = 5
	Memory_TERABYTE Memory_Unit = 6
)

var (
	Memory_Unit_name = map[int32]string{
		0: "UNKNOWN",
		1: "BIT",
		2: "BYTE",
		3: "KILOBYTE",
		4: "MEGABYTE",
		5: "GIGABYTE",
		6: "TERABYTE",
	}
	Memory_Unit_value = map[string]int32{
		"UNKNOWN":  0,
		"BIT":      1,
		"BYTE":     2,
		"KILOBYTE": 3,
		"MEGABYTE": 4,
		"GIGABYTE": 5,
		"TERABYTE": 6,
	}
)

func (x Memory_Unit) String() string { return Memory_Unit_name[int32(x)] }

func (x Memory_Unit) MarshalText() ([]byte, error) { return enumText(Memory_Unit_name, int32(x)) }

func (x *Memory_Unit) UnmarshalText(text []byte) error {
	v, err := parseEnum(Memory_Unit_value, text)
	*x = Memory_Unit(v)
	return err
}

type Storage_Driver int32

const (
	Storage_UNKNOWN Storage_Driver = 0
	Storage_HDD     Storage_Driver = 1
	Storage_SSD     Storage_Driver = 2
)

var (
	Storage_Driver_name  = map[int32]string{0: "UNKNOWN", 1: "HDD", 2: "SSD"}
	Storage_Driver_value = map[string]int32{"UNKNOWN": 0, "HDD": 1, "SSD": 2}
)

func (x Storage_Driver) String() string { return Storage_Driver_name[int32(x)] }

func (x Storage_Driver) MarshalText() ([]byte, error) { return enumText(Storage_Driver_name, int32(x)) }

func (x *Storage_Driver) UnmarshalText(text []byte) error {
	v, err := parseEnum(Storage_Driver_value, text)
	*x = Storage_Driver(v)
	return err
}

type Screen_Panel int32

const (
	Screen_UNKNOWN Screen_Panel = 0
	Screen_IPS     Screen_Panel = 1
	Screen_OLED    Screen_Panel = 2
)

var (
	Screen_Panel_name  = map[int32]string{0: "UNKNOWN", 1: "IPS", 2: "OLED"}
	Screen_Panel_value = map[string]int32{"UNKNOWN": 0, "IPS": 1, "OLED": 2}
)

func (x Screen_Panel) String() string { return Screen_Panel_name[int32(x)] }

func (x Screen_Panel) MarshalText() ([]byte, error) { return enumText(Screen_Panel_name, int32(x)) }

func (x *Screen_Panel) UnmarshalText(text []byte) error {
	v, err := parseEnum(Screen_Panel_value, text)
	*x = Screen_Panel(v)
	return err
}

type Keyboard_Layout int32

const (
	Keyboard_UNKNOWN Keyboard_Layout = 0
	Keyboard_QWERTY  Keyboard_Layout = 1
	Keyboard_QWERTZ  Keyboard_Layout = 2
	Keyboard_AZERTY  Keyboard_Layout = 3
)

var (
	Keyboard_Layout_name  = map[int32]string{0: "UNKNOWN", 1: "QWERTY", 2: "QWERTZ", 3: "AZERTY"}
	Keyboard_Layout_value = map[string]int32{"UNKNOWN": 0, "QWERTY": 1, "QWERTZ": 2, "AZERTY": 3}
)

func (x Keyboard_Layout) String() string { return Keyboard_Layout_name[int32(x)] }

func (x Keyboard_Layout) MarshalText() ([]byte, error) {
	return enumText(Keyboard_Layout_name, int32(x))
}

func (x *Keyboard_Layout) UnmarshalText(text []byte) error {
	v, err := parseEnum(Keyboard_Layout_value, text)
	*x = Keyboard_Layout(v)
	return err
}

type Memory struct {
	Value uint64      `json:"value"`
	Unit  Memory_Unit `json:"unit"`
}

func (x *Memory) GetValue() uint64 {
	if x != nil {
		return x.Value
	}
	return 0
}

func (x *Memory) GetUnit() Memory_Unit {
	if x != nil {
		return x.Unit
	}
	return Memory_UNKNOWN
}

type CPU struct {
	Brand         string  `json:"brand"`
	Name          string  `json:"name"`
	NumberCores   uint32  `json:"number_cores"`
	NumberThreads uint32  `json:"number_threads"`
	MinGhz        float64 `json:"min_ghz"`
	MaxGhz        float64 `json:"max_ghz"`
}

func (x *CPU) GetNumberCores() uint32 {
	if x != nil {
		return x.NumberCores
	}
	return 0
}

func (x *CPU) GetMinGhz() float64 {
	if x != nil {
		return x.MinGhz
	}
	return 0
}

type GPU struct {
	Brand  string  `json:"brand"`
	Name   string  `json:"name"`
	MinGhz float64 `json:"min_ghz"`
	MaxGhz float64 `json:"max_ghz"`
	Memory *Memory `json:"memory"`
}

type Storage struct {
	Driver Storage_Driver `json:"driver"`
	Memory *Memory        `json:"memory"`
}

type Screen_Resolution struct {
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
}

type Screen struct {
	SizeInch   float32            `json:"size_inch"`
	Resolution *Screen_Resolution `json:"resolution"`
	Panel      Screen_Panel       `json:"panel"`
	Multitouch bool               `json:"multitouch"`
}

type Keyboard struct {
	Layout  Keyboard_Layout `json:"layout"`
	Backlit bool            `json:"backlit"`
}

type Rating struct {
	Count   uint32  `json:"count"`
	Average float64 `json:"average"`
}

// Laptop carries exactly one of WeightKg and WeightLb.
type Laptop struct {
	Id          string     `json:"id"`
	Brand       string     `json:"brand"`
	Name        string     `json:"name"`
	Cpu         *CPU       `json:"cpu"`
	Ram         *Memory    `json:"ram"`
	Gpus        []*GPU     `json:"gpus"`
	Storages    []*Storage `json:"storages"`
	Screen      *Screen    `json:"screen"`
	Keyboard    *Keyboard  `json:"keyboard"`
	WeightKg    float64    `json:"weight_kg,omitempty"`
	WeightLb    float64    `json:"weight_lb,omitempty"`
	PriceUsd    float64    `json:"price_usd"`
	ReleaseYear uint32     `json:"release_year"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ImageIds    []string   `json:"image_ids"`
	Rating      *Rating    `json:"rating"`
}

func (x *Laptop) GetId() string {
	if x != nil {
		return x.Id
	}
	return ""
}

func (x *Laptop) GetCpu() *CPU {
	if x != nil {
		return x.Cpu
	}
	return nil
}

func (x *Laptop) GetRam() *Memory {
	if x != nil {
		return x.Ram
	}
	return nil
}

type Filter struct {
	MaxPriceUsd float64 `json:"max_price_usd"`
	MinCpuCores uint32  `json:"min_cpu_cores"`
	MinCpuGhz   float64 `json:"min_cpu_ghz"`
	MinRam      *Memory `json:"min_ram"`
}

type CreateLaptopRequest struct {
	Laptop *Laptop `json:"laptop"`
}

func (x *CreateLaptopRequest) GetLaptop() *Laptop {
	if x != nil {
		return x.Laptop
	}
	return nil
}

type CreateLaptopResponse struct {
	Id string `json:"id"`
}

func (x *CreateLaptopResponse) GetId() string {
	if x != nil {
		return x.Id
	}
	return ""
}

type SearchLaptopRequest struct {
	Filter *Filter `json:"filter"`
}

func (x *SearchLaptopRequest) GetFilter() *Filter {
	if x != nil {
		return x.Filter
	}
	return nil
}

type SearchLaptopResponse struct {
	Laptop *Laptop `json:"laptop"`
}

func (x *SearchLaptopResponse) GetLaptop() *Laptop {
	if x != nil {
		return x.Laptop
	}
	return nil
}

type ImageInfo struct {
	LaptopId  string `json:"laptop_id"`
	ImageType string `json:"image_type"`
}

// UploadImageRequest carries either Info (first message) or ChunkData.
type UploadImageRequest struct {
	Info      *ImageInfo `json:"info,omitempty"`
	ChunkData []byte     `json:"chunk_data,omitempty"`
}

func (x *UploadImageRequest) GetInfo() *ImageInfo {
	if x != nil {
		return x.Info
	}
	return nil
}

func (x *UploadImageRequest) GetChunkData() []byte {
	if x != nil {
		return x.ChunkData
	}
	return nil
}

type UploadImageResponse struct {
	Id   string `json:"id"`
	Size uint32 `json:"size"`
}

func (x *UploadImageResponse) GetId() string {
	if x != nil {
		return x.Id
	}
	return ""
}

func (x *UploadImageResponse) GetSize() uint32 {
	if x != nil {
		return x.Size
	}
	return 0
}

type RateLaptopRequest struct {
	LaptopId string  `json:"laptop_id"`
	Score    float64 `json:"score"`
}

func (x *RateLaptopRequest) GetLaptopId() string {
	if x != nil {
		return x.LaptopId
	}
	return ""
}

func (x *RateLaptopRequest) GetScore() float64 {
	if x != nil {
		return x.Score
	}
	return 0
}

type RateLaptopResponse struct {
	LaptopId     string  `json:"laptop_id"`
	RatedCount   uint32  `json:"rated_count"`
	AverageScore float64 `json:"average_score"`
}

func (x *RateLaptopResponse) GetLaptopId() string {
	if x != nil {
		return x.LaptopId
	}
	return ""
}

func (x *RateLaptopResponse) GetRatedCount() uint32 {
	if x != nil {
		return x.RatedCount
	}
	return 0
}

func (x *RateLaptopResponse) GetAverageScore() float64 {
	if x != nil {
		return x.AverageScore
	}
	return 0
}
