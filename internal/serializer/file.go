// Package serializer dumps laptops to fixture files and loads them back.
package serializer

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rl1809/pcbook/internal/adapter/handler/pb"
)

// LaptopToJSON renders the laptop with wire field names and enum names.
func LaptopToJSON(laptop *pb.Laptop) ([]byte, error) {
	data, err := json.MarshalIndent(laptop, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal laptop to JSON: %w", err)
	}
	return data, nil
}

func JSONToLaptop(data []byte) (*pb.Laptop, error) {
	laptop := &pb.Laptop{}
	if err := json.Unmarshal(data, laptop); err != nil {
		return nil, fmt.Errorf("unmarshal laptop from JSON: %w", err)
	}
	return laptop, nil
}

func WriteJSONFile(laptop *pb.Laptop, filename string) error {
	data, err := LaptopToJSON(laptop)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("write JSON file %s: %w", filename, err)
	}
	return nil
}

func ReadJSONFile(filename string) (*pb.Laptop, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read JSON file %s: %w", filename, err)
	}
	return JSONToLaptop(data)
}

func WriteBinaryFile(laptop *pb.Laptop, filename string) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(laptop); err != nil {
		return fmt.Errorf("encode laptop to binary: %w", err)
	}
	if err := os.WriteFile(filename, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write binary file %s: %w", filename, err)
	}
	return nil
}

func ReadBinaryFile(filename string) (*pb.Laptop, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read binary file %s: %w", filename, err)
	}
	laptop := &pb.Laptop{}
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(laptop); err != nil {
		return nil, fmt.Errorf("decode laptop from binary: %w", err)
	}
	return laptop, nil
}
