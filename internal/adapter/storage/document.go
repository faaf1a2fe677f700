package storage

import (
	"encoding/json"
	"fmt"

	"github.com/rl1809/pcbook/internal/core/domain"
)

// encodeDocument serialises the immutable part of a laptop. Rating and image
// IDs are kept next to the document by each backing so they can be updated
// without rewriting it.
func encodeDocument(laptop domain.Laptop) ([]byte, error) {
	doc := laptop.Clone()
	doc.Rating = domain.Rating{}
	doc.ImageIDs = nil

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode laptop %s: %w", laptop.ID, err)
	}
	return data, nil
}

func decodeDocument(data []byte) (domain.Laptop, error) {
	var laptop domain.Laptop
	if err := json.Unmarshal(data, &laptop); err != nil {
		return domain.Laptop{}, fmt.Errorf("decode laptop: %w", err)
	}
	return laptop, nil
}
