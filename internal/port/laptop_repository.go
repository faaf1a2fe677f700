package port

import (
	"context"

	"github.com/rl1809/pcbook/internal/core/domain"
)

type LaptopRepository interface {
	// Save stores a copy of the laptop, returns domain.ErrAlreadyExists if the ID is taken
	Save(ctx context.Context, laptop domain.Laptop) error

	// Find returns a copy of the laptop or domain.ErrNotFound
	Find(ctx context.Context, id string) (domain.Laptop, error)

	// Search calls found for every laptop matching the filter until found or ctx returns an error
	Search(ctx context.Context, filter domain.Filter, found func(domain.Laptop) error) error

	// Rate atomically folds a score into the laptop's rating and returns the new aggregate
	Rate(ctx context.Context, id string, score float64) (domain.Rating, error)

	// AttachImage appends an image ID to the laptop
	AttachImage(ctx context.Context, id string, imageID string) error
}
