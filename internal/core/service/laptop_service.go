package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rl1809/pcbook/internal/core/domain"
	"github.com/rl1809/pcbook/internal/port"
)

const DefaultMaxImageSize = 1 << 20

type LaptopService struct {
	laptops      port.LaptopRepository
	images       port.ImageRepository
	maxImageSize int
}

func NewLaptopService(laptops port.LaptopRepository, images port.ImageRepository, maxImageSize int) *LaptopService {
	if maxImageSize <= 0 {
		maxImageSize = DefaultMaxImageSize
	}
	return &LaptopService{
		laptops:      laptops,
		images:       images,
		maxImageSize: maxImageSize,
	}
}

// CreateLaptop stores the laptop and returns its ID. An empty ID is replaced
// by a random UUID; a non-empty one must parse as a UUID. Rating and image
// IDs start empty whatever the caller sent.
func (s *LaptopService) CreateLaptop(ctx context.Context, laptop domain.Laptop) (string, error) {
	id, err := resolveID(laptop.ID)
	if err != nil {
		return "", err
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	laptop.ID = id
	laptop.Rating = domain.Rating{}
	laptop.ImageIDs = nil
	laptop.UpdatedAt = time.Now().UTC()
	if err := s.laptops.Save(ctx, laptop); err != nil {
		return "", fmt.Errorf("save laptop: %w", err)
	}
	return id, nil
}

func resolveID(id string) (string, error) {
	if id == "" {
		generated, err := uuid.NewRandom()
		if err != nil {
			return "", fmt.Errorf("generate laptop id: %w", err)
		}
		return generated.String(), nil
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", domain.ErrInvalidID, id, err)
	}
	return parsed.String(), nil
}

func (s *LaptopService) FindLaptop(ctx context.Context, id string) (domain.Laptop, error) {
	return s.laptops.Find(ctx, id)
}

// SearchLaptop streams matching laptops to found as they are discovered and
// stops at the first cancellation.
func (s *LaptopService) SearchLaptop(ctx context.Context, filter domain.Filter, found func(domain.Laptop) error) error {
	return s.laptops.Search(ctx, filter, func(laptop domain.Laptop) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return found(laptop)
	})
}

func (s *LaptopService) RateLaptop(ctx context.Context, event domain.RatingEvent) (domain.Rating, error) {
	if err := validateStruct(event); err != nil {
		return domain.Rating{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.Rating{}, err
	}
	return s.laptops.Rate(ctx, event.LaptopID, event.Score)
}

// StartUpload opens an upload session for an existing laptop.
func (s *LaptopService) StartUpload(ctx context.Context, info domain.ImageInfo) (*UploadSession, error) {
	if err := validateStruct(info); err != nil {
		return nil, err
	}
	if _, err := s.laptops.Find(ctx, info.LaptopID); err != nil {
		return nil, err
	}
	return newUploadSession(info, s.maxImageSize), nil
}

// FinishUpload persists the assembled image and links it to the laptop.
func (s *LaptopService) FinishUpload(ctx context.Context, session *UploadSession) (domain.Image, error) {
	if err := ctx.Err(); err != nil {
		return domain.Image{}, err
	}

	data := session.Bytes()
	imageID, err := s.images.Save(ctx, session.info.LaptopID, session.info.ImageType, data)
	if err != nil {
		return domain.Image{}, fmt.Errorf("save image: %w", err)
	}

	if err := s.laptops.AttachImage(ctx, session.info.LaptopID, imageID); err != nil {
		return domain.Image{}, fmt.Errorf("attach image: %w", err)
	}

	return domain.Image{
		ID:       imageID,
		LaptopID: session.info.LaptopID,
		Type:     session.info.ImageType,
		Size:     len(data),
	}, nil
}
