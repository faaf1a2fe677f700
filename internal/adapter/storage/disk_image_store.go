package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rl1809/pcbook/internal/core/domain"
)

type DiskImageStore struct {
	mu     sync.RWMutex
	folder string
	images map[string]domain.Image
}

func NewDiskImageStore(folder string) *DiskImageStore {
	return &DiskImageStore{
		folder: folder,
		images: make(map[string]domain.Image),
	}
}

// Save writes the image to a temp file in the target folder and renames it
// into place, so a failed write never leaves a partial image behind.
func (s *DiskImageStore) Save(ctx context.Context, laptopID, imageType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	imageID, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate image id: %w", err)
	}

	if err := os.MkdirAll(s.folder, 0o755); err != nil {
		return "", fmt.Errorf("create image folder: %w", err)
	}

	path := filepath.Join(s.folder, imageID.String()+imageType)
	if err := writeFileAtomic(path, data); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[imageID.String()] = domain.Image{
		ID:        imageID.String(),
		LaptopID:  laptopID,
		Type:      imageType,
		Path:      path,
		Size:      len(data),
		CreatedAt: time.Now(),
	}

	return imageID.String(), nil
}

func (s *DiskImageStore) Find(imageID string) (domain.Image, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	img, ok := s.images[imageID]
	return img, ok
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp image file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write image file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close image file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("move image file: %w", err)
	}
	return nil
}
