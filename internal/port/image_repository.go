package port

import "context"

type ImageRepository interface {
	// Save persists the whole image and returns its generated ID; nothing is stored on error
	Save(ctx context.Context, laptopID, imageType string, data []byte) (string, error)
}
