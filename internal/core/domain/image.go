package domain

import "time"

type Image struct {
	ID        string
	LaptopID  string
	Type      string
	Path      string
	Size      int
	CreatedAt time.Time
}

// ImageInfo opens an upload. ImageType is the file extension including the
// leading dot and becomes part of the stored file name.
type ImageInfo struct {
	LaptopID  string `validate:"required"`
	ImageType string `validate:"required,startswith=.,max=16,excludesall=/\\"`
}
