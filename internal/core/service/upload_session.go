package service

import (
	"bytes"
	"fmt"

	"github.com/rl1809/pcbook/internal/core/domain"
)

// UploadSession accumulates the chunks of one image upload in arrival order.
// It belongs to a single stream and is not safe for concurrent use.
type UploadSession struct {
	info    domain.ImageInfo
	maxSize int
	buf     bytes.Buffer
}

func newUploadSession(info domain.ImageInfo, maxSize int) *UploadSession {
	return &UploadSession{info: info, maxSize: maxSize}
}

func (u *UploadSession) Info() domain.ImageInfo {
	return u.info
}

// Write appends a chunk. Once the cap is exceeded the session is unusable and
// must be discarded.
func (u *UploadSession) Write(chunk []byte) error {
	size := u.buf.Len() + len(chunk)
	if size > u.maxSize {
		return fmt.Errorf("%w: %d > %d", domain.ErrImageTooLarge, size, u.maxSize)
	}
	u.buf.Write(chunk)
	return nil
}

func (u *UploadSession) Size() int {
	return u.buf.Len()
}

func (u *UploadSession) Bytes() []byte {
	return bytes.Clone(u.buf.Bytes())
}
