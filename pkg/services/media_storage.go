package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"DirectChat/models"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrMediaTooLarge    = errors.New("file too large")
)

// SavedMedia describes an uploaded file that can be sent as the body of
// an image, video or gif message.
type SavedMedia struct {
	URL      string             `json:"url"`
	Kind     models.MessageKind `json:"type"`
	MIME     string             `json:"mime"`
	Filename string             `json:"filename"`
}

// MediaStorage writes uploads to a local directory served under /uploads.
type MediaStorage struct {
	basePath string
	baseURL  string
	maxBytes int64
}

func NewMediaStorage(uploadDir, publicBaseURL string, maxBytes int64) (*MediaStorage, error) {
	basePath := filepath.Join(uploadDir, "media")
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &MediaStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(publicBaseURL, "/") + "/uploads/media",
		maxBytes: maxBytes,
	}, nil
}

// KindForMIME maps a sniffed content type to a message kind.
func KindForMIME(m *mimetype.MIME) (models.MessageKind, bool) {
	switch {
	case m.Is("image/gif"):
		return models.KindGIF, true
	case strings.HasPrefix(m.String(), "image/"):
		return models.KindImage, true
	case strings.HasPrefix(m.String(), "video/"):
		return models.KindVideo, true
	}
	return "", false
}

// Save sniffs the content of r, rejects anything that is not an image,
// video or gif, and stores it under a random name.
func (s *MediaStorage) Save(r io.Reader) (*SavedMedia, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, ErrMediaTooLarge
	}

	mt := mimetype.Detect(data)
	kind, ok := KindForMIME(mt)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMedia, mt.String())
	}

	filename := uuid.NewString() + mt.Extension()
	dst, err := os.Create(filepath.Join(s.basePath, filename))
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &SavedMedia{
		URL:      s.baseURL + "/" + filename,
		Kind:     kind,
		MIME:     mt.String(),
		Filename: filename,
	}, nil
}
