package storage

import (
	"context"
	"io"
)

// Provider stores user-uploaded files (profile pictures). Objects are
// write-once: a new avatar is uploaded under a fresh key and the old one
// deleted, so no provider needs update semantics.
type Provider interface {
	Upload(ctx context.Context, request *UploadRequest) (*UploadResponse, error)
	Delete(ctx context.Context, key string) error
}

type UploadRequest struct {
	Key         string            `json:"key"`
	Reader      io.Reader         `json:"-"`
	ContentType string            `json:"content_type"`
	Size        int64             `json:"size"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type UploadResponse struct {
	Key  string `json:"key"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}
