// Package storage holds listing image blobs on local disk or S3.
package storage

import (
	"context"
	"io"
)

// AllowedImageType reports whether ct is accepted for listing image uploads.
func AllowedImageType(ct string) bool {
	switch ct {
	case "image/png", "image/jpeg", "image/webp", "image/gif":
		return true
	}
	return false
}

type PutInput struct {
	Filename    string
	ContentType string
	Size        int64
}

type PutResult struct {
	Key string
	URL string
}

type Storage interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	Delete(ctx context.Context, key string) error
}
