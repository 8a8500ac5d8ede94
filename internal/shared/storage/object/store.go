package object

import (
	"context"
	"errors"
	"io"
)

// ErrInvalidKey is returned for storage keys that escape the store root.
var ErrInvalidKey = errors.New("invalid storage key")

// Object describes a stored blob.
type Object struct {
	Key         string
	SizeBytes   int64
	ContentType string
}

// ObjectStore defines the contract for saving and retrieving binary objects.
type ObjectStore interface {
	// Save stores r under namespace with a unique key derived from fileName.
	Save(ctx context.Context, namespace, fileName string, r io.Reader) (Object, error)
	// SaveWithKey stores r at exactly key, replacing any existing object.
	SaveWithKey(ctx context.Context, key, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Provider names the backend ("local" or "s3").
	Provider() string
}
