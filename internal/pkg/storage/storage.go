package storage

import (
	"context"
	"time"
)

// Storage abstracts document object storage. Farmland ownership papers and
// field photos are uploaded by the client straight to the bucket through
// presigned URLs; the API only ever stores object keys.
type Storage interface {
	// PresignUpload returns a URL the client can PUT the document to.
	PresignUpload(ctx context.Context, key, contentType string, expires time.Duration) (string, error)
	// PresignDownload returns a time-limited URL for reading a document.
	PresignDownload(ctx context.Context, key string, expires time.Duration) (string, error)
	// Exists reports whether an object was actually uploaded.
	Exists(ctx context.Context, key string) (bool, error)
}

// Config holds object storage configuration
type Config struct {
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
}
