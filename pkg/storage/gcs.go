package storage

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type GCSStorage struct {
	client *storage.Client
	bucket string
}

func NewGCSStorage(bucket, credentialsFile string) (*GCSStorage, error) {
	ctx := context.Background()

	var client *storage.Client
	var err error

	if credentialsFile != "" {
		client, err = storage.NewClient(ctx, option.WithCredentialsFile(credentialsFile))
	} else {
		client, err = storage.NewClient(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSStorage{
		client: client,
		bucket: bucket,
	}, nil
}

func (g *GCSStorage) Upload(ctx context.Context, request *UploadRequest) (*UploadResponse, error) {
	object := g.client.Bucket(g.bucket).Object(request.Key)

	writer := object.NewWriter(ctx)
	writer.ContentType = request.ContentType
	if len(request.Metadata) > 0 {
		writer.Metadata = request.Metadata
	}

	size, err := io.Copy(writer, request.Reader)
	if err != nil {
		writer.Close()
		return nil, fmt.Errorf("failed to write to GCS: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close writer: %w", err)
	}

	return &UploadResponse{
		Key:  request.Key,
		URL:  fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucket, request.Key),
		Size: size,
	}, nil
}

func (g *GCSStorage) Delete(ctx context.Context, key string) error {
	object := g.client.Bucket(g.bucket).Object(key)
	if err := object.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete from GCS: %w", err)
	}
	return nil
}
