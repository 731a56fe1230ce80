// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so sweep reports can be written to AWS S3 or a
// self-hosted MinIO instance. The Client interface is the subset of the MinIO
// API the application uses, which keeps it easy to mock (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
//	    return err
//	}
package storage
