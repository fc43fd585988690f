// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a small interface. The editor uses it to
// archive every applied change set as a JSON document, and the integrity feature
// uses it to verify (and optionally create) the archive bucket. Both AWS S3 and
// self-hosted MinIO work.
//
// The Client interface keeps storage interactions mockable (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
