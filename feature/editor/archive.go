package editor

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"table-editor/core/changeset"
	"table-editor/core/storage"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// ErrArchiveDisabled is returned when the change archive is not configured.
var ErrArchiveDisabled = errors.New("change archive is disabled")

// Record is one applied change set as kept in the archive.
type Record struct {
	ID          string               `json:"id"`
	Table       string               `json:"table"`
	WorkspaceID string               `json:"workspace_id"`
	AppliedAt   time.Time            `json:"applied_at"`
	Summary     changeset.Summary    `json:"summary"`
	ChangeSet   *changeset.ChangeSet `json:"change_set"`
	Result      changeset.Result     `json:"result"`
}

// NewRecord builds an archive record for an applied change set.
func NewRecord(workspaceID string, cs *changeset.ChangeSet, res changeset.Result) *Record {
	return &Record{
		ID:          uuid.NewString(),
		Table:       cs.Table,
		WorkspaceID: workspaceID,
		AppliedAt:   time.Now().UTC(),
		Summary:     cs.Counts(),
		ChangeSet:   cs,
		Result:      res,
	}
}

// Archiver keeps an audit trail of applied change sets.
type Archiver interface {
	// Archive stores the record and returns its key.
	Archive(ctx context.Context, rec *Record) (string, error)
	// List returns the newest keys for the table, newest first.
	List(ctx context.Context, tableName string, limit int) ([]string, error)
	// Get loads an archived record.
	Get(ctx context.Context, key string) (*Record, error)
}

// StorageArchiver writes records as JSON objects to an S3 compatible bucket.
type StorageArchiver struct {
	client storage.Client
	bucket string
	prefix string
}

// NewStorageArchiver creates an archiver writing under prefix in bucket.
func NewStorageArchiver(client storage.Client, bucket, prefix string) *StorageArchiver {
	return &StorageArchiver{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

// Key returns the object key of a record: <prefix>/<table>/<UTC timestamp>-<id>.json
func (a *StorageArchiver) Key(rec *Record) string {
	name := rec.AppliedAt.UTC().Format("20060102T150405Z") + "-" + rec.ID + ".json"
	return path.Join(a.prefix, tableDir(rec.Table), name)
}

func (a *StorageArchiver) Archive(ctx context.Context, rec *Record) (string, error) {
	key := a.Key(rec)
	if err := storage.PutJSON(ctx, a.client, a.bucket, key, rec); err != nil {
		return "", fmt.Errorf("failed to archive change set: %w", err)
	}
	return key, nil
}

func (a *StorageArchiver) List(ctx context.Context, tableName string, limit int) ([]string, error) {
	opts := minio.ListObjectsOptions{
		Prefix:    path.Join(a.prefix, tableDir(tableName)) + "/",
		Recursive: true,
	}

	var keys []string
	for obj := range a.client.ListObjects(ctx, a.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list archive: %w", obj.Err)
		}
		if strings.HasSuffix(obj.Key, ".json") {
			keys = append(keys, obj.Key)
		}
	}

	// Keys start with a sortable timestamp
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}
	return keys, nil
}

func (a *StorageArchiver) Get(ctx context.Context, key string) (*Record, error) {
	if strings.Contains(key, "..") || (a.prefix != "" && !strings.HasPrefix(key, a.prefix+"/")) {
		return nil, fmt.Errorf("invalid archive key: %s", key)
	}
	var rec Record
	if err := storage.GetJSON(ctx, a.client, a.bucket, key, &rec); err != nil {
		return nil, fmt.Errorf("failed to read archived change set: %w", err)
	}
	return &rec, nil
}

// NopArchiver is used when storage is disabled.
type NopArchiver struct{}

func (NopArchiver) Archive(context.Context, *Record) (string, error) { return "", nil }

func (NopArchiver) List(context.Context, string, int) ([]string, error) {
	return nil, ErrArchiveDisabled
}

func (NopArchiver) Get(context.Context, string) (*Record, error) {
	return nil, ErrArchiveDisabled
}

// tableDir maps "DB.SCHEMA.TABLE" to a lowercase key segment.
func tableDir(name string) string {
	return strings.ToLower(strings.NewReplacer("/", "_", " ", "_").Replace(name))
}
