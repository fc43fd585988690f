package editor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"
	"time"

	"table-editor/core/changeset"
	"table-editor/core/storage/mocks"
	"table-editor/core/table"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleRecord() *Record {
	cs := &changeset.ChangeSet{
		Table:   "DEMO.DT_TUTORIAL.SYNTHETIC_BATCH_DATA",
		PK:      "BATCH_ID",
		Columns: []string{"BATCH_ID", "PROJECT"},
		Deleted: []table.Row{{"BATCH_ID": int64(3), "PROJECT": "p2"}},
	}
	rec := NewRecord("ws-1", cs, changeset.Result{Deleted: 1})
	rec.AppliedAt = time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	return rec
}

func TestStorageArchiver_Key(t *testing.T) {
	a := NewStorageArchiver(new(mocks.Client), "bucket", "/changes/")
	rec := sampleRecord()

	key := a.Key(rec)
	assert.Regexp(t, regexp.MustCompile(`^changes/demo\.dt_tutorial\.synthetic_batch_data/20240301T123000Z-[0-9a-f-]{36}\.json$`), key)
}

func TestStorageArchiver_Archive(t *testing.T) {
	client := new(mocks.Client)
	a := NewStorageArchiver(client, "bucket", "changes")
	rec := sampleRecord()

	var stored []byte
	client.On("PutObject", mock.Anything, "bucket", a.Key(rec), mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			stored, _ = io.ReadAll(args.Get(3).(io.Reader))
		}).
		Return(minio.UploadInfo{}, nil)

	key, err := a.Archive(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, a.Key(rec), key)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(stored, &decoded))
	assert.Equal(t, "ws-1", decoded["workspace_id"])
	assert.Equal(t, map[string]any{"added": 0.0, "edited": 0.0, "deleted": 1.0}, decoded["summary"])
	client.AssertExpectations(t)
}

func TestStorageArchiver_ArchiveError(t *testing.T) {
	client := new(mocks.Client)
	a := NewStorageArchiver(client, "bucket", "changes")
	client.On("PutObject", mock.Anything, "bucket", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("access denied"))

	_, err := a.Archive(context.Background(), sampleRecord())
	assert.ErrorContains(t, err, "access denied")
}

func TestStorageArchiver_List(t *testing.T) {
	client := new(mocks.Client)
	a := NewStorageArchiver(client, "bucket", "changes")

	client.On("ListObjects", mock.Anything, "bucket", mock.MatchedBy(func(o minio.ListObjectsOptions) bool {
		return o.Prefix == "changes/synthetic_batch_data/" && o.Recursive
	})).Return(func(context.Context, string, minio.ListObjectsOptions) <-chan minio.ObjectInfo {
		ch := make(chan minio.ObjectInfo, 4)
		ch <- minio.ObjectInfo{Key: "changes/synthetic_batch_data/20240101T000000Z-a.json"}
		ch <- minio.ObjectInfo{Key: "changes/synthetic_batch_data/20240301T000000Z-c.json"}
		ch <- minio.ObjectInfo{Key: "changes/synthetic_batch_data/notes.txt"}
		ch <- minio.ObjectInfo{Key: "changes/synthetic_batch_data/20240201T000000Z-b.json"}
		close(ch)
		return ch
	})

	keys, err := a.List(context.Background(), "SYNTHETIC_BATCH_DATA", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"changes/synthetic_batch_data/20240301T000000Z-c.json",
		"changes/synthetic_batch_data/20240201T000000Z-b.json",
	}, keys)
}

func TestStorageArchiver_Get(t *testing.T) {
	client := new(mocks.Client)
	a := NewStorageArchiver(client, "bucket", "changes")

	body, err := json.Marshal(sampleRecord())
	require.NoError(t, err)
	key := "changes/synthetic_batch_data/20240301T123000Z-x.json"
	client.On("GetObject", mock.Anything, "bucket", key, mock.Anything).
		Return(io.NopCloser(bytes.NewReader(body)), nil)

	rec, err := a.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, "ws-1", rec.WorkspaceID)
	assert.Equal(t, int64(1), rec.Result.Deleted)

	_, err = a.Get(context.Background(), "other/secret.json")
	assert.Error(t, err)
	_, err = a.Get(context.Background(), "changes/../secret.json")
	assert.Error(t, err)
}

func TestStorageArchiver_GetWithoutPrefix(t *testing.T) {
	client := new(mocks.Client)
	a := NewStorageArchiver(client, "bucket", "")

	body, err := json.Marshal(sampleRecord())
	require.NoError(t, err)
	key := a.Key(sampleRecord())
	assert.True(t, strings.HasPrefix(key, "demo.dt_tutorial.synthetic_batch_data/"))
	client.On("GetObject", mock.Anything, "bucket", key, mock.Anything).
		Return(io.NopCloser(bytes.NewReader(body)), nil)

	rec, err := a.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, "ws-1", rec.WorkspaceID)

	_, err = a.Get(context.Background(), "../secret.json")
	assert.Error(t, err)
}

func TestNopArchiver(t *testing.T) {
	var a Archiver = NopArchiver{}
	key, err := a.Archive(context.Background(), sampleRecord())
	assert.NoError(t, err)
	assert.Empty(t, key)

	_, err = a.List(context.Background(), "T", 10)
	assert.ErrorIs(t, err, ErrArchiveDisabled)
	_, err = a.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrArchiveDisabled)
}
