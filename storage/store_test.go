package storage

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// exerciseStore runs the shared get/set contract against any Store.
func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()

	fallback := sample{Name: "fallback"}
	got := fallback
	require.NoError(t, s.Get(ctx, "missing-key", &got))
	assert.Equal(t, fallback, got, "missing key keeps the fallback")

	want := sample{Name: "stored", Items: []string{"a", "b"}}
	require.NoError(t, s.Set(ctx, "sample", want))

	var out sample
	require.NoError(t, s.Get(ctx, "sample", &out))
	assert.Equal(t, want, out)

	want.Items = append(want.Items, "c")
	require.NoError(t, s.Set(ctx, "sample", want))
	require.NoError(t, s.Get(ctx, "sample", &out))
	assert.Equal(t, want, out)

	assert.ErrorIs(t, s.Set(ctx, "", want), ErrInvalidKey)
	assert.ErrorIs(t, s.Get(ctx, "", &out), ErrInvalidKey)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStore_StoresCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	v := sample{Items: []string{"x"}}
	require.NoError(t, s.Set(ctx, "k", v))
	v.Items[0] = "changed"

	var out sample
	require.NoError(t, s.Get(ctx, "k", &out))
	assert.Equal(t, []string{"x"}, out.Items)
}

type fakeObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (f *fakeObjects) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.objects[*params.Bucket+"/"+*params.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(raw))}, nil
}

func (f *fakeObjects) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	raw, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[*params.Bucket+"/"+*params.Key] = raw
	return &s3.PutObjectOutput{}, nil
}

func TestCloudflareR2Store(t *testing.T) {
	fake := &fakeObjects{objects: map[string][]byte{}}
	s := newR2Store(fake, "bucket", "tm")
	exerciseStore(t, s)

	_, ok := fake.objects["bucket/tm/sample.json"]
	assert.True(t, ok, "objects are namespaced by prefix")
}

func TestNewCloudflareR2Store_RequiresConfig(t *testing.T) {
	_, err := NewCloudflareR2Store(context.Background(), CloudflareR2StoreConfig{BucketName: "b"})
	assert.Error(t, err)
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s, err := NewPostgresStore(ctx, db)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `DELETE FROM kv_store WHERE key IN ('sample', 'missing-key')`)
	require.NoError(t, err)

	exerciseStore(t, s)
}
