package docstore

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_PutGetExists(t *testing.T) {
	ctx := context.Background()
	store := NewFsStore(afero.NewMemMapFs())

	ok, err := store.Exists(ctx, "invoices/a/doc.pptx")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Put(ctx, "invoices/a/doc.pptx", []byte("payload"), "application/octet-stream"))

	ok, err = store.Exists(ctx, "invoices/a/doc.pptx")
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := store.Get(ctx, "invoices/a/doc.pptx")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)
	assert.Equal(t, "local", store.Driver())
}

func TestLocalStore_GetMissing(t *testing.T) {
	_, err := NewFsStore(afero.NewMemMapFs()).Get(context.Background(), "nope.pptx")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	store := NewFsStore(afero.NewMemMapFs())
	assert.Error(t, store.Put(context.Background(), "../etc/passwd", nil, ""))
	assert.Error(t, store.Put(context.Background(), "", nil, ""))
}

func TestNullStore(t *testing.T) {
	ctx := context.Background()
	store := NewNullStore()

	require.NoError(t, store.Put(ctx, "k", []byte("x"), ""))
	ok, err := store.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewStoreFromConfig(t *testing.T) {
	ctx := context.Background()

	s, err := NewStoreFromConfig(ctx, Config{Driver: ""})
	require.NoError(t, err)
	assert.Equal(t, "none", s.Driver())

	s, err = NewStoreFromConfig(ctx, Config{Driver: "local", Path: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, "local", s.Driver())

	_, err = NewStoreFromConfig(ctx, Config{Driver: "local"})
	assert.Error(t, err)

	_, err = NewStoreFromConfig(ctx, Config{Driver: "s3"})
	assert.Error(t, err)

	_, err = NewStoreFromConfig(ctx, Config{Driver: "ftp"})
	assert.Error(t, err)
}

type fakeObjects struct {
	objects map[string][]byte
	types   map[string]string
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	key := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	f.objects[key] = b
	f.types[key] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjects) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	b, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(b))}, nil
}

func (f *fakeObjects) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if _, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func TestS3Store_KeyPrefixAndNotFound(t *testing.T) {
	ctx := context.Background()
	objects := newFakeObjects()
	store := newS3Store(objects, "docs", "prod")

	require.NoError(t, store.Put(ctx, "invoices/1/a.pptx", []byte("deck"), "application/test"))
	assert.Equal(t, []byte("deck"), objects.objects["docs/prod/invoices/1/a.pptx"])
	assert.Equal(t, "application/test", objects.types["docs/prod/invoices/1/a.pptx"])

	got, err := store.Get(ctx, "invoices/1/a.pptx")
	require.NoError(t, err)
	assert.Equal(t, []byte("deck"), got)

	ok, err := store.Exists(ctx, "invoices/2/b.pptx")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.Get(ctx, "invoices/2/b.pptx")
	assert.True(t, errors.Is(err, ErrNotFound))
}
