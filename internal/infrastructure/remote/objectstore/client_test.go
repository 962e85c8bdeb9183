package objectstore

import (
	"context"
	"errors"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/mens/internal/domain"
	"github.com/ersonp/mens/internal/domain/ports"
	"github.com/ersonp/mens/internal/infrastructure/config"
	"github.com/ersonp/mens/internal/infrastructure/parsers"
)

// fakeS3 is an in-memory bucket that pages listings two keys at a time.
type fakeS3 struct {
	objects     map[string]string
	putErr      error
	deleteCalls int
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	var keys []string
	for _, key := range slices.Sorted(maps.Keys(f.objects)) {
		if strings.HasPrefix(key, aws.ToString(in.Prefix)) {
			keys = append(keys, key)
		}
	}

	start := 0
	if in.ContinuationToken != nil {
		start, _ = strconv.Atoi(*in.ContinuationToken)
	}
	end := min(start+2, len(keys))

	out := &s3.ListObjectsV2Output{}
	for _, key := range keys[start:end] {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(key)})
	}
	if end < len(keys) {
		out.IsTruncated = aws.Bool(true)
		out.NextContinuationToken = aws.String(strconv.Itoa(end))
	}
	return out, nil
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if _, ok := f.objects[aws.ToString(in.Key)]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	body, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = string(data)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObjects(_ context.Context, in *s3.DeleteObjectsInput, _ ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error) {
	f.deleteCalls++
	for _, obj := range in.Delete.Objects {
		delete(f.objects, aws.ToString(obj.Key))
	}
	return &s3.DeleteObjectsOutput{}, nil
}

func newTestClient(t *testing.T, objects map[string]string) (*Client, *fakeS3) {
	t.Helper()
	fake := &fakeS3{objects: objects}
	client, err := NewClient(config.S3Config{Bucket: "notes", Region: "us-east-1"})
	require.NoError(t, err)
	client.newAPI = func(context.Context, string) (objectAPI, error) { return fake, nil }
	return client, fake
}

func TestNewClient(t *testing.T) {
	_, err := NewClient(config.S3Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket is required")
}

func TestNewS3Client_BadToken(t *testing.T) {
	_, err := newS3Client(t.Context(), config.S3Config{Region: "us-east-1"}, "no-colon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access:secret")
}

func TestClient_ListNoteFiles(t *testing.T) {
	client, _ := newTestClient(t, map[string]string{
		"r1/" + ports.MetaFileName: parsers.MetaContent,
		"r1/a.yaml":                "note-a",
		"r1/b.yaml":                "note-b",
		"r1/c.yaml":                "note-c",
		"r2/a.yaml":                "other resource",
	})

	contents, err := client.ListNoteFiles(t.Context(), "", "r1")

	require.NoError(t, err)
	assert.Equal(t, []string{"note-a", "note-b", "note-c"}, contents)
}

func TestClient_ListNoteFiles_MissingResource(t *testing.T) {
	client, _ := newTestClient(t, map[string]string{"r2/a.yaml": "x"})

	_, err := client.ListNoteFiles(t.Context(), "", "r2")
	assert.ErrorIs(t, err, domain.ErrResourceNotFound)

	_, err = client.ListNoteFiles(t.Context(), "", "")
	assert.ErrorIs(t, err, domain.ErrResourceNotConfig)
}

func TestClient_CreateResource(t *testing.T) {
	client, fake := newTestClient(t, map[string]string{})

	resource, err := client.CreateResource(t.Context(), "")

	require.NoError(t, err)
	assert.Len(t, resource.ID, 36)
	assert.Equal(t, "s3://notes/"+resource.ID, resource.Handle)
	assert.Equal(t, parsers.MetaContent, fake.objects[resource.ID+"/"+ports.MetaFileName])

	contents, err := client.ListNoteFiles(t.Context(), "", resource.ID)
	require.NoError(t, err)
	assert.Empty(t, contents)
}

func TestClient_ReplaceAllFiles(t *testing.T) {
	client, fake := newTestClient(t, map[string]string{
		"r1/" + ports.MetaFileName: parsers.MetaContent,
		"r1/keep.yaml":             "v1",
		"r1/stale.yaml":            "gone soon",
	})

	err := client.ReplaceAllFiles(t.Context(), "", "r1", map[string]string{
		"keep.yaml": "v2",
		"new.yaml":  "fresh",
	})

	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"r1/" + ports.MetaFileName: parsers.MetaContent,
		"r1/keep.yaml":             "v2",
		"r1/new.yaml":              "fresh",
	}, fake.objects)
	assert.Equal(t, 1, fake.deleteCalls)
}

func TestClient_ReplaceAllFiles_Errors(t *testing.T) {
	t.Run("missing resource", func(t *testing.T) {
		client, _ := newTestClient(t, map[string]string{})
		err := client.ReplaceAllFiles(t.Context(), "", "r1", map[string]string{"a.yaml": "x"})
		assert.ErrorIs(t, err, domain.ErrResourceNotFound)
	})

	t.Run("put fails", func(t *testing.T) {
		client, fake := newTestClient(t, map[string]string{"r1/" + ports.MetaFileName: parsers.MetaContent})
		fake.putErr = errors.New("access denied")
		err := client.ReplaceAllFiles(t.Context(), "", "r1", map[string]string{"a.yaml": "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access denied")
		assert.NotErrorIs(t, err, domain.ErrResourceNotFound)
	})
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(&types.NotFound{}))
	assert.True(t, isNotFound(&types.NoSuchKey{}))
	assert.False(t, isNotFound(errors.New("timeout")))
}
