package storage

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImagesSaveLocal(t *testing.T) {
	dir := t.TempDir()
	backend, err := NewLocal(dir, "/static/uploads/")
	require.NoError(t, err)

	images := NewImages(backend, 0)
	images.now = func() time.Time { return time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC) }

	obj, err := images.Save(context.Background(), bytes.NewReader(pngBytes(t, 64, 32)))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(obj.Key, "20240506-"))
	assert.True(t, strings.HasSuffix(obj.Key, ".png"))
	assert.Equal(t, "/static/uploads/"+obj.Key, obj.URL)
	assert.Equal(t, "image/png", obj.ContentType)
	assert.Equal(t, 64, obj.Width)
	assert.Equal(t, 32, obj.Height)

	_, err = os.Stat(filepath.Join(dir, obj.Key))
	require.NoError(t, err)

	require.NoError(t, backend.Delete(context.Background(), obj.Key))
	require.NoError(t, backend.Delete(context.Background(), obj.Key))
}

func TestImagesRejectsNonImages(t *testing.T) {
	backend, err := NewLocal(t.TempDir(), "/static/uploads")
	require.NoError(t, err)
	images := NewImages(backend, 0)

	_, err = images.Save(context.Background(), strings.NewReader("<html>not an image</html>"))
	assert.True(t, errors.Is(err, ErrNotImage))

	small := NewImages(backend, 16)
	_, err = small.Save(context.Background(), bytes.NewReader(pngBytes(t, 8, 8)))
	assert.True(t, errors.Is(err, ErrTooLarge))
}

func TestLocalRejectsTraversal(t *testing.T) {
	backend, err := NewLocal(t.TempDir(), "/static/uploads")
	require.NoError(t, err)

	_, err = backend.Put(context.Background(), "../escape.png", "image/png", []byte("x"))
	assert.Error(t, err)
}

type fakeObjectAPI struct {
	puts    []*s3.PutObjectInput
	deletes []*s3.DeleteObjectInput
	err     error
}

func (f *fakeObjectAPI) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.puts = append(f.puts, in)
	return &s3.PutObjectOutput{}, f.err
}

func (f *fakeObjectAPI) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deletes = append(f.deletes, in)
	return &s3.DeleteObjectOutput{}, f.err
}

func TestS3PutAndDelete(t *testing.T) {
	api := &fakeObjectAPI{}
	backend := newS3WithClient(api, S3Options{Bucket: "site-media", Region: "eu-west-1"})

	url, err := backend.Put(context.Background(), "a.png", "image/png", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, "https://site-media.s3.eu-west-1.amazonaws.com/a.png", url)
	require.Len(t, api.puts, 1)
	assert.Equal(t, "site-media", aws.ToString(api.puts[0].Bucket))
	assert.Equal(t, "image/png", aws.ToString(api.puts[0].ContentType))
	assert.EqualValues(t, 4, aws.ToInt64(api.puts[0].ContentLength))

	require.NoError(t, backend.Delete(context.Background(), "a.png"))
	assert.Equal(t, "a.png", aws.ToString(api.deletes[0].Key))
}

func TestS3PublicURL(t *testing.T) {
	custom := newS3WithClient(&fakeObjectAPI{}, S3Options{Bucket: "media", Endpoint: "http://minio:9000/"})
	url, err := custom.Put(context.Background(), "k.webp", "image/webp", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://minio:9000/media/k.webp", url)

	cdn := newS3WithClient(&fakeObjectAPI{}, S3Options{Bucket: "media", PublicBaseURL: "https://cdn.example.com/"})
	url, err = cdn.Put(context.Background(), "k.webp", "image/webp", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/k.webp", url)
}

func TestS3WrapsErrors(t *testing.T) {
	api := &fakeObjectAPI{err: errors.New("AccessDenied")}
	backend := newS3WithClient(api, S3Options{Bucket: "media"})

	_, err := backend.Put(context.Background(), "a.png", "image/png", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AccessDenied")
}
