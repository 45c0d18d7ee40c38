package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"Tunedeck/internal/apperr"
)

type fakeS3 struct {
	calls    []*s3.PutObjectInput
	failures int
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.calls = append(f.calls, params)
	if len(f.calls) <= f.failures {
		return nil, errors.New("simulated upload failure")
	}
	return &s3.PutObjectOutput{}, nil
}

func newTestUploader(api s3API) *S3Uploader {
	u := NewS3Uploader(api, "tunedeck-media", "uploads", "https://cdn.tunedeck.io", zap.NewNop())
	u.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return u
}

func TestUploadReturnsPublicURL(t *testing.T) {
	api := &fakeS3{}
	u := newTestUploader(api)

	url, err := u.Upload(context.Background(), "cover.png", "image/png", strings.NewReader("data"))

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.tunedeck.io/uploads/1700000000000_cover.png", url)

	require.Len(t, api.calls, 1)
	assert.Equal(t, "tunedeck-media", *api.calls[0].Bucket)
	assert.Equal(t, "image/png", *api.calls[0].ContentType)
	assert.NotNil(t, api.calls[0].CacheControl)
}

func TestUploadSanitizesFilename(t *testing.T) {
	u := newTestUploader(&fakeS3{})

	url, err := u.Upload(context.Background(), "my song (final)!.mp3", "audio/mpeg", strings.NewReader("data"))

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.tunedeck.io/uploads/1700000000000_my_song__final__.mp3", url)
}

func TestUploadRetriesOnceWithoutMetadata(t *testing.T) {
	api := &fakeS3{failures: 1}
	u := newTestUploader(api)

	url, err := u.Upload(context.Background(), "track.mp3", "audio/mpeg", strings.NewReader("data"))

	require.NoError(t, err)
	assert.NotEmpty(t, url)

	require.Len(t, api.calls, 2)
	assert.Nil(t, api.calls[1].ContentType, "retry should drop content metadata")
	assert.Nil(t, api.calls[1].CacheControl)
}

func TestUploadFailsAfterRetry(t *testing.T) {
	api := &fakeS3{failures: 2}
	u := newTestUploader(api)

	url, err := u.Upload(context.Background(), "track.mp3", "audio/mpeg", strings.NewReader("data"))

	assert.Empty(t, url)
	assert.ErrorIs(t, err, apperr.ErrUpstream)
	assert.Len(t, api.calls, 2)
}
