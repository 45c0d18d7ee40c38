package storage

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"Tunedeck/internal/apperr"
)

// s3API is the slice of the S3 client the uploader needs.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// S3Uploader uploads media files to an S3 bucket fronted by a public CDN
// base URL. On a failed upload it retries once with reduced options before
// surfacing a generic upstream failure.
type S3Uploader struct {
	api     s3API
	bucket  string
	folder  string
	baseURL string
	logger  *zap.Logger
	now     func() time.Time
}

func NewS3Uploader(api s3API, bucket, folder, baseURL string, logger *zap.Logger) *S3Uploader {
	return &S3Uploader{
		api:     api,
		bucket:  bucket,
		folder:  folder,
		baseURL: baseURL,
		logger:  logger,
		now:     time.Now,
	}
}

func (u *S3Uploader) Upload(ctx context.Context, filename, contentType string, body io.ReadSeeker) (string, error) {
	key := u.objectKey(filename)

	input := &s3.PutObjectInput{
		Bucket:       aws.String(u.bucket),
		Key:          aws.String(key),
		Body:         body,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000"),
	}

	_, err := u.api.PutObject(ctx, input)
	if err == nil {
		return u.publicURL(key), nil
	}

	u.logger.Warn("media upload failed, retrying with reduced options",
		zap.String("key", key),
		zap.Error(err),
	)

	if _, serr := body.Seek(0, io.SeekStart); serr != nil {
		return "", fmt.Errorf("%w: rewind upload body: %v", apperr.ErrUpstream, serr)
	}

	// Single documented fallback: bare upload without content metadata.
	_, err = u.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	if err != nil {
		u.logger.Error("media upload failed", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("%w: upload %s: %v", apperr.ErrUpstream, filename, err)
	}

	return u.publicURL(key), nil
}

func (u *S3Uploader) objectKey(filename string) string {
	safe := unsafeKeyChars.ReplaceAllString(filename, "_")
	return u.folder + "/" + strconv.FormatInt(u.now().UnixMilli(), 10) + "_" + safe
}

func (u *S3Uploader) publicURL(key string) string {
	return u.baseURL + "/" + key
}
