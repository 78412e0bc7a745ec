// AngelaMos | 2026
// s3.go

package images

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/angelamos/sook/internal/config"
	"github.com/angelamos/sook/internal/core"
)

// 5 MB keeps avatar uploads reasonable without chunked transfers.
const maxImageBytes = 5 << 20

var extensionByMedia = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// S3Store uploads decoded data URLs to an S3-compatible bucket and hands
// back the public URL of the stored object. Works against MinIO in dev
// via the base endpoint override.
type S3Store struct {
	client     *s3.Client
	bucket     string
	publicBase string
	timeout    time.Duration
}

func NewS3Store(
	ctx context.Context,
	cfg config.ImagesConfig,
) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client:     client,
		bucket:     cfg.Bucket,
		publicBase: strings.TrimRight(cfg.PublicBaseURL, "/"),
		timeout:    cfg.UploadTimeout,
	}, nil
}

// UploadDataURL decodes a base64 data URL, stores the bytes under a
// date-partitioned key and returns the object's public URL.
func (s *S3Store) UploadDataURL(
	ctx context.Context,
	dataURL string,
) (string, error) {
	mediaType, data, err := DecodeDataURL(dataURL)
	if err != nil {
		return "", err
	}

	ext, ok := extensionByMedia[mediaType]
	if !ok {
		return "", fmt.Errorf(
			"upload image: unsupported media type %q: %w",
			mediaType,
			core.ErrInvalidInput,
		)
	}

	now := time.Now().UTC()
	key := fmt.Sprintf(
		"images/%d/%02d/%s.%s",
		now.Year(), now.Month(), uuid.New(), ext,
	)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mediaType),
	})
	if err != nil {
		return "", fmt.Errorf("upload image: %w: %w", core.ErrUpstream, err)
	}

	return s.publicBase + "/" + key, nil
}

// DecodeDataURL splits a "data:<media>;base64,<payload>" URL into its
// media type and decoded bytes.
func DecodeDataURL(dataURL string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", nil, fmt.Errorf(
			"decode image: not a data URL: %w",
			core.ErrInvalidInput,
		)
	}

	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf(
			"decode image: malformed data URL: %w",
			core.ErrInvalidInput,
		)
	}

	mediaType, encoding, _ := strings.Cut(meta, ";")
	if encoding != "base64" {
		return "", nil, fmt.Errorf(
			"decode image: only base64 data URLs are supported: %w",
			core.ErrInvalidInput,
		)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf(
			"decode image: invalid base64 payload: %w",
			core.ErrInvalidInput,
		)
	}

	if len(data) == 0 || len(data) > maxImageBytes {
		return "", nil, fmt.Errorf(
			"decode image: payload must be between 1 byte and %d bytes: %w",
			maxImageBytes,
			core.ErrInvalidInput,
		)
	}

	return mediaType, data, nil
}
