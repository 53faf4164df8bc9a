package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"risehub/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ObjectPutter is the slice of the S3 client the uploader needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ImageStore 管理后台图片上传到 S3 兼容存储 (R2 / MinIO / S3)
type ImageStore struct {
	client  ObjectPutter
	bucket  string
	baseURL string
}

var allowedImageTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

const MaxImageSize = 5 << 20

func NewImageStore(client ObjectPutter, bucket, baseURL string) *ImageStore {
	return &ImageStore{client: client, bucket: bucket, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// NewImageStoreFromConfig returns nil when no bucket is configured.
func NewImageStoreFromConfig(ctx context.Context, cfg *config.Config) (*ImageStore, error) {
	if cfg.S3Bucket == "" {
		return nil, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKeyID, cfg.S3SecretAccessKey, "",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	baseURL := cfg.CDNBaseURL
	if baseURL == "" {
		baseURL = strings.TrimSuffix(cfg.S3Endpoint, "/") + "/" + cfg.S3Bucket
	}
	return NewImageStore(client, cfg.S3Bucket, baseURL), nil
}

// Upload stores body under folder/<yyyy/mm>/<uuid><ext> and returns its public URL.
func (s *ImageStore) Upload(ctx context.Context, folder, contentType string, size int64, body io.Reader) (string, error) {
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return "", invalid("unsupported image type %q", contentType)
	}
	if size > MaxImageSize {
		return "", invalid("image is larger than %d bytes", MaxImageSize)
	}

	folder = strings.Trim(path.Clean("/"+folder), "/")
	if folder == "" {
		folder = "misc"
	}
	key := path.Join(folder, time.Now().UTC().Format("2006/01"), uuid.NewString()+ext)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return s.baseURL + "/" + key, nil
}
