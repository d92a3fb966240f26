package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"
)

// S3Config describes an S3-compatible bucket. Endpoint and keys are optional;
// without keys the default AWS credential chain is used.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PublicURL string
}

var ErrUnsupportedImage = errors.New("unsupported image type")

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ImageUploader stores property and review images in S3.
type ImageUploader struct {
	client    s3iface.S3API
	bucket    string
	publicURL string
}

func NewImageUploader(cfg S3Config) (*ImageUploader, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}
	awsCfg := &aws.Config{Region: aws.String(cfg.Region)}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}
	if cfg.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("create s3 session: %w", err)
	}
	return newImageUploader(s3.New(sess), cfg), nil
}

func newImageUploader(client s3iface.S3API, cfg S3Config) *ImageUploader {
	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
	return &ImageUploader{client: client, bucket: cfg.Bucket, publicURL: strings.TrimRight(publicURL, "/")}
}

// Upload stores file under folder with a random name and returns its public URL.
func (u *ImageUploader) Upload(ctx context.Context, file []byte, folder string) (string, error) {
	contentType := http.DetectContentType(file)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", ErrUnsupportedImage
	}
	key := path.Join(folder, uuid.NewString()+ext)

	_, err := u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(file),
		ContentLength: aws.Int64(int64(len(file))),
		ContentType:   aws.String(contentType),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload file to S3: %w", err)
	}

	return u.publicURL + "/" + key, nil
}
