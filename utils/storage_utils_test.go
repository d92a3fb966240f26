package utils

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

type fakeS3 struct {
	s3iface.S3API
	input *s3.PutObjectInput
	err   error
}

func (f *fakeS3) PutObjectWithContext(_ aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	f.input = in
	return &s3.PutObjectOutput{}, f.err
}

// smallest valid PNG header
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestUploadPNG(t *testing.T) {
	fake := &fakeS3{}
	u := newImageUploader(fake, S3Config{Bucket: "tes", Region: "ap-southeast-1", PublicURL: "https://cdn.example.com/"})

	url, err := u.Upload(context.Background(), pngHeader, "properties")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if !strings.HasPrefix(url, "https://cdn.example.com/properties/") || !strings.HasSuffix(url, ".png") {
		t.Fatalf("unexpected url %s", url)
	}
	if aws.StringValue(fake.input.ContentType) != "image/png" || aws.StringValue(fake.input.Bucket) != "tes" {
		t.Fatalf("unexpected put input: %+v", fake.input)
	}
}

func TestUploadRejects(t *testing.T) {
	fake := &fakeS3{}
	u := newImageUploader(fake, S3Config{Bucket: "tes", Region: "ap-southeast-1"})
	if _, err := u.Upload(context.Background(), []byte("plain text"), "properties"); !errors.Is(err, ErrUnsupportedImage) {
		t.Fatalf("expected ErrUnsupportedImage, got %v", err)
	}

	fake.err = errors.New("denied")
	if _, err := u.Upload(context.Background(), pngHeader, "properties"); err == nil {
		t.Fatal("expected upload error")
	}
}
