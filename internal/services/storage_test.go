package services

import (
	"context"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type recordingPutter struct {
	input *s3.PutObjectInput
	body  string
}

func (p *recordingPutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	p.input = params
	b, _ := io.ReadAll(params.Body)
	p.body = string(b)
	return &s3.PutObjectOutput{}, nil
}

func TestImageStoreUpload(t *testing.T) {
	putter := &recordingPutter{}
	store := NewImageStore(putter, "risehub", "https://cdn.example/")

	url, err := store.Upload(context.Background(), "../weapons", "image/png", 3, strings.NewReader("png"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	key := aws.ToString(putter.input.Key)
	if !regexp.MustCompile(`^weapons/\d{4}/\d{2}/[0-9a-f-]{36}\.png$`).MatchString(key) {
		t.Errorf("unexpected object key %q", key)
	}
	if aws.ToString(putter.input.Bucket) != "risehub" || putter.body != "png" {
		t.Errorf("unexpected put %+v", putter.input)
	}
	if url != "https://cdn.example/"+key {
		t.Errorf("url = %q", url)
	}
}

func TestImageStoreRejects(t *testing.T) {
	store := NewImageStore(&recordingPutter{}, "risehub", "https://cdn.example")

	var vErr *ValidationError
	if _, err := store.Upload(context.Background(), "misc", "application/pdf", 10, strings.NewReader("x")); !errors.As(err, &vErr) {
		t.Errorf("pdf should be rejected, got %v", err)
	}
	if _, err := store.Upload(context.Background(), "misc", "image/jpeg", MaxImageSize+1, strings.NewReader("x")); !errors.As(err, &vErr) {
		t.Errorf("oversized image should be rejected, got %v", err)
	}
}
