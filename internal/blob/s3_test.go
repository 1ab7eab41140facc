package blob

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

type fakeS3 struct {
	s3iface.S3API
	objects map[string][]byte
	types   map[string]string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) PutObjectWithContext(_ aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	key := aws.StringValue(in.Bucket) + "/" + aws.StringValue(in.Key)
	f.objects[key] = data
	f.types[key] = aws.StringValue(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObjectWithContext(_ aws.Context, in *s3.GetObjectInput, _ ...request.Option) (*s3.GetObjectOutput, error) {
	key := aws.StringValue(in.Bucket) + "/" + aws.StringValue(in.Key)
	data, ok := f.objects[key]
	if !ok {
		return nil, awserr.New(s3.ErrCodeNoSuchKey, "no such key", nil)
	}
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(data)),
		ContentType:   aws.String(f.types[key]),
		ContentLength: aws.Int64(int64(len(data))),
	}, nil
}

func TestS3StorePutAndOpen(t *testing.T) {
	api := newFakeS3()
	store := NewS3StoreWithAPI(api, "bucket", "attachments", "uploads")
	ctx := context.Background()

	ref, err := store.Put(ctx, "leak.png", strings.NewReader("png-bytes"), "")
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if ref != "/uploads/leak.png" {
		t.Fatalf("ref = %q", ref)
	}
	if _, ok := api.objects["bucket/attachments/leak.png"]; !ok {
		t.Fatalf("object stored under wrong key: %v", api.objects)
	}
	if api.types["bucket/attachments/leak.png"] != "application/octet-stream" {
		t.Fatalf("default content type not applied")
	}

	obj, err := store.Open(ctx, "leak.png")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	data, _ := io.ReadAll(obj.Body)
	if string(data) != "png-bytes" {
		t.Fatalf("content = %q", data)
	}

	if _, err := store.Open(ctx, "missing.png"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.Put(ctx, "", strings.NewReader("x"), ""); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
}
