package blob

import (
	"context"
	"errors"
	"io"
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/spec-kit/complaint-service/internal/config"
)

// S3Store keeps blobs in an S3 (or S3-compatible) bucket under a key prefix.
type S3Store struct {
	api       s3iface.S3API
	bucket    string
	prefix    string
	urlPrefix string
}

// NewS3Store builds a store from configuration. Static credentials are used
// when provided, otherwise the SDK's default chain applies.
func NewS3Store(cfg config.BlobConfig, urlPrefix string) (*S3Store, error) {
	awsCfg := &aws.Config{
		Region:           aws.String(cfg.S3Region),
		S3ForcePathStyle: aws.Bool(cfg.S3Endpoint != ""),
	}
	if cfg.S3Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.S3Endpoint)
	}
	if cfg.S3AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.S3AccessKey, cfg.S3SecretKey, "")
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, err
	}
	return NewS3StoreWithAPI(s3.New(sess), cfg.S3Bucket, cfg.S3Prefix, urlPrefix), nil
}

// NewS3StoreWithAPI wires an existing client.
func NewS3StoreWithAPI(api s3iface.S3API, bucket, prefix, urlPrefix string) *S3Store {
	return &S3Store{api: api, bucket: bucket, prefix: prefix, urlPrefix: urlPrefix}
}

func (s *S3Store) key(name string) string {
	return path.Join(s.prefix, name)
}

func (s *S3Store) Put(ctx context.Context, name string, body io.ReadSeeker, contentType string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.api.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(name)),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return Reference(s.urlPrefix, name), nil
}

func (s *S3Store) Open(ctx context.Context, name string) (*Object, error) {
	if err := checkName(name); err != nil {
		return nil, ErrNotFound
	}

	out, err := s.api.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && aerr.Code() == s3.ErrCodeNoSuchKey {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &Object{
		Body:          out.Body,
		ContentType:   aws.StringValue(out.ContentType),
		ContentLength: aws.Int64Value(out.ContentLength),
	}, nil
}
