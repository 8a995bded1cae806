package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectGetter is the part of the S3 client used to download documents.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Config holds connection settings for S3-compatible storage.
// Endpoint is optional and used for providers such as Cloudflare R2 or MinIO.
type S3Config struct {
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string
}

// NewS3Client builds an S3 client. Static credentials are used when both keys
// are set, otherwise the default AWS credential chain applies.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// S3Source downloads documents from a bucket.
type S3Source struct {
	client   ObjectGetter
	maxBytes int64
}

// NewS3Source creates a source backed by client.
func NewS3Source(client ObjectGetter) *S3Source {
	return &S3Source{client: client, maxBytes: DefaultMaxBytes}
}

// ParseS3URI splits an s3://bucket/key location.
func ParseS3URI(uri string) (bucket, key string, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", &Error{URL: uri, Message: "invalid S3 URI", Cause: err}
	}
	if u.Scheme != "s3" || u.Host == "" {
		return "", "", &Error{URL: uri, Message: "invalid S3 URI"}
	}
	key = strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", "", &Error{URL: uri, Message: "S3 URI has no object key"}
	}
	return u.Host, key, nil
}

// Fetch downloads the object at an s3://bucket/key URI.
func (s *S3Source) Fetch(ctx context.Context, uri string) (*Document, error) {
	bucket, key, err := ParseS3URI(uri)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, &Error{URL: uri, Message: "failed to get object", Cause: err}
	}
	defer func() { _ = out.Body.Close() }()

	buf := new(bytes.Buffer)
	n, err := io.Copy(buf, io.LimitReader(out.Body, s.maxBytes+1))
	if err != nil {
		return nil, &Error{URL: uri, Message: "failed to read object body", Cause: err}
	}
	if n > s.maxBytes {
		return nil, &Error{URL: uri, Message: fmt.Sprintf("object larger than %d bytes", s.maxBytes)}
	}

	return &Document{
		Source:      uri,
		Filename:    path.Base(key),
		ContentType: aws.ToString(out.ContentType),
		Data:        buf.Bytes(),
	}, nil
}
