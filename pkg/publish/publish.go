// Package publish renders elements and uploads the result to S3.
//
// Example usage:
//
//	client := publish.NewS3Client("us-east-1")
//	p := publish.New(client, publish.Config{Bucket: "my-site", Prefix: "docs/"})
//	res, err := p.Publish(ctx, "index.html", page)
package publish

import (
	"bytes"
	"context"
	stderrors "errors"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/markup/internal/errors"
	"github.com/vango-dev/markup/internal/logging"
	"github.com/vango-dev/markup/pkg/element"
)

// ContentType is stored with every published object.
const ContentType = "text/html; charset=utf-8"

// ObjectPutter is the part of *s3.Client used for publishing.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Config configures a Publisher.
type Config struct {
	// Bucket is the destination bucket. Required.
	Bucket string

	// Prefix is prepended to every key (e.g., "docs/").
	Prefix string

	// CacheControl is stored with each object when set.
	CacheControl string

	// Logger logs each upload (default: slog.Default()).
	Logger *slog.Logger
}

// Result describes a published object.
type Result struct {
	Bucket string
	Key    string
	Bytes  int64
	ETag   string
}

// Publisher uploads rendered documents.
type Publisher struct {
	client ObjectPutter
	config Config
	logger *slog.Logger
}

// New creates a Publisher.
func New(client ObjectPutter, config Config) *Publisher {
	return &Publisher{
		client: client,
		config: config,
		logger: logging.OrDefault(config.Logger),
	}
}

// Key returns the full object key for name.
func (p *Publisher) Key(name string) string {
	name = strings.TrimPrefix(name, "/")
	if p.config.Prefix == "" {
		return name
	}
	return path.Join(p.config.Prefix, name)
}

// Publish renders el and uploads it under the prefixed key. The document is
// rendered in full before the upload starts, so a render failure uploads
// nothing.
func (p *Publisher) Publish(ctx context.Context, name string, el element.Element) (Result, error) {
	if p.config.Bucket == "" {
		return Result{}, errors.New("E021").
			WithSuggestion("Set publish.bucket in markup.yaml or pass --bucket")
	}

	var buf bytes.Buffer
	if err := el.Render(&buf); err != nil {
		return Result{}, errors.New("E001").Wrap(err)
	}

	key := p.Key(name)
	input := &s3.PutObjectInput{
		Bucket:        aws.String(p.config.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(buf.Bytes()),
		ContentLength: aws.Int64(int64(buf.Len())),
		ContentType:   aws.String(ContentType),
	}
	if p.config.CacheControl != "" {
		input.CacheControl = aws.String(p.config.CacheControl)
	}

	out, err := p.client.PutObject(ctx, input)
	if err != nil {
		return Result{}, errors.New("E020").
			WithDetail("Uploading s3://" + p.config.Bucket + "/" + key + " failed.").
			Wrap(err)
	}

	res := Result{Bucket: p.config.Bucket, Key: key, Bytes: int64(buf.Len())}
	if out != nil && out.ETag != nil {
		res.ETag = *out.ETag
	}
	p.logger.InfoContext(ctx, "published", "bucket", res.Bucket, "key", res.Key, "bytes", res.Bytes)
	return res, nil
}

// NewS3Client creates an S3 client for region using credentials from
// AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN.
func NewS3Client(region string) *s3.Client {
	return s3.New(s3.Options{
		Region:      region,
		Credentials: aws.NewCredentialsCache(aws.CredentialsProviderFunc(envCredentials)),
	})
}

func envCredentials(context.Context) (aws.Credentials, error) {
	id := os.Getenv("AWS_ACCESS_KEY_ID")
	secret := os.Getenv("AWS_SECRET_ACCESS_KEY")
	if id == "" || secret == "" {
		return aws.Credentials{}, stderrors.New("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set")
	}
	return aws.Credentials{
		AccessKeyID:     id,
		SecretAccessKey: secret,
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Source:          "Environment",
	}, nil
}
