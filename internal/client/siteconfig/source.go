package siteconfig

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/docsauth/internal/client/config"
	"github.com/dmitrijs2005/docsauth/internal/netx"
)

// maxDocumentSize bounds a config document read from S3 or disk.
const maxDocumentSize = 1 << 20

// Source fetches the raw app-config document.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	String() string
}

// FileSource reads the document from the local file system.
type FileSource struct {
	Path string
}

func (s *FileSource) Fetch(_ context.Context) ([]byte, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxDocumentSize))
}

func (s *FileSource) String() string { return s.Path }

// HTTPSource fetches the document with GET.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	return netx.Get(ctx, s.Client, s.URL)
}

func (s *HTTPSource) String() string { return s.URL }

// S3GetObjectAPI is the part of *s3.Client used by S3Source.
type S3GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads the document from an S3 (or S3-compatible) bucket.
type S3Source struct {
	Bucket string
	Key    string
	API    S3GetObjectAPI
}

func (s *S3Source) Fetch(ctx context.Context) ([]byte, error) {
	out, err := s.API.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()
	return io.ReadAll(io.LimitReader(out.Body, maxDocumentSize))
}

func (s *S3Source) String() string { return "s3://" + s.Bucket + "/" + s.Key }

// ParseS3Location splits "s3://bucket/key" into its parts.
func ParseS3Location(loc string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(loc, "s3://")
	if !ok {
		return "", "", fmt.Errorf("not an s3 location: %q", loc)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 location needs bucket and key: %q", loc)
	}
	return bucket, key, nil
}

// NewS3Client builds an S3 client from the client config. Static
// credentials and a custom endpoint (e.g. MinIO) are optional.
func NewS3Client(ctx context.Context, c *config.Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(c.S3Region),
	}
	if c.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.S3AccessKey, c.S3SecretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if c.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(c.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// NewSource picks a Source for c.SiteConfigSource by its scheme.
func NewSource(ctx context.Context, c *config.Config, httpClient *http.Client) (Source, error) {
	loc := strings.TrimSpace(c.SiteConfigSource)

	switch {
	case loc == "":
		return nil, fmt.Errorf("site config source is empty")

	case strings.HasPrefix(loc, "http://"), strings.HasPrefix(loc, "https://"):
		return &HTTPSource{URL: loc, Client: httpClient}, nil

	case strings.HasPrefix(loc, "s3://"):
		bucket, key, err := ParseS3Location(loc)
		if err != nil {
			return nil, err
		}
		api, err := NewS3Client(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("s3 client: %w", err)
		}
		return &S3Source{Bucket: bucket, Key: key, API: api}, nil

	default:
		return &FileSource{Path: strings.TrimPrefix(loc, "file://")}, nil
	}
}
