package document

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const s3Scheme = "s3://"

// ObjectGetter is the part of the S3 client used by Loader.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Config selects the region and, for S3 compatible stores, the endpoint.
// Credentials come from the default AWS chain.
type S3Config struct {
	Region   string `mapstructure:"region"`
	Endpoint string `mapstructure:"endpoint"`
}

// NewS3Client builds an S3 client from the default AWS configuration.
func NewS3Client(ctx context.Context, conf S3Config) (*s3.Client, error) {
	var opts []func(*config.LoadOptions) error
	if region := strings.TrimSpace(conf.Region); region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load s3 config: %w", err)
	}

	endpoint := strings.TrimSpace(conf.Endpoint)
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// IsS3 reports whether location is an s3:// URL.
func IsS3(location string) bool {
	return strings.HasPrefix(strings.ToLower(location), s3Scheme)
}

// ParseS3 splits s3://bucket/key into bucket and key.
func ParseS3(location string) (bucket, key string, err error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", fmt.Errorf("invalid s3 location %q: %w", location, err)
	}

	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if !strings.EqualFold(u.Scheme, "s3") || bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid s3 location %q: expected s3://bucket/key", location)
	}

	return bucket, key, nil
}

func download(ctx context.Context, objects ObjectGetter, location string) ([]byte, error) {
	bucket, key, err := ParseS3(location)
	if err != nil {
		return nil, err
	}

	out, err := objects.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}

	return body, nil
}
