// Package storage builds S3 clients for the configured sources and holds the
// key and continuation-token helpers shared by the listing code.
package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ajramos/bucketui/internal/config"
)

const defaultRegion = "us-east-1"

// ObjectAPI is the subset of the S3 client used for browsing and downloads.
type ObjectAPI interface {
	ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// PresignAPI signs GET requests for preview URLs.
type PresignAPI interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// NewClient creates an S3 client and presigner for one source.
// Static credentials are used when both keys are set; otherwise the default AWS chain applies.
func NewClient(ctx context.Context, src config.SourceConfig) (*s3.Client, *s3.PresignClient, error) {
	region := strings.TrimSpace(src.Region)
	if region == "" {
		region = defaultRegion
	}

	loaders := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if src.AccessKey != "" && src.SecretKey != "" {
		loaders = append(loaders, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(src.AccessKey, src.SecretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, nil, fmt.Errorf("load AWS config for source %q: %w", src.Name, err)
	}

	endpoint := strings.TrimSpace(src.Endpoint)
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = src.PathStyle
	})
	return client, s3.NewPresignClient(client), nil
}
