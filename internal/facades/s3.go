package facades

import (
	"bytes"
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/sbilibin2017/foodgram/internal/logger"
)

// S3PutObjectAPI is the part of *s3.Client used to upload images.
type S3PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// NewS3Client builds a client with static credentials. A non-empty endpoint
// points the client at an S3 compatible store using path-style addressing.
func NewS3Client(ctx context.Context, region, endpoint, accessKey, secretKey string) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if accessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// S3ImageFacade stores recipe images as public objects in a bucket.
type S3ImageFacade struct {
	client    S3PutObjectAPI
	bucket    string
	publicURL string
}

// NewS3ImageFacade creates a facade whose image URLs start with publicURL.
func NewS3ImageFacade(client S3PutObjectAPI, bucket, publicURL string) *S3ImageFacade {
	return &S3ImageFacade{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}
}

// Save uploads data under key and returns its public URL.
func (f *S3ImageFacade) Save(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := f.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(f.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		logger.Log.Errorw("failed to upload image to s3", "bucket", f.bucket, "key", key, "error", err)
		return "", err
	}

	url := f.publicURL + "/" + key
	logger.Log.Debugw("image uploaded", "bucket", f.bucket, "key", key, "size", len(data), "url", url)
	return url, nil
}
