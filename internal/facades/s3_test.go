package facades

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fake S3 client ---
type fakeS3Client struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = params
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	return &s3.PutObjectOutput{}, nil
}

// --- Tests ---
func TestS3ImageFacade_Save(t *testing.T) {
	client := &fakeS3Client{}
	facade := NewS3ImageFacade(client, "media", "https://cdn.example.com/media/")

	url, err := facade.Save(context.Background(), "recipes/images/a.png", "image/png", []byte("png"))
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/media/recipes/images/a.png", url)
	assert.Equal(t, "media", *client.input.Bucket)
	assert.Equal(t, "recipes/images/a.png", *client.input.Key)
	assert.Equal(t, "image/png", *client.input.ContentType)
	assert.Equal(t, types.ObjectCannedACLPublicRead, client.input.ACL)
	assert.Equal(t, []byte("png"), client.body)
}

func TestS3ImageFacade_Save_Error(t *testing.T) {
	client := &fakeS3Client{err: errors.New("access denied")}
	facade := NewS3ImageFacade(client, "media", "https://cdn.example.com")

	url, err := facade.Save(context.Background(), "k.png", "image/png", []byte("png"))
	assert.Error(t, err)
	assert.Empty(t, url)
}

func TestNewS3Client(t *testing.T) {
	client, err := NewS3Client(context.Background(), "us-east-1", "http://localhost:9000", "key", "secret")
	require.NoError(t, err)

	opts := client.Options()
	assert.Equal(t, "us-east-1", opts.Region)
	assert.True(t, opts.UsePathStyle)
	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://localhost:9000", *opts.BaseEndpoint)
}
