package s3

import (
	"bytes"
	"context"
	"fmt"
	"path"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Uploader struct {
	client *s3.Client
	region string
	bucket string
}

// NewUploader resolves credentials from the default chain (env, shared
// config, instance role).
func NewUploader(ctx context.Context, region, bucket string) (*S3Uploader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &S3Uploader{
		client: s3.NewFromConfig(cfg),
		region: region,
		bucket: bucket,
	}, nil
}

func (u *S3Uploader) UploadBytes(ctx context.Context, folder, filename string, b []byte) (string, error) {
	key := path.Join(folder, filename)

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: &u.bucket,
		Key:    &key,
		Body:   bytes.NewReader(b),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key), nil
}
