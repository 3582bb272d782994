// Package upload ships pipeline output files to S3.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ObjectPutter is the S3 surface used by the uploader.
type ObjectPutter interface {
	PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
}

// Uploader copies local output files into an S3 bucket under a key prefix.
type Uploader struct {
	client ObjectPutter
	bucket string
	prefix string
	logger *zap.Logger
}

// NewUploader creates an uploader targeting s3://bucket/prefix.
func NewUploader(client ObjectPutter, bucket, prefix string, logger *zap.Logger) *Uploader {
	return &Uploader{client: client, bucket: bucket, prefix: prefix, logger: logger}
}

// UploadFiles uploads each local file, keyed by its base name under the
// configured prefix. The first failure aborts the remaining uploads.
func (u *Uploader) UploadFiles(ctx context.Context, paths []string) error {
	for _, local := range paths {
		payload, err := os.ReadFile(local)
		if err != nil {
			return errors.Wrapf(err, "read output file %s", local)
		}

		key := path.Join(u.prefix, filepath.Base(local))
		_, err = u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
			Bucket: aws.String(u.bucket),
			Key:    aws.String(key),
			Body:   bytes.NewReader(payload),
		})
		if err != nil {
			return errors.Wrapf(err, "upload %s to s3://%s/%s", local, u.bucket, key)
		}

		u.logger.Info("output uploaded",
			zap.String("file", local),
			zap.String("destination", fmt.Sprintf("s3://%s/%s", u.bucket, key)))
	}

	return nil
}
