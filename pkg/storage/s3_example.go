//go:build s3example
// +build s3example

// This file provides an example S3-backed snapshot store.
// It is excluded from regular builds because it requires the AWS SDK.
//
// To use this in your project, copy this file and add the AWS SDK:
//   go get github.com/aws/aws-sdk-go-v2
//   go get github.com/aws/aws-sdk-go-v2/config
//   go get github.com/aws/aws-sdk-go-v2/service/s3

package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/loom-ui/loom/internal/errors"
)

// S3Store persists state snapshots as JSON objects in an S3 bucket,
// for applications that need snapshots to survive the local machine.
//
// Example usage:
//
//	cfg, _ := config.LoadDefaultConfig(context.Background())
//	store := storage.NewS3Store(s3.NewFromConfig(cfg), "my-bucket", "snapshots/")
type S3Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Store creates an S3-backed snapshot store. prefix namespaces the
// snapshot keys within the bucket (e.g. "snapshots/").
func NewS3Store(client *s3.Client, bucket, prefix string) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: prefix}
}

func (s *S3Store) key(name string) string {
	return s.prefix + name + ".json"
}

// SaveSnapshot uploads a state record under name.
func (s *S3Store) SaveSnapshot(ctx context.Context, name string, values map[string]any) error {
	data, err := json.Marshal(encodable(values))
	if err != nil {
		return errors.New("E142").Wrap(err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(name)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
		Metadata: map[string]string{
			"snapshot-time": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return errors.New("E140").Wrap(err)
	}
	return nil
}

// LoadSnapshot downloads the state record saved under name.
func (s *S3Store) LoadSnapshot(ctx context.Context, name string) (map[string]any, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		return nil, errors.New("E141").Wrap(err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, errors.New("E140").Wrap(err)
	}

	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, errors.New("E142").Wrap(err)
	}
	return values, nil
}

// DeleteSnapshot removes the snapshot saved under name.
func (s *S3Store) DeleteSnapshot(ctx context.Context, name string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	return err
}

// ListSnapshots lists all snapshot names under the configured prefix.
func (s *S3Store) ListSnapshots(ctx context.Context) ([]string, error) {
	var names []string

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			if obj.Key == nil {
				continue
			}
			name := strings.TrimPrefix(*obj.Key, s.prefix)
			name = strings.TrimSuffix(name, ".json")
			names = append(names, name)
		}
	}
	return names, nil
}
