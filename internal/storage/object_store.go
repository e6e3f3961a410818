package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// StoredObject is one entry of a bucket listing.
type StoredObject struct {
	Key string
}

// ObjectStore is the narrow surface the gallery needs from object storage.
// The bucket is the single source of truth for gallery contents.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	List(ctx context.Context, prefix string) ([]StoredObject, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// S3Store talks to an S3-compatible bucket (AWS S3 or Cloudflare R2).
type S3Store struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewS3Store(client *s3.Client, bucket, publicURL string) *S3Store {
	return &S3Store{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}
}

func (s *S3Store) Put(ctx context.Context, key, contentType string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("error putting object %s: %w", key, err)
	}
	return nil
}

func (s *S3Store) List(ctx context.Context, prefix string) ([]StoredObject, error) {
	var objects []StoredObject
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error listing objects under %s: %w", prefix, err)
		}
		for _, obj := range page.Contents {
			objects = append(objects, StoredObject{Key: aws.ToString(obj.Key)})
		}
	}
	return objects, nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("error deleting object %s: %w", key, err)
	}
	return nil
}

// PublicURL derives the browser-facing URL for a stored key.
func (s *S3Store) PublicURL(key string) string {
	return CleanURL(s.publicURL + "/" + key)
}

// CleanURL percent-escapes spaces and normalizes the URL; filenames arrive
// from user uploads and are not guaranteed URL-safe.
func CleanURL(raw string) string {
	raw = strings.ReplaceAll(raw, " ", "%20")
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return parsed.String()
}
